package transport

import (
	"sync"
	"time"
)

// presenceTable tracks heartbeat-based membership
type presenceTable struct {
	mu       sync.Mutex
	ttl      time.Duration
	peers    map[string]PeerInfo
	lastSeen map[string]time.Time
}

func newPresenceTable(ttl time.Duration) *presenceTable {
	return &presenceTable{
		ttl:      ttl,
		peers:    map[string]PeerInfo{},
		lastSeen: map[string]time.Time{},
	}
}

// seen records a heartbeat and reports whether membership changed
func (p *presenceTable) seen(info PeerInfo, at time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	prev, known := p.peers[info.ID]
	p.peers[info.ID] = info
	p.lastSeen[info.ID] = at
	return !known || prev != info
}

// remove drops a peer and reports whether it was present
func (p *presenceTable) remove(peerID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.peers[peerID]; !ok {
		return false
	}
	delete(p.peers, peerID)
	delete(p.lastSeen, peerID)
	return true
}

// prune removes peers whose last heartbeat is older than the ttl, except
// keep, and reports whether any were removed
func (p *presenceTable) prune(now time.Time, keep string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	changed := false
	for id, at := range p.lastSeen {
		if id == keep {
			continue
		}
		if now.Sub(at) > p.ttl {
			delete(p.peers, id)
			delete(p.lastSeen, id)
			changed = true
		}
	}
	return changed
}

func (p *presenceTable) snapshot() map[string]PeerInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	return copyPeers(p.peers)
}
