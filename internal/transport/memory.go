package transport

import (
	"context"
	"sync"
)

// MemoryHub is an in-process transport. Delivery is synchronous and in order,
// which makes it suitable for tests and single-process deployments.
type MemoryHub struct {
	mu       sync.Mutex
	channels map[string]map[string]*memoryConn
}

// NewMemoryHub creates an empty hub
func NewMemoryHub() *MemoryHub {
	return &MemoryHub{
		channels: make(map[string]map[string]*memoryConn),
	}
}

type memoryConn struct {
	hub     *MemoryHub
	channel string
	peer    PeerInfo

	mu       sync.Mutex
	handlers handlers
	closed   bool
}

// Connect joins a channel on the hub
func (h *MemoryHub) Connect(ctx context.Context, input *ConnectInput) (Conn, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	conn := &memoryConn{
		hub:     h,
		channel: input.Channel,
		peer:    input.Peer,
	}

	h.mu.Lock()
	members, ok := h.channels[input.Channel]
	if !ok {
		members = make(map[string]*memoryConn)
		h.channels[input.Channel] = members
	}
	members[input.Peer.ID] = conn
	h.mu.Unlock()

	h.notifyPeers(input.Channel)
	return conn, nil
}

// Disconnect drops a peer without a clean Close, the way a lost network
// connection would
func (h *MemoryHub) Disconnect(channel, peerID string) {
	h.mu.Lock()
	members := h.channels[channel]
	conn, ok := members[peerID]
	if ok {
		delete(members, peerID)
	}
	h.mu.Unlock()

	if ok {
		conn.mu.Lock()
		conn.closed = true
		conn.mu.Unlock()
		h.notifyPeers(channel)
	}
}

func (h *MemoryHub) members(channel string) []*memoryConn {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]*memoryConn, 0, len(h.channels[channel]))
	for _, c := range h.channels[channel] {
		out = append(out, c)
	}
	return out
}

func (h *MemoryHub) peers(channel string) map[string]PeerInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make(map[string]PeerInfo, len(h.channels[channel]))
	for id, c := range h.channels[channel] {
		out[id] = c.peer
	}
	return out
}

func (h *MemoryHub) notifyPeers(channel string) {
	peers := h.peers(channel)
	for _, c := range h.members(channel) {
		c.mu.Lock()
		handler := c.handlers.peers
		c.mu.Unlock()
		if handler != nil {
			handler(copyPeers(peers))
		}
	}
}

func (c *memoryConn) Broadcast(ctx context.Context, payload []byte) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}

	for _, other := range c.hub.members(c.channel) {
		if other == c {
			continue
		}
		other.mu.Lock()
		handler := other.handlers.message
		other.mu.Unlock()
		if handler != nil {
			handler(c.peer.ID, append([]byte(nil), payload...))
		}
	}
	return nil
}

func (c *memoryConn) OnMessage(handler MessageHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers.message = handler
}

func (c *memoryConn) OnPeersChanged(handler PeersHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers.peers = handler
}

func (c *memoryConn) Peers() map[string]PeerInfo {
	return c.hub.peers(c.channel)
}

func (c *memoryConn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.hub.mu.Lock()
	delete(c.hub.channels[c.channel], c.peer.ID)
	c.hub.mu.Unlock()

	c.hub.notifyPeers(c.channel)
	return nil
}
