package transport

import (
	"context"
)

// Transport establishes a best-effort mesh between peers sharing a channel
type Transport interface {
	// Connect joins a channel and announces the peer's presence
	Connect(ctx context.Context, input *ConnectInput) (Conn, error)
}

// Conn is one peer's membership in a channel
type Conn interface {
	// Broadcast sends payload to every other peer on the channel
	Broadcast(ctx context.Context, payload []byte) error

	// OnMessage registers the handler for payloads from other peers
	OnMessage(handler MessageHandler)

	// OnPeersChanged registers the handler fired on any membership change
	OnPeersChanged(handler PeersHandler)

	// Peers returns the current presence map, including this peer
	Peers() map[string]PeerInfo

	// Close leaves the channel; other peers see the departure
	Close() error
}
