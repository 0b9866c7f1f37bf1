// Package transport carries CRDT updates and presence between peers of a room.
package transport

import (
	"strings"
)

// TransportError is returned by transport implementations
type TransportError string

func (e TransportError) Error() string {
	return string(e)
}

const (
	ErrClosed         TransportError = "connection closed"
	ErrInvalidChannel TransportError = "channel cannot be empty"
	ErrInvalidPeer    TransportError = "peer ID cannot be empty"
	ErrNilConfig      TransportError = "config cannot be nil"
	ErrNilClient      TransportError = "client cannot be nil"
)

// PeerInfo is the ephemeral metadata a peer announces
type PeerInfo struct {
	// ID is the ephemeral peer identifier
	ID string `json:"id"`

	// Name is the display name
	Name string `json:"name"`

	// UserID is the participant identity behind the peer
	UserID string `json:"user_id"`
}

// ConnectInput contains parameters for joining a channel
type ConnectInput struct {
	// Channel is the room-derived channel name
	Channel string

	// Peer is this peer's presence metadata
	Peer PeerInfo
}

func (in *ConnectInput) validate() error {
	if in == nil || strings.TrimSpace(in.Channel) == "" {
		return ErrInvalidChannel
	}
	if in.Peer.ID == "" {
		return ErrInvalidPeer
	}
	return nil
}

// MessageHandler receives a payload broadcast by peer from
type MessageHandler func(from string, payload []byte)

// PeersHandler receives the full presence map after a membership change
type PeersHandler func(peers map[string]PeerInfo)

// ChannelForRoom derives the mesh channel name for a room
func ChannelForRoom(roomID string) string {
	return "codearena." + roomID
}

func copyPeers(in map[string]PeerInfo) map[string]PeerInfo {
	out := make(map[string]PeerInfo, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// handlers holds a connection's registered callbacks
type handlers struct {
	message MessageHandler
	peers   PeersHandler
}
