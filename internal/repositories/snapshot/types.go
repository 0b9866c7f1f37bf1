package snapshot

import "github.com/KirkDiggler/codearena/internal/models"

type SaveSnapshotInput struct {
	Snapshot *models.Snapshot
}

type GetSnapshotInput struct {
	RoomID string
}
