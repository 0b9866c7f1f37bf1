// Package regions decides which lines of a shared buffer each participant may
// edit. Regions are assigned in definition order; the tail left over after an
// even split across the team stays shared and is editable by everyone.
package regions

import (
	"github.com/KirkDiggler/codearena/internal/models"
)

// FromDefs builds a fresh, unassigned region set for a challenge
func FromDefs(defs []models.RegionDef) []models.Region {
	out := make([]models.Region, len(defs))
	for i, def := range defs {
		out[i] = models.Region{RegionDef: def}
	}
	return out
}

// ComputeSharedCount returns how many regions at the tail of the list stay
// unassigned for a team of the given size
func ComputeSharedCount(totalRegions, teamSize int) int {
	if teamSize <= 0 || totalRegions <= 0 {
		return 0
	}
	return totalRegions % teamSize
}

// AssignNextRegion gives participant the first free assignable region.
// It returns the region the participant holds afterwards and whether this call
// made a new assignment. A participant who already holds a region keeps it.
func AssignNextRegion(regions []models.Region, participant models.Participant, teamSize int) (string, bool) {
	if participant.ID == "" || teamSize <= 0 {
		return "", false
	}

	if held := RegionFor(regions, participant.ID); held != nil {
		return held.ID, false
	}

	assignable := len(regions) - ComputeSharedCount(len(regions), teamSize)
	for i := 0; i < assignable; i++ {
		if regions[i].AssignedTo != "" {
			continue
		}
		regions[i].AssignedTo = participant.ID
		regions[i].AssignedName = participant.Name
		return regions[i].ID, true
	}

	return "", false
}

// ReleaseRegions clears every assignment held by participantID and reports
// whether anything changed
func ReleaseRegions(regions []models.Region, participantID string) bool {
	changed := false
	for i := range regions {
		if participantID != "" && regions[i].AssignedTo == participantID {
			regions[i].AssignedTo = ""
			regions[i].AssignedName = ""
			changed = true
		}
	}
	return changed
}

// RegionFor returns the region held by participantID, or nil
func RegionFor(regions []models.Region, participantID string) *models.Region {
	if participantID == "" {
		return nil
	}
	for i := range regions {
		if regions[i].AssignedTo == participantID {
			return &regions[i]
		}
	}
	return nil
}

// Clone returns a deep copy of a region slice
func Clone(regions []models.Region) []models.Region {
	if regions == nil {
		return nil
	}
	out := make([]models.Region, len(regions))
	copy(out, regions)
	return out
}
