package models

// RegionDef describes a named sub-range of a challenge's starter code
type RegionDef struct {
	// ID is the stable identifier of the region
	ID string

	// Name is the human readable name
	Name string

	// StartMarker is a substring that identifies the first line of the region
	StartMarker string

	// EndMarker is the closing character that terminates the region
	EndMarker rune
}

// Region is a RegionDef plus its assignment for the current session
type Region struct {
	RegionDef

	// AssignedTo is the owning participant ID, empty when the region is shared
	AssignedTo string

	// AssignedName caches the owner's display name
	AssignedName string
}

// Shared reports whether nobody owns the region
func (r *Region) Shared() bool {
	return r.AssignedTo == ""
}

// RegionSpan is a 1-based inclusive line range
type RegionSpan struct {
	Start int
	End   int
}

// Contains reports whether line falls inside the span
func (s RegionSpan) Contains(line int) bool {
	return line >= s.Start && line <= s.End
}
