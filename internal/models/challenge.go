package models

// ChallengeID identifies one of the built-in challenge kinds
type ChallengeID string

const (
	// ChallengeFixTheBug asks the team to find and repair defects
	ChallengeFixTheBug ChallengeID = "fix-the-bug"

	// ChallengeFillTheBlank asks the team to complete missing code
	ChallengeFillTheBlank ChallengeID = "fill-the-blank"

	// ChallengeCodeReview asks the team to improve working but poor code
	ChallengeCodeReview ChallengeID = "code-review"

	// ChallengePairProgramming asks the team to implement functions from scratch
	ChallengePairProgramming ChallengeID = "pair-programming"
)

// Valid reports whether the ID names a known challenge
func (c ChallengeID) Valid() bool {
	switch c {
	case ChallengeFixTheBug, ChallengeFillTheBlank, ChallengeCodeReview, ChallengePairProgramming:
		return true
	}
	return false
}

// Challenge is an immutable challenge template
type Challenge struct {
	// ID is the challenge identifier
	ID ChallengeID

	// Title is the human readable name
	Title string

	// Description explains the task
	Description string

	// StarterCode is the template the shared buffer starts from
	StarterCode string

	// Regions are the named sub-ranges of the starter code, in definition order
	Regions []RegionDef

	// XPReward is awarded to each participant on a correct submission
	XPReward int

	// Required lists substrings a correct solution must contain
	Required []string

	// Forbidden lists substrings a correct solution must not contain
	Forbidden []string
}
