package brackets

import "errors"

// Ошибки движка. Любая из них означает, что операция не применена.
var (
	ErrNotEnoughTeams       = errors.New("at least two teams are required")
	ErrInvalidRounds        = errors.New("rounds must be 1 or 2")
	ErrNotPowerOfTwo        = errors.New("number of teams must be a power of two and at least 2")
	ErrSlotCountMismatch    = errors.New("number of slots does not match number of teams")
	ErrDuplicateSlot        = errors.New("team is assigned to more than one bracket slot")
	ErrDrawNotAllowed       = errors.New("knockout matches cannot end in a draw")
	ErrNegativeScore        = errors.New("scores must not be negative")
	ErrSentinelMatch        = errors.New("match has an undetermined or removed team")
	ErrMatchAlreadyPlayed   = errors.New("match has already been played")
	ErrSameTeamBothSides    = errors.New("a team cannot play against itself")
	ErrRoundNotFound        = errors.New("knockout round not found")
	ErrMatchNotFound        = errors.New("match not found")
	ErrZoneNameRequired     = errors.New("zone name is required")
	ErrZoneInvalidRange     = errors.New("zone rank range must be positive and not inverted")
	ErrZoneOverlap          = errors.New("zone rank range overlaps an existing zone")
	ErrInvalidGroupCount    = errors.New("number of groups must be positive and not exceed the number of teams")
	ErrInvalidTeamsPerGroup = errors.New("teams per group must be positive")
)
