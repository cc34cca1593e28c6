package models

import (
	"encoding/json"
	"fmt"
)

// Зарезервированные идентификаторы, которые живут вне таблицы команд.
const (
	PendingTeamID = "TBD"
	RemovedTeamID = "TBD_DELETED"
)

type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TeamRefKind tells whether a bracket or match side points at a real team.
type TeamRefKind uint8

const (
	TeamKnown TeamRefKind = iota
	TeamPending
	TeamRemoved
)

// TeamRef is one side of a match. Known refs carry a team id; Pending stands for
// a slot awaiting a winner (or an unfilled bye); Removed marks a team that was
// deleted from the tournament.
//
// On the wire a ref is a plain string so saved documents keep the "TBD" /
// "TBD_DELETED" sentinels.
type TeamRef struct {
	Kind TeamRefKind
	ID   string
}

func Known(id string) TeamRef { return TeamRef{Kind: TeamKnown, ID: id} }

func Pending() TeamRef { return TeamRef{Kind: TeamPending} }

func Removed() TeamRef { return TeamRef{Kind: TeamRemoved} }

// ParseTeamRef maps a stored identifier back onto the tagged form. An empty
// string is treated as a pending slot.
func ParseTeamRef(s string) TeamRef {
	switch s {
	case "", PendingTeamID:
		return Pending()
	case RemovedTeamID:
		return Removed()
	default:
		return Known(s)
	}
}

func (r TeamRef) IsKnown() bool { return r.Kind == TeamKnown }

func (r TeamRef) IsSentinel() bool { return r.Kind != TeamKnown }

// Is reports whether r is the known team with the given id.
func (r TeamRef) Is(teamID string) bool {
	return r.Kind == TeamKnown && r.ID == teamID
}

func (r TeamRef) String() string {
	switch r.Kind {
	case TeamPending:
		return PendingTeamID
	case TeamRemoved:
		return RemovedTeamID
	default:
		return r.ID
	}
}

func (r TeamRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *TeamRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("team reference must be a string: %w", err)
	}
	*r = ParseTeamRef(s)
	return nil
}

// TeamRefs converts plain ids into known refs.
func TeamRefs(ids []string) []TeamRef {
	refs := make([]TeamRef, len(ids))
	for i, id := range ids {
		refs[i] = ParseTeamRef(id)
	}
	return refs
}
