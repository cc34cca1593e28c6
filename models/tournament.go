package models

import (
	"slices"
	"time"
)

// CurrentSchemaVersion is stamped on every saved document.
const CurrentSchemaVersion = 2

type KnockoutRound struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Matches []Match `json:"matches"`
}

// KnockoutStage is a single-elimination bracket. TeamIDs holds the initial
// slots in bracket order; slot 2k meets slot 2k+1 in the first round.
type KnockoutStage struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	NumTeams   int             `json:"numTeams"`
	TeamIDs    []TeamRef       `json:"teamIds"`
	Rounds     []KnockoutRound `json:"rounds"`
	ChampionID string          `json:"championId,omitempty"`
}

// ArchivedWinner is an immutable record of a finished tournament.
type ArchivedWinner struct {
	ID               string    `json:"id"`
	TournamentName   string    `json:"tournamentName"`
	ChampionTeamID   string    `json:"championTeamId"`
	ChampionTeamName string    `json:"championTeamName"`
	DateArchived     time.Time `json:"dateArchived"`
}

// TournamentState is the whole persisted document.
type TournamentState struct {
	SchemaVersion   int              `json:"schemaVersion"`
	Teams           []Team           `json:"teams"`
	Groups          []Group          `json:"groups"`
	League          *League          `json:"league"`
	KnockoutStage   *KnockoutStage   `json:"knockoutStage"`
	ArchivedWinners []ArchivedWinner `json:"archivedWinners"`
}

func NewTournamentState() *TournamentState {
	return &TournamentState{
		SchemaVersion:   CurrentSchemaVersion,
		Teams:           []Team{},
		Groups:          []Group{},
		ArchivedWinners: []ArchivedWinner{},
	}
}

func (r KnockoutRound) Clone() KnockoutRound {
	c := r
	c.Matches = cloneMatches(r.Matches)
	return c
}

func (k KnockoutStage) Clone() KnockoutStage {
	c := k
	c.TeamIDs = slices.Clone(k.TeamIDs)
	if k.Rounds != nil {
		c.Rounds = make([]KnockoutRound, len(k.Rounds))
		for i, r := range k.Rounds {
			c.Rounds[i] = r.Clone()
		}
	}
	return c
}

// Clone returns a deep copy so that a mutation can be attempted and thrown
// away on failure.
func (s *TournamentState) Clone() *TournamentState {
	if s == nil {
		return nil
	}
	c := &TournamentState{
		SchemaVersion:   s.SchemaVersion,
		Teams:           slices.Clone(s.Teams),
		ArchivedWinners: slices.Clone(s.ArchivedWinners),
	}
	if s.Groups != nil {
		c.Groups = make([]Group, len(s.Groups))
		for i, g := range s.Groups {
			c.Groups[i] = g.Clone()
		}
	}
	if s.League != nil {
		l := s.League.Clone()
		c.League = &l
	}
	if s.KnockoutStage != nil {
		k := s.KnockoutStage.Clone()
		c.KnockoutStage = &k
	}
	return c
}

func (s *TournamentState) FindTeam(id string) (Team, bool) {
	for _, t := range s.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

func (s *TournamentState) HasTeam(id string) bool {
	_, ok := s.FindTeam(id)
	return ok
}

// TeamNames indexes team names by id.
func (s *TournamentState) TeamNames() map[string]string {
	names := make(map[string]string, len(s.Teams))
	for _, t := range s.Teams {
		names[t.ID] = t.Name
	}
	return names
}

// GroupIndex returns the position of the group or -1.
func (s *TournamentState) GroupIndex(id string) int {
	for i := range s.Groups {
		if s.Groups[i].ID == id {
			return i
		}
	}
	return -1
}
