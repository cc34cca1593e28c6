package models

import "slices"

// MatchGenerationMode decides who builds a container's fixture list.
type MatchGenerationMode string

const (
	ModeAutomatic MatchGenerationMode = "automatic"
	ModeManual    MatchGenerationMode = "manual"
)

func (m MatchGenerationMode) Valid() bool {
	return m == ModeAutomatic || m == ModeManual
}

// ValidRounds reports whether n is a supported round-robin leg count
// (1 for single round-robin, 2 for home-and-away).
func ValidRounds(n int) bool {
	return n == 1 || n == 2
}

// ClassificationZone is a named, colored rank range overlaid on a standings table.
type ClassificationZone struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RankMin    int    `json:"rankMin"`
	RankMax    int    `json:"rankMax"`
	ColorClass string `json:"colorClass"`
}

// Contains reports whether rank falls inside [RankMin, RankMax].
func (z ClassificationZone) Contains(rank int) bool {
	return rank >= z.RankMin && rank <= z.RankMax
}

// Overlaps reports whether the two rank ranges intersect.
func (z ClassificationZone) Overlaps(other ClassificationZone) bool {
	return z.RankMin <= other.RankMax && other.RankMin <= z.RankMax
}

type Group struct {
	ID                  string               `json:"id"`
	Name                string               `json:"name"`
	TeamIDs             []string             `json:"teamIds"`
	Matches             []Match              `json:"matches"`
	ClassificationZones []ClassificationZone `json:"classificationZones"`
	MatchGenerationMode MatchGenerationMode  `json:"matchGenerationMode"`
	Rounds              int                  `json:"rounds"`
}

type LeagueSettings struct {
	Rounds int `json:"rounds"`
}

// League is the tournament's single round-robin table.
type League struct {
	ID                  string               `json:"id"`
	Name                string               `json:"name"`
	TeamIDs             []string             `json:"teamIds"`
	Matches             []Match              `json:"matches"`
	Settings            LeagueSettings       `json:"settings"`
	ClassificationZones []ClassificationZone `json:"classificationZones"`
	MatchGenerationMode MatchGenerationMode  `json:"matchGenerationMode"`
}

func (g Group) Clone() Group {
	c := g
	c.TeamIDs = slices.Clone(g.TeamIDs)
	c.Matches = cloneMatches(g.Matches)
	c.ClassificationZones = slices.Clone(g.ClassificationZones)
	return c
}

func (l League) Clone() League {
	c := l
	c.TeamIDs = slices.Clone(l.TeamIDs)
	c.Matches = cloneMatches(l.Matches)
	c.ClassificationZones = slices.Clone(l.ClassificationZones)
	return c
}
