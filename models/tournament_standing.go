package models

// Standing is a derived table row. It is recomputed from a container's match
// list on every read and never stored.
type Standing struct {
	TeamID         string `json:"teamId"`
	TeamName       string `json:"teamName,omitempty"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
	Rank           int    `json:"rank,omitempty"` // 1-based, set by the calculator

	ClassificationZoneName string `json:"classificationZoneName,omitempty"`
	ZoneColorClass         string `json:"zoneColorClass,omitempty"`
}
