package brackets

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Dosada05/tournament-manager/models"
)

const (
	pointsWin  = 3
	pointsDraw = 1
)

// CalculateStandings folds the played matches of a container into a ranked
// table. Ordering is points, goal difference, goals for (all descending), then
// team name ascending. Team id breaks ties between identical names so the
// order is total. There is no head-to-head comparison.
//
// nameOf resolves display names for the final tie-break; nil falls back to
// team ids. Matches against teams outside the roster are ignored.
func CalculateStandings(teamIDs []string, matches []models.Match, nameOf func(string) string) []models.Standing {
	rows := make(map[string]*models.Standing, len(teamIDs))
	table := make([]models.Standing, 0, len(teamIDs))
	for _, id := range teamIDs {
		if _, dup := rows[id]; dup {
			continue
		}
		name := id
		if nameOf != nil {
			name = nameOf(id)
		}
		table = append(table, models.Standing{TeamID: id, TeamName: name})
		rows[id] = nil
	}
	for i := range table {
		rows[table[i].TeamID] = &table[i]
	}

	for _, m := range matches {
		if !m.Played || m.ScoreA == nil || m.ScoreB == nil || m.HasSentinel() {
			continue
		}
		a, okA := rows[m.TeamA.ID]
		b, okB := rows[m.TeamB.ID]
		if !okA || !okB {
			continue
		}
		applyResult(a, *m.ScoreA, *m.ScoreB)
		applyResult(b, *m.ScoreB, *m.ScoreA)
	}

	for i := range table {
		table[i].GoalDifference = table[i].GoalsFor - table[i].GoalsAgainst
	}

	slices.SortFunc(table, compareStandings)
	for i := range table {
		table[i].Rank = i + 1
	}
	return table
}

func applyResult(s *models.Standing, scored, conceded int) {
	s.Played++
	s.GoalsFor += scored
	s.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		s.Won++
		s.Points += pointsWin
	case scored == conceded:
		s.Drawn++
		s.Points += pointsDraw
	default:
		s.Lost++
	}
}

func compareStandings(a, b models.Standing) int {
	if c := cmp.Compare(b.Points, a.Points); c != 0 {
		return c
	}
	if c := cmp.Compare(b.GoalDifference, a.GoalDifference); c != 0 {
		return c
	}
	if c := cmp.Compare(b.GoalsFor, a.GoalsFor); c != 0 {
		return c
	}
	if c := strings.Compare(a.TeamName, b.TeamName); c != 0 {
		return c
	}
	return strings.Compare(a.TeamID, b.TeamID)
}
