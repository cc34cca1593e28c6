package models

// Match is a fixture between two sides. Played is true exactly when both
// scores are set.
type Match struct {
	ID        string  `json:"id"`
	TeamA     TeamRef `json:"teamAId"`
	TeamB     TeamRef `json:"teamBId"`
	ScoreA    *int    `json:"scoreA,omitempty"`
	ScoreB    *int    `json:"scoreB,omitempty"`
	Played    bool    `json:"played"`
	RoundName string  `json:"roundName,omitempty"`
}

func (m *Match) SetScore(scoreA, scoreB int) {
	m.ScoreA = &scoreA
	m.ScoreB = &scoreB
	m.Played = true
}

func (m *Match) ClearScore() {
	m.ScoreA = nil
	m.ScoreB = nil
	m.Played = false
}

// HasSentinel reports whether either side is not a real team.
func (m Match) HasSentinel() bool {
	return m.TeamA.IsSentinel() || m.TeamB.IsSentinel()
}

// Involves reports whether the known team takes part in the match.
func (m Match) Involves(teamID string) bool {
	return m.TeamA.Is(teamID) || m.TeamB.Is(teamID)
}

// Winner returns the higher-scoring side. Unplayed or drawn matches have no winner.
func (m Match) Winner() (TeamRef, bool) {
	if !m.Played || m.ScoreA == nil || m.ScoreB == nil || *m.ScoreA == *m.ScoreB {
		return TeamRef{}, false
	}
	if *m.ScoreA > *m.ScoreB {
		return m.TeamA, true
	}
	return m.TeamB, true
}

func (m Match) Clone() Match {
	c := m
	if m.ScoreA != nil {
		a := *m.ScoreA
		c.ScoreA = &a
	}
	if m.ScoreB != nil {
		b := *m.ScoreB
		c.ScoreB = &b
	}
	return c
}

func cloneMatches(src []Match) []Match {
	if src == nil {
		return nil
	}
	out := make([]Match, len(src))
	for i, m := range src {
		out[i] = m.Clone()
	}
	return out
}
