package brackets

import (
	"fmt"

	"github.com/Dosada05/tournament-manager/models"
)

const DefaultGroupPrefix = "Group "

// DistributionConfig drives PlanDistribution.
type DistributionConfig struct {
	NumGroups int
	// TeamsPerGroup fills groups in fixed-size batches when positive. Zero
	// deals teams round-robin across all groups.
	TeamsPerGroup int
	NamePrefix    string
	// GenerateMatches builds fixtures for every populated group.
	GenerateMatches bool
	Rounds          int
}

type PlannedGroup struct {
	Name    string
	TeamIDs []string
	Matches []models.Match
}

// PlanDistribution shuffles the pool once and splits it into named groups.
// With a fixed size the first groups get exactly TeamsPerGroup teams each and
// leftover teams are dropped; without one teams are dealt to the groups in
// turn. Empty groups are left out of the result.
func PlanDistribution(pool []string, cfg DistributionConfig, rng Shuffler) ([]PlannedGroup, error) {
	if cfg.NumGroups <= 0 || cfg.NumGroups > len(pool) {
		return nil, fmt.Errorf("%w: %d groups for %d teams", ErrInvalidGroupCount, cfg.NumGroups, len(pool))
	}
	if cfg.TeamsPerGroup < 0 {
		return nil, ErrInvalidTeamsPerGroup
	}
	rounds := cfg.Rounds
	if rounds == 0 {
		rounds = 1
	}
	if cfg.GenerateMatches && !models.ValidRounds(rounds) {
		return nil, ErrInvalidRounds
	}
	prefix := cfg.NamePrefix
	if prefix == "" {
		prefix = DefaultGroupPrefix
	}

	rng = orDefault(rng)
	shuffled := append([]string(nil), pool...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	buckets := make([][]string, cfg.NumGroups)
	if cfg.TeamsPerGroup > 0 {
		next := 0
		for g := range buckets {
			end := min(next+cfg.TeamsPerGroup, len(shuffled))
			buckets[g] = shuffled[next:end]
			next = end
		}
	} else {
		for i, id := range shuffled {
			g := i % cfg.NumGroups
			buckets[g] = append(buckets[g], id)
		}
	}

	planned := make([]PlannedGroup, 0, cfg.NumGroups)
	for g, teams := range buckets {
		if len(teams) == 0 {
			continue
		}
		pg := PlannedGroup{
			Name:    prefix + groupLetter(g),
			TeamIDs: append([]string(nil), teams...),
		}
		if cfg.GenerateMatches {
			pg.Matches = GenerateFixtures(pg.TeamIDs, rounds, rng)
		}
		planned = append(planned, pg)
	}
	return planned, nil
}

// groupLetter maps 0→A, 25→Z, 26→AA and so on.
func groupLetter(i int) string {
	var b []byte
	for i >= 0 {
		b = append([]byte{byte('A' + i%26)}, b...)
		i = i/26 - 1
	}
	return string(b)
}
