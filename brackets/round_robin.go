package brackets

import "github.com/Dosada05/tournament-manager/models"

// GenerateFixtures builds the full round-robin fixture list for a roster: one
// match i→j for every pair i<j, plus the mirrored j→i when rounds is 2. The
// list is shuffled once so that its order carries no pattern. No attempt is
// made to balance match days or space out repeated opponents.
//
// Fewer than two teams yields nil. Callers replace the container's whole match
// list with the result, discarding any recorded scores.
func GenerateFixtures(teamIDs []string, rounds int, rng Shuffler) []models.Match {
	n := len(teamIDs)
	if n < 2 {
		return nil
	}
	if !models.ValidRounds(rounds) {
		rounds = 1
	}

	matches := make([]models.Match, 0, n*(n-1)/2*rounds)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			matches = append(matches, newFixture(teamIDs[i], teamIDs[j]))
			if rounds == 2 {
				matches = append(matches, newFixture(teamIDs[j], teamIDs[i]))
			}
		}
	}

	orDefault(rng).Shuffle(len(matches), func(i, j int) {
		matches[i], matches[j] = matches[j], matches[i]
	})
	return matches
}

func newFixture(home, away string) models.Match {
	return models.Match{
		ID:    newID(),
		TeamA: models.Known(home),
		TeamB: models.Known(away),
	}
}
