package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-manager/models"
)

const DefaultStateKey = "tournament-storage"

var ErrUnsupportedSchema = errors.New("state document has an unsupported schema version")

type StateRepository interface {
	Load(ctx context.Context) (*models.TournamentState, error)
	Save(ctx context.Context, state *models.TournamentState) error
}

type stateRepository struct {
	store BlobStore
	key   string
}

func NewStateRepository(store BlobStore, key string) StateRepository {
	if key == "" {
		key = DefaultStateKey
	}
	return &stateRepository{store: store, key: key}
}

// Load reads and upgrades the saved document. A missing document is an empty
// tournament.
func (r *stateRepository) Load(ctx context.Context) (*models.TournamentState, error) {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			return models.NewTournamentState(), nil
		}
		return nil, err
	}

	var state models.TournamentState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode state %q: %w", r.key, err)
	}
	if err := upgradeState(&state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *stateRepository) Save(ctx context.Context, state *models.TournamentState) error {
	doc := *state
	doc.SchemaVersion = models.CurrentSchemaVersion
	data, err := json.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	return r.store.Put(ctx, r.key, data)
}

// upgradeState brings a decoded document up to the current schema. Documents
// without a version are v1 and predate zones, generation modes, round
// settings and the archive; those fields are defaulted, never rejected.
func upgradeState(s *models.TournamentState) error {
	if s.SchemaVersion > models.CurrentSchemaVersion {
		return fmt.Errorf("%w: %d (supported up to %d)", ErrUnsupportedSchema, s.SchemaVersion, models.CurrentSchemaVersion)
	}

	if s.Teams == nil {
		s.Teams = []models.Team{}
	}
	if s.Groups == nil {
		s.Groups = []models.Group{}
	}
	if s.ArchivedWinners == nil {
		s.ArchivedWinners = []models.ArchivedWinner{}
	}

	for i := range s.Groups {
		g := &s.Groups[i]
		if g.TeamIDs == nil {
			g.TeamIDs = []string{}
		}
		g.Matches = normalizeMatches(g.Matches)
		if g.ClassificationZones == nil {
			g.ClassificationZones = []models.ClassificationZone{}
		}
		if !g.MatchGenerationMode.Valid() {
			g.MatchGenerationMode = models.ModeAutomatic
		}
		if !models.ValidRounds(g.Rounds) {
			g.Rounds = 1
		}
	}

	if l := s.League; l != nil {
		if l.TeamIDs == nil {
			l.TeamIDs = []string{}
		}
		l.Matches = normalizeMatches(l.Matches)
		if l.ClassificationZones == nil {
			l.ClassificationZones = []models.ClassificationZone{}
		}
		if !l.MatchGenerationMode.Valid() {
			l.MatchGenerationMode = models.ModeAutomatic
		}
		if !models.ValidRounds(l.Settings.Rounds) {
			l.Settings.Rounds = 1
		}
	}

	if k := s.KnockoutStage; k != nil {
		if k.TeamIDs == nil {
			k.TeamIDs = []models.TeamRef{}
		}
		if k.Rounds == nil {
			k.Rounds = []models.KnockoutRound{}
		}
		for i := range k.Rounds {
			k.Rounds[i].Matches = normalizeMatches(k.Rounds[i].Matches)
		}
	}

	s.SchemaVersion = models.CurrentSchemaVersion
	return nil
}

// normalizeMatches enforces played == both scores present.
func normalizeMatches(matches []models.Match) []models.Match {
	if matches == nil {
		return []models.Match{}
	}
	for i := range matches {
		m := &matches[i]
		if m.ScoreA != nil && m.ScoreB != nil {
			m.Played = true
		} else {
			m.ClearScore()
		}
	}
	return matches
}
