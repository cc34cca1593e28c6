package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Dosada05/tournament-manager/brackets"
	"github.com/Dosada05/tournament-manager/models"
	"github.com/Dosada05/tournament-manager/notify"
)

type LeagueService interface {
	GetLeague(ctx context.Context) (*models.League, error)
	SetupLeague(ctx context.Context, input SetupLeagueInput) (*models.League, error)
	DeleteLeague(ctx context.Context) error
	AddTeam(ctx context.Context, teamID string) error
	RemoveTeam(ctx context.Context, teamID string) error
	SetMode(ctx context.Context, mode models.MatchGenerationMode) error
	SetRounds(ctx context.Context, rounds int) error
	GenerateMatches(ctx context.Context) error
	AddManualMatch(ctx context.Context, input ManualMatchInput) (*models.Match, error)
	RemoveManualMatch(ctx context.Context, matchID string) error
	ClearMatches(ctx context.Context) error
	RecordScore(ctx context.Context, matchID string, input ScoreInput) error
	AddZone(ctx context.Context, input ZoneInput) (*models.ClassificationZone, error)
	RemoveZone(ctx context.Context, zoneID string) error
	Standings(ctx context.Context) ([]models.Standing, error)
}

type SetupLeagueInput struct {
	Name    string   `json:"name" validate:"required"`
	TeamIDs []string `json:"teamIds" validate:"required,min=2"`
	Rounds  int      `json:"rounds" validate:"omitempty,oneof=1 2"`
}

type leagueService struct {
	state *StateManager
	ops   containerOps
}

func NewLeagueService(state *StateManager) LeagueService {
	return &leagueService{
		state: state,
		ops:   containerOps{state: state, scope: "league", room: notify.RoomLeague},
	}
}

func (s *leagueService) GetLeague(ctx context.Context) (*models.League, error) {
	snapshot := s.state.Snapshot()
	if snapshot.League == nil {
		return nil, ErrLeagueNotFound
	}
	return snapshot.League, nil
}

// SetupLeague replaces any existing league and generates its fixtures right away.
func (s *leagueService) SetupLeague(ctx context.Context, input SetupLeagueInput) (*models.League, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	rounds := input.Rounds
	if rounds == 0 {
		rounds = 1
	}
	if !models.ValidRounds(rounds) {
		return nil, fmt.Errorf("%w: %d", brackets.ErrInvalidRounds, rounds)
	}

	var created *models.League
	err := s.state.mutate(ctx, "league.setup", notify.RoomLeague, func(st *models.TournamentState) error {
		roster, err := uniqueKnownTeams(st, input.TeamIDs)
		if err != nil {
			return err
		}
		if len(roster) < 2 {
			return brackets.ErrNotEnoughTeams
		}
		league := &models.League{
			ID:                  uuid.NewString(),
			Name:                name,
			TeamIDs:             roster,
			Matches:             brackets.GenerateFixtures(roster, rounds, s.state.rng),
			Settings:            models.LeagueSettings{Rounds: rounds},
			ClassificationZones: []models.ClassificationZone{},
			MatchGenerationMode: models.ModeAutomatic,
		}
		st.League = league
		c := league.Clone()
		created = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *leagueService) DeleteLeague(ctx context.Context) error {
	return s.state.mutate(ctx, "league.delete", notify.RoomLeague, func(st *models.TournamentState) error {
		if st.League == nil {
			return ErrLeagueNotFound
		}
		st.League = nil
		return nil
	})
}

func (s *leagueService) AddTeam(ctx context.Context, teamID string) error {
	return s.ops.addTeam(ctx, leagueLocator, teamID)
}

func (s *leagueService) RemoveTeam(ctx context.Context, teamID string) error {
	return s.ops.removeTeam(ctx, leagueLocator, teamID)
}

func (s *leagueService) SetMode(ctx context.Context, mode models.MatchGenerationMode) error {
	return s.ops.setMode(ctx, leagueLocator, mode)
}

func (s *leagueService) SetRounds(ctx context.Context, rounds int) error {
	return s.ops.setRounds(ctx, leagueLocator, rounds)
}

func (s *leagueService) GenerateMatches(ctx context.Context) error {
	return s.ops.generate(ctx, leagueLocator)
}

func (s *leagueService) AddManualMatch(ctx context.Context, input ManualMatchInput) (*models.Match, error) {
	return s.ops.addManualMatch(ctx, leagueLocator, input)
}

func (s *leagueService) RemoveManualMatch(ctx context.Context, matchID string) error {
	return s.ops.removeManualMatch(ctx, leagueLocator, matchID)
}

func (s *leagueService) ClearMatches(ctx context.Context) error {
	return s.ops.clearMatches(ctx, leagueLocator)
}

func (s *leagueService) RecordScore(ctx context.Context, matchID string, input ScoreInput) error {
	return s.ops.recordScore(ctx, leagueLocator, matchID, input)
}

func (s *leagueService) AddZone(ctx context.Context, input ZoneInput) (*models.ClassificationZone, error) {
	return s.ops.addZone(ctx, leagueLocator, input)
}

func (s *leagueService) RemoveZone(ctx context.Context, zoneID string) error {
	return s.ops.removeZone(ctx, leagueLocator, zoneID)
}

func (s *leagueService) Standings(ctx context.Context) ([]models.Standing, error) {
	return s.ops.standings(leagueLocator)
}
