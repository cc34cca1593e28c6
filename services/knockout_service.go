package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/tournament-manager/brackets"
	"github.com/Dosada05/tournament-manager/models"
	"github.com/Dosada05/tournament-manager/notify"
)

type KnockoutService interface {
	GetKnockout(ctx context.Context) (*models.KnockoutStage, error)
	SetupKnockout(ctx context.Context, input SetupKnockoutInput) (*models.KnockoutStage, error)
	DeleteKnockout(ctx context.Context) error
	RecordScore(ctx context.Context, roundID, matchID string, input ScoreInput) (*models.KnockoutStage, error)
	ReassignTeam(ctx context.Context, roundID, matchID string, input ReassignTeamInput) (*models.KnockoutStage, error)
}

// SetupKnockoutInput lists the bracket slots in order. "TBD" or an empty
// string leaves a slot open.
type SetupKnockoutInput struct {
	Name     string   `json:"name" validate:"required"`
	NumTeams int      `json:"numTeams" validate:"required,min=2"`
	TeamIDs  []string `json:"teamIds" validate:"required"`
	Shuffle  bool     `json:"shuffle"`
}

type ReassignTeamInput struct {
	Side   string `json:"side" validate:"required,oneof=a b A B"`
	TeamID string `json:"teamId"`
}

type knockoutService struct {
	state *StateManager
}

func NewKnockoutService(state *StateManager) KnockoutService {
	return &knockoutService{state: state}
}

func (s *knockoutService) GetKnockout(ctx context.Context) (*models.KnockoutStage, error) {
	snapshot := s.state.Snapshot()
	if snapshot.KnockoutStage == nil {
		return nil, ErrKnockoutNotFound
	}
	return snapshot.KnockoutStage, nil
}

func (s *knockoutService) SetupKnockout(ctx context.Context, input SetupKnockoutInput) (*models.KnockoutStage, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	slots := models.TeamRefs(input.TeamIDs)

	var created *models.KnockoutStage
	err := s.state.mutate(ctx, "knockout.setup", notify.RoomKnockout, func(st *models.TournamentState) error {
		for _, ref := range slots {
			if ref.IsKnown() && !st.HasTeam(ref.ID) {
				return fmt.Errorf("%w: %s", ErrTeamNotFound, ref.ID)
			}
		}
		stage, err := brackets.NewKnockoutStage(name, input.NumTeams, slots, input.Shuffle, s.state.rng, s.state.locale.RoundNames)
		if err != nil {
			return err
		}
		st.KnockoutStage = stage
		created = stage
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *knockoutService) DeleteKnockout(ctx context.Context) error {
	return s.state.mutate(ctx, "knockout.delete", notify.RoomKnockout, func(st *models.TournamentState) error {
		if st.KnockoutStage == nil {
			return ErrKnockoutNotFound
		}
		st.KnockoutStage = nil
		return nil
	})
}

// RecordScore commits a knockout result and applies whatever the round
// completion calls for: a new round, a reset of the next one, or a champion.
func (s *knockoutService) RecordScore(ctx context.Context, roundID, matchID string, input ScoreInput) (*models.KnockoutStage, error) {
	if input.ScoreA == nil || input.ScoreB == nil {
		return nil, fmt.Errorf("%w: both scores are required", ErrValidationFailed)
	}
	var updated *models.KnockoutStage
	err := s.state.mutate(ctx, "knockout.record_score", notify.RoomKnockout, func(st *models.TournamentState) error {
		if st.KnockoutStage == nil {
			return ErrKnockoutNotFound
		}
		adv, err := brackets.RecordScore(st.KnockoutStage, roundID, matchID, *input.ScoreA, *input.ScoreB, s.state.rng, s.state.locale.RoundNames)
		if err != nil {
			return mapBracketLookup(err)
		}
		s.state.logger.Debug("knockout round evaluated", "round_id", roundID, "advancement", adv.Kind.String())
		updated = st.KnockoutStage
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *knockoutService) ReassignTeam(ctx context.Context, roundID, matchID string, input ReassignTeamInput) (*models.KnockoutStage, error) {
	var side brackets.Side
	switch strings.ToLower(input.Side) {
	case "a":
		side = brackets.SideA
	case "b":
		side = brackets.SideB
	default:
		return nil, fmt.Errorf("%w: side must be a or b", ErrValidationFailed)
	}
	ref := models.ParseTeamRef(strings.TrimSpace(input.TeamID))

	var updated *models.KnockoutStage
	err := s.state.mutate(ctx, "knockout.reassign_team", notify.RoomKnockout, func(st *models.TournamentState) error {
		if st.KnockoutStage == nil {
			return ErrKnockoutNotFound
		}
		if ref.IsKnown() && !st.HasTeam(ref.ID) {
			return fmt.Errorf("%w: %s", ErrTeamNotFound, ref.ID)
		}
		if err := brackets.ReassignTeam(st.KnockoutStage, roundID, matchID, side, ref); err != nil {
			return mapBracketLookup(err)
		}
		updated = st.KnockoutStage
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// mapBracketLookup turns the engine's lookup failures into the service
// not-found errors; rule violations pass through unchanged.
func mapBracketLookup(err error) error {
	switch {
	case errors.Is(err, brackets.ErrRoundNotFound), errors.Is(err, brackets.ErrMatchNotFound):
		return fmt.Errorf("%w: %v", ErrMatchNotFound, err)
	default:
		return err
	}
}
