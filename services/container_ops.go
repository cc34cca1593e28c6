package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/tournament-manager/models"
)

type ScoreInput struct {
	ScoreA *int `json:"scoreA" validate:"required,min=0"`
	ScoreB *int `json:"scoreB" validate:"required,min=0"`
}

type ManualMatchInput struct {
	TeamAID string `json:"teamAId" validate:"required"`
	TeamBID string `json:"teamBId" validate:"required,nefield=TeamAID"`
}

type ZoneInput struct {
	Name       string `json:"name" validate:"required"`
	RankMin    int    `json:"rankMin" validate:"required,min=1"`
	RankMax    int    `json:"rankMax" validate:"required,gtefield=RankMin"`
	ColorClass string `json:"colorClass"`
}

type ModeInput struct {
	Mode models.MatchGenerationMode `json:"mode" validate:"required,oneof=automatic manual"`
}

type RoundsInput struct {
	Rounds int `json:"rounds" validate:"required,oneof=1 2"`
}

// containerOps carries the operations groups and the league share. The scope
// prefixes operation names in logs and events.
type containerOps struct {
	state *StateManager
	scope string
	room  string
}

func (o containerOps) update(ctx context.Context, op string, locate containerLocator, fn func(c *container, s *models.TournamentState) error) error {
	return o.state.mutate(ctx, o.scope+"."+op, o.room, func(s *models.TournamentState) error {
		c, err := locate(s)
		if err != nil {
			return err
		}
		return fn(c, s)
	})
}

func (o containerOps) addTeam(ctx context.Context, locate containerLocator, teamID string) error {
	return o.update(ctx, "add_team", locate, func(c *container, s *models.TournamentState) error {
		return c.addTeam(s, teamID)
	})
}

func (o containerOps) removeTeam(ctx context.Context, locate containerLocator, teamID string) error {
	return o.update(ctx, "remove_team", locate, func(c *container, _ *models.TournamentState) error {
		return c.removeTeam(teamID)
	})
}

func (o containerOps) setMode(ctx context.Context, locate containerLocator, mode models.MatchGenerationMode) error {
	return o.update(ctx, "set_mode", locate, func(c *container, _ *models.TournamentState) error {
		return c.setMode(mode)
	})
}

func (o containerOps) setRounds(ctx context.Context, locate containerLocator, rounds int) error {
	return o.update(ctx, "set_rounds", locate, func(c *container, _ *models.TournamentState) error {
		return c.setRounds(rounds, o.state.rng)
	})
}

func (o containerOps) generate(ctx context.Context, locate containerLocator) error {
	return o.update(ctx, "generate_matches", locate, func(c *container, _ *models.TournamentState) error {
		return c.generate(o.state.rng)
	})
}

func (o containerOps) addManualMatch(ctx context.Context, locate containerLocator, input ManualMatchInput) (*models.Match, error) {
	var created *models.Match
	err := o.update(ctx, "add_match", locate, func(c *container, _ *models.TournamentState) error {
		m, err := c.addManualMatch(input.TeamAID, input.TeamBID)
		if err != nil {
			return err
		}
		created = &m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (o containerOps) removeManualMatch(ctx context.Context, locate containerLocator, matchID string) error {
	return o.update(ctx, "remove_match", locate, func(c *container, _ *models.TournamentState) error {
		return c.removeManualMatch(matchID)
	})
}

func (o containerOps) clearMatches(ctx context.Context, locate containerLocator) error {
	return o.update(ctx, "clear_matches", locate, func(c *container, _ *models.TournamentState) error {
		c.clearMatches()
		return nil
	})
}

func (o containerOps) recordScore(ctx context.Context, locate containerLocator, matchID string, input ScoreInput) error {
	if input.ScoreA == nil || input.ScoreB == nil {
		return fmt.Errorf("%w: both scores are required", ErrValidationFailed)
	}
	return o.update(ctx, "record_score", locate, func(c *container, _ *models.TournamentState) error {
		return c.recordScore(matchID, *input.ScoreA, *input.ScoreB)
	})
}

func (o containerOps) addZone(ctx context.Context, locate containerLocator, input ZoneInput) (*models.ClassificationZone, error) {
	var created *models.ClassificationZone
	err := o.update(ctx, "add_zone", locate, func(c *container, _ *models.TournamentState) error {
		z, err := c.addZone(input)
		if err != nil {
			return err
		}
		created = &z
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (o containerOps) removeZone(ctx context.Context, locate containerLocator, zoneID string) error {
	return o.update(ctx, "remove_zone", locate, func(c *container, _ *models.TournamentState) error {
		return c.removeZone(zoneID)
	})
}

func (o containerOps) standings(locate containerLocator) ([]models.Standing, error) {
	var table []models.Standing
	err := o.state.view(func(s *models.TournamentState) error {
		c, err := locate(s)
		if err != nil {
			return err
		}
		table = c.standings(o.state.nameResolver(s))
		return nil
	})
	return table, err
}
