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

type GroupService interface {
	ListGroups(ctx context.Context) ([]models.Group, error)
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	CreateGroup(ctx context.Context, input CreateGroupInput) (*models.Group, error)
	DeleteGroup(ctx context.Context, groupID string) error
	AddTeam(ctx context.Context, groupID, teamID string) error
	RemoveTeam(ctx context.Context, groupID, teamID string) error
	SetMode(ctx context.Context, groupID string, mode models.MatchGenerationMode) error
	SetRounds(ctx context.Context, groupID string, rounds int) error
	GenerateMatches(ctx context.Context, groupID string) error
	AddManualMatch(ctx context.Context, groupID string, input ManualMatchInput) (*models.Match, error)
	RemoveManualMatch(ctx context.Context, groupID, matchID string) error
	ClearMatches(ctx context.Context, groupID string) error
	RecordScore(ctx context.Context, groupID, matchID string, input ScoreInput) error
	AddZone(ctx context.Context, groupID string, input ZoneInput) (*models.ClassificationZone, error)
	RemoveZone(ctx context.Context, groupID, zoneID string) error
	Standings(ctx context.Context, groupID string) ([]models.Standing, error)
	DistributeTeams(ctx context.Context, input DistributeInput) ([]models.Group, error)
}

type CreateGroupInput struct {
	Name    string                     `json:"name" validate:"required"`
	TeamIDs []string                   `json:"teamIds"`
	Mode    models.MatchGenerationMode `json:"matchGenerationMode" validate:"omitempty,oneof=automatic manual"`
	Rounds  int                        `json:"rounds" validate:"omitempty,oneof=1 2"`
}

// DistributeInput mirrors the random distribution dialog. An empty TeamIDs
// list means every registered team.
type DistributeInput struct {
	TeamIDs         []string `json:"teamIds"`
	NumGroups       int      `json:"numGroups" validate:"required,min=1"`
	TeamsPerGroup   int      `json:"teamsPerGroup" validate:"min=0"`
	NamePrefix      string   `json:"groupNamePrefix"`
	GenerateMatches bool     `json:"autoGenerateMatches"`
	Rounds          int      `json:"roundsPerGroup" validate:"omitempty,oneof=1 2"`
}

type groupService struct {
	state *StateManager
	ops   containerOps
}

func NewGroupService(state *StateManager) GroupService {
	return &groupService{
		state: state,
		ops:   containerOps{state: state, scope: "group", room: notify.RoomGroups},
	}
}

func (s *groupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	return s.state.Snapshot().Groups, nil
}

func (s *groupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	snapshot := s.state.Snapshot()
	i := snapshot.GroupIndex(groupID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
	}
	return &snapshot.Groups[i], nil
}

func (s *groupService) CreateGroup(ctx context.Context, input CreateGroupInput) (*models.Group, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	mode := input.Mode
	if mode == "" {
		mode = models.ModeAutomatic
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	rounds := input.Rounds
	if rounds == 0 {
		rounds = 1
	}
	if !models.ValidRounds(rounds) {
		return nil, fmt.Errorf("%w: %d", brackets.ErrInvalidRounds, rounds)
	}

	var created *models.Group
	err := s.state.mutate(ctx, "group.create", notify.RoomGroups, func(st *models.TournamentState) error {
		roster, err := uniqueKnownTeams(st, input.TeamIDs)
		if err != nil {
			return err
		}
		g := models.Group{
			ID:                  uuid.NewString(),
			Name:                name,
			TeamIDs:             roster,
			Matches:             []models.Match{},
			ClassificationZones: []models.ClassificationZone{},
			MatchGenerationMode: mode,
			Rounds:              rounds,
		}
		st.Groups = append(st.Groups, g)
		created = &g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *groupService) DeleteGroup(ctx context.Context, groupID string) error {
	return s.state.mutate(ctx, "group.delete", notify.RoomGroups, func(st *models.TournamentState) error {
		i := st.GroupIndex(groupID)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
		}
		st.Groups = append(st.Groups[:i], st.Groups[i+1:]...)
		return nil
	})
}

func (s *groupService) AddTeam(ctx context.Context, groupID, teamID string) error {
	return s.ops.addTeam(ctx, groupLocator(groupID), teamID)
}

func (s *groupService) RemoveTeam(ctx context.Context, groupID, teamID string) error {
	return s.ops.removeTeam(ctx, groupLocator(groupID), teamID)
}

func (s *groupService) SetMode(ctx context.Context, groupID string, mode models.MatchGenerationMode) error {
	return s.ops.setMode(ctx, groupLocator(groupID), mode)
}

func (s *groupService) SetRounds(ctx context.Context, groupID string, rounds int) error {
	return s.ops.setRounds(ctx, groupLocator(groupID), rounds)
}

func (s *groupService) GenerateMatches(ctx context.Context, groupID string) error {
	return s.ops.generate(ctx, groupLocator(groupID))
}

func (s *groupService) AddManualMatch(ctx context.Context, groupID string, input ManualMatchInput) (*models.Match, error) {
	return s.ops.addManualMatch(ctx, groupLocator(groupID), input)
}

func (s *groupService) RemoveManualMatch(ctx context.Context, groupID, matchID string) error {
	return s.ops.removeManualMatch(ctx, groupLocator(groupID), matchID)
}

func (s *groupService) ClearMatches(ctx context.Context, groupID string) error {
	return s.ops.clearMatches(ctx, groupLocator(groupID))
}

func (s *groupService) RecordScore(ctx context.Context, groupID, matchID string, input ScoreInput) error {
	return s.ops.recordScore(ctx, groupLocator(groupID), matchID, input)
}

func (s *groupService) AddZone(ctx context.Context, groupID string, input ZoneInput) (*models.ClassificationZone, error) {
	return s.ops.addZone(ctx, groupLocator(groupID), input)
}

func (s *groupService) RemoveZone(ctx context.Context, groupID, zoneID string) error {
	return s.ops.removeZone(ctx, groupLocator(groupID), zoneID)
}

func (s *groupService) Standings(ctx context.Context, groupID string) ([]models.Standing, error) {
	return s.ops.standings(groupLocator(groupID))
}

// DistributeTeams replaces every existing group with a fresh random split of
// the pool.
func (s *groupService) DistributeTeams(ctx context.Context, input DistributeInput) ([]models.Group, error) {
	prefix := input.NamePrefix
	if strings.TrimSpace(prefix) == "" {
		prefix = brackets.DefaultGroupPrefix
	}

	var created []models.Group
	err := s.state.mutate(ctx, "group.distribute", notify.RoomGroups, func(st *models.TournamentState) error {
		pool := input.TeamIDs
		if len(pool) == 0 {
			pool = make([]string, 0, len(st.Teams))
			for _, t := range st.Teams {
				pool = append(pool, t.ID)
			}
		}
		pool, err := uniqueKnownTeams(st, pool)
		if err != nil {
			return err
		}

		planned, err := brackets.PlanDistribution(pool, brackets.DistributionConfig{
			NumGroups:       input.NumGroups,
			TeamsPerGroup:   input.TeamsPerGroup,
			NamePrefix:      prefix,
			GenerateMatches: input.GenerateMatches,
			Rounds:          input.Rounds,
		}, s.state.rng)
		if err != nil {
			return err
		}

		rounds := input.Rounds
		if !models.ValidRounds(rounds) {
			rounds = 1
		}
		groups := make([]models.Group, 0, len(planned))
		for _, p := range planned {
			matches := p.Matches
			if matches == nil {
				matches = []models.Match{}
			}
			groups = append(groups, models.Group{
				ID:                  uuid.NewString(),
				Name:                p.Name,
				TeamIDs:             p.TeamIDs,
				Matches:             matches,
				ClassificationZones: []models.ClassificationZone{},
				MatchGenerationMode: models.ModeAutomatic,
				Rounds:              rounds,
			})
		}
		st.Groups = groups
		created = groups
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// uniqueKnownTeams checks that every id refers to a registered team and
// appears once.
func uniqueKnownTeams(st *models.TournamentState, ids []string) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !st.HasTeam(id) {
			return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, id)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTeam, id)
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
