package services

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/go-andiamo/splitter"
	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/Dosada05/tournament-manager/brackets"
	"github.com/Dosada05/tournament-manager/models"
	"github.com/Dosada05/tournament-manager/notify"
)

type TeamService interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	GetTeam(ctx context.Context, teamID string) (*models.Team, error)
	SearchTeams(ctx context.Context, query string) ([]models.Team, error)
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	CreateTeamsBulk(ctx context.Context, input BulkTeamsInput) ([]models.Team, error)
	RenameTeam(ctx context.Context, teamID string, input CreateTeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, teamID string) error
}

type CreateTeamInput struct {
	Name string `json:"name" validate:"required"`
}

// BulkTeamsInput holds comma separated names. Names containing commas can be
// wrapped in double quotes: `Lions, "Smith, Jones & Co", Tigers`.
type BulkTeamsInput struct {
	Names string `json:"names" validate:"required"`
}

type teamService struct {
	state *StateManager
	split splitter.Splitter
}

func NewTeamService(state *StateManager) (TeamService, error) {
	commaSplitter, err := splitter.NewSplitter(',', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return nil, fmt.Errorf("failed to build team name splitter: %w", err)
	}
	return &teamService{state: state, split: commaSplitter}, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	return s.state.Snapshot().Teams, nil
}

// GetTeam resolves the reserved bracket ids to display names instead of
// reporting them as missing.
func (s *teamService) GetTeam(ctx context.Context, teamID string) (*models.Team, error) {
	var team *models.Team
	err := s.state.view(func(st *models.TournamentState) error {
		ref := models.ParseTeamRef(teamID)
		if name, ok := s.state.locale.SentinelName(ref); ok {
			team = &models.Team{ID: ref.String(), Name: name}
			return nil
		}
		t, ok := st.FindTeam(teamID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
		}
		team = &t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// SearchTeams ranks teams by fuzzy, case-insensitive name match.
func (s *teamService) SearchTeams(ctx context.Context, query string) ([]models.Team, error) {
	query = strings.TrimSpace(query)
	teams := s.state.Snapshot().Teams
	if query == "" {
		return teams, nil
	}

	names := make([]string, len(teams))
	for i, t := range teams {
		names[i] = t.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	found := make([]models.Team, 0, len(ranks))
	for _, r := range ranks {
		found = append(found, teams[r.OriginalIndex])
	}
	return found, nil
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	var created *models.Team
	err := s.state.mutate(ctx, "team.create", notify.RoomTeams, func(st *models.TournamentState) error {
		t, err := addTeam(st, name)
		if err != nil {
			return err
		}
		created = &t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CreateTeamsBulk adds all names or none of them.
func (s *teamService) CreateTeamsBulk(ctx context.Context, input BulkTeamsInput) ([]models.Team, error) {
	parts, err := s.split.Split(input.Names)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.Trim(strings.TrimSpace(p), "\"“”"))
		if p != "" {
			names = append(names, p)
		}
	}
	if len(names) == 0 {
		return nil, ErrNameRequired
	}

	var created []models.Team
	err = s.state.mutate(ctx, "team.create_bulk", notify.RoomTeams, func(st *models.TournamentState) error {
		created = make([]models.Team, 0, len(names))
		for _, name := range names {
			t, err := addTeam(st, name)
			if err != nil {
				return err
			}
			created = append(created, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *teamService) RenameTeam(ctx context.Context, teamID string, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	var renamed *models.Team
	err := s.state.mutate(ctx, "team.rename", notify.RoomTeams, func(st *models.TournamentState) error {
		i := slices.IndexFunc(st.Teams, func(t models.Team) bool { return t.ID == teamID })
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
		}
		if other, taken := findTeamByName(st, name); taken && other.ID != teamID {
			return fmt.Errorf("%w: %s", ErrTeamNameConflict, name)
		}
		st.Teams[i].Name = name
		t := st.Teams[i]
		renamed = &t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return renamed, nil
}

// DeleteTeam removes the team from the registry and from everything that
// references it: group and league rosters lose the team and its matches, and
// knockout sides become the removed-team placeholder.
func (s *teamService) DeleteTeam(ctx context.Context, teamID string) error {
	return s.state.mutate(ctx, "team.delete", notify.RoomAll, func(st *models.TournamentState) error {
		i := slices.IndexFunc(st.Teams, func(t models.Team) bool { return t.ID == teamID })
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
		}
		st.Teams = slices.Delete(st.Teams, i, i+1)

		for g := range st.Groups {
			groupContainer(&st.Groups[g]).purgeTeam(teamID)
		}
		if c, err := leagueLocator(st); err == nil {
			c.purgeTeam(teamID)
		}
		if st.KnockoutStage != nil {
			brackets.RemoveTeamFromStage(st.KnockoutStage, teamID)
		}
		return nil
	})
}

func addTeam(st *models.TournamentState, name string) (models.Team, error) {
	if _, taken := findTeamByName(st, name); taken {
		return models.Team{}, fmt.Errorf("%w: %s", ErrTeamNameConflict, name)
	}
	t := models.Team{ID: uuid.NewString(), Name: name}
	st.Teams = append(st.Teams, t)
	return t, nil
}

func findTeamByName(st *models.TournamentState, name string) (models.Team, bool) {
	for _, t := range st.Teams {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return models.Team{}, false
}
