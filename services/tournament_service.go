package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/tournament-manager/models"
	"github.com/Dosada05/tournament-manager/notify"
)

type TournamentService interface {
	Overview(ctx context.Context) (*Overview, error)
	ResetTournament(ctx context.Context) error
}

type GroupOverview struct {
	models.Group
	Standings []models.Standing `json:"standings"`
}

type LeagueOverview struct {
	models.League
	Standings []models.Standing `json:"standings"`
}

// Overview is the read model behind the public dashboard.
type Overview struct {
	Teams           []models.Team           `json:"teams"`
	Groups          []GroupOverview         `json:"groups"`
	League          *LeagueOverview         `json:"league"`
	KnockoutStage   *models.KnockoutStage   `json:"knockoutStage"`
	ArchivedWinners []models.ArchivedWinner `json:"archivedWinners"`
}

type tournamentService struct {
	state *StateManager
}

func NewTournamentService(state *StateManager) TournamentService {
	return &tournamentService{state: state}
}

func (s *tournamentService) Overview(ctx context.Context) (*Overview, error) {
	snapshot := s.state.Snapshot()
	nameOf := s.state.nameResolver(snapshot)

	out := &Overview{
		Teams:           snapshot.Teams,
		Groups:          make([]GroupOverview, len(snapshot.Groups)),
		KnockoutStage:   snapshot.KnockoutStage,
		ArchivedWinners: snapshot.ArchivedWinners,
	}

	// Каждая таблица считается независимо, снимок только читается.
	g, _ := errgroup.WithContext(ctx)
	for i := range snapshot.Groups {
		g.Go(func() error {
			c, err := groupLocator(snapshot.Groups[i].ID)(snapshot)
			if err != nil {
				return err
			}
			out.Groups[i] = GroupOverview{Group: snapshot.Groups[i], Standings: c.standings(nameOf)}
			return nil
		})
	}
	if snapshot.League != nil {
		g.Go(func() error {
			c, err := leagueLocator(snapshot)
			if err != nil {
				return err
			}
			out.League = &LeagueOverview{League: *snapshot.League, Standings: c.standings(nameOf)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ResetTournament clears teams and every competition. The champion history
// is kept.
func (s *tournamentService) ResetTournament(ctx context.Context) error {
	return s.state.mutate(ctx, "tournament.reset", notify.RoomAll, func(st *models.TournamentState) error {
		fresh := models.NewTournamentState()
		fresh.ArchivedWinners = st.ArchivedWinners
		*st = *fresh
		return nil
	})
}
