package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Dosada05/tournament-manager/models"
	"github.com/Dosada05/tournament-manager/notify"
)

type ArchiveService interface {
	ListArchivedWinners(ctx context.Context) ([]models.ArchivedWinner, error)
	ArchiveChampion(ctx context.Context, input ArchiveChampionInput) (*models.ArchivedWinner, error)
	DeleteArchivedWinner(ctx context.Context, id string) error
}

type ArchiveChampionInput struct {
	TournamentName string `json:"tournamentName" validate:"required"`
}

type archiveService struct {
	state *StateManager
	now   func() time.Time
}

func NewArchiveService(state *StateManager) ArchiveService {
	return &archiveService{state: state, now: time.Now}
}

// ListArchivedWinners returns the history newest first.
func (s *archiveService) ListArchivedWinners(ctx context.Context) ([]models.ArchivedWinner, error) {
	winners := s.state.Snapshot().ArchivedWinners
	slices.SortStableFunc(winners, func(a, b models.ArchivedWinner) int {
		return b.DateArchived.Compare(a.DateArchived)
	})
	return winners, nil
}

// ArchiveChampion records the current knockout champion under an edition name.
func (s *archiveService) ArchiveChampion(ctx context.Context, input ArchiveChampionInput) (*models.ArchivedWinner, error) {
	name := strings.TrimSpace(input.TournamentName)
	if name == "" {
		return nil, ErrNameRequired
	}

	var created *models.ArchivedWinner
	err := s.state.mutate(ctx, "history.archive", notify.RoomHistory, func(st *models.TournamentState) error {
		if st.KnockoutStage == nil {
			return ErrKnockoutNotFound
		}
		if st.KnockoutStage.ChampionID == "" {
			return ErrNoChampion
		}
		champion := st.KnockoutStage.ChampionID
		w := models.ArchivedWinner{
			ID:               uuid.NewString(),
			TournamentName:   name,
			ChampionTeamID:   champion,
			ChampionTeamName: s.state.teamName(st, models.Known(champion)),
			DateArchived:     s.now().UTC(),
		}
		st.ArchivedWinners = append(st.ArchivedWinners, w)
		created = &w
		return nil
	})
	if err != nil {
		return nil, err
	}
	if created != nil {
		w := *created
		s.state.announce(ctx, func(ctx context.Context, a ChampionAnnouncer) error {
			return a.AnnounceArchived(ctx, w.TournamentName, w.ChampionTeamName)
		})
	}
	return created, nil
}

func (s *archiveService) DeleteArchivedWinner(ctx context.Context, id string) error {
	return s.state.mutate(ctx, "history.delete", notify.RoomHistory, func(st *models.TournamentState) error {
		i := slices.IndexFunc(st.ArchivedWinners, func(w models.ArchivedWinner) bool { return w.ID == id })
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrArchiveNotFound, id)
		}
		st.ArchivedWinners = slices.Delete(st.ArchivedWinners, i, i+1)
		return nil
	})
}
