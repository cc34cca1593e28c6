package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/tournament-manager/brackets"
	"github.com/Dosada05/tournament-manager/models"
	"github.com/Dosada05/tournament-manager/notify"
	"github.com/Dosada05/tournament-manager/repositories"
)

const announceTimeout = 10 * time.Second

// Notifier receives an event after every accepted mutation.
type Notifier interface {
	Publish(room string, eventType string, payload any)
}

// ChampionAnnouncer posts results outside the application.
type ChampionAnnouncer interface {
	AnnounceChampion(ctx context.Context, stageName, championName string) error
	AnnounceArchived(ctx context.Context, tournamentName, championName string) error
}

type StateManagerOptions struct {
	Logger    *slog.Logger
	Notifier  Notifier
	Announcer ChampionAnnouncer
	Locale    brackets.Locale
	Shuffler  brackets.Shuffler
}

// StateManager owns the in-memory tournament document. Reads work on the
// current snapshot; a mutation runs on a deep copy which replaces the snapshot
// only after it has been saved, so a rejected or failed operation leaves the
// state untouched.
//
// The lock only serializes this process's HTTP goroutines. Several instances
// sharing one store still overwrite each other (last write wins).
type StateManager struct {
	mu        sync.RWMutex
	state     *models.TournamentState
	repo      repositories.StateRepository
	logger    *slog.Logger
	notifier  Notifier
	announcer ChampionAnnouncer
	locale    brackets.Locale
	rng       brackets.Shuffler
	announces sync.WaitGroup
}

func NewStateManager(ctx context.Context, repo repositories.StateRepository, opts StateManagerOptions) (*StateManager, error) {
	state, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament state: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Locale.RoundNames == nil {
		opts.Locale = brackets.LocaleEnglish
	}
	if opts.Shuffler == nil {
		opts.Shuffler = brackets.DefaultShuffler
	}
	return &StateManager{
		state:     state,
		repo:      repo,
		logger:    opts.Logger,
		notifier:  opts.Notifier,
		announcer: opts.Announcer,
		locale:    opts.Locale,
		rng:       opts.Shuffler,
	}, nil
}

func (m *StateManager) Locale() brackets.Locale { return m.locale }

// Snapshot returns a deep copy of the current state.
func (m *StateManager) Snapshot() *models.TournamentState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Clone()
}

// view runs fn against the live state under the read lock. fn must not keep
// references into the state or modify it.
func (m *StateManager) view(fn func(s *models.TournamentState) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fn(m.state)
}

// mutate applies fn to a copy of the state and commits it. Callers without the
// privilege capability are ignored without an error.
func (m *StateManager) mutate(ctx context.Context, op string, room string, fn func(s *models.TournamentState) error) error {
	if !IsPrivileged(ctx) {
		m.logger.Debug("ignoring mutation from unprivileged caller", "operation", op)
		return nil
	}

	m.mu.Lock()
	previousChampion := championOf(m.state)
	draft := m.state.Clone()
	if err := fn(draft); err != nil {
		m.mu.Unlock()
		m.logger.Debug("mutation rejected", "operation", op, "error", err)
		return err
	}
	if err := m.repo.Save(ctx, draft); err != nil {
		m.mu.Unlock()
		m.logger.Error("failed to persist tournament state", "operation", op, "error", err)
		return fmt.Errorf("failed to save tournament state: %w", err)
	}
	m.state = draft
	champion := championOf(draft)
	var stageName, championName string
	if champion != "" && champion != previousChampion {
		stageName = draft.KnockoutStage.Name
		championName = m.teamName(draft, models.Known(champion))
	}
	m.mu.Unlock()

	m.logger.Info("tournament state updated", "operation", op)
	m.publish(room, notify.EventStateUpdated, map[string]string{"operation": op})
	if championName != "" {
		m.logger.Info("champion decided", "stage", stageName, "champion", championName)
		m.publish(notify.RoomKnockout, notify.EventChampionDecided, map[string]string{
			"championId":   champion,
			"championName": championName,
		})
		m.announce(ctx, func(ctx context.Context, a ChampionAnnouncer) error {
			return a.AnnounceChampion(ctx, stageName, championName)
		})
	}
	return nil
}

func (m *StateManager) publish(room, eventType string, payload any) {
	if m.notifier != nil {
		m.notifier.Publish(room, eventType, payload)
	}
}

// announce runs outside the request; its failure never affects the mutation.
func (m *StateManager) announce(ctx context.Context, fn func(context.Context, ChampionAnnouncer) error) {
	if m.announcer == nil {
		return
	}
	m.announces.Add(1)
	go func() {
		defer m.announces.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), announceTimeout)
		defer cancel()
		if err := fn(ctx, m.announcer); err != nil {
			m.logger.Warn("announcement failed", "error", err)
		}
	}()
}

// Wait blocks until in-flight announcements finish.
func (m *StateManager) Wait() {
	m.announces.Wait()
}

func championOf(s *models.TournamentState) string {
	if s.KnockoutStage == nil {
		return ""
	}
	return s.KnockoutStage.ChampionID
}

// teamName resolves a ref to a display name; sentinels and unknown ids fall
// back to fixed names rather than failing.
func (m *StateManager) teamName(s *models.TournamentState, ref models.TeamRef) string {
	if name, ok := m.locale.SentinelName(ref); ok {
		return name
	}
	if t, ok := s.FindTeam(ref.ID); ok {
		return t.Name
	}
	return m.locale.RemovedName
}

func (m *StateManager) nameResolver(s *models.TournamentState) func(string) string {
	names := s.TeamNames()
	return func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return id
	}
}
