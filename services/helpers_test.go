package services

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-manager/brackets"
	"github.com/Dosada05/tournament-manager/models"
	"github.com/Dosada05/tournament-manager/repositories"
)

var admin = WithPrivilege(context.Background(), true)

type publishedEvent struct {
	Room    string
	Type    string
	Payload any
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (n *recordingNotifier) Publish(room, eventType string, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, publishedEvent{Room: room, Type: eventType, Payload: payload})
}

func (n *recordingNotifier) ofType(eventType string) []publishedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []publishedEvent
	for _, e := range n.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

type fakeAnnouncer struct {
	mu        sync.Mutex
	champions []string
	archived  []string
}

func (a *fakeAnnouncer) AnnounceChampion(_ context.Context, stageName, championName string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.champions = append(a.champions, stageName+": "+championName)
	return nil
}

func (a *fakeAnnouncer) AnnounceArchived(_ context.Context, tournamentName, championName string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.archived = append(a.archived, tournamentName+": "+championName)
	return errors.New("discord is down")
}

// flakyStore fails writes while failPut is set.
type flakyStore struct {
	repositories.BlobStore
	failPut bool
}

func (s *flakyStore) Put(ctx context.Context, key string, value []byte) error {
	if s.failPut {
		return errors.New("disk full")
	}
	return s.BlobStore.Put(ctx, key, value)
}

type fixture struct {
	state     *StateManager
	store     *flakyStore
	notifier  *recordingNotifier
	announcer *fakeAnnouncer

	teams      TeamService
	groups     GroupService
	league     LeagueService
	knockout   KnockoutService
	archive    ArchiveService
	tournament TournamentService
}

func newFixture(t *testing.T, locale brackets.Locale) *fixture {
	t.Helper()
	store := &flakyStore{BlobStore: repositories.NewMemoryBlobStore()}
	return newFixtureWithStore(t, store, locale)
}

func newFixtureWithStore(t *testing.T, store *flakyStore, locale brackets.Locale) *fixture {
	t.Helper()
	notifier := &recordingNotifier{}
	announcer := &fakeAnnouncer{}
	state, err := NewStateManager(context.Background(), repositories.NewStateRepository(store, repositories.DefaultStateKey), StateManagerOptions{
		Notifier:  notifier,
		Announcer: announcer,
		Locale:    locale,
		Shuffler:  rand.New(rand.NewSource(7)),
	})
	require.NoError(t, err)

	teams, err := NewTeamService(state)
	require.NoError(t, err)

	return &fixture{
		state:      state,
		store:      store,
		notifier:   notifier,
		announcer:  announcer,
		teams:      teams,
		groups:     NewGroupService(state),
		league:     NewLeagueService(state),
		knockout:   NewKnockoutService(state),
		archive:    NewArchiveService(state),
		tournament: NewTournamentService(state),
	}
}

// addTeams registers the names and returns their ids in order.
func (f *fixture) addTeams(t *testing.T, names ...string) []string {
	t.Helper()
	ids := make([]string, len(names))
	for i, name := range names {
		team, err := f.teams.CreateTeam(admin, CreateTeamInput{Name: name})
		require.NoError(t, err)
		require.NotNil(t, team)
		ids[i] = team.ID
	}
	return ids
}

func score(a, b int) ScoreInput {
	return ScoreInput{ScoreA: &a, ScoreB: &b}
}

// scoreFor builds a result in which winner beats the other side of m.
func scoreFor(m models.Match, winner string) ScoreInput {
	if m.TeamA.Is(winner) {
		return score(2, 1)
	}
	return score(1, 2)
}
