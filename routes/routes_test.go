package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-manager/handlers"
	"github.com/Dosada05/tournament-manager/models"
	"github.com/Dosada05/tournament-manager/notify"
	"github.com/Dosada05/tournament-manager/repositories"
	"github.com/Dosada05/tournament-manager/services"
)

const adminPassword = "open-sesame"

type testAPI struct {
	t      *testing.T
	server *httptest.Server
	token  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	hub := notify.NewHub(logger)
	hubCtx, stopHub := context.WithCancel(ctx)
	go func() { _ = hub.Run(hubCtx) }()
	t.Cleanup(stopHub)

	repo := repositories.NewStateRepository(repositories.NewMemoryBlobStore(), "")
	state, err := services.NewStateManager(ctx, repo, services.StateManagerOptions{Logger: logger, Notifier: hub})
	require.NoError(t, err)

	auth, err := services.NewAuthService(adminPassword, "test-secret")
	require.NoError(t, err)
	teams, err := services.NewTeamService(state)
	require.NoError(t, err)

	router := chi.NewRouter()
	SetupRoutes(router, Handlers{
		Auth:       handlers.NewAuthHandler(auth),
		Team:       handlers.NewTeamHandler(teams),
		Group:      handlers.NewGroupHandler(services.NewGroupService(state)),
		League:     handlers.NewLeagueHandler(services.NewLeagueService(state)),
		Knockout:   handlers.NewKnockoutHandler(services.NewKnockoutService(state)),
		Tournament: handlers.NewTournamentHandler(services.NewTournamentService(state), services.NewArchiveService(state)),
		Export:     handlers.NewExportHandler(services.NewExportService(nil, logger)),
		WebSocket:  handlers.NewWebSocketHandler(hub, logger),
	}, Options{AllowedOrigins: []string{"*"}, Tokens: auth})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &testAPI{t: t, server: server}
}

func (a *testAPI) login() {
	a.t.Helper()
	var out struct {
		Token string `json:"token"`
	}
	status := a.call(http.MethodPost, "/api/auth/login", map[string]string{"password": adminPassword}, &out)
	require.Equal(a.t, http.StatusOK, status)
	require.NotEmpty(a.t, out.Token)
	a.token = out.Token
}

func (a *testAPI) call(method, path string, body any, out any) int {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.server.Client().Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		require.NoError(a.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestAdminRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	assert.Equal(t, http.StatusUnauthorized, api.call(http.MethodPost, "/api/teams", map[string]string{"name": "Lions"}, nil))
	assert.Equal(t, http.StatusOK, api.call(http.MethodGet, "/api/teams", nil, nil))

	assert.Equal(t, http.StatusUnauthorized,
		api.call(http.MethodPost, "/api/auth/login", map[string]string{"password": "wrong"}, nil))

	api.token = "not-a-jwt"
	assert.Equal(t, http.StatusUnauthorized, api.call(http.MethodGet, "/api/teams", nil, nil))

	api.login()
	assert.Equal(t, http.StatusCreated, api.call(http.MethodPost, "/api/teams", map[string]string{"name": "Lions"}, nil))
}

func TestValidationAndNotFound(t *testing.T) {
	api := newTestAPI(t)
	api.login()

	assert.Equal(t, http.StatusUnprocessableEntity, api.call(http.MethodPost, "/api/groups", map[string]string{}, nil))
	assert.Equal(t, http.StatusUnprocessableEntity,
		api.call(http.MethodPut, "/api/knockout", map[string]any{"name": "Cup", "numTeams": 1, "teamIds": []string{"x"}}, nil))
	assert.Equal(t, http.StatusNotFound, api.call(http.MethodGet, "/api/groups/missing", nil, nil))
	assert.Equal(t, http.StatusNotFound, api.call(http.MethodGet, "/api/league", nil, nil))
	assert.Equal(t, http.StatusNotFound, api.call(http.MethodGet, "/api/nowhere", nil, nil))
	assert.Equal(t, http.StatusServiceUnavailable, api.call(http.MethodPost, "/api/exports", nil, nil))
}

func TestKnockoutToArchiveFlow(t *testing.T) {
	api := newTestAPI(t)
	api.login()

	var created struct {
		Teams []models.Team `json:"teams"`
	}
	require.Equal(t, http.StatusCreated,
		api.call(http.MethodPost, "/api/teams/bulk", map[string]string{"names": "Lions, Bears, Tigers, Wolves"}, &created))
	require.Len(t, created.Teams, 4)

	ids := make([]string, len(created.Teams))
	for i, team := range created.Teams {
		ids[i] = team.ID
	}

	var setup struct {
		Stage models.KnockoutStage `json:"knockoutStage"`
	}
	require.Equal(t, http.StatusCreated, api.call(http.MethodPut, "/api/knockout",
		map[string]any{"name": "Cup", "numTeams": 4, "teamIds": ids}, &setup))
	require.Len(t, setup.Stage.Rounds, 1)

	stage := setup.Stage
	for len(stage.Rounds) > 0 && stage.ChampionID == "" {
		round := stage.Rounds[len(stage.Rounds)-1]
		for _, m := range round.Matches {
			var out struct {
				Stage models.KnockoutStage `json:"knockoutStage"`
			}
			path := "/api/knockout/rounds/" + round.ID + "/matches/" + m.ID + "/score"
			require.Equal(t, http.StatusOK, api.call(http.MethodPut, path, map[string]int{"scoreA": 2, "scoreB": 1}, &out))
			stage = out.Stage
		}
	}
	require.Len(t, stage.Rounds, 2)
	assert.Equal(t, ids[0], stage.ChampionID)

	var archived struct {
		Winner models.ArchivedWinner `json:"archivedWinner"`
	}
	require.Equal(t, http.StatusCreated,
		api.call(http.MethodPost, "/api/history", map[string]string{"tournamentName": "Spring Cup"}, &archived))
	assert.Equal(t, "Lions", archived.Winner.ChampionTeamName)

	var history struct {
		Winners []models.ArchivedWinner `json:"archivedWinners"`
	}
	require.Equal(t, http.StatusOK, api.call(http.MethodGet, "/api/history", nil, &history))
	assert.Len(t, history.Winners, 1)

	require.Equal(t, http.StatusNoContent, api.call(http.MethodPost, "/api/reset", nil, nil))
	var overview services.Overview
	require.Equal(t, http.StatusOK, api.call(http.MethodGet, "/api/overview", nil, &overview))
	assert.Empty(t, overview.Teams)
	assert.Nil(t, overview.KnockoutStage)
	assert.Len(t, overview.ArchivedWinners, 1)
}

func TestGroupRoutes(t *testing.T) {
	api := newTestAPI(t)
	api.login()

	var created struct {
		Teams []models.Team `json:"teams"`
	}
	require.Equal(t, http.StatusCreated,
		api.call(http.MethodPost, "/api/teams/bulk", map[string]string{"names": "A, B, C"}, &created))

	var group struct {
		Group models.Group `json:"group"`
	}
	require.Equal(t, http.StatusCreated, api.call(http.MethodPost, "/api/groups",
		map[string]any{"name": "Group A", "teamIds": []string{created.Teams[0].ID, created.Teams[1].ID}}, &group))
	groupPath := "/api/groups/" + group.Group.ID

	require.Equal(t, http.StatusNoContent,
		api.call(http.MethodPost, groupPath+"/teams", map[string]string{"teamId": created.Teams[2].ID}, nil))
	assert.Equal(t, http.StatusConflict,
		api.call(http.MethodPost, groupPath+"/teams", map[string]string{"teamId": created.Teams[2].ID}, nil))
	require.Equal(t, http.StatusNoContent, api.call(http.MethodPost, groupPath+"/matches/generate", nil, nil))

	var fetched struct {
		Group models.Group `json:"group"`
	}
	require.Equal(t, http.StatusOK, api.call(http.MethodGet, groupPath, nil, &fetched))
	require.Len(t, fetched.Group.Matches, 3)

	match := fetched.Group.Matches[0]
	require.Equal(t, http.StatusNoContent, api.call(http.MethodPut, groupPath+"/matches/"+match.ID+"/score",
		map[string]int{"scoreA": 1, "scoreB": 1}, nil))
	assert.Equal(t, http.StatusUnprocessableEntity, api.call(http.MethodPut, groupPath+"/matches/"+match.ID+"/score",
		map[string]int{"scoreA": -1, "scoreB": 1}, nil))

	require.Equal(t, http.StatusCreated, api.call(http.MethodPost, groupPath+"/zones",
		map[string]any{"name": "Playoff", "rankMin": 1, "rankMax": 2}, nil))

	var table struct {
		Standings []models.Standing `json:"standings"`
	}
	require.Equal(t, http.StatusOK, api.call(http.MethodGet, groupPath+"/standings", nil, &table))
	require.Len(t, table.Standings, 3)
	assert.Equal(t, "Playoff", table.Standings[0].ClassificationZoneName)
	assert.Equal(t, "Playoff", table.Standings[1].ClassificationZoneName)
	assert.Empty(t, table.Standings[2].ClassificationZoneName)

	assert.Equal(t, http.StatusUnprocessableEntity,
		api.call(http.MethodPost, groupPath+"/matches", map[string]string{"teamAId": "x", "teamBId": "y"}, nil))
	require.Equal(t, http.StatusNoContent, api.call(http.MethodPut, groupPath+"/mode", map[string]string{"mode": "manual"}, nil))
	require.Equal(t, http.StatusCreated, api.call(http.MethodPost, groupPath+"/matches",
		map[string]string{"teamAId": created.Teams[0].ID, "teamBId": created.Teams[1].ID}, nil))

	require.Equal(t, http.StatusNoContent, api.call(http.MethodDelete, groupPath, nil, nil))
	assert.Equal(t, http.StatusNotFound, api.call(http.MethodGet, groupPath, nil, nil))
}

func TestSwaggerDocServed(t *testing.T) {
	api := newTestAPI(t)
	assert.Equal(t, http.StatusOK, api.call(http.MethodGet, "/swagger/doc.json", nil, nil))
}
