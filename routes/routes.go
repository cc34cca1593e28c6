package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/tournament-manager/docs"
	"github.com/Dosada05/tournament-manager/handlers"
	"github.com/Dosada05/tournament-manager/middleware"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Team       *handlers.TeamHandler
	Group      *handlers.GroupHandler
	League     *handlers.LeagueHandler
	Knockout   *handlers.KnockoutHandler
	Tournament *handlers.TournamentHandler
	Export     *handlers.ExportHandler
	WebSocket  *handlers.WebSocketHandler
}

type Options struct {
	AllowedOrigins []string
	Tokens         middleware.TokenParser
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Websocket живет дольше таймаута запросов, поэтому вне /api.
	router.Get("/ws", h.WebSocket.ServeWs)

	router.Route("/api", func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(15 * time.Second))
		r.Use(middleware.Authenticate(opts.Tokens))

		r.Post("/auth/login", h.Auth.Login)
		r.Get("/overview", h.Tournament.Overview)
		r.Post("/exports", h.Export.StoreExport)

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", h.Team.ListTeams)
			r.Get("/search", h.Team.SearchTeams)
			r.Get("/{teamID}", h.Team.GetTeam)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/", h.Team.CreateTeam)
				r.Post("/bulk", h.Team.CreateTeamsBulk)
				r.Put("/{teamID}", h.Team.RenameTeam)
				r.Delete("/{teamID}", h.Team.DeleteTeam)
			})
		})

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", h.Group.ListGroups)
			r.Get("/{groupID}", h.Group.GetGroup)
			r.Get("/{groupID}/standings", h.Group.Standings)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/", h.Group.CreateGroup)
				r.Post("/distribute", h.Group.DistributeTeams)
				r.Delete("/{groupID}", h.Group.DeleteGroup)

				r.Post("/{groupID}/teams", h.Group.AddTeam)
				r.Delete("/{groupID}/teams/{teamID}", h.Group.RemoveTeam)
				r.Put("/{groupID}/mode", h.Group.SetMode)
				r.Put("/{groupID}/rounds", h.Group.SetRounds)

				r.Post("/{groupID}/matches/generate", h.Group.GenerateMatches)
				r.Post("/{groupID}/matches", h.Group.AddManualMatch)
				r.Delete("/{groupID}/matches", h.Group.ClearMatches)
				r.Delete("/{groupID}/matches/{matchID}", h.Group.RemoveManualMatch)
				r.Put("/{groupID}/matches/{matchID}/score", h.Group.RecordScore)

				r.Post("/{groupID}/zones", h.Group.AddZone)
				r.Delete("/{groupID}/zones/{zoneID}", h.Group.RemoveZone)
			})
		})

		r.Route("/league", func(r chi.Router) {
			r.Get("/", h.League.GetLeague)
			r.Get("/standings", h.League.Standings)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Put("/", h.League.SetupLeague)
				r.Delete("/", h.League.DeleteLeague)

				r.Post("/teams", h.League.AddTeam)
				r.Delete("/teams/{teamID}", h.League.RemoveTeam)
				r.Put("/mode", h.League.SetMode)
				r.Put("/rounds", h.League.SetRounds)

				r.Post("/matches/generate", h.League.GenerateMatches)
				r.Post("/matches", h.League.AddManualMatch)
				r.Delete("/matches", h.League.ClearMatches)
				r.Delete("/matches/{matchID}", h.League.RemoveManualMatch)
				r.Put("/matches/{matchID}/score", h.League.RecordScore)

				r.Post("/zones", h.League.AddZone)
				r.Delete("/zones/{zoneID}", h.League.RemoveZone)
			})
		})

		r.Route("/knockout", func(r chi.Router) {
			r.Get("/", h.Knockout.GetKnockout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Put("/", h.Knockout.SetupKnockout)
				r.Delete("/", h.Knockout.DeleteKnockout)
				r.Put("/rounds/{roundID}/matches/{matchID}/score", h.Knockout.RecordScore)
				r.Put("/rounds/{roundID}/matches/{matchID}/team", h.Knockout.ReassignTeam)
			})
		})

		r.Route("/history", func(r chi.Router) {
			r.Get("/", h.Tournament.ListHistory)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/", h.Tournament.ArchiveChampion)
				r.Delete("/{entryID}", h.Tournament.DeleteHistoryEntry)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/reset", h.Tournament.Reset)
			r.Delete("/exports/{exportID}", h.Export.DeleteExport)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"route not found"}`))
	})
}
