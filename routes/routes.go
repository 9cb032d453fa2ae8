package routes

import (
	"github.com/castlegate/pairing-engine/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	tournamentHandler *handlers.TournamentHandler,
	playerHandler *handlers.PlayerHandler,
	pairingHandler *handlers.PairingHandler,
	standingsHandler *handlers.StandingsHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/tournaments", func(r chi.Router) {
		r.Post("/", tournamentHandler.CreateHandler)
		r.Get("/", tournamentHandler.ListHandler)

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", tournamentHandler.GetByIDHandler)
			r.Patch("/status", tournamentHandler.UpdateStatusHandler)

			r.Post("/teams", tournamentHandler.CreateTeamHandler)
			r.Get("/teams", tournamentHandler.ListTeamsHandler)
			r.Delete("/teams/{teamID}", tournamentHandler.DeleteTeamHandler)

			r.Post("/players", playerHandler.RegisterHandler)
			r.Get("/players", playerHandler.ListHandler)

			r.Patch("/pairings/{pairingID}/result", pairingHandler.RecordResultHandler)
			r.Patch("/pairings/{pairingID}/players", pairingHandler.SwapPlayersHandler)
			r.Delete("/pairings/{pairingID}", pairingHandler.DeleteHandler)

			r.Post("/standings", standingsHandler.AllSectionsHandler)

			r.Route("/sections/{section}", func(r chi.Router) {
				r.Post("/rounds", pairingHandler.GenerateHandler)
				r.Get("/rounds/{round}", pairingHandler.GetRoundHandler)
				r.Delete("/rounds/{round}", pairingHandler.ResetRoundHandler)
				r.Put("/rounds/{round}/boards", pairingHandler.ReorderBoardsHandler)
				r.Get("/pairings", pairingHandler.ListSectionHandler)
				r.Post("/pairings", pairingHandler.CreateCustomHandler)
				r.Get("/status", pairingHandler.StatusHandler)

				r.Post("/standings", standingsHandler.IndividualHandler)
				r.Post("/standings/rounds/{round}", standingsHandler.ThroughRoundHandler)
				r.Post("/standings/teams", standingsHandler.TeamHandler)
			})
		})
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/{playerID}", playerHandler.GetByIDHandler)
		r.Patch("/{playerID}", playerHandler.UpdateHandler)
		r.Patch("/{playerID}/status", playerHandler.SetStatusHandler)
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
