package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(h.withRateLimit)

		r.Post("/quote", h.quote)
		r.Delete("/quote/cache", h.invalidateQuoteCache)

		r.Route("/swap", func(r chi.Router) {
			r.Post("/submit", h.submitSwap)
			r.Post("/{intentID}/execute", h.executeSwap)
			r.Get("/{intentID}/status", h.swapStatus)
			r.Get("/history/{userAddress}", h.swapHistory)

			// cancel requires a session token
			r.Group(func(r chi.Router) {
				r.Use(h.auth)
				r.Post("/{intentID}/cancel", h.cancelSwap)
			})
		})

		r.Post("/auth/session", h.createSession)
		r.Delete("/auth/session", h.revokeSession)

		r.Get("/tokens", h.listTokens)
		r.Get("/tokens/{mint}", h.getToken)

		r.Post("/stake/rewards", h.stakeRewards)
	})

	router.Get("/healthz", h.healthz)
	router.Get("/ws", h.ws)

	return router
}
