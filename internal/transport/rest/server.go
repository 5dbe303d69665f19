package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(logger *slog.Logger, h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/ping", h.PingHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/move", h.BestMove)
		r.Post("/analyze", h.AnalyzeMoves)

		r.Post("/games", h.CreateGame)
		r.Get("/games/{id}", h.GetGame)
		r.Post("/games/{id}/turn", h.MakeTurn)
		r.Delete("/games/{id}", h.DeleteGame)

		r.Post("/lobby", h.JoinLobby)
		r.Delete("/lobby/{id}", h.LeaveLobby)
		r.Get("/players/{id}", h.GetPlayer)
		r.Delete("/players/{id}/game", h.RemovePlayerGame)
	})

	return r
}

func NewServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	log := logger.With("component", "http")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Debug("request served",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"requestID", middleware.GetReqID(r.Context()),
			)
		})
	}
}
