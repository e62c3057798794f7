package main

import (
	"net/http"

	"hand-forge/internal/app/session"
	"hand-forge/internal/config"
	"hand-forge/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func newRouter(st *store.Store, sessions *session.Service, extractor handExtractor, cfg config.ServerConfig) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(apiLogMiddleware()).Get("/healthz", healthHandler(st))

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLogMiddleware())
		r.Use(bodyCaptureMiddleware(4096))

		r.Post("/sessions", sessionCreateHandler(sessions))
		r.Route("/sessions/{session_id}", func(r chi.Router) {
			r.Get("/", sessionGetHandler(sessions))
			r.Post("/seats/{position}", seatUpdateHandler(sessions))
			r.Post("/actions", actionCommitHandler(sessions))
			r.Post("/undo", undoHandler(sessions))
			r.Post("/board", boardHandler(sessions))
			r.Post("/import", importHandler(sessions, extractor))
			r.Post("/finalize", finalizeHandler(sessions, st))
		})

		r.Get("/hands", handListHandler(st, cfg))
		r.Get("/hands/{hand_id}", handGetHandler(st))
	})
	return r
}

func healthHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			writeHTTPError(w, http.StatusServiceUnavailable, "db_unreachable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
