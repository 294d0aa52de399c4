package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rqsn/donasi/internal/auth"
	"github.com/rqsn/donasi/internal/http/donation"
	"github.com/rqsn/donasi/internal/http/export"
	"github.com/rqsn/donasi/internal/http/login"
	"github.com/rqsn/donasi/internal/http/recap"
	"github.com/rqsn/donasi/internal/http/summary"
	"github.com/rqsn/donasi/internal/http/target"
)

type Handlers struct {
	Login     *login.Handler
	Donations *donation.Handler
	Target    *target.Handler
	Summary   *summary.Handler
	Recap     *recap.Handler
	Export    *export.Handler
}

func New(authenticator *auth.Authenticator, allowedOrigins []string, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(authenticator.Middleware)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", h.Login.Routes)
		r.Route("/donations", h.Donations.Routes)
		r.Route("/target", h.Target.Routes)
		r.Route("/summary", h.Summary.Routes)
		r.Route("/recap", h.Recap.Routes)
		r.Route("/export", h.Export.Routes)
	})

	return router
}
