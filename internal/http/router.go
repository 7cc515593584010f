package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/movilidad/internal/http/importcsv"
	"github.com/MrJamesThe3rd/movilidad/internal/http/submission"
)

type Options struct {
	Log            *zap.Logger
	Timeout        time.Duration
	AllowedOrigins []string
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

func New(
	opts Options,
	submissionsV1 *submission.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(log))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	if opts.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/submissions", submissionsV1.Routes)
		r.Route("/workers", submissionsV1.WorkerRoutes)
		r.Route("/import", importV1.Routes)
	})

	return router
}
