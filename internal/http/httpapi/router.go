package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"unishift/internal/http/handlers"
	"unishift/internal/middleware"
)

// Options tunes the router middleware.
type Options struct {
	AllowedOrigins  []string
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, logger zerolog.Logger, opts Options) http.Handler {
	r := chi.NewRouter()

	// Base middleware.
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
		middleware.CORS(opts.AllowedOrigins),
	)

	r.NotFound(app.NotFound)
	r.MethodNotAllowed(app.NotFound)

	r.Get("/", app.Root)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", app.Health)
		r.Route("/questions", func(r chi.Router) {
			r.With(middleware.RateLimit(opts.RateLimitPerMin, time.Minute)).Post("/", app.QuestionsCreate)
			r.Get("/", app.QuestionsList)
			r.Get("/stats", app.QuestionsStats)
		})
	})

	return r
}
