package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"unishift/internal/domain"
)

// CountryLookup resolves an ISO country code for a client IP.
type CountryLookup interface {
	CountryCode(ip string) (string, error)
}

// App carries the dependencies of the question API handlers.
type App struct {
	Questions domain.QuestionRepository
	Geo       CountryLookup
	Logger    zerolog.Logger
	Now       func() time.Time
}

// NewApp wires the handlers to a question store.
func NewApp(questions domain.QuestionRepository, geo CountryLookup, logger zerolog.Logger) *App {
	return &App{Questions: questions, Geo: geo, Logger: logger, Now: time.Now}
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, message string) {
	a.json(w, code, map[string]any{"success": false, "message": message})
}
