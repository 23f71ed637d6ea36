package handlers

import (
	"fmt"
	"net/http"
	"time"
)

// Endpoints lists the public routes, in the order the banner shows them.
var Endpoints = []struct {
	Route       string
	Description string
}{
	{"POST /api/questions", "Submit a new question"},
	{"GET /api/questions", "Get all enquiries (admin)"},
	{"GET /api/questions/stats", "Get enquiry statistics"},
	{"GET /api/health", "Health check"},
}

// Root serves the service banner.
func (a *App) Root(w http.ResponseWriter, r *http.Request) {
	endpoints := make(map[string]string, len(Endpoints))
	for _, e := range Endpoints {
		endpoints[e.Route] = e.Description
	}
	a.json(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "UniSHIFT API Server",
		"version":   "1.0.0",
		"endpoints": endpoints,
	})
}

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Server is running",
		"timestamp": a.now().UTC().Format(time.RFC3339Nano),
	})
}

// NotFound reports the unknown route along with every known one.
func (a *App) NotFound(w http.ResponseWriter, r *http.Request) {
	available := []string{"GET /"}
	for _, e := range Endpoints {
		available = append(available, e.Route)
	}
	a.json(w, http.StatusNotFound, map[string]any{
		"success":            false,
		"message":            fmt.Sprintf("Route %s not found", r.URL.RequestURI()),
		"availableEndpoints": available,
	})
}
