package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"unishift/internal/domain"
	"unishift/internal/infra/geoip"
	"unishift/internal/middleware"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const maxQuestionBody = 64 << 10

type createQuestionRequest struct {
	Email    string `json:"email"`
	Question string `json:"question"`
}

// QuestionsCreate accepts a question from the website form.
func (a *App) QuestionsCreate(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQuestionBody)).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "Email and question are required")
		return
	}
	email := strings.TrimSpace(req.Email)
	text := strings.TrimSpace(req.Question)
	if email == "" || text == "" {
		a.error(w, http.StatusBadRequest, "Email and question are required")
		return
	}
	if !emailPattern.MatchString(email) {
		a.error(w, http.StatusBadRequest, "Please provide a valid email address")
		return
	}

	q := &domain.Question{
		Email:     email,
		Question:  text,
		IPAddress: middleware.ClientIP(r),
	}
	if q.IPAddress == "" {
		q.IPAddress = "unknown"
	}
	if a.Geo != nil {
		country, err := a.Geo.CountryCode(q.IPAddress)
		switch {
		case err == nil:
			q.Country = country
		case !errors.Is(err, geoip.ErrUnavailable):
			a.Logger.Debug().Err(err).Str("ip", q.IPAddress).Msg("geoip lookup failed")
		}
	}

	if err := a.Questions.Create(r.Context(), q); err != nil {
		a.Logger.Error().Err(err).Msg("failed to save question")
		a.error(w, http.StatusInternalServerError, "Failed to save your question. Please try again.")
		return
	}

	a.Logger.Info().Str("question_id", q.ID).Str("country", q.Country).Msg("question received")
	a.json(w, http.StatusCreated, map[string]any{
		"success":   true,
		"message":   "Your question has been submitted successfully! We'll get back to you within 24 hours.",
		"enquiryId": q.ID,
	})
}

// QuestionsList returns every question, newest first.
func (a *App) QuestionsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.Questions.List(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("failed to list questions")
		a.error(w, http.StatusInternalServerError, "Failed to retrieve enquiries")
		return
	}
	if items == nil {
		items = []domain.Question{}
	}
	a.json(w, http.StatusOK, map[string]any{"success": true, "enquiries": items})
}

// QuestionsStats returns counts by status and for the current month.
func (a *App) QuestionsStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.Questions.Stats(r.Context(), a.now())
	if err != nil {
		a.Logger.Error().Err(err).Msg("failed to load question stats")
		a.error(w, http.StatusInternalServerError, "Failed to get statistics")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"success": true, "stats": stats})
}
