package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/thebtf/herbmind/internal/analysis"
	"github.com/thebtf/herbmind/internal/textclean"
	"github.com/thebtf/herbmind/pkg/models"
)

type textRequest struct {
	Text string `json:"text"`
}

type emergencyResponse struct {
	Flags       []string `json:"flags"`
	IsEmergency bool     `json:"is_emergency"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Symptoms int    `json:"symptoms"`
	Remedies int    `json:"remedies"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	cat := s.svc.Catalog()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Symptoms: len(cat.Symptoms),
		Remedies: len(cat.Remedies),
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analysis.Request
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.svc.Analyze(r.Context(), req)
	switch {
	case errors.Is(err, analysis.ErrEmptyText), errors.Is(err, models.ErrInvalidProfile):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		log.Error().Err(err).Msg("Analysis failed")
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if textclean.IsBlank(req.Text) {
		writeError(w, http.StatusBadRequest, analysis.ErrEmptyText.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.svc.ExtractSymptoms(req.Text))
}

func (s *Server) handleEmergency(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decodeBody(w, r, &req) {
		return
	}
	ok, flags := s.svc.CheckEmergency(req.Text)
	writeJSON(w, http.StatusOK, emergencyResponse{IsEmergency: ok, Flags: flags})
}

func (s *Server) handleGetRemedy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	remedy, ok := s.svc.Catalog().Remedy(id)
	if !ok {
		writeError(w, http.StatusNotFound, "remedy not found")
		return
	}
	writeJSON(w, http.StatusOK, remedy)
}

func (s *Server) handleSearchRemedies(w http.ResponseWriter, r *http.Request) {
	cat := s.svc.Catalog()
	indication := r.URL.Query().Get("indication")
	if indication == "" {
		writeJSON(w, http.StatusOK, cat.Remedies)
		return
	}
	remedies := cat.SearchRemediesByIndication(indication)
	if remedies == nil {
		remedies = []models.RemedyEntry{}
	}
	writeJSON(w, http.StatusOK, remedies)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("Failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
