package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"skillcheck/internal/grading"
	"skillcheck/internal/question"
	"skillcheck/internal/quiz"
	"skillcheck/internal/web/views"
)

// SubmitRequest is the JSON body of POST /api/v1/submit. Answer keys are
// 1-based question positions.
type SubmitRequest struct {
	State   string            `json:"state"`
	Domain  string            `json:"domain,omitempty"`
	Topic   string            `json:"topic,omitempty"`
	Answers map[string]string `json:"answers"`
}

// CatalogResponse is the body of GET /api/v1/catalog.
type CatalogResponse struct {
	Domains []question.CatalogEntry `json:"domains"`
}

type apiError struct {
	Error string `json:"error"`
}

func (h *handlers) apiCatalog(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, CatalogResponse{Domains: h.service.Catalog()})
}

func (h *handlers) apiQuiz(w http.ResponseWriter, r *http.Request) {
	domain := strings.TrimSpace(r.URL.Query().Get("domain"))
	topic := strings.TrimSpace(r.URL.Query().Get("topic"))
	if domain == "" || topic == "" {
		respondJSON(w, http.StatusBadRequest, apiError{Error: "domain and topic are required"})
		return
	}
	started, err := h.service.Start(domain, topic)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, views.NewQuizPage(started))
}

func (h *handlers) apiSubmit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := decoder.Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, apiError{Error: "invalid json body"})
		return
	}
	answers, err := parseAnswerKeys(req.Answers)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}
	outcome, err := h.service.Submit(r.Context(), quiz.Submission{
		Domain:  req.Domain,
		Topic:   req.Topic,
		State:   req.State,
		Answers: answers,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, views.NewResultPage(outcome))
}

func (h *handlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	view := errorView(err)
	if view.Status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	respondJSON(w, view.Status, apiError{Error: view.Message})
}

func parseAnswerKeys(raw map[string]string) (grading.Answers, error) {
	answers := make(grading.Answers, len(raw))
	for key, value := range raw {
		position, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || position < 1 {
			return nil, fmt.Errorf("answer key %q is not a question number", key)
		}
		answers[position] = value
	}
	return answers, nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
