package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"skillcheck/internal/grading"
	"skillcheck/internal/question"
	"skillcheck/internal/quiz"
	"skillcheck/internal/web/views"
)

// AnswerFieldPrefix prefixes the 1-based form field of each answer.
const AnswerFieldPrefix = views.AnswerFieldPrefix

type handlers struct {
	service *quiz.Service
	logger  *slog.Logger
}

func (h *handlers) landing(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, views.Landing(views.LandingPage{Catalog: h.service.Catalog()}))
}

func (h *handlers) quizPage(w http.ResponseWriter, r *http.Request) {
	domain := strings.TrimSpace(r.URL.Query().Get("domain"))
	topic := strings.TrimSpace(r.URL.Query().Get("topic"))
	if domain == "" || topic == "" {
		render(w, r, http.StatusBadRequest, views.Landing(views.LandingPage{
			Catalog: h.service.Catalog(),
			Notice:  "Choose a domain and a topic to start a quiz.",
		}))
		return
	}
	started, err := h.service.Start(domain, topic)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render(w, r, http.StatusOK, views.Quiz(views.NewQuizPage(started)))
}

func (h *handlers) submitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		render(w, r, http.StatusBadRequest, views.ErrorPage(views.ErrorView{
			Status:  http.StatusBadRequest,
			Title:   "Bad request",
			Message: "The submitted form could not be read.",
		}))
		return
	}
	outcome, err := h.service.Submit(r.Context(), quiz.Submission{
		Domain:  r.PostForm.Get("domain"),
		Topic:   r.PostForm.Get("topic"),
		State:   r.PostForm.Get("state"),
		Answers: FormAnswers(r.PostForm),
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render(w, r, http.StatusOK, views.Result(views.NewResultPage(outcome)))
}

func (h *handlers) ready(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "ready",
		"questions": h.service.QuestionCount(),
	})
}

func (h *handlers) renderError(w http.ResponseWriter, r *http.Request, err error) {
	view := errorView(err)
	if view.Status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	render(w, r, view.Status, views.ErrorPage(view))
}

// FormAnswers collects answer_N fields into 1-based answers. Fields with a
// malformed position are ignored.
func FormAnswers(form url.Values) grading.Answers {
	answers := grading.Answers{}
	for key, values := range form {
		raw, ok := strings.CutPrefix(key, AnswerFieldPrefix)
		if !ok || len(values) == 0 {
			continue
		}
		position, err := strconv.Atoi(raw)
		if err != nil || position < 1 {
			continue
		}
		answers[position] = values[0]
	}
	return answers
}

// errorView maps service errors to a status and a learner-facing message.
func errorView(err error) views.ErrorView {
	switch {
	case errors.Is(err, question.ErrInsufficientCandidates):
		return views.ErrorView{
			Status:  http.StatusUnprocessableEntity,
			Title:   "Not enough questions",
			Message: "This topic does not have enough questions for a quiz.",
		}
	case errors.Is(err, quiz.ErrExpiredState):
		return views.ErrorView{
			Status:  http.StatusBadRequest,
			Title:   "Quiz expired",
			Message: "This quiz has expired. Start a new one.",
		}
	case errors.Is(err, quiz.ErrInvalidState):
		return views.ErrorView{
			Status:  http.StatusBadRequest,
			Title:   "Invalid quiz",
			Message: "The quiz state is not valid. Start a new one.",
		}
	case errors.Is(err, quiz.ErrStateRequired):
		return views.ErrorView{
			Status:  http.StatusBadRequest,
			Title:   "Missing quiz state",
			Message: "Answers must be submitted from a started quiz.",
		}
	default:
		return views.ErrorView{
			Status:  http.StatusInternalServerError,
			Title:   "Something went wrong",
			Message: "The request could not be completed.",
		}
	}
}

func render(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	templ.Handler(component, templ.WithStatus(status)).ServeHTTP(w, r)
}
