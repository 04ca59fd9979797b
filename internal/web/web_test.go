package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"skillcheck/internal/feedback"
	"skillcheck/internal/llm"
	"skillcheck/internal/question"
	"skillcheck/internal/quiz"
	"skillcheck/internal/web/views"
)

func fixtureRecords() []question.Record {
	return []question.Record{
		{ID: 0, Domain: "AI", Topic: "Coding", Question: "What is Python?", Options: []string{"A programming language", "A snake"}, CorrectAnswer: "A programming language"},
		{ID: 1, Domain: "AI", Topic: "Coding", Question: "Which keyword defines a function?", Options: []string{"func", "def"}, CorrectAnswer: "def"},
		{ID: 2, Domain: "Cloud", Topic: "Networking", Question: "What does DNS resolve?", Options: []string{"Names to IP", "IP to names"}, CorrectAnswer: "Names to IP"},
	}
}

func newTestService(t *testing.T, sampleSize int, strategy feedback.Strategy) *quiz.Service {
	t.Helper()
	signer, err := quiz.NewSigner("web-secret", time.Hour)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	return quiz.NewService(question.NewStaticStore(fixtureRecords()), signer, strategy, sampleSize, nil)
}

func newTestHandler(t *testing.T, service *quiz.Service, cfg Config) http.Handler {
	t.Helper()
	handler, err := NewHandler(cfg, service, nil)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return handler
}

func do(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

// TestNewHandlerRequiresService ensures a nil service is rejected.
func TestNewHandlerRequiresService(t *testing.T) {
	if _, err := NewHandler(Config{}, nil, nil); err == nil {
		t.Fatalf("expected error for nil service")
	}
}

// TestLandingListsCatalog ensures the root page renders the catalog.
func TestLandingListsCatalog(t *testing.T) {
	handler := newTestHandler(t, newTestService(t, 0, nil), Config{})
	resp := do(handler, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{"Coding", "Networking", "(2)"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in body %s", want, body)
		}
	}
	if got := resp.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Fatalf("expected html content type, got %q", got)
	}
}

// TestQuizPageRendersQuestions ensures the quiz form carries labelled options.
func TestQuizPageRendersQuestions(t *testing.T) {
	handler := newTestHandler(t, newTestService(t, 0, nil), Config{})
	resp := do(handler, httptest.NewRequest(http.MethodGet, "/quiz?domain=AI&topic=Coding", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{`name="answer_1"`, `name="answer_2"`, `value="B. def"`, `name="state"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in body %s", want, body)
		}
	}
}

// TestQuizPageRequiresSelection ensures blank selections return 400.
func TestQuizPageRequiresSelection(t *testing.T) {
	handler := newTestHandler(t, newTestService(t, 0, nil), Config{})
	resp := do(handler, httptest.NewRequest(http.MethodGet, "/quiz?domain=AI", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

// TestQuizPageInsufficientCandidates ensures sampling shortfalls return 422.
func TestQuizPageInsufficientCandidates(t *testing.T) {
	handler := newTestHandler(t, newTestService(t, 3, nil), Config{})
	resp := do(handler, httptest.NewRequest(http.MethodGet, "/quiz?domain=AI&topic=Coding", nil))
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Not enough questions") {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

// TestSubmitFormGradesAnswers ensures a posted form is graded against the signed selection.
func TestSubmitFormGradesAnswers(t *testing.T) {
	service := newTestService(t, 0, nil)
	started, err := service.Start("AI", "Coding")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	form := url.Values{
		"domain":   {"AI"},
		"topic":    {"Coding"},
		"state":    {started.State},
		"answer_1": {"A. A programming language"},
		"answer_2": {"B. def"},
	}
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := do(newTestHandler(t, service, Config{}), req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	body := resp.Body.String()
	if !strings.Contains(body, "Your score: 2 / 2") || !strings.Contains(body, "Excellent!") {
		t.Fatalf("unexpected result body: %s", body)
	}
	if !strings.Contains(body, started.AttemptID) {
		t.Fatalf("expected attempt id in body")
	}
}

// TestSubmitFormRendersExplanations ensures a failing provider yields one fallback entry on the result page.
func TestSubmitFormRendersExplanations(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(provider.Close)
	generator, err := llm.NewHuggingFaceGenerator("google/flan-t5-large", "key", provider.URL, llm.Options{}, provider.Client())
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	service := newTestService(t, 0, feedback.NewExplainer(generator, feedback.ExplainerOptions{}, nil))
	started, err := service.Start("AI", "Coding")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	form := url.Values{
		"domain":   {"AI"},
		"topic":    {"Coding"},
		"state":    {started.State},
		"answer_1": {"B. A snake"},
		"answer_2": {"B. def"},
	}
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := do(newTestHandler(t, service, Config{}), req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	body := resp.Body.String()
	if !strings.Contains(body, "Your score: 1 / 2") || !strings.Contains(body, "<h2>Explanations</h2>") {
		t.Fatalf("unexpected result body: %s", body)
	}
	if got := strings.Count(body, "<li>"); got != 1 {
		t.Fatalf("expected one feedback entry, got %d in %s", got, body)
	}
	if !strings.Contains(body, "Explanation: "+feedback.FallbackHTTP) {
		t.Fatalf("expected API error sentence in %s", body)
	}
}

// TestSubmitFormRejectsInvalidState ensures a forged state returns 400.
func TestSubmitFormRejectsInvalidState(t *testing.T) {
	form := url.Values{"domain": {"AI"}, "topic": {"Coding"}, "state": {"not-a-token"}}
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := do(newTestHandler(t, newTestService(t, 0, nil), Config{}), req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

// TestSubmitFormRequiresStateWhenSampling ensures stateless posts fail while sampling.
func TestSubmitFormRequiresStateWhenSampling(t *testing.T) {
	form := url.Values{"domain": {"AI"}, "topic": {"Coding"}, "answer_1": {"A. A programming language"}}
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := do(newTestHandler(t, newTestService(t, 1, nil), Config{}), req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Missing quiz state") {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

// TestFormAnswersIgnoresMalformedKeys ensures only answer_N fields with N >= 1 count.
func TestFormAnswersIgnoresMalformedKeys(t *testing.T) {
	answers := FormAnswers(url.Values{
		"answer_1":  {"A. x"},
		"answer_0":  {"A. y"},
		"answer_b":  {"A. z"},
		"answer_12": {"C. w"},
		"state":     {"s"},
	})
	if len(answers) != 2 || answers[1] != "A. x" || answers[12] != "C. w" {
		t.Fatalf("unexpected answers: %#v", answers)
	}
}

// TestHealthProbes ensures both probes answer 200.
func TestHealthProbes(t *testing.T) {
	handler := newTestHandler(t, newTestService(t, 0, nil), Config{})
	for _, path := range []string{"/healthz", "/readyz"} {
		resp := do(handler, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.Code)
		}
	}
	resp := do(handler, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode readyz: %v", err)
	}
	if body["questions"] != float64(3) {
		t.Fatalf("expected 3 questions, got %v", body["questions"])
	}
}

// TestAPICatalog ensures the catalog endpoint returns grouped counts.
func TestAPICatalog(t *testing.T) {
	handler := newTestHandler(t, newTestService(t, 0, nil), Config{})
	resp := do(handler, httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body CatalogResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Domains) != 2 || body.Domains[0].Domain != "AI" || body.Domains[0].Topics[0].Count != 2 {
		t.Fatalf("unexpected catalog: %+v", body)
	}
}

// TestAPIQuizHidesAnswers ensures correct answers never leave the server.
func TestAPIQuizHidesAnswers(t *testing.T) {
	handler := newTestHandler(t, newTestService(t, 0, nil), Config{})
	resp := do(handler, httptest.NewRequest(http.MethodGet, "/api/v1/quiz?domain=AI&topic=Coding", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), "correct") {
		t.Fatalf("response leaks answers: %s", resp.Body.String())
	}
	var page views.QuizPage
	if err := json.Unmarshal(resp.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.State == "" || len(page.Questions) != 2 || page.Questions[1].Options[1].Value != "B. def" {
		t.Fatalf("unexpected quiz page: %+v", page)
	}
}

// TestAPISubmitRoundTrip ensures a JSON submission is graded.
func TestAPISubmitRoundTrip(t *testing.T) {
	service := newTestService(t, 0, nil)
	started, err := service.Start("AI", "Coding")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	payload, _ := json.Marshal(SubmitRequest{
		State:   started.State,
		Answers: map[string]string{"1": "B. A snake", "2": "B. def"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/submit", strings.NewReader(string(payload)))
	req.Header.Set("Content-Type", "application/json")
	resp := do(newTestHandler(t, service, Config{}), req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var page views.ResultPage
	if err := json.Unmarshal(resp.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Score != 1 || page.Total != 2 || page.Band != "good" || page.AttemptID != started.AttemptID {
		t.Fatalf("unexpected result: %+v", page)
	}
}

// TestAPISubmitRejectsBadKeys ensures non-numeric answer keys return 400.
func TestAPISubmitRejectsBadKeys(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/submit", strings.NewReader(`{"answers":{"first":"A. x"}}`))
	resp := do(newTestHandler(t, newTestService(t, 0, nil), Config{}), req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

// TestAPICORSAllowsConfiguredOrigin ensures preflight succeeds for listed origins only.
func TestAPICORSAllowsConfiguredOrigin(t *testing.T) {
	handler := newTestHandler(t, newTestService(t, 0, nil), Config{CORSOrigins: []string{"https://quiz.example.com"}})

	allowed := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	allowed.Header.Set("Origin", "https://quiz.example.com")
	resp := do(handler, allowed)
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "https://quiz.example.com" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}

	denied := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	denied.Header.Set("Origin", "https://other.example.com")
	resp = do(handler, denied)
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow-origin header, got %q", got)
	}
}

// TestServeStopsOnCancel ensures Serve returns once the context is cancelled.
func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, Config{Addr: "127.0.0.1:0"}, newTestService(t, 0, nil), nil)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("serve did not stop")
	}
}

// TestServeRequiresAddr ensures an empty address is rejected.
func TestServeRequiresAddr(t *testing.T) {
	if err := Serve(context.Background(), Config{}, newTestService(t, 0, nil), nil); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
