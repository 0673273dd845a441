package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sumarena/internal/config"
	"sumarena/internal/domain"
	"sumarena/internal/orchestrator"
	"sumarena/internal/prober"
	"sumarena/internal/provider"
	"sumarena/internal/registry"
)

type stubAdapter struct {
	family  domain.ProviderFamily
	summary string
	fail    bool
}

func (a *stubAdapter) Family() domain.ProviderFamily { return a.family }
func (a *stubAdapter) IsConfigured() bool            { return true }

func (a *stubAdapter) CheckAvailability(_ context.Context) domain.ProviderStatus {
	return domain.ProviderStatus{
		Family:    a.family,
		Reachable: true,
		Models:    []string{"stub-model"},
		CheckedAt: time.Now(),
	}
}

func (a *stubAdapter) Summarize(
	_ context.Context,
	req domain.SummarizationRequest,
) domain.SummarizationResult {
	if a.fail {
		return domain.SummarizationResult{
			ModelID:    req.ModelID,
			Family:     a.family,
			Elapsed:    10 * time.Millisecond,
			ErrKind:    domain.ErrorUnreachable,
			ErrMessage: "stub failure",
			Timestamp:  time.Now(),
		}
	}

	return domain.SummarizationResult{
		ModelID:              req.ModelID,
		Family:               a.family,
		Success:              true,
		Summary:              a.summary,
		Elapsed:              10 * time.Millisecond,
		InputTokensEstimate:  len(strings.Fields(req.Text)),
		OutputTokensEstimate: len(strings.Fields(a.summary)),
		Timestamp:            time.Now(),
	}
}

func testDescriptors() []domain.ModelDescriptor {
	return []domain.ModelDescriptor{
		{
			ID:              "remote-a",
			Family:          domain.FamilyRemote,
			DisplayName:     "Remote A",
			Vendor:          "Acme",
			SizeClass:       "8B",
			DefaultMaxWords: 150,
			MaxOutputWords:  500,
		},
		{
			ID:              "local-a",
			Family:          domain.FamilyLocal,
			DisplayName:     "Local A",
			Vendor:          "Acme",
			SizeClass:       "7B",
			DefaultMaxWords: 150,
			MaxOutputWords:  500,
		},
	}
}

func testServer(t *testing.T, adapters map[domain.ProviderFamily]provider.Adapter) *Server {
	t.Helper()

	log := slog.New(slog.DiscardHandler)
	reg := registry.FromDescriptors(testDescriptors())

	cfg := config.Config{
		Addr:               ":0",
		RemoteTimeout:      time.Second,
		LocalTimeout:       time.Second,
		ProbeTimeout:       time.Second,
		StatusMaxAge:       time.Minute,
		MaxConcurrentCalls: 4,
	}

	orch := orchestrator.New(reg, adapters, orchestrator.Options{
		RemoteTimeout: time.Second,
		LocalTimeout:  time.Second,
	}, log)

	return New(cfg, reg, orch, prober.New(adapters, log), log)
}

func defaultAdapters() map[domain.ProviderFamily]provider.Adapter {
	return map[domain.ProviderFamily]provider.Adapter{
		domain.FamilyRemote: &stubAdapter{family: domain.FamilyRemote, summary: "remote summary text"},
		domain.FamilyLocal:  &stubAdapter{family: domain.FamilyLocal, summary: "local summary text"},
	}
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	return rec
}

func longText(words int) string {
	return strings.TrimSpace(strings.Repeat("word ", words))
}

func TestHealthz(t *testing.T) {
	s := testServer(t, defaultAdapters())

	rec := doJSON(t, s, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
}

func TestListModels(t *testing.T) {
	s := testServer(t, defaultAdapters())

	rec := doJSON(t, s, http.MethodGet, "/api/models", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var resp struct {
		Models []modelResponse `json:"models"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(resp.Models) != 2 {
		t.Fatalf("models: got %d, want 2", len(resp.Models))
	}

	first := resp.Models[0]
	if first.ID == "" || first.Family == "" || first.MaxOutputWords == 0 {
		t.Errorf("incomplete model entry: %+v", first)
	}
}

func TestProviderStatus(t *testing.T) {
	s := testServer(t, defaultAdapters())

	rec := doJSON(t, s, http.MethodGet, "/api/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var resp struct {
		Providers map[string]statusResponse `json:"providers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, family := range []string{"remote", "local"} {
		status, ok := resp.Providers[family]
		if !ok {
			t.Fatalf("missing %q provider entry", family)
		}
		if !status.Reachable {
			t.Errorf("%s: expected reachable", family)
		}
		if len(status.Models) == 0 {
			t.Errorf("%s: expected models", family)
		}
	}
}

func TestListSamples(t *testing.T) {
	s := testServer(t, defaultAdapters())

	rec := doJSON(t, s, http.MethodGet, "/api/samples", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var resp struct {
		Samples []sampleResponse `json:"samples"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(resp.Samples) == 0 {
		t.Fatal("expected sample documents")
	}

	for _, sample := range resp.Samples {
		if sample.Title == "" || sample.WordCount < 50 {
			t.Errorf("bad sample: title=%q words=%d", sample.Title, sample.WordCount)
		}
	}
}

func TestPrepareDocument(t *testing.T) {
	s := testServer(t, defaultAdapters())

	body, _ := json.Marshal(documentRequest{Text: longText(80)})

	rec := doJSON(t, s, http.MethodPost, "/api/document", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp documentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp.WordCount != 80 {
		t.Errorf("word count: got %d, want 80", resp.WordCount)
	}
	if resp.Source != "input" {
		t.Errorf("source: got %q, want %q", resp.Source, "input")
	}
}

func TestPrepareDocumentRejectsShortText(t *testing.T) {
	s := testServer(t, defaultAdapters())

	body, _ := json.Marshal(documentRequest{Text: "too short"})

	rec := doJSON(t, s, http.MethodPost, "/api/document", string(body))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

func TestSummarize(t *testing.T) {
	s := testServer(t, defaultAdapters())

	body, _ := json.Marshal(summarizeRequest{
		Text:     longText(100),
		ModelIDs: []string{"remote-a", "local-a"},
	})

	rec := doJSON(t, s, http.MethodPost, "/api/summaries", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp summarizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(resp.Results) != 2 {
		t.Fatalf("results: got %d, want 2", len(resp.Results))
	}
	if resp.Results[0].ModelID != "remote-a" || resp.Results[1].ModelID != "local-a" {
		t.Errorf("results out of input order: %+v", resp.Results)
	}
	for _, res := range resp.Results {
		if !res.Success {
			t.Errorf("%s: expected success, got %s: %s", res.ModelID, res.ErrorKind, res.ErrorMessage)
		}
		if res.Summary == "" {
			t.Errorf("%s: empty summary", res.ModelID)
		}
	}

	if resp.Metrics.Succeeded != 2 || resp.Metrics.Failed != 0 {
		t.Errorf("metrics: succeeded=%d failed=%d", resp.Metrics.Succeeded, resp.Metrics.Failed)
	}
	if resp.Metrics.FastestModelID == "" {
		t.Error("expected a fastest model")
	}
}

func TestSummarizeUnknownModelFailsInPlace(t *testing.T) {
	s := testServer(t, defaultAdapters())

	body, _ := json.Marshal(summarizeRequest{
		Text:     longText(100),
		ModelIDs: []string{"remote-a", "no-such-model"},
	})

	rec := doJSON(t, s, http.MethodPost, "/api/summaries", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp summarizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !resp.Results[0].Success {
		t.Errorf("remote-a should succeed: %+v", resp.Results[0])
	}
	if resp.Results[1].Success || resp.Results[1].ErrorKind != string(domain.ErrorUnknownModel) {
		t.Errorf("unknown model slot: %+v", resp.Results[1])
	}
}

func TestSummarizeRejectsDuplicates(t *testing.T) {
	s := testServer(t, defaultAdapters())

	body, _ := json.Marshal(summarizeRequest{
		Text:     longText(100),
		ModelIDs: []string{"remote-a", "remote-a"},
	})

	rec := doJSON(t, s, http.MethodPost, "/api/summaries", string(body))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestSummarizeRejectsMalformedJSON(t *testing.T) {
	s := testServer(t, defaultAdapters())

	rec := doJSON(t, s, http.MethodPost, "/api/summaries", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := testServer(t, defaultAdapters())

	// Drive one observed request so the counters have label values.
	doJSON(t, s, http.MethodGet, "/healthz", "")

	rec := doJSON(t, s, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "sumarena_http_requests_total") {
		t.Error("expected sumarena request counter in metrics output")
	}
}
