package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"sumarena/internal/domain"
)

// DefaultLocalBaseURL is where a stock Ollama install listens.
const DefaultLocalBaseURL = "http://localhost:11434"

const localTemperature = 0.3

// LocalConfig holds the connection info for the local family.
type LocalConfig struct {
	BaseURL string
}

// LocalAdapter talks to a local Ollama instance. It needs no credential,
// so IsConfigured always reports true; reachability requires a live probe.
// The adapter keeps no warm state across calls: first calls to a freshly
// selected model can be slow, and choosing a longer deadline for them is
// the caller's concern.
type LocalAdapter struct {
	baseURL     string
	client      *http.Client
	knownModels []string
	log         *slog.Logger
}

type ollamaGenerateRequest struct {
	Model   string             `json:"model"`
	Prompt  string             `json:"prompt"`
	Stream  bool               `json:"stream"`
	Options ollamaModelOptions `json:"options"`
}

type ollamaModelOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaGenerateResponse struct {
	Response        string `json:"response"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// NewLocal builds the local adapter. knownModels is the catalog subset
// belonging to the local family.
func NewLocal(cfg LocalConfig, knownModels []string, log *slog.Logger) *LocalAdapter {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultLocalBaseURL
	}

	return &LocalAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Deadlines come from per-call contexts, not a client-wide timeout.
		client:      &http.Client{},
		knownModels: knownModels,
		log:         log,
	}
}

func (a *LocalAdapter) Family() domain.ProviderFamily {
	return domain.FamilyLocal
}

func (a *LocalAdapter) IsConfigured() bool {
	return true
}

// CheckAvailability hits the tags endpoint and reports which catalog
// models are installed, bounded by ctx.
func (a *LocalAdapter) CheckAvailability(ctx context.Context) domain.ProviderStatus {
	checkedAt := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/api/tags", nil)
	if err != nil {
		return unreachableStatus(domain.FamilyLocal, fmt.Sprintf("create request: %v", err), checkedAt)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		kind, msg := classifyTransportError(err)

		return unreachableStatus(
			domain.FamilyLocal,
			fmt.Sprintf("list tags: %s: %s", kind, msg),
			checkedAt,
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return unreachableStatus(
			domain.FamilyLocal,
			fmt.Sprintf("list tags: unexpected status %d", resp.StatusCode),
			checkedAt,
		)
	}

	var tags ollamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return unreachableStatus(
			domain.FamilyLocal,
			fmt.Sprintf("list tags: decode response: %v", err),
			checkedAt,
		)
	}

	installed := make(map[string]struct{}, len(tags.Models))
	for _, m := range tags.Models {
		installed[m.Name] = struct{}{}
	}

	var models []string
	for _, id := range a.knownModels {
		if _, ok := installed[id]; ok {
			models = append(models, id)
		}
	}

	return domain.ProviderStatus{
		Family:    domain.FamilyLocal,
		Reachable: true,
		Models:    models,
		CheckedAt: checkedAt,
	}
}

// Summarize performs exactly one generate call, bounded by ctx.
func (a *LocalAdapter) Summarize(
	ctx context.Context,
	req domain.SummarizationRequest,
) domain.SummarizationResult {
	payload := ollamaGenerateRequest{
		Model:  req.ModelID,
		Prompt: summaryPrompt(req.Text, req.MaxWords),
		Stream: false,
		Options: ollamaModelOptions{
			Temperature: localTemperature,
			TopP:        1.0,
			NumPredict:  req.MaxWords * outputTokenGrowthFactor,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return failureResult(
			req.ModelID,
			domain.FamilyLocal,
			domain.ErrorBackend,
			fmt.Sprintf("marshal request: %v", err),
			0,
		)
	}

	start := time.Now()

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		a.baseURL+"/api/generate",
		bytes.NewReader(body),
	)
	if err != nil {
		return failureResult(
			req.ModelID,
			domain.FamilyLocal,
			domain.ErrorBackend,
			fmt.Sprintf("create request: %v", err),
			time.Since(start),
		)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(httpReq)
	elapsed := time.Since(start)

	if err != nil {
		kind, msg := classifyTransportError(err)
		a.log.WarnContext(ctx, "Local summarize call failed",
			"model", req.ModelID,
			"errorKind", kind,
			"error", msg,
			"elapsedMs", elapsed.Milliseconds())

		return failureResult(req.ModelID, domain.FamilyLocal, kind, msg, elapsed)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failureResult(
			req.ModelID,
			domain.FamilyLocal,
			classifyStatusCode(resp.StatusCode),
			backendErrorMessage(resp.Body, resp.StatusCode),
			elapsed,
		)
	}

	var genResp ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return failureResult(
			req.ModelID,
			domain.FamilyLocal,
			domain.ErrorMalformedResponse,
			fmt.Sprintf("decode response: %v", err),
			elapsed,
		)
	}

	summary := strings.TrimSpace(genResp.Response)
	if summary == "" {
		return failureResult(
			req.ModelID,
			domain.FamilyLocal,
			domain.ErrorMalformedResponse,
			"generate response text is missing",
			elapsed,
		)
	}

	inputTokens := genResp.PromptEvalCount
	if inputTokens == 0 {
		inputTokens = EstimateTokens(req.Text)
	}
	outputTokens := genResp.EvalCount
	if outputTokens == 0 {
		outputTokens = EstimateTokens(summary)
	}

	return successResult(req.ModelID, domain.FamilyLocal, summary, elapsed, inputTokens, outputTokens)
}

func backendErrorMessage(body io.Reader, statusCode int) string {
	var errResp struct {
		Error string `json:"error"`
	}

	if err := json.NewDecoder(body).Decode(&errResp); err == nil {
		if msg := strings.TrimSpace(errResp.Error); msg != "" {
			return msg
		}
	}

	return fmt.Sprintf("unexpected status %d", statusCode)
}
