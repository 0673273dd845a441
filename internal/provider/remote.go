package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"sumarena/internal/domain"
)

// DefaultRemoteBaseURL points at Groq's OpenAI-compatible endpoint.
const DefaultRemoteBaseURL = "https://api.groq.com/openai/v1"

const remoteTemperature = 0.3

// RemoteConfig holds the connection info for the remote family,
// resolved once at process start.
type RemoteConfig struct {
	APIKey  string
	BaseURL string
}

// RemoteAdapter talks to a hosted OpenAI-compatible chat completions API.
type RemoteAdapter struct {
	client      openai.Client
	apiKey      string
	knownModels []string
	log         *slog.Logger
}

// NewRemote builds the remote adapter. knownModels is the catalog subset
// belonging to the remote family; availability probes report the
// intersection of that subset with what the backend actually exposes.
func NewRemote(cfg RemoteConfig, knownModels []string, log *slog.Logger) *RemoteAdapter {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultRemoteBaseURL
	}

	return &RemoteAdapter{
		client: openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(baseURL),
			// Retry policy belongs to callers; rate limits and transient
			// failures surface as classified results instead.
			option.WithMaxRetries(0),
		),
		apiKey:      strings.TrimSpace(cfg.APIKey),
		knownModels: knownModels,
		log:         log,
	}
}

func (a *RemoteAdapter) Family() domain.ProviderFamily {
	return domain.FamilyRemote
}

// IsConfigured reports whether a credential is present. No network call.
func (a *RemoteAdapter) IsConfigured() bool {
	return a.apiKey != ""
}

// CheckAvailability performs a list-models probe bounded by ctx.
func (a *RemoteAdapter) CheckAvailability(ctx context.Context) domain.ProviderStatus {
	checkedAt := time.Now()

	if !a.IsConfigured() {
		return unreachableStatus(domain.FamilyRemote, "API key is not configured", checkedAt)
	}

	page, err := a.client.Models.List(ctx)
	if err != nil {
		kind, msg := a.classify(err)

		return unreachableStatus(
			domain.FamilyRemote,
			fmt.Sprintf("list models: %s: %s", kind, msg),
			checkedAt,
		)
	}

	exposed := make(map[string]struct{}, len(page.Data))
	for _, m := range page.Data {
		exposed[m.ID] = struct{}{}
	}

	var models []string
	for _, id := range a.knownModels {
		if _, ok := exposed[id]; ok {
			models = append(models, id)
		}
	}

	return domain.ProviderStatus{
		Family:    domain.FamilyRemote,
		Reachable: true,
		Models:    models,
		CheckedAt: checkedAt,
	}
}

// Summarize performs exactly one chat completion call, bounded by ctx.
func (a *RemoteAdapter) Summarize(
	ctx context.Context,
	req domain.SummarizationRequest,
) domain.SummarizationResult {
	if !a.IsConfigured() {
		return failureResult(
			req.ModelID,
			domain.FamilyRemote,
			domain.ErrorUnauthorized,
			"API key is not configured",
			0,
		)
	}

	start := time.Now()

	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.ModelID),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(summaryPrompt(req.Text, req.MaxWords)),
		},
		Temperature:         openai.Float(remoteTemperature),
		MaxCompletionTokens: openai.Int(int64(req.MaxWords * outputTokenGrowthFactor)),
	})
	elapsed := time.Since(start)

	if err != nil {
		kind, msg := a.classify(err)
		a.log.WarnContext(ctx, "Remote summarize call failed",
			"model", req.ModelID,
			"errorKind", kind,
			"error", msg,
			"elapsedMs", elapsed.Milliseconds())

		return failureResult(req.ModelID, domain.FamilyRemote, kind, msg, elapsed)
	}

	if len(resp.Choices) == 0 {
		return failureResult(
			req.ModelID,
			domain.FamilyRemote,
			domain.ErrorMalformedResponse,
			"chat completion choices are missing",
			elapsed,
		)
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return failureResult(
			req.ModelID,
			domain.FamilyRemote,
			domain.ErrorMalformedResponse,
			"chat completion choice message content is missing",
			elapsed,
		)
	}

	inputTokens := int(resp.Usage.PromptTokens)
	if inputTokens == 0 {
		inputTokens = EstimateTokens(req.Text)
	}
	outputTokens := int(resp.Usage.CompletionTokens)
	if outputTokens == 0 {
		outputTokens = EstimateTokens(summary)
	}

	return successResult(req.ModelID, domain.FamilyRemote, summary, elapsed, inputTokens, outputTokens)
}

func (a *RemoteAdapter) classify(err error) (domain.ErrorKind, string) {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		msg := strings.TrimSpace(apiErr.Message)
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %d", apiErr.StatusCode)
		}

		return classifyStatusCode(apiErr.StatusCode), msg
	}

	return classifyTransportError(err)
}
