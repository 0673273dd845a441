// Package provider translates generic summarization requests into wire
// calls for one backend family and normalizes replies and failures.
package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sumarena/internal/domain"
)

// Adapter is the capability set shared by every backend family.
//
// CheckAvailability and Summarize never return errors: failures are
// carried inside the ProviderStatus or SummarizationResult. Both respect
// the deadline of the context they are given and are safe for concurrent
// use with independent inputs.
type Adapter interface {
	Family() domain.ProviderFamily
	IsConfigured() bool
	CheckAvailability(ctx context.Context) domain.ProviderStatus
	Summarize(ctx context.Context, req domain.SummarizationRequest) domain.SummarizationResult
}

const promptTemplate = "Please provide a concise summary of the following text " +
	"in approximately %d words. Focus on the main points and key information:" +
	"\n\n%s\n\nSummary:"

// num_predict / max_completion_tokens headroom over the requested word count.
const outputTokenGrowthFactor = 2

func summaryPrompt(text string, maxWords int) string {
	return fmt.Sprintf(promptTemplate, maxWords, text)
}

// EstimateTokens approximates a token count as the whitespace-separated
// word count. Used whenever a backend does not report real usage.
func EstimateTokens(text string) int {
	return len(strings.Fields(text))
}

func successResult(
	modelID string,
	family domain.ProviderFamily,
	summary string,
	elapsed time.Duration,
	inputTokens int,
	outputTokens int,
) domain.SummarizationResult {
	return domain.SummarizationResult{
		ModelID:              modelID,
		Family:               family,
		Success:              true,
		Summary:              summary,
		Elapsed:              elapsed,
		InputTokensEstimate:  inputTokens,
		OutputTokensEstimate: outputTokens,
		Timestamp:            time.Now(),
	}
}

func failureResult(
	modelID string,
	family domain.ProviderFamily,
	kind domain.ErrorKind,
	message string,
	elapsed time.Duration,
) domain.SummarizationResult {
	return domain.SummarizationResult{
		ModelID:    modelID,
		Family:     family,
		Elapsed:    elapsed,
		ErrKind:    kind,
		ErrMessage: message,
		Timestamp:  time.Now(),
	}
}

func unreachableStatus(
	family domain.ProviderFamily,
	diagnostic string,
	checkedAt time.Time,
) domain.ProviderStatus {
	return domain.ProviderStatus{
		Family:     family,
		Diagnostic: diagnostic,
		CheckedAt:  checkedAt,
	}
}
