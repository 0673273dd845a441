package domain

import "time"

// ProviderFamily identifies one backend integration strategy.
type ProviderFamily string

const (
	// FamilyRemote covers cloud backends reached through a hosted
	// OpenAI-compatible API with an API key.
	FamilyRemote ProviderFamily = "remote"
	// FamilyLocal covers backends served by a local Ollama instance.
	FamilyLocal ProviderFamily = "local"
)

// ModelDescriptor is the registry entry for one model. Loaded once at
// process start and never mutated afterwards.
type ModelDescriptor struct {
	ID              string
	Family          ProviderFamily
	DisplayName     string
	Vendor          string
	SizeClass       string
	DefaultMaxWords int
	MaxOutputWords  int
}

// SummarizationRequest is one normalized summarize call against one model.
type SummarizationRequest struct {
	Text     string
	ModelID  string
	MaxWords int
}

// ErrorKind classifies why a summarize or probe call failed.
type ErrorKind string

const (
	ErrorUnknownModel      ErrorKind = "unknown_model"
	ErrorInvalidRequest    ErrorKind = "invalid_request"
	ErrorUnauthorized      ErrorKind = "unauthorized"
	ErrorUnreachable       ErrorKind = "unreachable"
	ErrorRateLimited       ErrorKind = "rate_limited"
	ErrorTimeout           ErrorKind = "timeout"
	ErrorMalformedResponse ErrorKind = "malformed_response"
	ErrorBackend           ErrorKind = "backend_error"
)

// SummarizationResult is the normalized outcome of one backend call,
// success or failure. Every requested model in a batch yields exactly one.
//
// Token counts are word-count estimates unless the backend reported real
// usage; they must never be read as exact tokenizer counts.
type SummarizationResult struct {
	ModelID string
	Family  ProviderFamily
	Success bool

	Summary              string
	Elapsed              time.Duration
	InputTokensEstimate  int
	OutputTokensEstimate int

	ErrKind    ErrorKind
	ErrMessage string

	Timestamp time.Time
}

// ProviderStatus is the outcome of one reachability probe for one family.
type ProviderStatus struct {
	Family     ProviderFamily
	Reachable  bool
	Models     []string
	Diagnostic string
	CheckedAt  time.Time
}
