package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sumarena/internal/document"
	"sumarena/internal/domain"
	"sumarena/internal/orchestrator"
)

type modelResponse struct {
	ID              string `json:"id"`
	Family          string `json:"family"`
	DisplayName     string `json:"display_name"`
	Vendor          string `json:"vendor"`
	SizeClass       string `json:"size_class"`
	DefaultMaxWords int    `json:"default_max_words"`
	MaxOutputWords  int    `json:"max_output_words"`
}

type statusResponse struct {
	Family     string    `json:"family"`
	Reachable  bool      `json:"reachable"`
	Models     []string  `json:"models"`
	Diagnostic string    `json:"diagnostic,omitempty"`
	CheckedAt  time.Time `json:"checked_at"`
}

type sampleResponse struct {
	Title     string `json:"title"`
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
}

type documentRequest struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type documentResponse struct {
	Text      string `json:"text"`
	Source    string `json:"source"`
	WordCount int    `json:"word_count"`
}

type summarizeRequest struct {
	Text     string   `json:"text"`
	URL      string   `json:"url"`
	ModelIDs []string `json:"model_ids"`
	MaxWords int      `json:"max_words"`
}

type resultResponse struct {
	ModelID string `json:"model_id"`
	Family  string `json:"family"`
	Success bool   `json:"success"`

	Summary              string `json:"summary,omitempty"`
	ElapsedMs            int64  `json:"elapsed_ms"`
	InputTokensEstimate  int    `json:"input_tokens_estimate,omitempty"`
	OutputTokensEstimate int    `json:"output_tokens_estimate,omitempty"`

	ErrorKind    string    `json:"error_kind,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

type modelMetricsResponse struct {
	ModelID          string  `json:"model_id"`
	WordsPerSecond   float64 `json:"words_per_second"`
	CharCount        int     `json:"char_count"`
	OutputInputRatio float64 `json:"output_input_ratio"`
}

type metricsResponse struct {
	PerModel            []modelMetricsResponse `json:"per_model"`
	FastestModelID      string                 `json:"fastest_model_id,omitempty"`
	SlowestModelID      string                 `json:"slowest_model_id,omitempty"`
	HighestRatioModelID string                 `json:"highest_ratio_model_id,omitempty"`
	Succeeded           int                    `json:"succeeded"`
	Failed              int                    `json:"failed"`
	AvgElapsedMs        int64                  `json:"avg_elapsed_ms"`
}

type summarizeResponse struct {
	Document documentResponse `json:"document"`
	Results  []resultResponse `json:"results"`
	Metrics  metricsResponse  `json:"metrics"`
}

func (s *Server) listModels(c *gin.Context) {
	descriptors := s.registry.ListAll()

	models := make([]modelResponse, len(descriptors))
	for i, d := range descriptors {
		models[i] = modelResponse{
			ID:              d.ID,
			Family:          string(d.Family),
			DisplayName:     d.DisplayName,
			Vendor:          d.Vendor,
			SizeClass:       d.SizeClass,
			DefaultMaxWords: d.DefaultMaxWords,
			MaxOutputWords:  d.MaxOutputWords,
		}
	}

	c.JSON(http.StatusOK, gin.H{"models": models})
}

func (s *Server) providerStatus(c *gin.Context) {
	ctx := c.Request.Context()
	families := s.prober.Families()

	var snapshot map[domain.ProviderFamily]domain.ProviderStatus
	if c.Query("refresh") == "true" {
		snapshot = s.prober.Snapshot(ctx, families, s.cfg.ProbeTimeout)
	} else {
		snapshot = s.prober.CachedSnapshot(ctx, families, s.cfg.ProbeTimeout, s.cfg.StatusMaxAge)
	}

	providers := make(map[string]statusResponse, len(snapshot))
	for family, status := range snapshot {
		providers[string(family)] = statusResponse{
			Family:     string(status.Family),
			Reachable:  status.Reachable,
			Models:     status.Models,
			Diagnostic: status.Diagnostic,
			CheckedAt:  status.CheckedAt,
		}
	}

	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

func (s *Server) listSamples(c *gin.Context) {
	all := document.Samples()

	samples := make([]sampleResponse, len(all))
	for i, sample := range all {
		doc, err := document.FromText(sample.Text)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		samples[i] = sampleResponse{
			Title:     sample.Title,
			Text:      doc.Text,
			WordCount: doc.WordCount,
		}
	}

	c.JSON(http.StatusOK, gin.H{"samples": samples})
}

func (s *Server) prepareDocument(c *gin.Context) {
	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, ok := s.resolveDocument(c, req.Text, req.URL)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, documentResponse{
		Text:      doc.Text,
		Source:    doc.Source,
		WordCount: doc.WordCount,
	})
}

func (s *Server) summarize(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, ok := s.resolveDocument(c, req.Text, req.URL)
	if !ok {
		return
	}

	results, metrics, err := s.orchestrator.SummarizeAll(
		c.Request.Context(), doc.Text, req.ModelIDs, req.MaxWords)
	if err != nil {
		if errors.Is(err, orchestrator.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	for _, res := range results {
		outcome := "success"
		if !res.Success {
			outcome = string(res.ErrKind)
		}

		summariesTotal.WithLabelValues(res.ModelID, outcome).Inc()
	}

	c.JSON(http.StatusOK, summarizeResponse{
		Document: documentResponse{
			Text:      doc.Text,
			Source:    doc.Source,
			WordCount: doc.WordCount,
		},
		Results: toResultResponses(results),
		Metrics: toMetricsResponse(metrics),
	})
}

// resolveDocument prepares the input from either pasted text or a URL.
// On failure it writes the error response itself and reports false.
func (s *Server) resolveDocument(c *gin.Context, text, rawURL string) (document.Document, bool) {
	if rawURL != "" {
		doc, err := document.FromURL(c.Request.Context(), s.fetchClient, rawURL)
		if err != nil {
			status := http.StatusBadGateway
			if errors.Is(err, document.ErrInvalidText) {
				status = http.StatusBadRequest
			}

			c.JSON(status, gin.H{"error": err.Error()})

			return document.Document{}, false
		}

		return doc, true
	}

	doc, err := document.FromText(text)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return document.Document{}, false
	}

	return doc, true
}

func toResultResponses(results []domain.SummarizationResult) []resultResponse {
	out := make([]resultResponse, len(results))
	for i, res := range results {
		out[i] = resultResponse{
			ModelID:              res.ModelID,
			Family:               string(res.Family),
			Success:              res.Success,
			Summary:              res.Summary,
			ElapsedMs:            res.Elapsed.Milliseconds(),
			InputTokensEstimate:  res.InputTokensEstimate,
			OutputTokensEstimate: res.OutputTokensEstimate,
			ErrorKind:            string(res.ErrKind),
			ErrorMessage:         res.ErrMessage,
			Timestamp:            res.Timestamp,
		}
	}

	return out
}

func toMetricsResponse(metrics orchestrator.ComparisonMetrics) metricsResponse {
	perModel := make([]modelMetricsResponse, len(metrics.PerModel))
	for i, pm := range metrics.PerModel {
		perModel[i] = modelMetricsResponse{
			ModelID:          pm.ModelID,
			WordsPerSecond:   pm.WordsPerSecond,
			CharCount:        pm.CharCount,
			OutputInputRatio: pm.OutputInputRatio,
		}
	}

	return metricsResponse{
		PerModel:            perModel,
		FastestModelID:      metrics.FastestModelID,
		SlowestModelID:      metrics.SlowestModelID,
		HighestRatioModelID: metrics.HighestRatioModelID,
		Succeeded:           metrics.Succeeded,
		Failed:              metrics.Failed,
		AvgElapsedMs:        metrics.AvgElapsed.Milliseconds(),
	}
}
