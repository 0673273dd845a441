package orchestrator

import (
	"strings"
	"time"

	"sumarena/internal/domain"
)

// ModelMetrics compares one successful result against the input document.
type ModelMetrics struct {
	ModelID          string
	WordsPerSecond   float64
	CharCount        int
	OutputInputRatio float64
}

// ComparisonMetrics is derived from one batch of results. It has no
// lifecycle of its own and is empty when no call succeeded.
type ComparisonMetrics struct {
	PerModel []ModelMetrics

	// FastestModelID has the highest words-per-second among successes.
	FastestModelID      string
	SlowestModelID      string
	HighestRatioModelID string

	Succeeded  int
	Failed     int
	AvgElapsed time.Duration
}

// Compare computes comparison metrics over the successful subset of a
// batch. Failures only contribute to the Failed count.
func Compare(inputText string, results []domain.SummarizationResult) ComparisonMetrics {
	inputWords := len(strings.Fields(inputText))

	var m ComparisonMetrics
	var totalElapsed time.Duration

	for _, res := range results {
		if !res.Success {
			m.Failed++
			continue
		}

		m.Succeeded++
		totalElapsed += res.Elapsed

		outputWords := len(strings.Fields(res.Summary))

		var wps float64
		if seconds := res.Elapsed.Seconds(); seconds > 0 {
			wps = float64(outputWords) / seconds
		}

		var ratio float64
		if inputWords > 0 {
			ratio = float64(outputWords) / float64(inputWords)
		}

		m.PerModel = append(m.PerModel, ModelMetrics{
			ModelID:          res.ModelID,
			WordsPerSecond:   wps,
			CharCount:        len(res.Summary),
			OutputInputRatio: ratio,
		})
	}

	if m.Succeeded == 0 {
		return m
	}

	m.AvgElapsed = totalElapsed / time.Duration(m.Succeeded)

	fastest, slowest, highestRatio := m.PerModel[0], m.PerModel[0], m.PerModel[0]
	for _, pm := range m.PerModel[1:] {
		if pm.WordsPerSecond > fastest.WordsPerSecond {
			fastest = pm
		}
		if pm.WordsPerSecond < slowest.WordsPerSecond {
			slowest = pm
		}
		if pm.OutputInputRatio > highestRatio.OutputInputRatio {
			highestRatio = pm
		}
	}

	m.FastestModelID = fastest.ModelID
	m.SlowestModelID = slowest.ModelID
	m.HighestRatioModelID = highestRatio.ModelID

	return m
}
