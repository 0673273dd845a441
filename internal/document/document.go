// Package document prepares text for summarization: validation, fetching
// a pasted URL down to plain text, and built-in sample documents.
package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"mvdan.cc/xurls/v2"
)

// ErrInvalidText marks input that cannot be summarized.
var ErrInvalidText = errors.New("invalid text")

const (
	// MinWords and MaxWords bound what a single document may contain.
	MinWords = 50
	MaxWords = 10000

	maxFetchBytes = 4 << 20

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Document is one prepared input for an orchestration batch.
type Document struct {
	Text      string
	Source    string
	WordCount int
}

// Validate checks a text against the document bounds and returns its
// word count.
func Validate(text string) (int, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: text is empty", ErrInvalidText)
	}

	if !utf8.ValidString(trimmed) {
		return 0, fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidText)
	}

	words := len(strings.Fields(trimmed))
	if words < MinWords {
		return words, fmt.Errorf("%w: text too short: minimum %d words required, got %d",
			ErrInvalidText, MinWords, words)
	}
	if words > MaxWords {
		return words, fmt.Errorf("%w: text too long: maximum %d words allowed, got %d",
			ErrInvalidText, MaxWords, words)
	}

	return words, nil
}

// FromText validates pasted input and wraps it as a document.
func FromText(text string) (Document, error) {
	words, err := Validate(text)
	if err != nil {
		return Document{}, err
	}

	return Document{
		Text:      strings.TrimSpace(text),
		Source:    "input",
		WordCount: words,
	}, nil
}

// DetectURL reports whether the input is nothing but a single URL.
func DetectURL(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}

	re, err := xurls.StrictMatchingScheme("https?://")
	if err != nil {
		return "", false
	}

	match := re.FindString(trimmed)
	if match != trimmed {
		return "", false
	}

	return trimmed, true
}

// FromURL fetches a page and reduces it to readable text.
func FromURL(ctx context.Context, client *http.Client, rawURL string) (Document, error) {
	url, ok := DetectURL(rawURL)
	if !ok {
		return Document{}, fmt.Errorf("%w: not a valid URL: %q", ErrInvalidText, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Document{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return Document{}, fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Document{}, fmt.Errorf("fetch URL: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return Document{}, fmt.Errorf("parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, iframe").Remove()

	text := doc.Find("body").Text()
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	words, err := Validate(text)
	if err != nil {
		return Document{}, fmt.Errorf("extracted text: %w", err)
	}

	return Document{
		Text:      text,
		Source:    url,
		WordCount: words,
	}, nil
}
