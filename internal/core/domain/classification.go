package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// MaxKeywords caps how many keywords contribute to a derived filename.
const MaxKeywords = 5

var (
	// ErrInvalidDelimiter is returned for delimiters outside the accepted set.
	ErrInvalidDelimiter = errors.New("delimiter must be underscore '_', dash '-', or space ' '")

	// ErrMalformedResponse is returned when the model output is not valid JSON.
	ErrMalformedResponse = errors.New("response is not valid JSON")

	// ErrMissingKeywords is returned when the JSON lacks a "keywords" array.
	ErrMissingKeywords = errors.New(`response has no "keywords" field`)
)

// Classification holds the descriptive keywords a vision model produced for
// one image. It lives only long enough to derive a filename.
type Classification struct {
	Keywords []string `json:"keywords"`
}

// ValidateDelimiter checks a keyword delimiter against the accepted set.
// The CLI calls this before any file I/O happens.
func ValidateDelimiter(delimiter string) error {
	switch delimiter {
	case "_", "-", " ":
		return nil
	}
	return ErrInvalidDelimiter
}

// ParseClassification extracts a Classification from raw model output.
// Models routinely wrap their JSON in markdown code fences, so those are
// stripped before parsing. A syntactically invalid payload yields
// ErrMalformedResponse; valid JSON without a "keywords" array yields
// ErrMissingKeywords.
func ParseClassification(raw string) (*Classification, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var payload struct {
		Keywords *[]string `json:"keywords"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if payload.Keywords == nil {
		return nil, ErrMissingKeywords
	}

	return &Classification{Keywords: *payload.Keywords}, nil
}

// Filename joins the usable keywords into a new base name. Keywords
// containing a digit are dropped, internal spaces in survivors are replaced
// with the delimiter, at most MaxKeywords survivors are kept in their
// original order, and the result is joined with the delimiter.
//
// The result is empty when nothing survives; callers must never rename a
// file to an empty base name. The delimiter is assumed to have passed
// ValidateDelimiter at the boundary.
func (c *Classification) Filename(delimiter string) string {
	cleaned := make([]string, 0, len(c.Keywords))
	for _, keyword := range c.Keywords {
		if strings.ContainsFunc(keyword, unicode.IsDigit) {
			continue
		}
		cleaned = append(cleaned, strings.ReplaceAll(keyword, " ", delimiter))
	}

	if len(cleaned) > MaxKeywords {
		cleaned = cleaned[:MaxKeywords]
	}

	return strings.Join(cleaned, delimiter)
}
