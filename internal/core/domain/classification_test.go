package domain

import (
	"errors"
	"strings"
	"testing"
	"unicode"
)

func TestValidateDelimiter(t *testing.T) {
	tests := []struct {
		name      string
		delimiter string
		wantErr   bool
	}{
		{"underscore", "_", false},
		{"dash", "-", false},
		{"space", " ", false},
		{"dot", ".", true},
		{"empty", "", true},
		{"multi-char", "__", true},
		{"tab", "\t", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDelimiter(tt.delimiter)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDelimiter(%q) error = %v, wantErr %v", tt.delimiter, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidDelimiter) {
				t.Errorf("error = %v, want ErrInvalidDelimiter", err)
			}
		})
	}
}

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantKeywords []string
		wantErr      error
	}{
		{
			name:         "plain JSON",
			raw:          `{"keywords": ["sunset", "beach"]}`,
			wantKeywords: []string{"sunset", "beach"},
		},
		{
			name:         "json code fence",
			raw:          "```json\n{\"keywords\": [\"sunset\", \"beach\"]}\n```",
			wantKeywords: []string{"sunset", "beach"},
		},
		{
			name:         "bare code fence",
			raw:          "```\n{\"keywords\": [\"dog\"]}\n```",
			wantKeywords: []string{"dog"},
		},
		{
			name:         "surrounding whitespace",
			raw:          "  \n{\"keywords\": [\"cat\"]}\n  ",
			wantKeywords: []string{"cat"},
		},
		{
			name:         "empty keyword array",
			raw:          `{"keywords": []}`,
			wantKeywords: []string{},
		},
		{
			name:    "truncated JSON",
			raw:     `{"keywords": ["sunset", trunc`,
			wantErr: ErrMalformedResponse,
		},
		{
			name:    "prose instead of JSON",
			raw:     "The image shows a sunset over a beach.",
			wantErr: ErrMalformedResponse,
		},
		{
			name:    "missing keywords field",
			raw:     `{"labels": ["sunset"]}`,
			wantErr: ErrMissingKeywords,
		},
		{
			name:    "null keywords field",
			raw:     `{"keywords": null}`,
			wantErr: ErrMissingKeywords,
		},
		{
			name:    "keywords not an array of strings",
			raw:     `{"keywords": [1, 2, 3]}`,
			wantErr: ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClassification(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClassification() error = %v", err)
			}
			if len(got.Keywords) != len(tt.wantKeywords) {
				t.Fatalf("Keywords = %v, want %v", got.Keywords, tt.wantKeywords)
			}
			for i, kw := range tt.wantKeywords {
				if got.Keywords[i] != kw {
					t.Errorf("Keywords[%d] = %q, want %q", i, got.Keywords[i], kw)
				}
			}
		})
	}
}

func TestClassificationFilename(t *testing.T) {
	tests := []struct {
		name      string
		keywords  []string
		delimiter string
		want      string
	}{
		{
			name:      "drops keyword with digit and keeps first five survivors",
			keywords:  []string{"sunset", "beach", "ocean2", "wave", "sky", "cloud"},
			delimiter: "_",
			want:      "sunset_beach_wave_sky_cloud",
		},
		{
			name:      "replaces internal spaces with delimiter",
			keywords:  []string{"golden retriever", "park"},
			delimiter: "-",
			want:      "golden-retriever-park",
		},
		{
			name:      "space delimiter",
			keywords:  []string{"red", "balloon"},
			delimiter: " ",
			want:      "red balloon",
		},
		{
			name:      "all keywords contain digits",
			keywords:  []string{"route66", "2cars", "3rd street"},
			delimiter: "_",
			want:      "",
		},
		{
			name:      "empty keyword set",
			keywords:  []string{},
			delimiter: "_",
			want:      "",
		},
		{
			name:      "truncates to five after filtering",
			keywords:  []string{"a", "b", "c", "d", "e", "f", "g"},
			delimiter: "_",
			want:      "a_b_c_d_e",
		},
		{
			name:      "unicode digit is still a digit",
			keywords:  []string{"temple٣", "garden"},
			delimiter: "_",
			want:      "garden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Classification{Keywords: tt.keywords}
			if got := c.Filename(tt.delimiter); got != tt.want {
				t.Errorf("Filename(%q) = %q, want %q", tt.delimiter, got, tt.want)
			}
		})
	}
}

func TestFilenameProperties(t *testing.T) {
	// Regardless of input, the result never joins more than MaxKeywords
	// entries and never contains a digit.
	inputs := [][]string{
		{"one", "two", "three", "four", "five", "six", "seven", "eight"},
		{"a1", "b2", "c", "d", "e", "f", "g", "h"},
		{"multi word keyword", "another one here", "x", "y", "z", "w"},
	}

	for _, delimiter := range []string{"_", "-"} {
		for _, keywords := range inputs {
			c := &Classification{Keywords: keywords}
			got := c.Filename(delimiter)
			if got == "" {
				continue
			}
			if parts := strings.Split(got, delimiter); len(parts) > MaxKeywords*3 {
				// Parts can exceed MaxKeywords only through space replacement
				// inside surviving keywords, never through extra keywords.
				t.Errorf("Filename(%q) = %q, too many segments", delimiter, got)
			}
			if strings.ContainsFunc(got, unicode.IsDigit) {
				t.Errorf("Filename(%q) = %q contains a digit", delimiter, got)
			}
		}
	}
}
