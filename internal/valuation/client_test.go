package valuation

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestParseAppraisal(t *testing.T) {
	tests := []struct {
		name  string
		html  string
		want  float64
		found bool
	}{
		{
			name:  "value in element text",
			html:  `<div class="appraisal-value">$1,250</div>`,
			want:  1250,
			found: true,
		},
		{
			name:  "value in data attribute",
			html:  `<span data-appraisal="9800.50"></span>`,
			want:  9800.50,
			found: true,
		},
		{
			name:  "skips unparseable candidates",
			html:  `<div class="appraisal-value">pending</div><div class="appraisal-value">420</div>`,
			want:  420,
			found: true,
		},
		{
			name:  "no value present",
			html:  `<div class="other">nothing here</div>`,
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(tt.html))
			if err != nil {
				t.Fatalf("failed to build document: %v", err)
			}

			got, found := parseAppraisal(doc)
			if found != tt.found {
				t.Fatalf("found = %v, want %v", found, tt.found)
			}
			if found && got != tt.want {
				t.Errorf("parseAppraisal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in    string
		want  float64
		valid bool
	}{
		{"$1,250", 1250, true},
		{"  €950.75 ", 950.75, true},
		{"1000000", 1000000, true},
		{"", 0, false},
		{"n/a", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseMoney(tt.in)
		if ok != tt.valid {
			t.Errorf("parseMoney(%q) valid = %v, want %v", tt.in, ok, tt.valid)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("parseMoney(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
