package parser

import (
	"bufio"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/NivBraz/linefreq/internal/models"
)

func TestParseLines(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
		wantErr  error
	}{
		{
			name:     "Simple Lines",
			content:  "A\nB\nA\n   \nA\nB\n",
			expected: []string{"A", "B", "A", "A", "B"},
		},
		{
			name:     "Surrounding Whitespace",
			content:  "  grass \n\tgrass\t\ngrass",
			expected: []string{"grass", "grass", "grass"},
		},
		{
			name:     "Inner Whitespace Kept",
			content:  "dirt  road\ndirt road",
			expected: []string{"dirt  road", "dirt road"},
		},
		{
			name:     "CRLF Line Endings",
			content:  "A\r\nB\r\n\r\nA",
			expected: []string{"A", "B", "A"},
		},
		{
			name:     "Classic Mac Line Endings",
			content:  "A\rB\rA\r",
			expected: []string{"A", "B", "A"},
		},
		{
			name:     "Mixed Line Endings",
			content:  "A\r\nB\rC\n\r\rA",
			expected: []string{"A", "B", "C", "A"},
		},
		{
			name:     "Separator Characters Trimmed",
			content:  "A\x1f\n\x1cA\n\x1d\x1e\n",
			expected: []string{"A", "A"},
		},
		{
			name:     "Non ASCII",
			content:  "pavé\nneige\npavé",
			expected: []string{"pavé", "neige", "pavé"},
		},
		{
			name:     "Blank Lines Only",
			content:  "\n  \n\t\n",
			expected: make([]string, 0),
		},
		{
			name:     "Empty Content",
			content:  "",
			expected: make([]string, 0),
		},
		{
			name:    "Invalid UTF-8",
			content: "A\nB\xff\xfe\nC",
			wantErr: ErrInvalidUTF8,
		},
	}

	p := New(0, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.ParseLines(context.Background(), strings.NewReader(tt.content))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseLines() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLines() unexpected error = %v", err)
			}

			// Handle nil case
			if got == nil {
				got = make([]string, 0)
			}

			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseLines() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseLines_InvalidUTF8ReportsLine(t *testing.T) {
	p := New(0, nil)
	_, err := p.ParseLines(context.Background(), strings.NewReader("A\nB\xff\nC"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q does not name line 2", err)
	}
}

func TestParseLines_LineTooLong(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"exact size with LF", strings.Repeat("x", 16) + "\n", false},
		{"exact size with CRLF", strings.Repeat("x", 16) + "\r\n", false},
		{"exact size with CR", strings.Repeat("x", 16) + "\rA", false},
		{"exact size at EOF", strings.Repeat("x", 16), false},
		{"one byte over with LF", strings.Repeat("x", 17) + "\n", true},
		{"one byte over at EOF", strings.Repeat("x", 17), true},
		{"far over", "short\n" + strings.Repeat("x", 64) + "\n", true},
	}

	p := New(16, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseLines(context.Background(), strings.NewReader(tt.content))
			if tt.wantErr {
				if !errors.Is(err, bufio.ErrTooLong) {
					t.Fatalf("ParseLines() error = %v, want %v", err, bufio.ErrTooLong)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLines() unexpected error = %v", err)
			}
		})
	}
}

func TestParseLines_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(0, nil)
	_, err := p.ParseLines(ctx, strings.NewReader("A\nB\n"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("ParseLines() error = %v, want %v", err, context.Canceled)
	}
}

func TestSortLineCounts(t *testing.T) {
	tests := []struct {
		name     string
		input    []models.LineCount
		expected []models.LineCount
	}{
		{
			name: "Different Counts",
			input: []models.LineCount{
				{Line: "hello", Count: 1},
				{Line: "world", Count: 3},
				{Line: "test", Count: 2},
			},
			expected: []models.LineCount{
				{Line: "world", Count: 3},
				{Line: "test", Count: 2},
				{Line: "hello", Count: 1},
			},
		},
		{
			name: "Same Counts Keep Input Order",
			input: []models.LineCount{
				{Line: "zebra", Count: 2},
				{Line: "apple", Count: 2},
				{Line: "banana", Count: 2},
			},
			expected: []models.LineCount{
				{Line: "zebra", Count: 2},
				{Line: "apple", Count: 2},
				{Line: "banana", Count: 2},
			},
		},
		{
			name: "Mixed Ties",
			input: []models.LineCount{
				{Line: "c", Count: 1},
				{Line: "a", Count: 2},
				{Line: "d", Count: 1},
				{Line: "b", Count: 2},
			},
			expected: []models.LineCount{
				{Line: "a", Count: 2},
				{Line: "b", Count: 2},
				{Line: "c", Count: 1},
				{Line: "d", Count: 1},
			},
		},
		{
			name:     "Empty Slice",
			input:    make([]models.LineCount, 0),
			expected: make([]models.LineCount, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SortLineCounts(tt.input)
			if !reflect.DeepEqual(tt.input, tt.expected) {
				t.Errorf("SortLineCounts() = %v, want %v", tt.input, tt.expected)
			}
		})
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		input    []models.LineCount
		expected string
	}{
		{
			name: "Two Entries",
			input: []models.LineCount{
				{Line: "A", Count: 3},
				{Line: "B", Count: 2},
			},
			expected: "A → 3 fois\nB → 2 fois",
		},
		{
			name:     "Single Entry",
			input:    []models.LineCount{{Line: "surface=asphalt", Count: 1}},
			expected: "surface=asphalt → 1 fois",
		},
		{
			name:     "No Entries",
			input:    nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.input); got != tt.expected {
				t.Errorf("Render() = %q, want %q", got, tt.expected)
			}
		})
	}
}
