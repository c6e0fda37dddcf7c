// pkg/parser/parser.go
package parser

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"github.com/NivBraz/linefreq/internal/models"
)

// DefaultMaxLineSize is the longest line ParseLines accepts unless told otherwise.
const DefaultMaxLineSize = 16 * 1024 * 1024

// ErrInvalidUTF8 is returned when a line is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

type Parser struct {
	maxLineSize int
	logger      *log.Logger
}

// New returns a Parser. A non-positive maxLineSize selects DefaultMaxLineSize
// and a nil logger discards progress messages.
func New(maxLineSize int, logger *log.Logger) *Parser {
	if maxLineSize <= 0 {
		maxLineSize = DefaultMaxLineSize
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Parser{
		maxLineSize: maxLineSize,
		logger:      logger,
	}
}

// ParseLines reads r line by line and returns every line with surrounding
// whitespace trimmed. Lines that are blank after trimming are dropped,
// duplicates are kept in input order.
func (p *Parser) ParseLines(ctx context.Context, r io.Reader) ([]string, error) {
	// The buffer also holds the line terminator, up to two bytes for "\r\n".
	bufSize := p.maxLineSize + 2
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, bufSize)), bufSize)
	scanner.Split(scanLines)

	progress := rate.Sometimes{Interval: time.Second}
	var lines []string
	lineNo := 0

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lineNo++

		raw := scanner.Bytes()
		if len(raw) > p.maxLineSize {
			return nil, fmt.Errorf("line %d longer than %d bytes: %w", lineNo, p.maxLineSize, bufio.ErrTooLong)
		}
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrInvalidUTF8)
		}

		if line := strings.TrimFunc(string(raw), isSpace); line != "" {
			lines = append(lines, line)
		}

		progress.Do(func() {
			p.logger.Printf("read %d lines (%d kept)", lineNo, len(lines))
		})
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("line %d longer than %d bytes: %w", lineNo+1, p.maxLineSize, err)
		}
		return nil, fmt.Errorf("error reading lines: %w", err)
	}

	p.logger.Printf("read %d lines, %d non-blank", lineNo, len(lines))
	return lines, nil
}

// scanLines splits on "\n", "\r\n" and a lone "\r".
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// A "\n" may follow in the next read.
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// isSpace reports whether r is trimmed from line ends. The file, group,
// record and unit separators (0x1C-0x1F) count as whitespace here.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// SortLineCounts sorts entries by count (descending). Entries with the same
// count keep their relative order.
func SortLineCounts(entries []models.LineCount) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
}

// Render formats entries as "<line> → <count> fois", one per line, with no
// trailing newline.
func Render(entries []models.LineCount) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s → %d fois", e.Line, e.Count)
	}
	return b.String()
}
