// Package pdftext turns PDF bytes into line-oriented plain text.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"beachtrack/internal/domain"
	"beachtrack/internal/port"
)

// wordGapRatio is the horizontal gap, as a fraction of the font size, above
// which two text runs on the same row are treated as separate words.
const wordGapRatio = 0.15

// ExtractionError reports that a binary could not be read as a PDF.
// It matches domain.ErrExtractionFailed with errors.Is.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: %v", domain.ErrExtractionFailed, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func (e *ExtractionError) Is(target error) bool {
	return target == domain.ErrExtractionFailed
}

// Extractor implements port.TextExtractor on top of github.com/ledongthuc/pdf.
type Extractor struct{}

// NewExtractor creates a PDF text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the text of every page, one output line per text row.
// A readable PDF without any text yields "" and no error.
func (e *Extractor) Extract(ctx context.Context, data []byte) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", &ExtractionError{Err: fmt.Errorf("empty input")}
	}

	// The PDF library panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Err: fmt.Errorf("malformed pdf: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Err: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", &ExtractionError{Err: fmt.Errorf("page %d: %w", i, err)}
		}
		for _, row := range rows {
			line := RowText(row)
			if strings.TrimSpace(line) == "" {
				continue
			}
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}

// RowText joins the text runs of one row, inserting a space wherever the gap
// between consecutive runs is wide enough to be a word break.
func RowText(row *pdf.Row) string {
	if row == nil {
		return ""
	}
	var sb strings.Builder
	var prevEnd float64
	for i, t := range row.Content {
		if i > 0 && needsSpace(sb.String(), t, prevEnd) {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	return sb.String()
}

func needsSpace(built string, next pdf.Text, prevEnd float64) bool {
	if built == "" || strings.HasSuffix(built, " ") || strings.HasPrefix(next.S, " ") {
		return false
	}
	return next.X-prevEnd > next.FontSize*wordGapRatio
}

// Compile-time check.
var _ port.TextExtractor = (*Extractor)(nil)
