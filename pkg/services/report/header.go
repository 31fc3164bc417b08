package report

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ajb0730/pc2xl/pkg/models/domain"
	"github.com/rs/zerolog"
)

// ErrNoMorePages signals that the buffer ran out before another page
// started. It ends the document, not the program.
var ErrNoMorePages = errors.New("no more pages")

var (
	// v9 prints the run timestamp, date range and page number on one line.
	v9HeaderRe = regexp.MustCompile(
		`^(\d{2}/\d{2}/\d{4}\s+\d{1,2}:\d{2}\s+[AP]M)\s+(.+?):\s+(\d{2}/\d{2}/\d{4})\s+to\s+(\d{2}/\d{2}/\d{4})\s+Page:\s+(\d+)`)
	// v7 splits the same metadata across a range line and a run-date line.
	v7RangeRe = regexp.MustCompile(
		`^(.+?):\s+(\d{2}/\d{2}/\d{4})\s+to\s+(\d{2}/\d{2}/\d{4})\s*$`)
	v7RunRe = regexp.MustCompile(
		`^(.+?):\s+(\d{2}/\d{2}/\d{4})\s+Page:\s+(\d+)`)
	columnTitleRe = regexp.MustCompile(`(?i)^\s*fund\s*#?\s+description\s+amount\s*$`)
	reportWordRe  = regexp.MustCompile(`(?i)\breport\b`)
)

// ParseHeader consumes the header lines of the next page and returns its
// metadata. ErrNoMorePages means the buffer was exhausted before a title
// line; any other error means the input is not a recognized fund report and
// the whole file must be abandoned.
func ParseHeader(ctx context.Context, buf *LineBuffer) (*domain.ReportHeader, error) {
	logger := zerolog.Ctx(ctx)

	if n := buf.DropLeadingBlankLines(); n > 0 {
		logger.Debug().Int("skipped", n).Msg("dropped blank lines before title")
	}
	if buf.IsEmpty() {
		return nil, ErrNoMorePages
	}

	hdr := &domain.ReportHeader{}

	title, _ := buf.PopFront()
	title = strings.TrimSpace(title)

	buf.DropLeadingBlankLines()
	if buf.IsEmpty() {
		return nil, fmt.Errorf("header truncated after title %q", title)
	}

	// A lone "... Report" caption belongs in the sub-title slot; such
	// reports have no main title at all.
	if reportWordRe.MatchString(title) {
		hdr.SubTitle = title
	} else {
		hdr.MainTitle = title
		sub, _ := buf.PopFront()
		hdr.SubTitle = strings.TrimSpace(sub)
		buf.DropLeadingBlankLines()
		if buf.IsEmpty() {
			return nil, fmt.Errorf("header truncated after sub-title %q", hdr.SubTitle)
		}
	}

	line, _ := buf.PopFront()
	switch {
	case v9HeaderRe.MatchString(line):
		m := v9HeaderRe.FindStringSubmatch(line)
		hdr.RunDate = m[1]
		hdr.RangeStart = m[3]
		hdr.RangeEnd = m[4]
		hdr.Page = m[5]
		hdr.Dialect = domain.DialectV9
	case v7RangeRe.MatchString(line):
		m := v7RangeRe.FindStringSubmatch(line)
		hdr.RangeStart = m[2]
		hdr.RangeEnd = m[3]
		hdr.Dialect = domain.DialectV7

		buf.DropLeadingBlankLines()
		run, err := buf.PopFront()
		if err != nil {
			return nil, fmt.Errorf("v7 header missing run-date line: %w", err)
		}
		rm := v7RunRe.FindStringSubmatch(run)
		if rm == nil {
			return nil, fmt.Errorf("v7 header run-date line malformed: %q", run)
		}
		hdr.RunDate = rm[2]
		hdr.Page = rm[3]
	default:
		// Unrecognized metadata is tolerated; the column-title line below is
		// the structural anchor that decides whether this is a report.
		hdr.Dialect = domain.DialectUnknown
		logger.Warn().Str("line", line).Msg("header date line matched no known dialect")
	}

	buf.DropLeadingBlankLines()
	if buf.IsEmpty() {
		return nil, errors.New("header truncated before column titles")
	}
	cols, _ := buf.PopFront()
	if !columnTitleRe.MatchString(cols) {
		return nil, fmt.Errorf("line %q is not a fund/description/amount column title", cols)
	}

	buf.DropLeadingBlankLines()
	return hdr, nil
}
