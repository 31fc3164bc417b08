package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ajb0730/pc2xl/pkg/models/domain"
)

const (
	DefaultPrefix    = "s###_"
	DefaultSeparator = ";"
)

// Options control the delimited output shape.
type Options struct {
	Prefix    string
	Separator string
}

func DefaultOptions() Options {
	return Options{
		Prefix:    DefaultPrefix,
		Separator: DefaultSeparator,
	}
}

// Reporter renders an assembled document as delimiter-joined rows.
type Reporter struct {
	writer io.Writer
	opts   Options
}

func NewReporter(writer io.Writer, opts Options) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	if opts.Separator == "" {
		opts.Separator = DefaultSeparator
	}
	return &Reporter{writer: writer, opts: opts}
}

// Handle writes the column-title row followed by one row per record. It
// reads the document without modifying it, so repeated calls produce
// identical output.
func (r *Reporter) Handle(doc *domain.ReportDocument) error {
	for _, row := range Rows(doc, r.opts) {
		if _, err := fmt.Fprintln(r.writer, strings.Join(row, r.opts.Separator)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}

// Rows materializes the output rows without writing them. Records with no
// fund code are continuation lines: their text moves into the fund column
// (prefix applied) and the description column is left empty, so sub-total
// rows survive spreadsheet import without claiming a fund number.
func Rows(doc *domain.ReportDocument, opts Options) [][]string {
	rows := make([][]string, 0, len(doc.Records)+1)
	rows = append(rows, []string{
		opts.Prefix + "Fund#",
		opts.Prefix + "Description",
		opts.Prefix + "Amount",
	})
	for _, rec := range doc.Records {
		if rec.FundCode == "" {
			rows = append(rows, []string{opts.Prefix + rec.Description, "", rec.Amount})
			continue
		}
		rows = append(rows, []string{rec.FundCode, rec.Description, rec.Amount})
	}
	return rows
}
