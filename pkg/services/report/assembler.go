package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/ajb0730/pc2xl/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Assemble drives header and record parsing across every page of one file
// and returns the reassembled document. The first page's header becomes the
// document header; later page headers only feed diagnostics. A page with no
// body records is valid, so the loop ends only when ParseHeader reports
// that the buffer is exhausted.
func Assemble(ctx context.Context, buf *LineBuffer) (*domain.ReportDocument, error) {
	logger := zerolog.Ctx(ctx)
	doc := &domain.ReportDocument{}
	pages := 0

	for {
		hdr, err := ParseHeader(ctx, buf)
		if errors.Is(err, ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pages+1, err)
		}
		pages++

		if doc.Header == nil {
			doc.Header = hdr
		}
		logger.Debug().
			Int("page", pages).
			Str("printed_page", hdr.Page).
			Stringer("dialect", hdr.Dialect).
			Msg("parsed page header")

		doc.Records = append(doc.Records, ParseRecords(ctx, buf)...)
	}

	logger.Info().Int("pages", pages).Int("records", len(doc.Records)).Msg("report assembled")
	return doc, nil
}
