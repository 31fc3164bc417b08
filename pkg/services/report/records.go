package report

import (
	"context"
	"regexp"
	"strings"

	"github.com/ajb0730/pc2xl/pkg/models/domain"
	"github.com/rs/zerolog"
)

// pageBreak separates pages; it carries no data of its own.
const pageBreak = "\f"

// A record line is an optional 3-digit fund code, free description text and
// a signed two-decimal amount, possibly trailed by whitespace or a stray
// control character.
var recordRe = regexp.MustCompile(`^(\d{3})?\s*(.+?)\s+(-?(?:\d+,)*\d+\.\d{2})[\s\x00-\x1f]*$`)

// ParseRecords consumes body lines of the current page until a page-break
// marker or a line that does not parse as a record. The non-record line is
// left in the buffer for the next header parse; running out of records is
// never an error here.
func ParseRecords(ctx context.Context, buf *LineBuffer) []domain.LineItemRecord {
	logger := zerolog.Ctx(ctx)
	var records []domain.LineItemRecord

	for !buf.IsEmpty() {
		line := buf.PeekFront()
		if strings.TrimSpace(line) == "" {
			_, _ = buf.PopFront()
			continue
		}

		m := recordRe.FindStringSubmatch(line)
		if m == nil {
			break
		}
		_, _ = buf.PopFront()

		rec := domain.LineItemRecord{
			FundCode:    strings.TrimSpace(m[1]),
			Description: strings.TrimSpace(m[2]),
			Amount:      NormalizeAmount(m[3]),
		}
		records = append(records, rec)

		if endsPage(line) {
			break
		}
	}

	// A page break that landed at the front of the next line is only a
	// separator; strip it so the next header parse sees clean text.
	if !buf.IsEmpty() {
		if front := buf.PeekFront(); strings.HasPrefix(front, pageBreak) {
			buf.ReplaceFront(strings.TrimPrefix(front, pageBreak))
		}
	}

	logger.Debug().Int("records", len(records)).Msg("page records collected")
	return records
}

// NormalizeAmount strips thousands separators. The result always matches
// -?digits.digits{2} and normalizing again is a no-op.
func NormalizeAmount(amount string) string {
	return strings.ReplaceAll(amount, ",", "")
}

func endsPage(line string) bool {
	return strings.HasSuffix(strings.TrimRight(line, " \t"), pageBreak)
}
