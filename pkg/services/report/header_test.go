package report

import (
	"context"
	"testing"

	"github.com/ajb0730/pc2xl/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader_V9(t *testing.T) {
	buf := FromLines([]string{
		"        Grace Community Church",
		"",
		"     Contributions by Fund",
		"",
		"01/02/2023 10:15 AM Something: 01/01/2023 to 01/31/2023 Page: 1",
		"",
		"Fund # Description                      Amount",
		"",
	})

	hdr, err := ParseHeader(context.Background(), buf)
	require.NoError(t, err)

	assert.Equal(t, "Grace Community Church", hdr.MainTitle)
	assert.Equal(t, "Contributions by Fund", hdr.SubTitle)
	assert.Equal(t, "01/02/2023 10:15 AM", hdr.RunDate)
	assert.Equal(t, "01/01/2023", hdr.RangeStart)
	assert.Equal(t, "01/31/2023", hdr.RangeEnd)
	assert.Equal(t, "1", hdr.Page)
	assert.Equal(t, domain.DialectV9, hdr.Dialect)
	assert.True(t, buf.IsEmpty(), "header parse should consume trailing blanks")
}

func TestParseHeader_V7SplitHeader(t *testing.T) {
	buf := FromLines([]string{
		"Grace Community Church",
		"",
		"Contributions by Fund",
		"",
		"Something: 01/01/2023 to 01/31/2023",
		"Something: 01/02/2023 Page: 2",
		"",
		"Fund # Description Amount",
	})

	hdr, err := ParseHeader(context.Background(), buf)
	require.NoError(t, err)

	assert.Equal(t, "01/01/2023", hdr.RangeStart)
	assert.Equal(t, "01/31/2023", hdr.RangeEnd)
	assert.Equal(t, "01/02/2023", hdr.RunDate)
	assert.Equal(t, "2", hdr.Page)
	assert.Equal(t, domain.DialectV7, hdr.Dialect)
}

func TestParseHeader_ReportCaptionDemotesTitle(t *testing.T) {
	buf := FromLines([]string{
		"   Contribution Report",
		"",
		"01/02/2023 10:15 AM Something: 01/01/2023 to 01/31/2023 Page: 1",
		"Fund # Description Amount",
	})

	hdr, err := ParseHeader(context.Background(), buf)
	require.NoError(t, err)

	assert.Empty(t, hdr.MainTitle)
	assert.Equal(t, "Contribution Report", hdr.SubTitle)
	assert.Equal(t, domain.DialectV9, hdr.Dialect)
}

func TestParseHeader_UnknownDialectIsTolerated(t *testing.T) {
	buf := FromLines([]string{
		"Grace Community Church",
		"Contributions by Fund",
		"metadata line in no known shape",
		"Fund # Description Amount",
	})

	hdr, err := ParseHeader(context.Background(), buf)
	require.NoError(t, err)

	assert.Equal(t, domain.DialectUnknown, hdr.Dialect)
	assert.Empty(t, hdr.RunDate)
	assert.Empty(t, hdr.RangeStart)
	assert.Empty(t, hdr.RangeEnd)
	assert.Empty(t, hdr.Page)
}

func TestParseHeader_EndOfDocument(t *testing.T) {
	t.Run("empty buffer", func(t *testing.T) {
		_, err := ParseHeader(context.Background(), FromLines(nil))
		assert.ErrorIs(t, err, ErrNoMorePages)
	})

	t.Run("only blank lines", func(t *testing.T) {
		_, err := ParseHeader(context.Background(), FromLines([]string{"", "   ", "\t"}))
		assert.ErrorIs(t, err, ErrNoMorePages)
	})
}

func TestParseHeader_FatalConditions(t *testing.T) {
	t.Run("truncated after title", func(t *testing.T) {
		_, err := ParseHeader(context.Background(), FromLines([]string{"Grace Community Church", ""}))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoMorePages)
	})

	t.Run("truncated after sub-title", func(t *testing.T) {
		_, err := ParseHeader(context.Background(), FromLines([]string{
			"Grace Community Church",
			"Contributions by Fund",
		}))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoMorePages)
	})

	t.Run("v7 run-date line malformed", func(t *testing.T) {
		_, err := ParseHeader(context.Background(), FromLines([]string{
			"Grace Community Church",
			"Contributions by Fund",
			"Something: 01/01/2023 to 01/31/2023",
			"not a run-date line",
		}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "run-date")
	})

	t.Run("column title mismatch", func(t *testing.T) {
		_, err := ParseHeader(context.Background(), FromLines([]string{
			"Grace Community Church",
			"Contributions by Fund",
			"01/02/2023 10:15 AM Something: 01/01/2023 to 01/31/2023 Page: 1",
			"Member Name   Envelope   Total",
		}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "column title")
	})
}

func TestColumnTitleVariants(t *testing.T) {
	for _, line := range []string{
		"Fund # Description Amount",
		"Fund# Description Amount",
		"  FUND #    DESCRIPTION        AMOUNT  ",
		"fund  description  amount",
	} {
		assert.True(t, columnTitleRe.MatchString(line), "should match %q", line)
	}
}
