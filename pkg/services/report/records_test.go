package report

import (
	"context"
	"testing"

	"github.com/ajb0730/pc2xl/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecords_FundLine(t *testing.T) {
	buf := FromLines([]string{"101 General Fund        1,234.56"})

	records := ParseRecords(context.Background(), buf)

	require.Len(t, records, 1)
	assert.Equal(t, domain.LineItemRecord{
		FundCode:    "101",
		Description: "General Fund",
		Amount:      "1234.56",
	}, records[0])
}

func TestParseRecords_ContinuationLine(t *testing.T) {
	buf := FromLines([]string{"        Sub-total            -50.00"})

	records := ParseRecords(context.Background(), buf)

	require.Len(t, records, 1)
	assert.Equal(t, domain.LineItemRecord{
		FundCode:    "",
		Description: "Sub-total",
		Amount:      "-50.00",
	}, records[0])
}

func TestParseRecords_BlankLinesAreSkipped(t *testing.T) {
	buf := FromLines([]string{
		"101 General Fund        100.00",
		"",
		"   ",
		"102 Building Fund        50.00",
	})

	records := ParseRecords(context.Background(), buf)

	require.Len(t, records, 2)
	assert.Equal(t, "101", records[0].FundCode)
	assert.Equal(t, "102", records[1].FundCode)
}

func TestParseRecords_NonRecordLineEndsPage(t *testing.T) {
	buf := FromLines([]string{
		"101 General Fund        100.00",
		"        Grace Community Church",
		"102 Building Fund        50.00",
	})

	records := ParseRecords(context.Background(), buf)

	require.Len(t, records, 1)
	assert.Equal(t, "101", records[0].FundCode)
	// The terminating line stays put for the next header parse.
	assert.Equal(t, "        Grace Community Church", buf.PeekFront())
}

func TestParseRecords_TrailingPageBreakEndsPage(t *testing.T) {
	buf := FromLines([]string{
		"101 General Fund        100.00",
		"102 Building Fund        50.00\f",
		"103 Missions Fund        25.00",
	})

	records := ParseRecords(context.Background(), buf)

	require.Len(t, records, 2)
	assert.Equal(t, "50.00", records[1].Amount, "page break must not leak into the amount")
	assert.Equal(t, "103 Missions Fund        25.00", buf.PeekFront())
}

func TestParseRecords_LeadingPageBreakIsStripped(t *testing.T) {
	buf := FromLines([]string{
		"101 General Fund        100.00",
		"\f        Grace Community Church",
	})

	ParseRecords(context.Background(), buf)

	assert.Equal(t, "        Grace Community Church", buf.PeekFront())
}

func TestParseRecords_EmptyBuffer(t *testing.T) {
	records := ParseRecords(context.Background(), FromLines(nil))
	assert.Empty(t, records)
}

func TestNormalizeAmount(t *testing.T) {
	assert.Equal(t, "12345.67", NormalizeAmount("12,345.67"))
	assert.Equal(t, "-1234.56", NormalizeAmount("-1,234.56"))
	// Normalizing twice changes nothing.
	assert.Equal(t, "12345.67", NormalizeAmount(NormalizeAmount("12,345.67")))
}
