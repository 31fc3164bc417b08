package domain

// HeaderDialect identifies which header grammar a page matched.
type HeaderDialect int

const (
	DialectUnknown HeaderDialect = iota
	DialectV7
	DialectV9
)

func (d HeaderDialect) String() string {
	switch d {
	case DialectV7:
		return "v7"
	case DialectV9:
		return "v9"
	default:
		return "unknown"
	}
}

// ReportHeader holds the metadata printed at the top of each report page.
// MainTitle stays empty when the report's only title line is a generic
// "... Report" caption; RunDate and Page stay empty for dialects that omit
// them.
type ReportHeader struct {
	MainTitle  string
	SubTitle   string
	RunDate    string
	RangeStart string
	RangeEnd   string
	Page       string
	Dialect    HeaderDialect
}

// LineItemRecord is one body row of the report. An empty FundCode marks a
// continuation or sub-total row that carries text for the preceding record
// rather than a fund of its own.
type LineItemRecord struct {
	FundCode    string
	Description string
	Amount      string
}

// ReportDocument is the reassembled report: the first page's header plus
// every record across all pages in original file order.
type ReportDocument struct {
	Header  *ReportHeader
	Records []LineItemRecord
}
