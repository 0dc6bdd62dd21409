package core

// ColumnCount is the number of columns the source table must have, in the
// fixed order of the column index constants below. Renaming is positional;
// header text is never inspected.
const ColumnCount = 13

// Column indices into a RawTable row.
const (
	ColTicker = iota
	ColSegment
	ColQuote
	ColFFOYield
	ColDividendYield
	ColPriceToBook
	ColMarketValue
	ColLiquidity
	ColPropertyCount
	ColPricePerArea
	ColRentPerArea
	ColCapRate
	ColVacancyRate
)

// CellKind discriminates the payload of a RawCell.
type CellKind int

const (
	CellMissing CellKind = iota
	CellText
	CellNumber
)

// RawCell is one table cell as extracted, before any field-specific
// parsing. A cell the source rendered as a plain pt-BR number arrives as
// CellNumber; anything else non-empty (percent strings, tickers, segment
// names) arrives as CellText.
type RawCell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// TextCell returns a text-valued cell.
func TextCell(s string) RawCell { return RawCell{Kind: CellText, Text: s} }

// NumberCell returns a numeric cell.
func NumberCell(f float64) RawCell { return RawCell{Kind: CellNumber, Number: f} }

// MissingCell returns an empty cell.
func MissingCell() RawCell { return RawCell{Kind: CellMissing} }

// RawTable is the listing exactly as extracted from the source document.
// Every row has ColumnCount cells.
type RawTable struct {
	Rows [][]RawCell
}
