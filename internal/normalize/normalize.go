// Package normalize turns a RawTable into a clean Dataset: positional
// column mapping, pt-BR percent/number parsing, and per-row validation
// with an audit trail of what was dropped and why.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quantbr/fiiscan/internal/core"
	"go.uber.org/zap"
)

// Drop reasons, one per excluded row (first failing rule wins, in rule
// order).
const (
	ReasonMissingDividendYield = "missing_dividend_yield"
	ReasonMissingPriceToBook   = "missing_price_to_book"
	ReasonMissingVacancyRate   = "missing_vacancy_rate"
	ReasonMissingLiquidity     = "missing_liquidity"
	ReasonNonPositiveLiquidity = "non_positive_liquidity"
	ReasonDuplicateTicker      = "duplicate_ticker"
)

// DropReport accounts for every input row: Kept plus the sum of Dropped
// equals Input.
type DropReport struct {
	Input   int
	Kept    int
	Dropped map[string]int
}

// TotalDropped returns the number of excluded rows.
func (r DropReport) TotalDropped() int {
	total := 0
	for _, n := range r.Dropped {
		total += n
	}
	return total
}

// Normalizer maps raw listing rows to FundRecords.
type Normalizer struct {
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Normalizer.
func New(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{logger: logger, now: time.Now}
}

// Normalize converts the raw table into a Dataset. Row-level failures are
// recovered by exclusion and counted; the operation itself fails only when
// a row does not match the 13-column schema.
func (n *Normalizer) Normalize(raw core.RawTable) (core.Dataset, DropReport, error) {
	report := DropReport{
		Input:   len(raw.Rows),
		Dropped: make(map[string]int),
	}

	records := make([]core.FundRecord, 0, len(raw.Rows))
	seen := make(map[string]struct{}, len(raw.Rows))

	for _, row := range raw.Rows {
		if len(row) != core.ColumnCount {
			return core.Dataset{}, DropReport{}, core.WrapError(core.ErrSchemaMismatch,
				fmt.Errorf("row has %d cells, expected %d", len(row), core.ColumnCount))
		}

		rec, reason, ok := buildRecord(row)
		if !ok {
			report.Dropped[reason]++
			continue
		}
		if _, dup := seen[rec.Ticker]; dup {
			report.Dropped[ReasonDuplicateTicker]++
			continue
		}
		seen[rec.Ticker] = struct{}{}
		records = append(records, rec)
	}

	report.Kept = len(records)
	if report.TotalDropped() > 0 {
		n.logger.Warn("rows excluded during normalization",
			zap.Int("input", report.Input),
			zap.Int("kept", report.Kept),
			zap.Any("dropped", report.Dropped),
		)
	}

	ds := core.Dataset{
		RefreshID: uuid.NewString(),
		FetchedAt: n.now(),
		Records:   records,
	}
	return ds, report, nil
}

// buildRecord parses one row and validates its critical metrics. The
// returned reason is set only when ok is false.
func buildRecord(row []core.RawCell) (core.FundRecord, string, bool) {
	dy, hasDY := ParsePercent(row[core.ColDividendYield])
	pvp, hasPVP := ParseFloat(row[core.ColPriceToBook])
	vac, hasVac := ParsePercent(row[core.ColVacancyRate])
	liq, hasLiq := ParseFloat(row[core.ColLiquidity])

	switch {
	case !hasDY:
		return core.FundRecord{}, ReasonMissingDividendYield, false
	case !hasPVP:
		return core.FundRecord{}, ReasonMissingPriceToBook, false
	case !hasVac:
		return core.FundRecord{}, ReasonMissingVacancyRate, false
	case !hasLiq:
		return core.FundRecord{}, ReasonMissingLiquidity, false
	case liq <= 0:
		return core.FundRecord{}, ReasonNonPositiveLiquidity, false
	}

	return core.FundRecord{
		Ticker:        cellText(row[core.ColTicker]),
		Segment:       cellText(row[core.ColSegment]),
		Quote:         floatOrNaN(row[core.ColQuote]),
		FFOYield:      percentOrNaN(row[core.ColFFOYield]),
		DividendYield: dy,
		PriceToBook:   pvp,
		MarketValue:   floatOrNaN(row[core.ColMarketValue]),
		Liquidity:     liq,
		PropertyCount: intOrZero(row[core.ColPropertyCount]),
		PricePerArea:  floatOrNaN(row[core.ColPricePerArea]),
		RentPerArea:   floatOrNaN(row[core.ColRentPerArea]),
		CapRate:       percentOrNaN(row[core.ColCapRate]),
		VacancyRate:   vac,
	}, "", true
}

// ParsePercent parses a percentage-bearing cell. Textual cells are cleaned
// pt-BR style: thousands '.' stripped, decimal ',' converted, trailing '%'
// removed. "1.234,56%" parses to 1234.56 and "12,3%" to 12.3. An empty
// result is null (ok=false). Numeric cells pass through unchanged.
func ParsePercent(cell core.RawCell) (float64, bool) {
	switch cell.Kind {
	case core.CellNumber:
		return cell.Number, true
	case core.CellText:
		cleaned := strings.ReplaceAll(cell.Text, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
		cleaned = strings.ReplaceAll(cleaned, "%", "")
		cleaned = strings.TrimSpace(cleaned)
		if cleaned == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// ParseFloat coerces a plain numeric cell. Unparseable values map to null
// rather than failing the row outright; validation decides what nulls mean.
func ParseFloat(cell core.RawCell) (float64, bool) {
	switch cell.Kind {
	case core.CellNumber:
		return cell.Number, true
	case core.CellText:
		cleaned := strings.ReplaceAll(strings.TrimSpace(cell.Text), ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
		n, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func cellText(cell core.RawCell) string {
	if cell.Kind == core.CellText {
		return strings.TrimSpace(cell.Text)
	}
	return ""
}

func floatOrNaN(cell core.RawCell) float64 {
	if n, ok := ParseFloat(cell); ok {
		return n
	}
	return math.NaN()
}

func percentOrNaN(cell core.RawCell) float64 {
	if n, ok := ParsePercent(cell); ok {
		return n
	}
	return math.NaN()
}

func intOrZero(cell core.RawCell) int {
	if n, ok := ParseFloat(cell); ok {
		return int(n)
	}
	return 0
}
