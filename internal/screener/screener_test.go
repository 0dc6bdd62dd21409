package screener

import (
	"math"
	"testing"

	"github.com/quantbr/fiiscan/internal/core"
)

func rec(ticker, segment string, dy, pvp, vacancy, liquidity float64) core.FundRecord {
	return core.FundRecord{
		Ticker:        ticker,
		Segment:       segment,
		DividendYield: dy,
		PriceToBook:   pvp,
		VacancyRate:   vacancy,
		Liquidity:     liquidity,
	}
}

// The three-record scenario from the screening contract: B outranks A on
// yield, C falls below the yield floor.
func scenario() core.Dataset {
	return core.Dataset{Records: []core.FundRecord{
		rec("A", "Shopping", 8.0, 0.9, 5.0, 50000),
		rec("B", "Shopping", 10.0, 1.2, 2.0, 200000),
		rec("C", "Logistics", 6.0, 0.8, 1.0, 80000),
	}}
}

func scenarioCriteria() core.FilterCriteria {
	return core.FilterCriteria{
		MinDividendYield: 7.0,
		MaxPriceToBook:   1.5,
		MaxVacancyRate:   10.0,
		MinLiquidity:     10000,
	}
}

func TestApply_Scenario(t *testing.T) {
	out := Apply(scenario(), scenarioCriteria())

	if out.Size() != 2 {
		t.Fatalf("expected 2 records, got %d", out.Size())
	}
	if out.Records[0].Ticker != "B" || out.Records[1].Ticker != "A" {
		t.Errorf("expected order [B, A], got [%s, %s]",
			out.Records[0].Ticker, out.Records[1].Ticker)
	}
}

func TestApply_InclusiveBounds(t *testing.T) {
	ds := core.Dataset{Records: []core.FundRecord{
		rec("X", "Lajes", 7.0, 1.5, 10.0, 10000),
	}}
	out := Apply(ds, scenarioCriteria())
	if out.Size() != 1 {
		t.Error("records exactly on every bound must pass")
	}
}

func TestApply_StableSort(t *testing.T) {
	ds := core.Dataset{Records: []core.FundRecord{
		rec("T1", "Lajes", 8.0, 0.9, 1.0, 10000),
		rec("T2", "Lajes", 9.0, 0.9, 1.0, 10000),
		rec("T3", "Lajes", 8.0, 0.9, 1.0, 10000),
		rec("T4", "Lajes", 8.0, 0.9, 1.0, 10000),
	}}
	out := Apply(ds, core.FilterCriteria{MaxPriceToBook: 2, MaxVacancyRate: 100})

	want := []string{"T2", "T1", "T3", "T4"}
	for i, w := range want {
		if out.Records[i].Ticker != w {
			t.Fatalf("position %d: expected %s, got %s (equal yields must keep input order)",
				i, w, out.Records[i].Ticker)
		}
	}
}

func TestApply_Monotonicity(t *testing.T) {
	ds := scenario()
	base := scenarioCriteria()

	prev := Apply(ds, base).Size()
	for _, minDY := range []float64{7.5, 8.5, 9.5, 10.5} {
		c := base
		c.MinDividendYield = minDY
		got := Apply(ds, c).Size()
		if got > prev {
			t.Errorf("raising min_dividend_yield to %.1f grew the result: %d > %d",
				minDY, got, prev)
		}
		prev = got
	}
}

func TestApply_EmptyInput(t *testing.T) {
	out := Apply(core.Dataset{}, scenarioCriteria())
	if !out.Empty() {
		t.Error("empty dataset must filter to an empty dataset")
	}
}

func TestApply_EmptyResult(t *testing.T) {
	c := scenarioCriteria()
	c.MinDividendYield = 50
	out := Apply(scenario(), c)
	if !out.Empty() {
		t.Error("an empty result is a valid outcome")
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	ds := scenario()
	Apply(ds, scenarioCriteria())
	if ds.Records[0].Ticker != "A" || ds.Size() != 3 {
		t.Error("input dataset was mutated")
	}
}

func TestComputeBounds(t *testing.T) {
	b, ok := ComputeBounds(scenario())
	if !ok {
		t.Fatal("expected bounds for a non-empty dataset")
	}

	if b.DividendYield != (Range{Min: 6.0, Max: 10.0}) {
		t.Errorf("unexpected dividend yield range: %+v", b.DividendYield)
	}
	if b.PriceToBook != (Range{Min: 0.8, Max: 1.2}) {
		t.Errorf("unexpected price to book range: %+v", b.PriceToBook)
	}
	if b.VacancyRate != (Range{Min: 1.0, Max: 5.0}) {
		t.Errorf("unexpected vacancy range: %+v", b.VacancyRate)
	}
	if b.Liquidity.Min != 50000 {
		t.Errorf("unexpected liquidity min: %v", b.Liquidity.Min)
	}
	// p95 of [50000, 80000, 200000] with linear interpolation:
	// pos = 0.95*2 = 1.9 -> 80000 + 0.9*(200000-80000) = 188000.
	if math.Abs(b.Liquidity.Max-188000) > 1e-9 {
		t.Errorf("expected liquidity p95 188000, got %v", b.Liquidity.Max)
	}
}

func TestComputeBounds_Empty(t *testing.T) {
	if _, ok := ComputeBounds(core.Dataset{}); ok {
		t.Error("empty dataset has no bounds")
	}
}

func TestBounds_Widest(t *testing.T) {
	b, _ := ComputeBounds(scenario())
	out := Apply(scenario(), b.Widest())
	if out.Size() != 3 {
		t.Errorf("widest criteria must keep every record, got %d", out.Size())
	}
}

func TestSummarize(t *testing.T) {
	full := scenario()
	filtered := Apply(full, scenarioCriteria())
	s := Summarize(filtered, full)

	if s.Found != 2 || s.Total != 3 {
		t.Errorf("unexpected counts: %+v", s)
	}
	if s.MeanDividendYield != 9.0 {
		t.Errorf("expected mean DY 9.0, got %v", s.MeanDividendYield)
	}
	if math.Abs(s.MeanPriceToBook-1.05) > 1e-9 {
		t.Errorf("expected mean P/VP 1.05, got %v", s.MeanPriceToBook)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(core.Dataset{}, scenario())
	if s.Found != 0 || s.Total != 3 || s.MeanDividendYield != 0 {
		t.Errorf("unexpected empty summary: %+v", s)
	}
}
