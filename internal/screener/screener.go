// Package screener evaluates threshold criteria against a Dataset and
// derives the valid input ranges for those thresholds.
package screener

import (
	"math"
	"sort"

	"github.com/quantbr/fiiscan/internal/core"
)

// Apply returns the records matching the criteria, sorted by dividend
// yield descending. The sort is stable: equal yields keep their input
// order. The input dataset is never mutated and an empty result is a
// valid outcome.
func Apply(ds core.Dataset, c core.FilterCriteria) core.Dataset {
	out := make([]core.FundRecord, 0, len(ds.Records))
	for _, r := range ds.Records {
		if Matches(r, c) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DividendYield > out[j].DividendYield
	})
	return ds.WithRecords(out)
}

// Matches reports whether one record passes all four bounds. All bounds
// are inclusive.
func Matches(r core.FundRecord, c core.FilterCriteria) bool {
	return r.DividendYield >= c.MinDividendYield &&
		r.PriceToBook <= c.MaxPriceToBook &&
		r.VacancyRate <= c.MaxVacancyRate &&
		r.Liquidity >= c.MinLiquidity
}

// Range is a closed numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Bounds are the dataset-derived valid ranges for the filter thresholds.
// Liquidity's upper end is the 95th percentile so extreme outliers do not
// stretch the usable input range; the outliers themselves stay in the data.
type Bounds struct {
	DividendYield Range `json:"dividend_yield"`
	PriceToBook   Range `json:"price_to_book"`
	VacancyRate   Range `json:"vacancy_rate"`
	Liquidity     Range `json:"liquidity"`
}

// Widest returns the criteria that exclude nothing within the bounds.
func (b Bounds) Widest() core.FilterCriteria {
	return core.FilterCriteria{
		MinDividendYield: b.DividendYield.Min,
		MaxPriceToBook:   b.PriceToBook.Max,
		MaxVacancyRate:   b.VacancyRate.Max,
		MinLiquidity:     b.Liquidity.Min,
	}
}

// ComputeBounds derives the filter bounds from a dataset. ok is false for
// an empty dataset, which has no observable ranges.
func ComputeBounds(ds core.Dataset) (Bounds, bool) {
	if ds.Empty() {
		return Bounds{}, false
	}

	var b Bounds
	b.DividendYield = minMax(ds.Records, func(r core.FundRecord) float64 { return r.DividendYield })
	b.PriceToBook = minMax(ds.Records, func(r core.FundRecord) float64 { return r.PriceToBook })
	b.VacancyRate = minMax(ds.Records, func(r core.FundRecord) float64 { return r.VacancyRate })

	liq := make([]float64, len(ds.Records))
	for i, r := range ds.Records {
		liq[i] = r.Liquidity
	}
	sort.Float64s(liq)
	b.Liquidity = Range{Min: liq[0], Max: quantile(liq, 0.95)}

	return b, true
}

// Summary describes one screening run for the presentation layer.
type Summary struct {
	Found             int
	Total             int
	MeanDividendYield float64
	MeanPriceToBook   float64
}

// Summarize computes the headline numbers for a filtered dataset against
// the full dataset it came from. Means are zero when nothing matched.
func Summarize(filtered, full core.Dataset) Summary {
	s := Summary{Found: filtered.Size(), Total: full.Size()}
	if filtered.Empty() {
		return s
	}
	var dy, pvp float64
	for _, r := range filtered.Records {
		dy += r.DividendYield
		pvp += r.PriceToBook
	}
	n := float64(filtered.Size())
	s.MeanDividendYield = dy / n
	s.MeanPriceToBook = pvp / n
	return s
}

func minMax(records []core.FundRecord, field func(core.FundRecord) float64) Range {
	r := Range{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, rec := range records {
		v := field(rec)
		if v < r.Min {
			r.Min = v
		}
		if v > r.Max {
			r.Max = v
		}
	}
	return r
}

// quantile interpolates linearly between order statistics. Input must be
// sorted and non-empty.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
