// Package analytics groups a Dataset by segment and builds the per-segment
// summaries and comparison sets the presentation layer renders.
package analytics

import (
	"sort"

	"github.com/quantbr/fiiscan/internal/core"
)

// Aggregate groups the dataset by segment and computes the unweighted
// mean of each summary field over the segment's members. Summaries are
// ordered by count descending; ties keep the order in which the segment
// first appeared in the input. Segments with no members emit nothing, so
// every summary has Count >= 1.
func Aggregate(ds core.Dataset) []core.SegmentSummary {
	type acc struct {
		count     int
		dy        float64
		pvp       float64
		vacancy   float64
		liquidity float64
	}

	order := make([]string, 0)
	groups := make(map[string]*acc)

	for _, r := range ds.Records {
		g, ok := groups[r.Segment]
		if !ok {
			g = &acc{}
			groups[r.Segment] = g
			order = append(order, r.Segment)
		}
		g.count++
		g.dy += r.DividendYield
		g.pvp += r.PriceToBook
		g.vacancy += r.VacancyRate
		g.liquidity += r.Liquidity
	}

	summaries := make([]core.SegmentSummary, 0, len(order))
	for _, segment := range order {
		g := groups[segment]
		n := float64(g.count)
		summaries = append(summaries, core.SegmentSummary{
			Segment:           segment,
			Count:             g.count,
			MeanDividendYield: g.dy / n,
			MeanPriceToBook:   g.pvp / n,
			MeanVacancyRate:   g.vacancy / n,
			MeanLiquidity:     g.liquidity / n,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Count > summaries[j].Count
	})
	return summaries
}

// RestrictToSegment returns the subset of records whose segment equals the
// given value, preserving relative order.
func RestrictToSegment(ds core.Dataset, segment string) core.Dataset {
	out := make([]core.FundRecord, 0)
	for _, r := range ds.Records {
		if r.Segment == segment {
			out = append(out, r)
		}
	}
	return ds.WithRecords(out)
}

// Comparison is one fund set against its same-segment peers. Peers include
// the selected record itself; MeanDividendYield over the peer set is the
// reference value a caller plots against the selected fund.
type Comparison struct {
	Selected          core.FundRecord
	Peers             core.Dataset
	MeanDividendYield float64
}

// Compare builds the same-segment comparison set for the fund with the
// given ticker. ok is false when the ticker is not in the dataset.
func Compare(ds core.Dataset, ticker string) (Comparison, bool) {
	for _, r := range ds.Records {
		if r.Ticker != ticker {
			continue
		}
		peers := RestrictToSegment(ds, r.Segment)
		return Comparison{
			Selected:          r,
			Peers:             peers,
			MeanDividendYield: meanDividendYield(peers),
		}, true
	}
	return Comparison{}, false
}

func meanDividendYield(ds core.Dataset) float64 {
	if ds.Empty() {
		return 0
	}
	var sum float64
	for _, r := range ds.Records {
		sum += r.DividendYield
	}
	return sum / float64(ds.Size())
}
