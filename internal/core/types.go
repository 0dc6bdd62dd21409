package core

import "time"

// FundRecord is one listed FII after normalization. Percentage fields hold
// percent points (8.5 means 8.5%), currency fields hold BRL. Optional
// metrics the source left blank are NaN. The four critical metrics
// (DividendYield, PriceToBook, VacancyRate, Liquidity) are always present
// and Liquidity is always positive; rows that fail this never reach a
// Dataset.
type FundRecord struct {
	Ticker        string
	Segment       string
	Quote         float64
	FFOYield      float64
	DividendYield float64
	PriceToBook   float64
	MarketValue   float64
	Liquidity     float64
	PropertyCount int
	PricePerArea  float64
	RentPerArea   float64
	CapRate       float64
	VacancyRate   float64
}

// Dataset is one immutable snapshot of the listing. It is superseded
// wholesale on the next refresh; derived Datasets (filter and segment
// subsets) carry the RefreshID and FetchedAt of their source.
type Dataset struct {
	RefreshID string
	FetchedAt time.Time
	Records   []FundRecord
}

// Size returns the number of records.
func (d Dataset) Size() int { return len(d.Records) }

// Empty reports whether the dataset has no records.
func (d Dataset) Empty() bool { return len(d.Records) == 0 }

// WithRecords returns a dataset with the same provenance but a new record
// slice. Used by the pure stages so subsets stay traceable to the refresh
// they came from.
func (d Dataset) WithRecords(records []FundRecord) Dataset {
	return Dataset{RefreshID: d.RefreshID, FetchedAt: d.FetchedAt, Records: records}
}

// FilterCriteria holds the four screening thresholds. All bounds are
// inclusive.
type FilterCriteria struct {
	MinDividendYield float64
	MaxPriceToBook   float64
	MaxVacancyRate   float64
	MinLiquidity     float64
}

// SegmentSummary holds the unweighted means of one segment's members.
type SegmentSummary struct {
	Segment           string
	Count             int
	MeanDividendYield float64
	MeanPriceToBook   float64
	MeanVacancyRate   float64
	MeanLiquidity     float64
}
