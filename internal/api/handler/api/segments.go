// internal/api/handler/api/segments.go
package api

import (
	"net/http"

	"github.com/quantbr/fiiscan/internal/api/response"
	"github.com/quantbr/fiiscan/internal/app"
	"github.com/quantbr/fiiscan/internal/core"
	"github.com/quantbr/fiiscan/internal/format"
)

// SegmentSummaryView is one per-segment aggregate row.
type SegmentSummaryView struct {
	Segment           string         `json:"segment"`
	Count             int            `json:"count"`
	MeanDividendYield float64        `json:"mean_dividend_yield"`
	MeanPriceToBook   float64        `json:"mean_price_to_book"`
	MeanVacancyRate   float64        `json:"mean_vacancy_rate"`
	MeanLiquidity     float64        `json:"mean_liquidity"`
	Display           SegmentDisplay `json:"display"`
}

// SegmentDisplay holds the formatted aggregate columns.
type SegmentDisplay struct {
	MeanDividendYield string `json:"mean_dividend_yield"`
	MeanPriceToBook   string `json:"mean_price_to_book"`
	MeanVacancyRate   string `json:"mean_vacancy_rate"`
	MeanLiquidity     string `json:"mean_liquidity"`
}

// SegmentsHandler serves the per-segment aggregation endpoints. It shares
// the funds handler's criteria parsing so both views filter identically.
type SegmentsHandler struct {
	app   *app.App
	funds *FundsHandler
}

// NewSegmentsHandler creates a segments handler.
func NewSegmentsHandler(a *app.App) *SegmentsHandler {
	return &SegmentsHandler{app: a, funds: NewFundsHandler(a)}
}

// List handles GET /api/v1/segments: per-segment summaries of the
// filtered dataset, ordered by member count descending.
func (h *SegmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	criteria, ok := h.funds.criteriaFromQuery(w, r)
	if !ok {
		return
	}

	summaries, err := h.app.Segments(r.Context(), criteria)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	views := make([]SegmentSummaryView, 0, len(summaries))
	for _, s := range summaries {
		views = append(views, newSegmentView(s))
	}
	response.JSON(w, http.StatusOK, map[string]any{"segments": views})
}

// Get handles GET /api/v1/segments/{segment}: the filtered records of one
// segment, in filter order, plus the segment's mean dividend yield.
func (h *SegmentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	criteria, ok := h.funds.criteriaFromQuery(w, r)
	if !ok {
		return
	}

	segment := r.PathValue("segment")
	subset, err := h.app.Segment(r.Context(), criteria, segment)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	funds := make([]FundView, 0, subset.Size())
	var meanDY float64
	for _, rec := range subset.Records {
		funds = append(funds, newFundView(rec))
		meanDY += rec.DividendYield
	}
	if subset.Size() > 0 {
		meanDY /= float64(subset.Size())
	}

	response.JSONWithRefresh(w, http.StatusOK, map[string]any{
		"segment":             segment,
		"funds":               funds,
		"mean_dividend_yield": meanDY,
	}, subset.RefreshID)
}

func newSegmentView(s core.SegmentSummary) SegmentSummaryView {
	return SegmentSummaryView{
		Segment:           s.Segment,
		Count:             s.Count,
		MeanDividendYield: s.MeanDividendYield,
		MeanPriceToBook:   s.MeanPriceToBook,
		MeanVacancyRate:   s.MeanVacancyRate,
		MeanLiquidity:     s.MeanLiquidity,
		Display: SegmentDisplay{
			MeanDividendYield: format.Percent(s.MeanDividendYield),
			MeanPriceToBook:   format.Ratio(s.MeanPriceToBook),
			MeanVacancyRate:   format.Percent(s.MeanVacancyRate),
			MeanLiquidity:     format.GroupedCurrency(s.MeanLiquidity),
		},
	}
}
