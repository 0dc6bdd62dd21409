// internal/api/handler/api/funds.go
package api

import (
	"math"
	"net/http"
	"strconv"

	"github.com/quantbr/fiiscan/internal/api/response"
	"github.com/quantbr/fiiscan/internal/app"
	"github.com/quantbr/fiiscan/internal/core"
	"github.com/quantbr/fiiscan/internal/format"
)

// FundView is one fund in API responses. Optional metrics the source left
// blank are omitted; the display block carries the formatted strings the
// presentation layer renders verbatim.
type FundView struct {
	Ticker        string      `json:"ticker"`
	Segment       string      `json:"segment"`
	Quote         *float64    `json:"quote,omitempty"`
	FFOYield      *float64    `json:"ffo_yield,omitempty"`
	DividendYield float64     `json:"dividend_yield"`
	PriceToBook   float64     `json:"price_to_book"`
	MarketValue   *float64    `json:"market_value,omitempty"`
	Liquidity     float64     `json:"liquidity"`
	PropertyCount int         `json:"property_count"`
	PricePerArea  *float64    `json:"price_per_area,omitempty"`
	RentPerArea   *float64    `json:"rent_per_area,omitempty"`
	CapRate       *float64    `json:"cap_rate,omitempty"`
	VacancyRate   float64     `json:"vacancy_rate"`
	Display       FundDisplay `json:"display"`
}

// FundDisplay holds the formatted representation of the columns shown in
// the results table.
type FundDisplay struct {
	Quote         string `json:"quote,omitempty"`
	FFOYield      string `json:"ffo_yield,omitempty"`
	DividendYield string `json:"dividend_yield"`
	PriceToBook   string `json:"price_to_book"`
	CapRate       string `json:"cap_rate,omitempty"`
	VacancyRate   string `json:"vacancy_rate"`
	Liquidity     string `json:"liquidity"`
}

// SummaryView is the headline block of one screening run.
type SummaryView struct {
	Found             int    `json:"found"`
	Total             int    `json:"total"`
	MeanDividendYield string `json:"mean_dividend_yield,omitempty"`
	MeanPriceToBook   string `json:"mean_price_to_book,omitempty"`
}

// FundsHandler serves the screening endpoints.
type FundsHandler struct {
	app *app.App
}

// NewFundsHandler creates a funds handler.
func NewFundsHandler(a *app.App) *FundsHandler {
	return &FundsHandler{app: a}
}

// List handles GET /api/v1/funds. Threshold query parameters (min_dy,
// max_pvp, max_vacancy, min_liquidity) default to the widest bound the
// dataset allows, so an unqualified request returns every record.
func (h *FundsHandler) List(w http.ResponseWriter, r *http.Request) {
	criteria, ok := h.criteriaFromQuery(w, r)
	if !ok {
		return
	}

	res, err := h.app.Screen(r.Context(), criteria)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	funds := make([]FundView, 0, res.Filtered.Size())
	for _, rec := range res.Filtered.Records {
		funds = append(funds, newFundView(rec))
	}

	summary := SummaryView{Found: res.Summary.Found, Total: res.Summary.Total}
	if res.Summary.Found > 0 {
		summary.MeanDividendYield = format.Percent(res.Summary.MeanDividendYield)
		summary.MeanPriceToBook = format.Ratio(res.Summary.MeanPriceToBook)
	}

	response.JSONWithRefresh(w, http.StatusOK, map[string]any{
		"funds":   funds,
		"summary": summary,
	}, res.Filtered.RefreshID)
}

// Bounds handles GET /api/v1/funds/bounds.
func (h *FundsHandler) Bounds(w http.ResponseWriter, r *http.Request) {
	bounds, ok, err := h.app.Bounds(r.Context())
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}
	if !ok {
		response.NotFound(w, "dataset is empty, no bounds available")
		return
	}
	response.JSON(w, http.StatusOK, bounds)
}

// Peers handles GET /api/v1/funds/{ticker}/peers: the same-segment
// comparison set for one fund that passed the filter.
func (h *FundsHandler) Peers(w http.ResponseWriter, r *http.Request) {
	criteria, ok := h.criteriaFromQuery(w, r)
	if !ok {
		return
	}

	ticker := r.PathValue("ticker")
	cmp, found, err := h.app.Compare(r.Context(), criteria, ticker)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}
	if !found {
		response.NotFound(w, "ticker not present in the filtered dataset")
		return
	}

	peers := make([]FundView, 0, cmp.Peers.Size())
	for _, rec := range cmp.Peers.Records {
		peers = append(peers, newFundView(rec))
	}
	response.JSONWithRefresh(w, http.StatusOK, map[string]any{
		"selected":            newFundView(cmp.Selected),
		"peers":               peers,
		"mean_dividend_yield": cmp.MeanDividendYield,
	}, cmp.Peers.RefreshID)
}

// criteriaFromQuery builds FilterCriteria from query parameters, filling
// absent thresholds from the dataset's own bounds. Returns ok=false after
// writing an error response.
func (h *FundsHandler) criteriaFromQuery(w http.ResponseWriter, r *http.Request) (core.FilterCriteria, bool) {
	bounds, _, err := h.app.Bounds(r.Context())
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return core.FilterCriteria{}, false
	}
	criteria := bounds.Widest()

	set := func(param string, dst *float64) bool {
		raw := r.URL.Query().Get(param)
		if raw == "" {
			return true
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.BadRequest(w, param+" must be a number")
			return false
		}
		*dst = v
		return true
	}

	if !set("min_dy", &criteria.MinDividendYield) ||
		!set("max_pvp", &criteria.MaxPriceToBook) ||
		!set("max_vacancy", &criteria.MaxVacancyRate) ||
		!set("min_liquidity", &criteria.MinLiquidity) {
		return core.FilterCriteria{}, false
	}
	return criteria, true
}

func newFundView(r core.FundRecord) FundView {
	v := FundView{
		Ticker:        r.Ticker,
		Segment:       r.Segment,
		Quote:         optional(r.Quote),
		FFOYield:      optional(r.FFOYield),
		DividendYield: r.DividendYield,
		PriceToBook:   r.PriceToBook,
		MarketValue:   optional(r.MarketValue),
		Liquidity:     r.Liquidity,
		PropertyCount: r.PropertyCount,
		PricePerArea:  optional(r.PricePerArea),
		RentPerArea:   optional(r.RentPerArea),
		CapRate:       optional(r.CapRate),
		VacancyRate:   r.VacancyRate,
		Display: FundDisplay{
			DividendYield: format.Percent(r.DividendYield),
			PriceToBook:   format.Ratio(r.PriceToBook),
			VacancyRate:   format.Percent(r.VacancyRate),
			Liquidity:     format.GroupedCurrency(r.Liquidity),
		},
	}
	if v.Quote != nil {
		v.Display.Quote = format.Currency(*v.Quote)
	}
	if v.FFOYield != nil {
		v.Display.FFOYield = format.Percent(*v.FFOYield)
	}
	if v.CapRate != nil {
		v.Display.CapRate = format.Percent(*v.CapRate)
	}
	return v
}

// optional maps NaN, the normalizer's null for absent metrics, to a JSON
// omission. encoding/json cannot marshal NaN.
func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
