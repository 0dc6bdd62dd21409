// internal/api/server_test.go
package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quantbr/fiiscan/internal/app"
	"github.com/quantbr/fiiscan/internal/config"
	"github.com/quantbr/fiiscan/internal/core"
	"go.uber.org/zap"
)

type staticSource struct {
	ds core.Dataset
}

func (s *staticSource) GetOrRefresh(ctx context.Context) (core.Dataset, error) {
	return s.ds, nil
}

func testServer(t *testing.T) *Server {
	t.Helper()
	ds := core.Dataset{
		RefreshID: "r1",
		Records: []core.FundRecord{
			{Ticker: "AAAA11", Segment: "Shopping", DividendYield: 8, PriceToBook: 0.9, VacancyRate: 5, Liquidity: 50000},
		},
	}
	a := app.NewWithSource(config.Defaults(), nil, &staticSource{ds: ds})
	return NewServer(Config{Host: "127.0.0.1", Port: 0, MetricsPath: "/metrics"}, a, zap.NewNop())
}

func TestServer_Routes(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/api/v1/health", http.StatusOK},
		{"/api/v1/funds", http.StatusOK},
		{"/api/v1/funds/bounds", http.StatusOK},
		{"/api/v1/funds/AAAA11/peers", http.StatusOK},
		{"/api/v1/segments", http.StatusOK},
		{"/api/v1/segments/Shopping", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/v1/nope", http.StatusNotFound},
	}

	for _, tc := range tests {
		req := httptest.NewRequest("GET", tc.path, nil)
		w := httptest.NewRecorder()
		s.httpServer.Handler.ServeHTTP(w, req)
		if w.Code != tc.wantStatus {
			t.Errorf("GET %s = %d, want %d", tc.path, w.Code, tc.wantStatus)
		}
	}
}

func TestServer_MethodNotAllowed(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest("POST", "/api/v1/funds", nil)
	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}
