package metrics

import (
	"testing"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	if reg == nil {
		t.Fatal("expected non-nil registry")
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(mfs) == 0 {
		t.Error("expected some metrics to be registered")
	}
}

func gatherHas(t *testing.T, reg *Registry, name string) bool {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() == name {
			return true
		}
	}
	return false
}

func TestRegistry_RecordFetch(t *testing.T) {
	reg := NewRegistry()
	reg.RecordFetch("success", 1.2)

	if !gatherHas(t, reg, "fiiscan_fetches_total") {
		t.Error("expected fiiscan_fetches_total metric")
	}
	if !gatherHas(t, reg, "fiiscan_fetch_duration_seconds") {
		t.Error("expected fiiscan_fetch_duration_seconds metric")
	}
}

func TestRegistry_CacheAndRows(t *testing.T) {
	reg := NewRegistry()
	reg.RecordCacheHit()
	reg.RecordCacheMiss()
	reg.RecordRowsDropped("missing_liquidity", 3)
	reg.RecordRowsDropped("never_emitted", 0) // zero counts are not recorded
	reg.SetDatasetSize(250)

	if !gatherHas(t, reg, "fiiscan_cache_requests_total") {
		t.Error("expected fiiscan_cache_requests_total metric")
	}
	if !gatherHas(t, reg, "fiiscan_rows_dropped_total") {
		t.Error("expected fiiscan_rows_dropped_total metric")
	}
	if !gatherHas(t, reg, "fiiscan_dataset_size") {
		t.Error("expected fiiscan_dataset_size metric")
	}
}

func TestStatusToString(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{500, "5xx"},
	}

	for _, tc := range tests {
		if got := statusToString(tc.status); got != tc.expected {
			t.Errorf("statusToString(%d) = %s, want %s", tc.status, got, tc.expected)
		}
	}
}
