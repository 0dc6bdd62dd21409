package core

import (
	"testing"
	"time"
)

func TestDataset_WithRecords(t *testing.T) {
	fetched := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ds := Dataset{
		RefreshID: "r1",
		FetchedAt: fetched,
		Records:   []FundRecord{{Ticker: "HGLG11"}, {Ticker: "XPML11"}},
	}

	sub := ds.WithRecords(ds.Records[:1])

	if sub.RefreshID != "r1" || !sub.FetchedAt.Equal(fetched) {
		t.Error("subset should keep the provenance of its source")
	}
	if sub.Size() != 1 {
		t.Errorf("expected size 1, got %d", sub.Size())
	}
	if ds.Size() != 2 {
		t.Error("source dataset must not be mutated")
	}
}

func TestDataset_Empty(t *testing.T) {
	if !(Dataset{}).Empty() {
		t.Error("zero dataset should be empty")
	}
	if (Dataset{Records: []FundRecord{{}}}).Empty() {
		t.Error("dataset with records should not be empty")
	}
}

func TestRawCell_Constructors(t *testing.T) {
	if c := TextCell("12,3%"); c.Kind != CellText || c.Text != "12,3%" {
		t.Errorf("unexpected text cell: %+v", c)
	}
	if c := NumberCell(1.05); c.Kind != CellNumber || c.Number != 1.05 {
		t.Errorf("unexpected number cell: %+v", c)
	}
	if c := MissingCell(); c.Kind != CellMissing {
		t.Errorf("unexpected missing cell: %+v", c)
	}
}

func TestColumnOrder(t *testing.T) {
	// The last column index must line up with the fixed schema width.
	if ColVacancyRate != ColumnCount-1 {
		t.Errorf("column indices out of sync with ColumnCount: %d vs %d",
			ColVacancyRate, ColumnCount-1)
	}
}
