// Package fundamentus fetches the published FII listing and extracts its
// result table into a RawTable for normalization.
package fundamentus

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/quantbr/fiiscan/internal/core"
	"go.uber.org/zap"
)

// Config holds the source settings for the listing client.
type Config struct {
	URL       string
	UserAgent string
	Timeout   time.Duration
}

// Client retrieves the FII listing over HTTP. It holds no cache; callers
// that need the one-hour refresh window wrap it in store.Service.
type Client struct {
	client    *http.Client
	url       string
	userAgent string
	logger    *zap.Logger
}

// New creates a new listing client.
func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		url:       cfg.URL,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

// URL returns the source URL, which doubles as the cache key.
func (c *Client) URL() string { return c.url }

// Fetch retrieves the listing page and extracts the first table as a
// RawTable. Transport failures surface as ErrFetchFailed (ErrFetchTimeout
// on deadline), a missing table as ErrNoTable, and a table whose column
// count differs from the fixed 13-column schema as ErrSchemaMismatch.
func (c *Client) Fetch(ctx context.Context) (core.RawTable, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return core.RawTable{}, core.WrapError(core.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return core.RawTable{}, core.WrapError(core.ErrFetchTimeout, err)
		}
		return core.RawTable{}, core.WrapError(core.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.RawTable{}, core.WrapError(core.ErrFetchFailed,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return core.RawTable{}, core.WrapError(core.ErrNoTable, err)
	}

	table, err := extractTable(doc)
	if err != nil {
		return core.RawTable{}, err
	}

	c.logger.Info("fetched listing",
		zap.Int("rows", len(table.Rows)),
		zap.Duration("duration", time.Since(start)),
	)
	return table, nil
}

// extractTable locates the first table in the document and converts it to
// a RawTable, validating the column count against the fixed schema.
func extractTable(doc *goquery.Document) (core.RawTable, error) {
	sel := doc.Find("table").First()
	if sel.Length() == 0 {
		return core.RawTable{}, core.ErrNoTable
	}

	header := sel.Find("tr").First()
	cols := header.Find("th").Length()
	if cols == 0 {
		cols = header.Find("td").Length()
	}
	if cols != core.ColumnCount {
		return core.RawTable{}, core.WrapError(core.ErrSchemaMismatch,
			fmt.Errorf("expected %d columns, got %d", core.ColumnCount, cols))
	}

	var table core.RawTable
	sel.Find("tr").Each(func(i int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() != core.ColumnCount {
			// Header row or a malformed row; rows never fail the fetch.
			return
		}
		row := make([]core.RawCell, 0, core.ColumnCount)
		cells.Each(func(_ int, td *goquery.Selection) {
			row = append(row, classifyCell(td.Text()))
		})
		table.Rows = append(table.Rows, row)
	})

	return table, nil
}

// classifyCell turns one cell's text into a tagged RawCell. Cells the
// source renders as plain pt-BR numbers (thousands '.', decimal ',')
// become CellNumber, empty cells become CellMissing, everything else,
// percent strings included, stays CellText for field-specific parsing.
func classifyCell(s string) core.RawCell {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " "))
	if s == "" {
		return core.MissingCell()
	}
	if n, ok := ParseNumber(s); ok {
		return core.NumberCell(n)
	}
	return core.TextCell(s)
}

// ParseNumber parses a pt-BR formatted number: '.' groups thousands and
// ',' marks the decimal. Returns false for anything else, percent strings
// included.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	cleaned := strings.ReplaceAll(s, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
