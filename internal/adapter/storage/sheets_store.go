package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/HansLim7/inventoryapp/internal/core/domain"
	"github.com/HansLim7/inventoryapp/internal/port"
)

// SheetsStore reads and writes whole worksheets of a single spreadsheet via
// the Google Sheets API. Each worksheet is addressed by its sheet name.
type SheetsStore struct {
	svc            *sheets.Service
	spreadsheetID  string
	inventoryTable string
}

// NewSheetsStore wraps an authenticated Sheets service. inventoryTable names
// the worksheet whose QUANTITY column is coerced on read; other worksheets
// (the audit log) are passed through as-is.
func NewSheetsStore(svc *sheets.Service, spreadsheetID, inventoryTable string) *SheetsStore {
	return &SheetsStore{
		svc:            svc,
		spreadsheetID:  spreadsheetID,
		inventoryTable: inventoryTable,
	}
}

func (s *SheetsStore) Read(ctx context.Context, table string) (domain.Table, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, table).Context(ctx).Do()
	if err != nil {
		return domain.Table{}, fmt.Errorf("%w: read %s: %v", port.ErrStoreUnavailable, table, err)
	}
	return normalizeGrid(resp.Values, table == s.inventoryTable), nil
}

func (s *SheetsStore) Write(ctx context.Context, table string, t domain.Table) error {
	_, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, table, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: clear %s: %v", port.ErrStoreUnavailable, table, err)
	}

	vr := &sheets.ValueRange{Values: toGrid(t)}
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, table, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: write %s: %v", port.ErrStoreUnavailable, table, err)
	}
	return nil
}

// normalizeGrid converts a raw value grid into a Table: the first row is the
// header, columns without a recognized header are dropped, fully-empty rows
// are dropped, and the QUANTITY column is coerced to a non-negative integer
// when coerceQuantity is set.
func normalizeGrid(grid [][]interface{}, coerceQuantity bool) domain.Table {
	if len(grid) == 0 {
		return domain.Table{}
	}

	// Keep only columns that carry a real header. Sheets with trailing blank
	// columns surface them as empty or "Unnamed" headers.
	keep := []int{}
	headers := []string{}
	for i, h := range grid[0] {
		name := strings.TrimSpace(cellString(h))
		if name == "" || strings.HasPrefix(name, "Unnamed") {
			continue
		}
		keep = append(keep, i)
		headers = append(headers, name)
	}

	t := domain.NewTable(headers)
	qc := t.ColumnIndex(domain.ColQuantity)
	for _, raw := range grid[1:] {
		row := make([]string, len(keep))
		empty := true
		for j, src := range keep {
			if src < len(raw) {
				row[j] = cellString(raw[src])
			}
			if strings.TrimSpace(row[j]) != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		if coerceQuantity && qc >= 0 {
			row[qc] = strconv.Itoa(domain.ParseQuantity(row[qc]))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func toGrid(t domain.Table) [][]interface{} {
	grid := make([][]interface{}, 0, len(t.Rows)+1)
	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	grid = append(grid, header)
	for _, r := range t.Rows {
		row := make([]interface{}, len(r))
		for i, c := range r {
			row[i] = c
		}
		grid = append(grid, row)
	}
	return grid
}

// cellString renders an API cell value. Numeric cells arrive as float64 over
// JSON; format them without a trailing ".0" so "10" round-trips as "10".
func cellString(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(c)
	default:
		return fmt.Sprint(c)
	}
}
