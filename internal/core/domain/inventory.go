package domain

import (
	"strconv"
	"strings"
)

// Inventory sheet columns. Sheets may carry extra columns; these three are the
// ones the dashboard interprets.
const (
	ColProduct  = "PRODUCT"
	ColSize     = "SIZE"
	ColQuantity = "QUANTITY"
)

// Item is the typed view of one inventory row. A table is assumed to hold at
// most one row per (Product, Size); if duplicates exist the first match wins.
type Item struct {
	Product  string
	Size     string
	Quantity int
}

// ParseQuantity coerces a raw cell value to a non-negative integer.
// Non-numeric, missing, and negative values all normalize to 0.
func ParseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Items extracts the typed inventory view, preserving row order.
func (t Table) Items() []Item {
	pc, sc, qc := t.ColumnIndex(ColProduct), t.ColumnIndex(ColSize), t.ColumnIndex(ColQuantity)
	items := make([]Item, 0, len(t.Rows))
	for i := range t.Rows {
		items = append(items, Item{
			Product:  t.Cell(i, pc),
			Size:     t.Cell(i, sc),
			Quantity: ParseQuantity(t.Cell(i, qc)),
		})
	}
	return items
}

// FindItem locates the first row matching (product, size) exactly and returns
// its typed view and row index.
func (t Table) FindItem(product, size string) (Item, int, bool) {
	pc, sc, qc := t.ColumnIndex(ColProduct), t.ColumnIndex(ColSize), t.ColumnIndex(ColQuantity)
	for i := range t.Rows {
		if t.Cell(i, pc) == product && t.Cell(i, sc) == size {
			return Item{
				Product:  product,
				Size:     size,
				Quantity: ParseQuantity(t.Cell(i, qc)),
			}, i, true
		}
	}
	return Item{}, -1, false
}

// SetQuantity overwrites only the QUANTITY cell of the given row, leaving
// every other cell and the row order untouched.
func (t *Table) SetQuantity(row, quantity int) {
	qc := t.ColumnIndex(ColQuantity)
	if qc < 0 || row < 0 || row >= len(t.Rows) {
		return
	}
	for len(t.Rows[row]) <= qc {
		t.Rows[row] = append(t.Rows[row], "")
	}
	t.Rows[row][qc] = strconv.Itoa(quantity)
}

// Products returns the distinct product names in first-seen order.
func (t Table) Products() []string {
	pc := t.ColumnIndex(ColProduct)
	seen := make(map[string]struct{})
	out := []string{}
	for i := range t.Rows {
		p := t.Cell(i, pc)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Sizes returns the distinct sizes in first-seen order, restricted to the
// given product when it is non-empty.
func (t Table) Sizes(product string) []string {
	pc, sc := t.ColumnIndex(ColProduct), t.ColumnIndex(ColSize)
	seen := make(map[string]struct{})
	out := []string{}
	for i := range t.Rows {
		if product != "" && t.Cell(i, pc) != product {
			continue
		}
		s := t.Cell(i, sc)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Filter returns a table containing only the rows matching the given product
// and size; an empty filter value matches everything.
func (t Table) Filter(product, size string) Table {
	pc, sc := t.ColumnIndex(ColProduct), t.ColumnIndex(ColSize)
	out := NewTable(t.Headers)
	for i, r := range t.Rows {
		if product != "" && t.Cell(i, pc) != product {
			continue
		}
		if size != "" && t.Cell(i, sc) != size {
			continue
		}
		out.Rows = append(out.Rows, append([]string(nil), r...))
	}
	return out
}
