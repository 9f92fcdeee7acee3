package domain

// Table is an ordered, header-indexed view of a backing sheet. Row order is
// preserved through a read-modify-write cycle: writing a table back replaces
// the sheet contents with exactly these rows in this order. Columns the
// dashboard does not know about are carried through untouched.
type Table struct {
	Headers []string
	Rows    [][]string
}

func NewTable(headers []string) Table {
	return Table{Headers: headers, Rows: [][]string{}}
}

func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// ColumnIndex returns the position of the named header, or -1.
func (t Table) ColumnIndex(header string) int {
	for i, h := range t.Headers {
		if h == header {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col), or "" when the row is ragged and does
// not reach that column.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	cells := t.Rows[row]
	if col >= len(cells) {
		return ""
	}
	return cells[col]
}

// Clone deep-copies the table so a mutation cycle never aliases a cached
// snapshot.
func (t Table) Clone() Table {
	out := Table{
		Headers: append([]string(nil), t.Headers...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = append([]string(nil), r...)
	}
	return out
}
