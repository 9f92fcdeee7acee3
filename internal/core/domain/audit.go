package domain

import "strconv"

type Action string

const (
	ActionAdd    Action = "Add"
	ActionRemove Action = "Remove"
)

// ParseAction maps a raw action string to the enum; the second return is false
// for anything other than the two known actions.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionAdd:
		return ActionAdd, true
	case ActionRemove:
		return ActionRemove, true
	}
	return "", false
}

// DateLayout is the fixed audit timestamp format, rendered in the configured
// local time zone.
const DateLayout = "2006-01-02 03:04 PM"

// LogHeaders is the audit sheet header row, in write order.
var LogHeaders = []string{"Date", "Product", "Size", "Quantity", "Action"}

// Entry is one audit record. Quantity is the delta that was applied, not the
// resulting total.
type Entry struct {
	Date     string
	Product  string
	Size     string
	Quantity int
	Action   Action
}

// Row renders the entry as sheet cells aligned with LogHeaders.
func (e Entry) Row() []string {
	return []string{e.Date, e.Product, e.Size, strconv.Itoa(e.Quantity), string(e.Action)}
}

// Entries reads the typed audit view out of a log table.
func (t Table) Entries() []Entry {
	dc := t.ColumnIndex("Date")
	pc := t.ColumnIndex("Product")
	sc := t.ColumnIndex("Size")
	qc := t.ColumnIndex("Quantity")
	ac := t.ColumnIndex("Action")
	out := make([]Entry, 0, len(t.Rows))
	for i := range t.Rows {
		action, _ := ParseAction(t.Cell(i, ac))
		out = append(out, Entry{
			Date:     t.Cell(i, dc),
			Product:  t.Cell(i, pc),
			Size:     t.Cell(i, sc),
			Quantity: ParseQuantity(t.Cell(i, qc)),
			Action:   action,
		})
	}
	return out
}
