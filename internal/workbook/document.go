package workbook

import "github.com/specialistvlad/gridcalc/internal/sheet"

// Cell is one occupied cell: its address text and raw content text.
type Cell struct {
	Address string
	Content string
}

// Document is the contents of a sheet in row-major order.
type Document struct {
	Cells []Cell
}

// FromEntries builds a document from a sheet export.
func FromEntries(entries []sheet.Entry) *Document {
	doc := &Document{Cells: make([]Cell, len(entries))}
	for i, e := range entries {
		doc.Cells[i] = Cell{Address: e.Address, Content: e.Content}
	}
	return doc
}

// Entries converts the document into sheet import form.
func (d *Document) Entries() []sheet.Entry {
	entries := make([]sheet.Entry, len(d.Cells))
	for i, c := range d.Cells {
		entries[i] = sheet.Entry{Address: c.Address, Content: c.Content}
	}
	return entries
}
