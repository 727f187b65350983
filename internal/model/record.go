package model

import "fmt"

// File row widths. A row is the item's ID followed by its canonical field
// tuple. Rows written before IDs existed have no ID column; the loader
// accepts those and assigns a fresh identity.
const (
	FieldCount = 14
	RecordLen  = FieldCount + 1
)

// Record returns the file row for the item: ID first, then the canonical
// field tuple.
func (i Item) Record() []string {
	return append([]string{i.ID}, i.Fields()...)
}

// FromRecord rebuilds an item from a file row. Legacy rows without an ID
// column load with an empty identity; those items are matched by field
// equality until they are recreated. Rows of any other width are rejected.
func FromRecord(row []string) (Item, error) {
	var fields []string

	switch len(row) {
	case RecordLen:
		fields = row[1:]
	case FieldCount:
		fields = row
	default:
		return Item{}, fmt.Errorf("row has %d columns, want %d or %d", len(row), FieldCount, RecordLen)
	}

	item := Item{
		Serial:     fields[0],
		Brand:      fields[1],
		Model:      fields[2],
		Screen:     fields[3],
		Processor:  fields[4],
		Memory:     fields[5],
		Disk:       fields[6],
		Graphics:   fields[7],
		Resolution: fields[8],
		Touch:      fields[9],
		OS:         fields[10],
		Status:     fields[11],
		Price:      fields[12],
		Code:       fields[13],
	}

	if len(row) == RecordLen {
		item.ID = row[0]
	}
	return item, nil
}
