package model

import "github.com/google/uuid"

// Item is a single piece of hardware tracked by the ledger.
//
// The ordinal is a display-only sequence number recomputed whenever a
// category view is rebuilt; it is never persisted and never part of
// equality. The code is the generated 12-digit label, assigned once at
// creation and immutable afterwards.
type Item struct {
	ID         string `json:"id"`
	Ordinal    int    `json:"ordinal"`
	Serial     string `json:"serial"`
	Brand      string `json:"brand,omitempty"`
	Model      string `json:"model,omitempty"`
	Screen     string `json:"screen,omitempty"`
	Processor  string `json:"processor,omitempty"`
	Memory     string `json:"memory,omitempty"`
	Disk       string `json:"disk,omitempty"`
	Graphics   string `json:"graphics,omitempty"`
	Resolution string `json:"resolution,omitempty"`
	Touch      string `json:"touch,omitempty"`
	OS         string `json:"os,omitempty"`
	Status     string `json:"status,omitempty"`
	Price      string `json:"price,omitempty"`
	Code       string `json:"code"`
}

// Item statuses.
const (
	StatusInStock  = "in stock"
	StatusReserved = "reserved"
	StatusSold     = "sold"
)

// Categories is the fixed set of inventory partitions, in display order.
// Categories are static configuration, not user-creatable.
var Categories = []string{"laptops", "desktops", "all-in-one", "monitors"}

// ValidCategory reports whether name is one of the configured categories.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// NewID returns a fresh synthetic identity for an item.
func NewID() string {
	return uuid.NewString()
}

// Fields returns the canonical field tuple of the item, in the order used
// by listings and file rows: serial first, generated code last. The ordinal
// and the ID are not part of the tuple.
func (i Item) Fields() []string {
	return []string{
		i.Serial, i.Brand, i.Model, i.Screen, i.Processor, i.Memory,
		i.Disk, i.Graphics, i.Resolution, i.Touch, i.OS, i.Status,
		i.Price, i.Code,
	}
}

// SameRecord reports whether two items carry the exact same field tuple,
// generated code included. Restore matching uses this.
func (i Item) SameRecord(other Item) bool {
	a, b := i.Fields(), other.Fields()
	for n := range a {
		if a[n] != b[n] {
			return false
		}
	}
	return true
}

// SameFields reports whether two items match on every field except the
// generated code. The archive-exclusion filter uses this so legacy rows
// written before codes were persisted still match.
func (i Item) SameFields(other Item) bool {
	a, b := i.Fields(), other.Fields()
	for n := range a[:len(a)-1] {
		if a[n] != b[n] {
			return false
		}
	}
	return true
}

// Matches reports whether other refers to this item: by ID when both carry
// one, by exact field tuple otherwise.
func (i Item) Matches(other Item) bool {
	if i.ID != "" && other.ID != "" {
		return i.ID == other.ID
	}
	return i.SameRecord(other)
}
