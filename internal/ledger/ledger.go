// Package ledger holds the in-memory inventory state: the per-category
// item lists and the archive of soft-deleted items. The two are one
// logical unit and share a single mutex, so a delete or restore is never
// observable half-applied.
package ledger

import (
	"fmt"
	"sync"

	"github.com/idanc/machsan/internal/model"
)

// NumberingPolicy selects how display ordinals are derived when a category
// view is rebuilt.
type NumberingPolicy int

const (
	// NumberPerCategory numbers the visible items of each category 1..N.
	NumberPerCategory NumberingPolicy = iota

	// NumberAcrossCategories continues the running count from all
	// preceding categories in configured order.
	NumberAcrossCategories
)

// Ledger owns the category lists and the archive.
type Ledger struct {
	mu         sync.Mutex
	categories []string
	items      map[string][]model.Item
	archive    []model.Item
	numbering  NumberingPolicy
}

// New creates an empty ledger over the given categories.
func New(categories []string, policy NumberingPolicy) *Ledger {
	items := make(map[string][]model.Item, len(categories))
	for _, c := range categories {
		items[c] = nil
	}
	return &Ledger{
		categories: categories,
		items:      items,
		numbering:  policy,
	}
}

// Categories returns the configured category names in display order.
func (l *Ledger) Categories() []string {
	out := make([]string, len(l.categories))
	copy(out, l.categories)
	return out
}

// Append adds the item to the end of the category's list.
func (l *Ledger) Append(category string, item model.Item) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.items[category]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	l.items[category] = append(l.items[category], item)
	return nil
}

// Remove deletes the first match of ref from the category's list.
func (l *Ledger) Remove(category string, ref model.Item) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.removeLocked(category, ref)
}

func (l *Ledger) removeLocked(category string, ref model.Item) error {
	list, ok := l.items[category]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	for n, it := range list {
		if it.Matches(ref) {
			l.items[category] = append(list[:n:n], list[n+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Update replaces the first match of ref in the category's list with item,
// keeping its position.
func (l *Ledger) Update(category string, ref, item model.Item) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	list, ok := l.items[category]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	for n, it := range list {
		if it.Matches(ref) {
			list[n] = item
			return nil
		}
	}
	return ErrNotFound
}

// Delete moves the first match of ref from the category to the archive as
// one atomic step. Archiving is not deduplicated: deleting field-identical
// items produces duplicate archive rows.
func (l *Ledger) Delete(category string, ref model.Item) (model.Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	list, ok := l.items[category]
	if !ok {
		return model.Item{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	for n, it := range list {
		if it.Matches(ref) {
			l.items[category] = append(list[:n:n], list[n+1:]...)
			it.Ordinal = 0
			l.archive = append(l.archive, it)
			return it, nil
		}
	}
	return model.Item{}, ErrNotFound
}

// Restore moves the first exact match of ref out of the archive and
// appends it to the category. On ErrNotFound the archive is untouched.
func (l *Ledger) Restore(category string, ref model.Item) (model.Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.items[category]; !ok {
		return model.Item{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	for n, it := range l.archive {
		if it.Matches(ref) {
			l.archive = append(l.archive[:n:n], l.archive[n+1:]...)
			l.items[category] = append(l.items[category], it)
			return it, nil
		}
	}
	return model.Item{}, ErrNotFound
}

// Items returns the raw list of one category, archived items included.
// This is what gets persisted.
func (l *Ledger) Items(category string) []model.Item {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]model.Item, len(l.items[category]))
	copy(out, l.items[category])
	return out
}

// Visible returns the items of one category that are not in the archive,
// with display ordinals recomputed per the numbering policy. Archived
// items are matched by ID, falling back to field equality (generated code
// excluded) for rows loaded from legacy files.
func (l *Ledger) Visible(category string) ([]model.Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.items[category]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	next := 1
	if l.numbering == NumberAcrossCategories {
		for _, c := range l.categories {
			if c == category {
				break
			}
			next += len(l.items[c])
		}
	}

	var out []model.Item
	for _, it := range l.items[category] {
		if l.archivedLocked(it) {
			continue
		}
		it.Ordinal = next
		next++
		out = append(out, it)
	}
	return out, nil
}

// Archive appends the item to the archive list directly, without touching
// any category. Load-time state installation uses this.
func (l *Ledger) Archive(item model.Item) {
	l.mu.Lock()
	defer l.mu.Unlock()
	item.Ordinal = 0
	l.archive = append(l.archive, item)
}

// Archived returns the full archive in insertion order.
func (l *Ledger) Archived() []model.Item {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]model.Item, len(l.archive))
	copy(out, l.archive)
	return out
}

// Replace installs a freshly loaded item list for one category.
func (l *Ledger) Replace(category string, items []model.Item) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.items[category]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	l.items[category] = items
	return nil
}

// ReplaceArchive installs a freshly loaded archive list.
func (l *Ledger) ReplaceArchive(items []model.Item) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.archive = items
}

func (l *Ledger) archivedLocked(item model.Item) bool {
	for _, a := range l.archive {
		if item.ID != "" && a.ID != "" {
			if item.ID == a.ID {
				return true
			}
			continue
		}
		if item.SameFields(a) {
			return true
		}
	}
	return false
}
