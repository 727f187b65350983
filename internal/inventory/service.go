// Package inventory orchestrates the ledger, the identifying-code
// generator and the persistence layer. It is the only entry point the
// presentation layer talks to; every mutating operation is applied to the
// in-memory ledger as a single step and then persisted.
package inventory

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/idanc/machsan/internal/barcode"
	"github.com/idanc/machsan/internal/ledger"
	"github.com/idanc/machsan/internal/model"
	"github.com/idanc/machsan/internal/storage"
)

// ErrValidation is returned when a required field is empty. The operation
// is aborted before any mutation.
var ErrValidation = errors.New("validation failed")

// Match is one visible item classified against a search term. Non-matching
// items stay in the listing; the flag is for highlighting only.
type Match struct {
	Item    model.Item
	Matched bool
}

// Service owns the ledger and persists it after every mutation.
type Service struct {
	ledger  *ledger.Ledger
	store   *storage.Store
	current string
}

// New creates a service over the given ledger and store. The first
// configured category is the initially active view.
func New(l *ledger.Ledger, store *storage.Store) *Service {
	return &Service{
		ledger:  l,
		store:   store,
		current: l.Categories()[0],
	}
}

// Load reads every category file and the archive file into the ledger.
// A missing file yields an empty list; a failed read degrades that list to
// empty and is logged rather than aborting startup.
func (s *Service) Load() {
	archived, err := s.store.Load(storage.ArchiveName)
	if err != nil {
		slog.Error("loading archive", "error", err)
		archived = nil
	}
	s.ledger.ReplaceArchive(archived)

	for _, category := range s.ledger.Categories() {
		items, err := s.store.Load(category)
		if err != nil {
			slog.Error("loading category", "category", category, "error", err)
			items = nil
		}
		s.ledger.Replace(category, items)
	}
}

// Current returns the active category.
func (s *Service) Current() string {
	return s.current
}

// ChangeCategory switches the active view. The next listing recomputes
// ordinals and re-applies the archive-exclusion filter.
func (s *Service) ChangeCategory(category string) error {
	if !model.ValidCategory(category) {
		return fmt.Errorf("%w: %q", ledger.ErrUnknownCategory, category)
	}
	s.current = category
	return nil
}

// Visible returns the active category's listing: non-archived items with
// fresh ordinals.
func (s *Service) Visible() ([]model.Item, error) {
	return s.ledger.Visible(s.current)
}

// AddProduct validates the fields, assigns an identity and a generated
// code, appends the item to the active category and persists it. The
// serial field is required; everything else may be empty.
func (s *Service) AddProduct(fields model.Item) (model.Item, error) {
	if strings.TrimSpace(fields.Serial) == "" {
		return model.Item{}, fmt.Errorf("%w: serial must not be empty", ErrValidation)
	}

	item := fields
	item.ID = model.NewID()
	item.Ordinal = 0

	code, degraded := barcode.Generate(item.Serial)
	if degraded {
		slog.Warn("serial has no digits, using fallback code", "serial", item.Serial)
	}
	item.Code = code

	if err := s.ledger.Append(s.current, item); err != nil {
		return model.Item{}, err
	}
	if err := s.saveCategory(s.current); err != nil {
		return item, err
	}
	return item, nil
}

// UpdateProduct replaces an existing item's fields in place, keeping its
// identity and generated code, and persists the category.
func (s *Service) UpdateProduct(ref, fields model.Item) (model.Item, error) {
	if strings.TrimSpace(fields.Serial) == "" {
		return model.Item{}, fmt.Errorf("%w: serial must not be empty", ErrValidation)
	}

	item := fields
	item.ID = ref.ID
	item.Ordinal = 0
	item.Code = ref.Code

	if err := s.ledger.Update(s.current, ref, item); err != nil {
		return model.Item{}, err
	}
	if err := s.saveCategory(s.current); err != nil {
		return item, err
	}
	return item, nil
}

// DeleteProduct moves the item from the active category to the archive and
// persists both files. The in-memory move is atomic; a failed save is
// surfaced but not rolled back.
func (s *Service) DeleteProduct(ref model.Item) error {
	if _, err := s.ledger.Delete(s.current, ref); err != nil {
		return err
	}
	return errors.Join(s.saveCategory(s.current), s.saveArchive())
}

// RestoreProduct moves the first exact match out of the archive into the
// active category and persists both files.
func (s *Service) RestoreProduct(ref model.Item) (model.Item, error) {
	item, err := s.ledger.Restore(s.current, ref)
	if err != nil {
		return model.Item{}, err
	}
	return item, errors.Join(s.saveCategory(s.current), s.saveArchive())
}

// Archived returns the archive contents in insertion order.
func (s *Service) Archived() []model.Item {
	return s.ledger.Archived()
}

// Search classifies every visible item of the active category against a
// case-insensitive substring match over the string form of all fields,
// ordinal included. The listing itself is not filtered.
func (s *Service) Search(term string) ([]Match, error) {
	items, err := s.Visible()
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(term)
	matches := make([]Match, 0, len(items))
	for _, it := range items {
		matches = append(matches, Match{Item: it, Matched: itemMatches(it, term)})
	}
	return matches, nil
}

func itemMatches(item model.Item, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(fmt.Sprint(item.Ordinal), term) {
		return true
	}
	for _, f := range item.Fields() {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// SortBy returns the visible items of the active category ordered by one
// column. Values that both parse as decimals compare numerically, anything
// else lexically. Ordinals are renumbered to follow the sorted order.
func (s *Service) SortBy(column string, descending bool) ([]model.Item, error) {
	idx, err := columnIndex(column)
	if err != nil {
		return nil, err
	}

	items, err := s.Visible()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(a, b int) bool {
		less := valueLess(items[a].Fields()[idx], items[b].Fields()[idx])
		if descending {
			return !less
		}
		return less
	})
	for n := range items {
		items[n].Ordinal = n + 1
	}
	return items, nil
}

// Columns are the sortable column names, in canonical field order.
var Columns = []string{
	"serial", "brand", "model", "screen", "processor", "memory",
	"disk", "graphics", "resolution", "touch", "os", "status",
	"price", "code",
}

func columnIndex(column string) (int, error) {
	for n, c := range Columns {
		if c == column {
			return n, nil
		}
	}
	return 0, fmt.Errorf("unknown column %q", column)
}

func valueLess(a, b string) bool {
	da, errA := decimal.NewFromString(a)
	db, errB := decimal.NewFromString(b)
	if errA == nil && errB == nil {
		return da.LessThan(db)
	}
	return a < b
}

// ComputeTotal sums the price field over the visible items of a category.
// Prices that do not parse as numbers are skipped, not treated as zero.
func (s *Service) ComputeTotal(category string) (decimal.Decimal, error) {
	items, err := s.ledger.Visible(category)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, it := range items {
		price, err := decimal.NewFromString(strings.TrimSpace(it.Price))
		if err != nil {
			continue
		}
		total = total.Add(price)
	}
	return total, nil
}

func (s *Service) saveCategory(category string) error {
	if err := s.store.Save(category, s.ledger.Items(category)); err != nil {
		return fmt.Errorf("saving category %q: %w", category, err)
	}
	return nil
}

func (s *Service) saveArchive() error {
	if err := s.store.Save(storage.ArchiveName, s.ledger.Archived()); err != nil {
		return fmt.Errorf("saving archive: %w", err)
	}
	return nil
}
