package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/idanc/machsan/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	items := []model.Item{
		{
			ID:     model.NewID(),
			Serial: "SN-1",
			Brand:  "מותג עברי", // non-ASCII text must survive
			Model:  "דגם, עם פסיק",
			Price:  "1999.90",
			Code:   "100000000000",
		},
		{
			ID:     model.NewID(),
			Serial: "SN-2",
			Brand:  "Dell",
			Code:   "200000000000",
		},
	}

	if err := store.Save("laptops", items); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load("laptops")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(items) {
		t.Fatalf("expected %d items, got %d", len(items), len(got))
	}
	for n := range items {
		if got[n].ID != items[n].ID {
			t.Errorf("item %d ID changed: %q vs %q", n, got[n].ID, items[n].ID)
		}
		if !got[n].SameRecord(items[n]) {
			t.Errorf("item %d fields changed: %v vs %v", n, got[n].Fields(), items[n].Fields())
		}
	}
}

func TestSaveEmptyList(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save("laptops", nil); err != nil {
		t.Fatalf("Save empty: %v", err)
	}
	got, err := store.Load("laptops")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty list, got %d items", len(got))
	}
}

func TestLoadMissingFile(t *testing.T) {
	store := newTestStore(t)
	got, err := store.Load("desktops")
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil list, got %v", got)
	}
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	content := "bad,row\n" +
		"SN-1,Lenovo,T14,14,i5,16GB,512GB,integrated,1920x1080,no,Win11,in stock,1200,100000000000\n"
	if err := os.WriteFile(filepath.Join(dir, "laptops.csv"), []byte(content), 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	got, err := store.Load("laptops")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected malformed row skipped, got %d items", len(got))
	}
	if got[0].Serial != "SN-1" {
		t.Errorf("kept the wrong row: %+v", got[0])
	}
	if got[0].ID != "" {
		t.Errorf("legacy row should have no identity, got %q", got[0].ID)
	}
}

func TestSaveReplacesPreviousContents(t *testing.T) {
	store := newTestStore(t)

	first := []model.Item{{ID: model.NewID(), Serial: "OLD", Code: "000000000001"}}
	second := []model.Item{{ID: model.NewID(), Serial: "NEW", Code: "000000000002"}}

	if err := store.Save("monitors", first); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := store.Save("monitors", second); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := store.Load("monitors")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0].Serial != "NEW" {
		t.Errorf("expected only the new contents, got %+v", got)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Save("laptops", []model.Item{{Serial: "SN", Code: "000000000000"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "laptops.csv" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only laptops.csv, got %v", names)
	}
}
