package model

import "testing"

func testItem() Item {
	return Item{
		ID:         NewID(),
		Serial:     "SN-1001",
		Brand:      "Lenovo",
		Model:      "T14",
		Screen:     "14",
		Processor:  "i5",
		Memory:     "16GB",
		Disk:       "512GB",
		Graphics:   "integrated",
		Resolution: "1920x1080",
		Touch:      "no",
		OS:         "Win11",
		Status:     StatusInStock,
		Price:      "1200",
		Code:       "100100000000",
	}
}

func TestRecordRoundTrip(t *testing.T) {
	item := testItem()
	got, err := FromRecord(item.Record())
	if err != nil {
		t.Fatalf("FromRecord: %v", err)
	}
	if got.ID != item.ID {
		t.Errorf("ID changed: %q vs %q", got.ID, item.ID)
	}
	if !got.SameRecord(item) {
		t.Errorf("fields changed after round trip: %v vs %v", got.Fields(), item.Fields())
	}
}

func TestFromRecordLegacyRow(t *testing.T) {
	item := testItem()
	got, err := FromRecord(item.Fields())
	if err != nil {
		t.Fatalf("FromRecord legacy: %v", err)
	}
	if got.ID != "" {
		t.Errorf("legacy row should load without identity, got %q", got.ID)
	}
	if !got.SameRecord(item) {
		t.Errorf("legacy fields changed: %v vs %v", got.Fields(), item.Fields())
	}
}

func TestFromRecordRejectsWrongWidth(t *testing.T) {
	if _, err := FromRecord([]string{"only", "three", "columns"}); err == nil {
		t.Error("expected error for wrong column count")
	}
}

func TestSameFieldsIgnoresCode(t *testing.T) {
	a := testItem()
	b := a
	b.Code = "999999999999"
	if !a.SameFields(b) {
		t.Error("SameFields should ignore the generated code")
	}
	if a.SameRecord(b) {
		t.Error("SameRecord should compare the generated code")
	}

	b = a
	b.Brand = "HP"
	if a.SameFields(b) {
		t.Error("SameFields should notice a changed field")
	}
}

func TestMatchesPrefersIdentity(t *testing.T) {
	a := testItem()
	b := a
	b.ID = NewID()
	if a.Matches(b) {
		t.Error("different identities should not match even with equal fields")
	}

	b.ID = ""
	if !a.Matches(b) {
		t.Error("identity-less reference should match by field tuple")
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		if !ValidCategory(c) {
			t.Errorf("%q should be valid", c)
		}
	}
	if ValidCategory("printers") {
		t.Error("unknown category should not be valid")
	}
}
