package crud

import (
	"strconv"
	"testing"
)

type widget struct {
	Meta
	WidgetDescription string  `json:"widget_description"`
	GeneratedBy       *string `json:"generated_by,omitempty"`
}

func testWidget(uuid, description string) widget {
	u := uuid
	return widget{Meta: Meta{UUID: &u}, WidgetDescription: description}
}

func newWidgetStore() *Store[widget, *widget] {
	return NewStore[widget](
		WithSortKey[widget](func(w *widget) string { return w.WidgetDescription }),
		WithSearchFields[widget](func(w *widget) []string {
			fields := []string{w.WidgetDescription, w.EntityUUID()}
			if w.ID != nil {
				fields = append(fields, strconv.FormatInt(*w.ID, 10))
			}
			if w.GeneratedBy != nil {
				fields = append(fields, *w.GeneratedBy)
			}
			return fields
		}),
	)
}

func TestStore_AddItemSortsByDisplayField(t *testing.T) {
	s := newWidgetStore()
	s.AddItem(testWidget("b", "Zeta"))
	s.AddItem(testWidget("a", "Alpha"))
	s.AddItem(testWidget("c", "Mid"))

	items := s.Items()
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	got := []string{items[0].WidgetDescription, items[1].WidgetDescription, items[2].WidgetDescription}
	want := []string{"Alpha", "Mid", "Zeta"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("items[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStore_AddItemInsertionOrderWithoutSortKey(t *testing.T) {
	s := NewStore[widget]()
	s.AddItem(testWidget("a", "Zeta"))
	s.AddItem(testWidget("b", "Alpha"))

	items := s.Items()
	if items[0].EntityUUID() != "b" || items[1].EntityUUID() != "a" {
		t.Errorf("expected prepend order [b a], got [%s %s]", items[0].EntityUUID(), items[1].EntityUUID())
	}
}

func TestStore_UpdateItemMissingUUIDIsNoop(t *testing.T) {
	s := newWidgetStore()
	s.AddItem(testWidget("a", "Alpha"))
	s.UpdateItem("nope", func(w *widget) { w.WidgetDescription = "changed" })

	if s.Items()[0].WidgetDescription != "Alpha" {
		t.Errorf("missing uuid must not mutate anything")
	}
}

func TestStore_SoftDeleteIdempotent(t *testing.T) {
	s := newWidgetStore()
	s.AddItem(testWidget("a", "Alpha"))

	s.DeleteItem("a")
	first := s.Items()[0].Deleted()
	if first == nil {
		t.Fatal("deleted_at not set after DeleteItem")
	}

	s.DeleteItem("a")
	second := s.Items()[0].Deleted()
	if second == nil {
		t.Fatal("second DeleteItem must not clear deleted_at")
	}
	if !second.Equal(*first) {
		t.Errorf("second DeleteItem changed the timestamp")
	}

	// Record stays in the collection — soft delete only.
	if len(s.Items()) != 1 {
		t.Errorf("items = %d, want 1", len(s.Items()))
	}

	s.RestoreItem("a")
	if s.Items()[0].Deleted() != nil {
		t.Errorf("deleted_at not cleared after RestoreItem")
	}
}

func TestStore_FilteredItems(t *testing.T) {
	s := newWidgetStore()
	s.SetItems([]widget{testWidget("a", "Foo Bar"), testWidget("b", "Baz")})

	s.SetSearchTerm("foo")
	got := s.FilteredItems()
	if len(got) != 1 || got[0].EntityUUID() != "a" {
		t.Fatalf("filter %q: got %d items, want exactly uuid a", "foo", len(got))
	}

	// SetItems re-applies the display sort: "Baz" before "Foo Bar".
	s.SetSearchTerm("")
	all := s.FilteredItems()
	if len(all) != 2 || all[0].EntityUUID() != "b" || all[1].EntityUUID() != "a" {
		t.Errorf("empty term must return all items in display order")
	}
}

func TestStore_FilterMatchesUUIDAndGeneratedBy(t *testing.T) {
	s := newWidgetStore()
	by := "importer"
	w := testWidget("abc-123", "Thing")
	w.GeneratedBy = &by
	s.SetItems([]widget{w})

	s.SetSearchTerm("ABC-123")
	if len(s.FilteredItems()) != 1 {
		t.Errorf("uuid match must be case-insensitive")
	}
	s.SetSearchTerm("import")
	if len(s.FilteredItems()) != 1 {
		t.Errorf("generated_by must be searchable")
	}
}

func TestStore_Clear(t *testing.T) {
	s := newWidgetStore()
	s.AddItem(testWidget("a", "Alpha"))
	s.SetLoading(true)
	s.SetError("boom")
	s.SetSearchTerm("x")

	s.Clear()
	if len(s.Items()) != 0 || s.Loading() || s.Error() != "" || s.SearchTerm() != "" {
		t.Errorf("Clear must reset to initial state")
	}
}
