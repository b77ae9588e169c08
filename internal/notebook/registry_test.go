package notebook

import (
	"errors"
	"testing"
)

func TestNewRegistryHasOneActivePage(t *testing.T) {
	r := NewRegistry()
	pages := r.Pages()
	if len(pages) != 1 {
		t.Fatalf("len(pages) = %d, want 1", len(pages))
	}
	if pages[0].Name != "Page1" {
		t.Fatalf("default name = %q, want %q", pages[0].Name, "Page1")
	}
	if r.ActiveID() != pages[0].ID {
		t.Fatalf("active id = %d, want %d", r.ActiveID(), pages[0].ID)
	}
}

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	r := NewRegistry()
	a := r.Create("")
	b := r.Create("Custom")
	if a.ID <= r.Pages()[0].ID || b.ID <= a.ID {
		t.Fatalf("ids not monotonic: %d, %d, %d", r.Pages()[0].ID, a.ID, b.ID)
	}
	if a.Name != "Page2" {
		t.Fatalf("generated name = %q, want %q", a.Name, "Page2")
	}
	if b.Name != "Custom" {
		t.Fatalf("name = %q, want %q", b.Name, "Custom")
	}
}

func TestCloseLastPageRefused(t *testing.T) {
	r := NewRegistry()
	err := r.Close(r.ActiveID())
	if !errors.Is(err, ErrLastPage) {
		t.Fatalf("Close() error = %v, want ErrLastPage", err)
	}
	if len(r.Pages()) != 1 {
		t.Fatalf("page removed despite refusal")
	}
}

func TestCloseNonActiveKeepsActiveID(t *testing.T) {
	r := NewRegistry()
	other := r.Create("")
	active := r.ActiveID()
	if err := r.Close(other.ID); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if r.ActiveID() != active {
		t.Fatalf("active id changed: got %d, want %d", r.ActiveID(), active)
	}
}

func TestCloseActivePageActivatesFirstRemaining(t *testing.T) {
	r := NewRegistry()
	second := r.Create("")
	third := r.Create("")
	if err := r.SwitchTo(second.ID); err != nil {
		t.Fatalf("SwitchTo() error = %v", err)
	}
	if err := r.Close(second.ID); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	first := r.Pages()[0]
	if r.ActiveID() != first.ID {
		t.Fatalf("active id = %d, want first remaining %d", r.ActiveID(), first.ID)
	}
	_ = third
}

func TestSwitchToUnknownPage(t *testing.T) {
	r := NewRegistry()
	if err := r.SwitchTo(999); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("SwitchTo(999) error = %v, want ErrPageNotFound", err)
	}
}

func TestRename(t *testing.T) {
	r := NewRegistry()
	id := r.ActiveID()
	if err := r.Rename(id, "Main"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if got := r.Active().Name; got != "Main" {
		t.Fatalf("name = %q, want %q", got, "Main")
	}
	if err := r.Rename(id, "  "); err == nil {
		t.Fatalf("Rename() with blank name succeeded, want error")
	}
}

func TestContextSnapshotExcludesActiveAndUnevaluated(t *testing.T) {
	r := NewRegistry()
	main := r.Active()
	main.Name = "Main"
	main.Context = map[string]any{"x": 1}
	main.evaluated = true

	fresh := r.Create("Fresh") // never evaluated
	other := r.Create("Other")
	other.Context = map[string]any{"y": 2}
	other.evaluated = true

	snap := r.ContextSnapshot(main.ID)
	if _, ok := snap["Main"]; ok {
		t.Fatalf("snapshot includes the page being evaluated")
	}
	if _, ok := snap["Fresh"]; ok {
		t.Fatalf("snapshot includes a page with no completed round")
	}
	got, ok := snap["Other"]
	if !ok {
		t.Fatalf("snapshot missing evaluated page")
	}
	if got["y"] != 2 {
		t.Fatalf("snapshot context = %v, want y=2", got)
	}
	_ = fresh
}

func TestContextSnapshotDuplicateNamesFirstWins(t *testing.T) {
	r := NewRegistry()
	main := r.Active()

	first := r.Create("Dup")
	first.Context = map[string]any{"v": "first"}
	first.evaluated = true

	second := r.Create("Dup")
	second.Context = map[string]any{"v": "second"}
	second.evaluated = true

	snap := r.ContextSnapshot(main.ID)
	got, ok := snap["Dup"]
	if !ok {
		t.Fatalf("snapshot missing duplicate-named page")
	}
	if got["v"] != "first" {
		t.Fatalf("duplicate resolution = %v, want first page in display order", got["v"])
	}
}
