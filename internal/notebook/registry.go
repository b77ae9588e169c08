package notebook

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLastPage is returned when closing the only remaining page.
	ErrLastPage = errors.New("cannot close the last page")
	// ErrPageNotFound is returned for operations on an unknown page id.
	ErrPageNotFound = errors.New("page not found")
)

// Registry owns the ordered set of pages and the active page id. It is not
// safe for concurrent use; the owning Session serializes access.
type Registry struct {
	pages    []*Page
	activeID int
	nextID   int
}

// NewRegistry creates a registry holding one default page, which is active.
func NewRegistry() *Registry {
	r := &Registry{nextID: 1}
	p := r.Create("")
	r.activeID = p.ID
	return r
}

// Pages returns the pages in display order.
func (r *Registry) Pages() []*Page {
	out := make([]*Page, len(r.pages))
	copy(out, r.pages)
	return out
}

// ActiveID returns the id of the active page.
func (r *Registry) ActiveID() int {
	return r.activeID
}

// Active returns the active page.
func (r *Registry) Active() *Page {
	p, _ := r.Get(r.activeID)
	return p
}

// Get looks up a page by id.
func (r *Registry) Get(id int) (*Page, bool) {
	for _, p := range r.pages {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Create appends a new empty page. An empty name yields "Page<N>" where N is
// the page's id; ids are monotonically assigned and never reused. The new
// page is not activated.
func (r *Registry) Create(name string) *Page {
	id := r.nextID
	r.nextID++
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Page%d", id)
	}
	p := &Page{ID: id, Name: name, Results: []string{}, Context: map[string]any{}}
	r.pages = append(r.pages, p)
	return p
}

// SwitchTo activates the page with the given id. Page records are committed
// on every edit, so there is nothing further to persist for the outgoing
// page.
func (r *Registry) SwitchTo(id int) error {
	if _, ok := r.Get(id); !ok {
		return ErrPageNotFound
	}
	r.activeID = id
	return nil
}

// Close removes a page. Closing the last remaining page is refused. If the
// closed page was active, the first remaining page in display order becomes
// active; closing a non-active page leaves the active id untouched.
func (r *Registry) Close(id int) error {
	if len(r.pages) <= 1 {
		return ErrLastPage
	}
	idx := -1
	for i, p := range r.pages {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrPageNotFound
	}
	r.pages = append(r.pages[:idx], r.pages[idx+1:]...)
	if r.activeID == id {
		r.activeID = r.pages[0].ID
	}
	return nil
}

// Rename updates a page's name. Existing cross-page references in other
// pages' source text are not rewritten; references through the old name
// dangle until edited.
func (r *Registry) Rename(id int, name string) error {
	p, ok := r.Get(id)
	if !ok {
		return ErrPageNotFound
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("page name is required")
	}
	p.Name = name
	return nil
}

// ContextSnapshot assembles the cross-page context for evaluating the page
// with the given id: every other page that has completed at least one round,
// keyed by name. When two pages share a name the first in display order
// wins.
func (r *Registry) ContextSnapshot(excludeID int) map[string]map[string]any {
	out := make(map[string]map[string]any)
	for _, p := range r.pages {
		if p.ID == excludeID || !p.evaluated {
			continue
		}
		if _, taken := out[p.Name]; taken {
			continue
		}
		out[p.Name] = p.Context
	}
	return out
}

// AllContexts returns every evaluated page's context keyed by name, the read
// view behind the variable panel. First page in display order wins duplicate
// names, consistent with ContextSnapshot.
func (r *Registry) AllContexts() map[string]map[string]any {
	out := make(map[string]map[string]any)
	for _, p := range r.pages {
		if !p.evaluated {
			continue
		}
		if _, taken := out[p.Name]; taken {
			continue
		}
		out[p.Name] = p.Context
	}
	return out
}
