package notebook

import "strings"

// Page is one independent document within a session: its own source text,
// per-line results and the variable context produced by its last completed
// evaluation round.
type Page struct {
	ID      int
	Name    string
	Content string
	Results []string
	Context map[string]any

	// rounds counts evaluation rounds issued for this page; appliedRound is
	// the highest round whose response has been applied. Responses stamped
	// with an older round are discarded.
	rounds       uint64
	appliedRound uint64
	evaluated    bool
}

// Lines splits the page content into its line array. Empty content is a
// single empty line, matching what a text editor displays.
func (p *Page) Lines() []string {
	return strings.Split(p.Content, "\n")
}

// Evaluated reports whether at least one evaluation round has completed for
// this page. Only evaluated pages contribute to cross-page context snapshots.
func (p *Page) Evaluated() bool {
	return p.evaluated
}
