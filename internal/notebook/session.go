package notebook

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"mathpad/internal/errlog"
	"mathpad/internal/evalclient"
)

// Status indicator states pushed to the client.
const (
	StatusEvaluating = "evaluating"
	StatusReady      = "ready"
	StatusError      = "error"
)

// Evaluator is the remote evaluation boundary.
type Evaluator interface {
	Evaluate(ctx context.Context, lines []string, startIndex int, contexts map[string]map[string]any) ([]string, map[string]any, error)
}

// PageInfo is the page summary pushed on every page-set change.
type PageInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Emitter receives session output. Implementations push to the connected
// client; calls arrive from session goroutines and must not block.
type Emitter interface {
	Results(pageID, startIndex int, results []string)
	Status(state, message string)
	Pages(pages []PageInfo, activeID int)
	Contexts(contexts map[string]map[string]any)
	Logs(entries []errlog.Entry)
}

// Options tune a session.
type Options struct {
	Debounce    time.Duration
	EvalTimeout time.Duration
}

// Session is one interactive editing session: a page registry plus the
// cascading evaluation engine. All page state is guarded by mu; evaluation
// rounds run on their own goroutines and re-enter under the lock to apply.
type Session struct {
	mu        sync.Mutex
	registry  *Registry
	scheduler *Scheduler
	eval      Evaluator
	emitter   Emitter
	log       *errlog.Log
	timeout   time.Duration
}

// NewSession creates a session with one default page.
func NewSession(eval Evaluator, emitter Emitter, log *errlog.Log, opts Options) *Session {
	timeout := opts.EvalTimeout
	if timeout <= 0 {
		timeout = evalclient.DefaultTimeout
	}
	s := &Session{
		registry: NewRegistry(),
		eval:     eval,
		emitter:  emitter,
		log:      log,
		timeout:  timeout,
	}
	s.scheduler = NewScheduler(opts.Debounce, s.evaluateFrom)
	return s
}

// Close stops pending work. In-flight rounds finish and are applied or
// discarded by the round stamp as usual.
func (s *Session) Close() {
	s.scheduler.Stop()
}

// ApplyEdit commits the active page's new content and schedules a cascade
// re-evaluation from the divergence point. An edit that leaves every line
// identical is a no-op: nothing is committed or scheduled.
func (s *Session) ApplyEdit(content string) {
	s.mu.Lock()
	page := s.registry.Active()
	if page == nil {
		s.mu.Unlock()
		return
	}
	idx := FirstDivergence(page.Lines(), strings.Split(content, "\n"))
	if idx == NoChange {
		s.mu.Unlock()
		return
	}
	page.Content = content
	s.mu.Unlock()

	s.scheduler.Trigger(idx)
}

// evaluateFrom runs one evaluation round for the active page, issued by the
// scheduler once the debounce window elapses. The round is stamped so a
// response arriving after a newer round has been applied is discarded.
func (s *Session) evaluateFrom(startIndex int) {
	s.mu.Lock()
	page := s.registry.Active()
	if page == nil {
		s.mu.Unlock()
		return
	}
	page.rounds++
	round := page.rounds
	pageID := page.ID
	lines := page.Lines()
	contexts := s.registry.ContextSnapshot(pageID)
	s.mu.Unlock()

	if startIndex > len(lines) {
		startIndex = len(lines)
	}
	s.emitter.Status(StatusEvaluating, "Evaluating...")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	results, newContext, err := s.eval.Evaluate(ctx, lines, startIndex, contexts)
	s.applyRound(pageID, round, startIndex, results, newContext, err)
}

func (s *Session) applyRound(pageID int, round uint64, startIndex int, results []string, newContext map[string]any, err error) {
	if err != nil {
		s.reportRoundFailure(err)
		return
	}

	s.mu.Lock()
	page, ok := s.registry.Get(pageID)
	if !ok || round <= page.appliedRound {
		// Page closed, or a newer round already landed.
		s.mu.Unlock()
		return
	}
	page.appliedRound = round
	page.Results = ProjectResults(page.Results, startIndex, results)
	page.Context = newContext
	page.evaluated = true
	contexts := s.registry.AllContexts()
	active := pageID == s.registry.ActiveID()
	s.mu.Unlock()

	if active {
		s.emitter.Results(pageID, startIndex, results)
	}
	s.emitter.Status(StatusReady, "")
	s.emitter.Contexts(contexts)

	for i, res := range results {
		if isErrorResult(res) {
			s.log.Append(errlog.Entry{
				Type:    errlog.TypeEvaluation,
				Message: res,
				LineNo:  startIndex + i + 1,
			})
		}
	}
}

func (s *Session) reportRoundFailure(err error) {
	var se *evalclient.StatusError
	if errors.As(err, &se) {
		msg := se.Message
		if strings.TrimSpace(msg) == "" {
			msg = "evaluation request failed"
		}
		s.log.Append(errlog.Entry{Type: errlog.TypeAPI, Message: msg})
		s.emitter.Status(StatusError, msg)
		return
	}
	s.log.Append(errlog.Entry{Type: errlog.TypeNetwork, Message: err.Error()})
	s.emitter.Status(StatusError, "Evaluation service unreachable")
}

// isErrorResult recognizes the evaluator's per-line error marker.
func isErrorResult(res string) bool {
	return strings.HasPrefix(res, "Error:")
}

// AddPage creates a page and activates it.
func (s *Session) AddPage(name string) {
	s.mu.Lock()
	p := s.registry.Create(name)
	_ = s.registry.SwitchTo(p.ID)
	s.mu.Unlock()
	s.emitPageState()
	s.emitActiveResults()
}

// SwitchPage activates another page and replays its stored results; the
// outgoing page's record is already current because edits commit on every
// keystroke.
func (s *Session) SwitchPage(id int) error {
	s.scheduler.Stop()
	s.mu.Lock()
	err := s.registry.SwitchTo(id)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.emitPageState()
	s.emitActiveResults()
	return nil
}

// ClosePage removes a page; the last remaining page cannot be closed.
func (s *Session) ClosePage(id int) error {
	s.mu.Lock()
	wasActive := s.registry.ActiveID() == id
	err := s.registry.Close(id)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if wasActive {
		s.scheduler.Stop()
	}
	s.emitPageState()
	if wasActive {
		s.emitActiveResults()
	}
	return nil
}

// RenamePage updates a page's display name and cross-page namespace prefix.
// Source text referencing the old name is left as-is.
func (s *Session) RenamePage(id int, name string) error {
	s.mu.Lock()
	err := s.registry.Rename(id, name)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.emitPageState()
	return nil
}

// ActivePage returns a copy of the active page's state.
func (s *Session) ActivePage() (PageInfo, string, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.registry.Active()
	results := make([]string, len(p.Results))
	copy(results, p.Results)
	return PageInfo{ID: p.ID, Name: p.Name}, p.Content, results
}

// FetchLogs replaces the local error buffer with the remote store's list and
// emits it.
func (s *Session) FetchLogs(ctx context.Context) {
	entries, err := s.log.Refresh(ctx)
	if err != nil {
		s.emitter.Status(StatusError, "Failed to load error logs")
		return
	}
	s.emitter.Logs(entries)
}

// ClearLogs empties the local buffer and emits the empty state.
func (s *Session) ClearLogs() {
	s.log.Clear()
	s.emitter.Logs([]errlog.Entry{})
}

// EmitState pushes the full page list, active results and contexts, used
// right after a client connects.
func (s *Session) EmitState() {
	s.emitPageState()
	s.emitActiveResults()
}

func (s *Session) emitPageState() {
	s.mu.Lock()
	pages := s.registry.Pages()
	infos := make([]PageInfo, 0, len(pages))
	for _, p := range pages {
		infos = append(infos, PageInfo{ID: p.ID, Name: p.Name})
	}
	activeID := s.registry.ActiveID()
	contexts := s.registry.AllContexts()
	s.mu.Unlock()

	s.emitter.Pages(infos, activeID)
	s.emitter.Contexts(contexts)
}

func (s *Session) emitActiveResults() {
	s.mu.Lock()
	p := s.registry.Active()
	results := make([]string, len(p.Results))
	copy(results, p.Results)
	pageID := p.ID
	s.mu.Unlock()

	s.emitter.Results(pageID, 0, results)
}
