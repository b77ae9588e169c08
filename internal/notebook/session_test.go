package notebook

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"mathpad/internal/errlog"
	"mathpad/internal/evalclient"
)

const testDebounce = 10 * time.Millisecond

type evalCall struct {
	lines      []string
	startIndex int
	contexts   map[string]map[string]any
}

// stubEvaluator answers rounds through fn and records every call.
type stubEvaluator struct {
	mu    sync.Mutex
	calls []evalCall
	fn    func(call evalCall) ([]string, map[string]any, error)
}

func (s *stubEvaluator) Evaluate(_ context.Context, lines []string, startIndex int, contexts map[string]map[string]any) ([]string, map[string]any, error) {
	call := evalCall{lines: append([]string(nil), lines...), startIndex: startIndex, contexts: contexts}
	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()
	return s.fn(call)
}

func (s *stubEvaluator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type resultsEvent struct {
	pageID     int
	startIndex int
	results    []string
}

type statusEvent struct {
	state   string
	message string
}

// recordingEmitter buffers everything the session pushes.
type recordingEmitter struct {
	resultsCh  chan resultsEvent
	statusCh   chan statusEvent
	contextsCh chan map[string]map[string]any
	logsCh     chan []errlog.Entry
}

func newRecordingEmitter() *recordingEmitter {
	return &recordingEmitter{
		resultsCh:  make(chan resultsEvent, 64),
		statusCh:   make(chan statusEvent, 64),
		contextsCh: make(chan map[string]map[string]any, 64),
		logsCh:     make(chan []errlog.Entry, 64),
	}
}

func (e *recordingEmitter) Results(pageID, startIndex int, results []string) {
	e.resultsCh <- resultsEvent{pageID: pageID, startIndex: startIndex, results: results}
}
func (e *recordingEmitter) Status(state, message string) {
	e.statusCh <- statusEvent{state: state, message: message}
}
func (e *recordingEmitter) Pages([]PageInfo, int) {}
func (e *recordingEmitter) Contexts(contexts map[string]map[string]any) {
	e.contextsCh <- contexts
}
func (e *recordingEmitter) Logs(entries []errlog.Entry) {
	e.logsCh <- entries
}

func (e *recordingEmitter) waitResults(t *testing.T) resultsEvent {
	t.Helper()
	select {
	case evt := <-e.resultsCh:
		return evt
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for results")
		return resultsEvent{}
	}
}

func (e *recordingEmitter) waitStatus(t *testing.T, state string) statusEvent {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-e.statusCh:
			if evt.state == state {
				return evt
			}
		case <-deadline:
			t.Fatalf("timed out waiting for status %q", state)
			return statusEvent{}
		}
	}
}

// simpleMath evaluates "name = <int>" assignments and "name + <int>" sums
// over the page's own variables, enough to exercise the cascade.
func simpleMath(call evalCall) ([]string, map[string]any, error) {
	vars := map[string]any{}
	all := make([]string, len(call.lines))
	for i, line := range call.lines {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			all[i] = ""
		case strings.Contains(line, "="):
			parts := strings.SplitN(line, "=", 2)
			var v int
			fmt.Sscanf(strings.TrimSpace(parts[1]), "%d", &v)
			vars[strings.TrimSpace(parts[0])] = v
			all[i] = ""
		case strings.Contains(line, "+"):
			parts := strings.SplitN(line, "+", 2)
			base, _ := vars[strings.TrimSpace(parts[0])].(int)
			var v int
			fmt.Sscanf(strings.TrimSpace(parts[1]), "%d", &v)
			all[i] = fmt.Sprintf("%d", base+v)
		default:
			all[i] = "Error: name '" + line + "' is not defined"
		}
	}
	return all[call.startIndex:], vars, nil
}

func TestSessionEndToEndCascade(t *testing.T) {
	eval := &stubEvaluator{fn: simpleMath}
	emitter := newRecordingEmitter()
	sess := NewSession(eval, emitter, errlog.New(nil), Options{Debounce: testDebounce})
	defer sess.Close()

	sess.RenamePage(1, "Main")
	sess.ApplyEdit("x = 2\nx + 3")

	evt := emitter.waitResults(t)
	if evt.startIndex != 0 {
		t.Fatalf("startIndex = %d, want 0", evt.startIndex)
	}
	if len(evt.results) != 2 || evt.results[0] != "" || evt.results[1] != "5" {
		t.Fatalf("results = %v, want [\"\" \"5\"]", evt.results)
	}

	ctxDeadline := time.After(2 * time.Second)
	for {
		var contexts map[string]map[string]any
		select {
		case contexts = <-emitter.contextsCh:
		case <-ctxDeadline:
			t.Fatalf("timed out waiting for Main's context")
		}
		main, ok := contexts["Main"]
		if !ok {
			// Earlier page-state pushes carry no evaluated contexts yet.
			continue
		}
		if main["x"] != 2 {
			t.Fatalf("context x = %v, want 2", main["x"])
		}
		break
	}

	// Editing line 0 cascades through line 1.
	sess.ApplyEdit("x = 10\nx + 3")
	evt = emitter.waitResults(t)
	if evt.startIndex != 0 {
		t.Fatalf("cascade startIndex = %d, want 0", evt.startIndex)
	}
	if len(evt.results) != 2 || evt.results[1] != "13" {
		t.Fatalf("cascade results = %v, want [\"\" \"13\"]", evt.results)
	}
}

func TestSessionPartialCascadeStartsAtDivergence(t *testing.T) {
	eval := &stubEvaluator{fn: simpleMath}
	emitter := newRecordingEmitter()
	sess := NewSession(eval, emitter, errlog.New(nil), Options{Debounce: testDebounce})
	defer sess.Close()

	sess.ApplyEdit("x = 2\nx + 3")
	emitter.waitResults(t)

	// Only line 1 changes; the request must carry startIndex 1.
	sess.ApplyEdit("x = 2\nx + 40")
	evt := emitter.waitResults(t)
	if evt.startIndex != 1 {
		t.Fatalf("startIndex = %d, want 1", evt.startIndex)
	}
	if len(evt.results) != 1 || evt.results[0] != "42" {
		t.Fatalf("results = %v, want [\"42\"]", evt.results)
	}

	_, _, stored := sess.ActivePage()
	if len(stored) != 2 || stored[0] != "" || stored[1] != "42" {
		t.Fatalf("stored results = %v, want [\"\" \"42\"]", stored)
	}
}

func TestSessionIdenticalEditIssuesNothing(t *testing.T) {
	eval := &stubEvaluator{fn: simpleMath}
	emitter := newRecordingEmitter()
	sess := NewSession(eval, emitter, errlog.New(nil), Options{Debounce: testDebounce})
	defer sess.Close()

	sess.ApplyEdit("x = 2")
	emitter.waitResults(t)
	calls := eval.callCount()

	sess.ApplyEdit("x = 2")
	time.Sleep(5 * testDebounce)
	if got := eval.callCount(); got != calls {
		t.Fatalf("identical edit issued a request: calls %d -> %d", calls, got)
	}
}

func TestSessionDebounceCoalescesEdits(t *testing.T) {
	eval := &stubEvaluator{fn: simpleMath}
	emitter := newRecordingEmitter()
	sess := NewSession(eval, emitter, errlog.New(nil), Options{Debounce: 50 * time.Millisecond})
	defer sess.Close()

	sess.ApplyEdit("x = 1")
	sess.ApplyEdit("x = 12")
	sess.ApplyEdit("x = 123")
	emitter.waitResults(t)

	time.Sleep(100 * time.Millisecond)
	if got := eval.callCount(); got != 1 {
		t.Fatalf("burst issued %d requests, want 1", got)
	}
}

func TestSessionDiscardsStaleRound(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	round := 0

	eval := &stubEvaluator{}
	eval.fn = func(call evalCall) ([]string, map[string]any, error) {
		mu.Lock()
		round++
		n := round
		mu.Unlock()
		if n == 1 {
			// First round returns only after the second has been applied.
			<-release
			return []string{"stale"}, map[string]any{"v": "stale"}, nil
		}
		return []string{"fresh"}, map[string]any{"v": "fresh"}, nil
	}

	emitter := newRecordingEmitter()
	sess := NewSession(eval, emitter, errlog.New(nil), Options{Debounce: testDebounce})
	defer sess.Close()

	sess.ApplyEdit("a")
	// Wait for round 1 to be in flight.
	deadline := time.Now().Add(2 * time.Second)
	for eval.callCount() < 1 {
		if time.Now().After(deadline) {
			t.Fatalf("round 1 never started")
		}
		time.Sleep(time.Millisecond)
	}

	sess.ApplyEdit("b")
	evt := emitter.waitResults(t)
	if len(evt.results) != 1 || evt.results[0] != "fresh" {
		t.Fatalf("round 2 results = %v, want [\"fresh\"]", evt.results)
	}

	close(release)
	time.Sleep(50 * time.Millisecond)

	_, _, stored := sess.ActivePage()
	if len(stored) != 1 || stored[0] != "fresh" {
		t.Fatalf("stale round overwrote newer state: results = %v", stored)
	}
	select {
	case evt := <-emitter.resultsCh:
		t.Fatalf("stale round emitted results: %v", evt.results)
	default:
	}
}

func TestSessionRecordsEvaluationErrors(t *testing.T) {
	eval := &stubEvaluator{fn: func(call evalCall) ([]string, map[string]any, error) {
		return []string{"", "Error: division by zero"}, map[string]any{}, nil
	}}
	emitter := newRecordingEmitter()
	logBuf := errlog.New(nil)
	sess := NewSession(eval, emitter, logBuf, Options{Debounce: testDebounce})
	defer sess.Close()

	sess.ApplyEdit("x = 1\n1/0")
	emitter.waitResults(t)

	deadline := time.Now().Add(2 * time.Second)
	for {
		entries := logBuf.Entries()
		if len(entries) == 1 {
			e := entries[0]
			if e.Type != errlog.TypeEvaluation {
				t.Fatalf("entry type = %q, want %q", e.Type, errlog.TypeEvaluation)
			}
			if e.LineNo != 2 {
				t.Fatalf("entry lineNo = %d, want 2", e.LineNo)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("evaluation error never logged: %v", entries)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSessionClassifiesRoundFailures(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantType string
	}{
		{"api", &evalclient.StatusError{StatusCode: 400, Message: "Invalid lines"}, errlog.TypeAPI},
		{"network", errors.New("connection refused"), errlog.TypeNetwork},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eval := &stubEvaluator{fn: func(call evalCall) ([]string, map[string]any, error) {
				return nil, nil, tc.err
			}}
			emitter := newRecordingEmitter()
			logBuf := errlog.New(nil)
			sess := NewSession(eval, emitter, logBuf, Options{Debounce: testDebounce})
			defer sess.Close()

			sess.ApplyEdit("x = 1")
			emitter.waitStatus(t, StatusError)

			entries := logBuf.Entries()
			if len(entries) != 1 {
				t.Fatalf("len(entries) = %d, want 1", len(entries))
			}
			if entries[0].Type != tc.wantType {
				t.Fatalf("entry type = %q, want %q", entries[0].Type, tc.wantType)
			}
		})
	}
}

func TestSessionContextIsolationAcrossPages(t *testing.T) {
	eval := &stubEvaluator{fn: simpleMath}
	emitter := newRecordingEmitter()
	sess := NewSession(eval, emitter, errlog.New(nil), Options{Debounce: testDebounce})
	defer sess.Close()

	sess.RenamePage(1, "First")
	sess.ApplyEdit("x = 7")
	emitter.waitResults(t)
	emitter.waitStatus(t, StatusReady)

	sess.AddPage("Second")
	sess.ApplyEdit("y = 9")
	emitter.waitStatus(t, StatusReady)

	// The round for Second must carry First's snapshot and leave it alone.
	var lastContexts map[string]map[string]any
	deadline := time.After(2 * time.Second)
drain:
	for {
		select {
		case ctxs := <-emitter.contextsCh:
			lastContexts = ctxs
			if _, ok := ctxs["Second"]; ok {
				break drain
			}
		case <-deadline:
			t.Fatalf("never saw Second's context; last: %v", lastContexts)
		}
	}
	first, ok := lastContexts["First"]
	if !ok {
		t.Fatalf("First's context disappeared: %v", lastContexts)
	}
	if first["x"] != 7 {
		t.Fatalf("First's context mutated by Second's round: %v", first)
	}
	second := lastContexts["Second"]
	if second["y"] != 9 {
		t.Fatalf("Second's context = %v, want y=9", second)
	}

	lastCall := eval.calls[len(eval.calls)-1]
	snap, ok := lastCall.contexts["First"]
	if !ok {
		t.Fatalf("round for Second missing First's snapshot: %v", lastCall.contexts)
	}
	if snap["x"] != 7 {
		t.Fatalf("snapshot = %v, want x=7", snap)
	}
	if _, ok := lastCall.contexts["Second"]; ok {
		t.Fatalf("snapshot includes the page being evaluated")
	}
}

func TestSessionSwitchPageReplaysStoredResults(t *testing.T) {
	eval := &stubEvaluator{fn: simpleMath}
	emitter := newRecordingEmitter()
	sess := NewSession(eval, emitter, errlog.New(nil), Options{Debounce: testDebounce})
	defer sess.Close()

	sess.ApplyEdit("x = 1\nx + 1")
	emitter.waitResults(t)
	emitter.waitStatus(t, StatusReady)

	sess.AddPage("")
	// AddPage replays the (empty) results of the new page.
	evt := emitter.waitResults(t)
	if len(evt.results) != 0 {
		t.Fatalf("new page results = %v, want empty", evt.results)
	}

	if err := sess.SwitchPage(1); err != nil {
		t.Fatalf("SwitchPage() error = %v", err)
	}
	evt = emitter.waitResults(t)
	if evt.pageID != 1 || evt.startIndex != 0 {
		t.Fatalf("replay event = %+v, want pageID 1 startIndex 0", evt)
	}
	if len(evt.results) != 2 || evt.results[1] != "2" {
		t.Fatalf("replayed results = %v, want [\"\" \"2\"]", evt.results)
	}
}

func TestSessionClosePageRules(t *testing.T) {
	eval := &stubEvaluator{fn: simpleMath}
	emitter := newRecordingEmitter()
	sess := NewSession(eval, emitter, errlog.New(nil), Options{Debounce: testDebounce})
	defer sess.Close()

	if err := sess.ClosePage(1); !errors.Is(err, ErrLastPage) {
		t.Fatalf("ClosePage(last) error = %v, want ErrLastPage", err)
	}
	sess.AddPage("")
	if err := sess.ClosePage(2); err != nil {
		t.Fatalf("ClosePage() error = %v", err)
	}
	info, _, _ := sess.ActivePage()
	if info.ID != 1 {
		t.Fatalf("active page after close = %d, want 1", info.ID)
	}
}
