package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"mathpad/internal/errlog"
	"mathpad/internal/notebook"
)

const (
	sessionWSWriteWait = 10 * time.Second
	sessionWSPongWait  = 60 * time.Second
	sessionWSPingEvery = (sessionWSPongWait * 9) / 10
)

var sessionWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// SessionHandler serves interactive editor sessions over websocket. Each
// connection owns an independent notebook session; its error-log ring
// mirrors into the shared remote store.
type SessionHandler struct {
	eval   notebook.Evaluator
	mirror errlog.Mirror
	opts   notebook.Options
}

func NewSessionHandler(eval notebook.Evaluator, mirror errlog.Mirror, opts notebook.Options) *SessionHandler {
	return &SessionHandler{eval: eval, mirror: mirror, opts: opts}
}

type sessionInbound struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	PageID  int    `json:"pageId,omitempty"`
	Name    string `json:"name,omitempty"`
}

type sessionOutbound struct {
	Type         string                    `json:"type"`
	PageID       int                       `json:"pageId,omitempty"`
	StartIndex   int                       `json:"startIndex"`
	Results      []string                  `json:"results,omitempty"`
	State        string                    `json:"state,omitempty"`
	Message      string                    `json:"message,omitempty"`
	Pages        []notebook.PageInfo       `json:"pages,omitempty"`
	ActivePageID int                       `json:"activePageId,omitempty"`
	Contexts     map[string]map[string]any `json:"contexts,omitempty"`
	Entries      []errlog.Entry            `json:"entries,omitempty"`
	Code         string                    `json:"code,omitempty"`
}

// wsEmitter pushes session output onto the connection's write channel.
type wsEmitter struct {
	writeCh chan sessionOutbound
}

func (e *wsEmitter) Results(pageID, startIndex int, results []string) {
	if results == nil {
		results = []string{}
	}
	pushSessionWS(e.writeCh, sessionOutbound{Type: "results", PageID: pageID, StartIndex: startIndex, Results: results})
}

func (e *wsEmitter) Status(state, message string) {
	pushSessionWS(e.writeCh, sessionOutbound{Type: "status", State: state, Message: message})
}

func (e *wsEmitter) Pages(pages []notebook.PageInfo, activeID int) {
	pushSessionWS(e.writeCh, sessionOutbound{Type: "pages", Pages: pages, ActivePageID: activeID})
}

func (e *wsEmitter) Contexts(contexts map[string]map[string]any) {
	if contexts == nil {
		contexts = map[string]map[string]any{}
	}
	pushSessionWS(e.writeCh, sessionOutbound{Type: "contexts", Contexts: contexts})
}

func (e *wsEmitter) Logs(entries []errlog.Entry) {
	if entries == nil {
		entries = []errlog.Entry{}
	}
	pushSessionWS(e.writeCh, sessionOutbound{Type: "logs", Entries: entries})
}

func (h *SessionHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := sessionWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(sessionWSPongWait)); err != nil {
		log.Printf("session ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(sessionWSPongWait))
	})

	writeCh := make(chan sessionOutbound, 64)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(sessionWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(sessionWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(sessionWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	emitter := &wsEmitter{writeCh: writeCh}
	sess := notebook.NewSession(h.eval, emitter, errlog.New(h.mirror), h.opts)
	defer sess.Close()

	sess.EmitState()
	emitter.Status(notebook.StatusReady, "")

	for {
		var in sessionInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		msgType := strings.ToLower(strings.TrimSpace(in.Type))
		switch msgType {
		case "ping":
			pushSessionWS(writeCh, sessionOutbound{Type: "pong"})
		case "edit":
			sess.ApplyEdit(in.Content)
		case "add_page":
			sess.AddPage(in.Name)
		case "switch_page":
			if err := sess.SwitchPage(in.PageID); err != nil {
				pushSessionError(writeCh, "invalid_argument", err)
			}
		case "close_page":
			if err := sess.ClosePage(in.PageID); err != nil {
				code := "invalid_argument"
				if errors.Is(err, notebook.ErrLastPage) {
					code = "failed_precondition"
				}
				pushSessionError(writeCh, code, err)
			}
		case "rename_page":
			if err := sess.RenamePage(in.PageID, in.Name); err != nil {
				pushSessionError(writeCh, "invalid_argument", err)
			}
		case "fetch_logs":
			sess.FetchLogs(ctx)
		case "clear_logs":
			sess.ClearLogs()
		case "":
			pushSessionWS(writeCh, sessionOutbound{Type: "error", Code: "invalid_argument", Message: "type is required"})
		default:
			pushSessionWS(writeCh, sessionOutbound{Type: "error", Code: "invalid_argument", Message: "unsupported type: " + msgType})
		}
	}
}

func pushSessionError(writeCh chan sessionOutbound, code string, err error) {
	pushSessionWS(writeCh, sessionOutbound{Type: "error", Code: code, Message: err.Error()})
}

// pushSessionWS enqueues without blocking: when the channel is full the
// oldest pending message is dropped to make room.
func pushSessionWS(writeCh chan sessionOutbound, out sessionOutbound) {
	if writeCh == nil {
		return
	}
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}
