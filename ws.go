package main

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/intio/tagwm/internal/core"
)

// Event is one message on the /events stream.
type Event struct {
	Type    string      `json:"type" yaml:"type"`
	Window  uint32      `json:"window,omitempty" yaml:"window,omitempty"`
	Client  *clientView `json:"client,omitempty" yaml:"client,omitempty"`
	Command string      `json:"command,omitempty" yaml:"command,omitempty"`
	Error   string      `json:"error,omitempty" yaml:"error,omitempty"`
}

func commandEvent(cmd core.Command, err error) Event {
	ev := Event{Type: "command", Command: cmd.String()}
	if err != nil {
		ev.Error = err.Error()
	}
	return ev
}

func clientEvent(kind string, ctx *core.Context, c *core.Client) Event {
	v := newClientView(ctx, c)
	return Event{Type: kind, Window: uint32(c.Shown()), Client: &v}
}

// subscriberQueue is how many events a slow subscriber may lag behind
// before events are dropped for it.
const subscriberQueue = 64

// Hub fans events out to websocket subscribers. Publishing never
// blocks the window manager.
type Hub struct {
	mu   sync.Mutex
	subs map[uuid.UUID]chan Event
	log  *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{subs: make(map[uuid.UUID]chan Event), log: logger}
}

func (h *Hub) Subscribe() (uuid.UUID, <-chan Event) {
	id := uuid.New()
	ch := make(chan Event, subscriberQueue)
	h.mu.Lock()
	h.subs[id] = ch
	h.mu.Unlock()
	return id, ch
}

func (h *Hub) Unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			h.log.Debug("subscriber lagging, event dropped", "subscriber", id, "type", ev.Type)
		}
	}
}

func makeWSHandler(
	logger *log.Logger,
	handler func(context.Context, *websocket.Conn),
) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			logger.Warn("websocket accept", "err", err)
			return
		}
		logger.Debug("connect", "path", r.URL.Path, "remote", r.RemoteAddr)
		defer logger.Debug("disconnect", "remote", r.RemoteAddr)
		defer c.Close(websocket.StatusInternalError, "")
		handler(r.Context(), c)
	}
}

// streamEvents writes every published event to c until the peer goes
// away.
func (h *Hub) streamEvents(ctx context.Context, c *websocket.Conn) {
	ctx = c.CloseRead(ctx)
	id, events := h.Subscribe()
	defer h.Unsubscribe(id)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			wctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := wsjson.Write(wctx, c, ev)
			cancel()
			if err != nil {
				h.log.Debug("websocket write", "subscriber", id, "err", err)
				return
			}
		}
	}
}
