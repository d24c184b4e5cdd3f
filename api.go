package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"gopkg.in/yaml.v3"

	"github.com/intio/tagwm/internal/core"
)

type APIServer struct {
	server *http.Server
	wm     *WM
	log    *log.Logger
}

type clientView struct {
	ID          core.ClientID `json:"id" yaml:"id"`
	Window      uint32        `json:"window" yaml:"window"`
	Title       string        `json:"title" yaml:"title"`
	Class       string        `json:"class" yaml:"class"`
	Instance    string        `json:"instance" yaml:"instance"`
	PID         int           `json:"pid,omitempty" yaml:"pid,omitempty"`
	Monitor     int           `json:"monitor" yaml:"monitor"`
	Tags        uint32        `json:"tags" yaml:"tags"`
	X           int           `json:"x" yaml:"x"`
	Y           int           `json:"y" yaml:"y"`
	W           int           `json:"w" yaml:"w"`
	H           int           `json:"h" yaml:"h"`
	BorderWidth int           `json:"border_width" yaml:"border_width"`
	Floating    bool          `json:"floating" yaml:"floating"`
	Fullscreen  bool          `json:"fullscreen" yaml:"fullscreen"`
	Urgent      bool          `json:"urgent" yaml:"urgent"`
	Sticky      bool          `json:"sticky" yaml:"sticky"`
	Focused     bool          `json:"focused" yaml:"focused"`
	Visible     bool          `json:"visible" yaml:"visible"`
	Scratchpad  string        `json:"scratchpad,omitempty" yaml:"scratchpad,omitempty"`
	Swallowed   *clientView   `json:"swallowed,omitempty" yaml:"swallowed,omitempty"`
}

func newClientView(ctx *core.Context, c *core.Client) clientView {
	v := clientView{
		ID:          c.ID,
		Window:      uint32(c.Window),
		Title:       c.Title,
		Class:       c.Class,
		Instance:    c.Instance,
		PID:         c.PID,
		Monitor:     -1,
		Tags:        c.Tags,
		X:           c.X,
		Y:           c.Y,
		W:           c.W,
		H:           c.H,
		BorderWidth: c.BW,
		Floating:    c.Floating,
		Fullscreen:  c.Fullscreen(),
		Urgent:      c.Urgent,
	}
	if m := c.Monitor(); m != nil {
		v.Monitor = m.Num
		v.Sticky = m.Sticky() == c
		v.Focused = m.Sel() == c && ctx.SelMon() == m
		v.Visible = ctx.Visible(c)
	}
	if c.ScratchKey != 0 {
		v.Scratchpad = string(rune(c.ScratchKey))
	}
	if s := c.Swallowed(); s != nil {
		sv := newClientView(ctx, s)
		v.Swallowed = &sv
	}
	return v
}

type monitorView struct {
	Num       int             `json:"num" yaml:"num"`
	Screen    core.Rect       `json:"screen" yaml:"screen"`
	Work      core.Rect       `json:"work" yaml:"work"`
	BarY      int             `json:"bar_y" yaml:"bar_y"`
	TagSet    uint32          `json:"tagset" yaml:"tagset"`
	Tag       int             `json:"tag" yaml:"tag"`
	Layout    string          `json:"layout" yaml:"layout"`
	NMaster   int             `json:"nmaster" yaml:"nmaster"`
	MFact     float64         `json:"mfact" yaml:"mfact"`
	ShowBar   bool            `json:"show_bar" yaml:"show_bar"`
	AttachDir string          `json:"attach_dir" yaml:"attach_dir"`
	Selected  core.ClientID   `json:"selected,omitempty" yaml:"selected,omitempty"`
	Clients   []core.ClientID `json:"clients" yaml:"clients"`
	Stack     []core.ClientID `json:"stack" yaml:"stack"`
}

func ids(cs []*core.Client) []core.ClientID {
	out := make([]core.ClientID, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func newMonitorView(m *core.Monitor) monitorView {
	v := monitorView{
		Num:       m.Num,
		Screen:    m.M,
		Work:      m.W,
		BarY:      m.BarY,
		TagSet:    m.TagSet(),
		Tag:       m.CurTag(),
		Layout:    m.Symbol,
		NMaster:   m.NMaster(),
		MFact:     m.MFact(),
		ShowBar:   m.ShowBar(),
		AttachDir: m.AttachDir().Symbol(),
		Clients:   ids(m.Clients()),
		Stack:     ids(m.Stack()),
	}
	if sel := m.Sel(); sel != nil {
		v.Selected = sel.ID
	}
	return v
}

// respond writes data as JSON, or as YAML when the query asks for
// format=yaml.
func (as *APIServer) respond(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	as.log.Debug("api", "status", status, "method", r.Method, "path", r.URL.Path)
	if r.URL.Query().Get("format") == "yaml" {
		out, err := yaml.Marshal(data)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.WriteHeader(status)
		w.Write(out)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	e := json.NewEncoder(w)
	e.Encode(data)
}

func (as *APIServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrNoSuchClient):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrUnknownCommand), errors.Is(err, core.ErrBadArgument):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errorStopped):
		status = http.StatusServiceUnavailable
	}
	as.respond(w, r, status, map[string]string{"error": err.Error()})
}

// clientUpdate is the body of POST /clients/{id}. Absent fields are
// left alone.
type clientUpdate struct {
	X          *int  `json:"x"`
	Y          *int  `json:"y"`
	W          *int  `json:"w"`
	H          *int  `json:"h"`
	Fullscreen *bool `json:"fullscreen"`
	Focus      bool  `json:"focus"`
}

func (u clientUpdate) moves() bool {
	return u.X != nil || u.Y != nil || u.W != nil || u.H != nil
}

func (u clientUpdate) apply(ctx *core.Context, c *core.Client) error {
	if u.Focus {
		ctx.Focus(c)
	}
	if u.Fullscreen != nil {
		ctx.SetFullscreen(c, *u.Fullscreen)
	}
	if !u.moves() {
		return nil
	}
	r := c.Geometry()
	for _, f := range []struct {
		src *int
		dst *int
	}{{u.X, &r.X}, {u.Y, &r.Y}, {u.W, &r.W}, {u.H, &r.H}} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	return ctx.MoveResize(c, r)
}

type commandRequest struct {
	Command string `json:"command"`
}

func NewAPIServer(wm *WM, listenAddr string) (as *APIServer) {
	as = &APIServer{
		wm:  wm,
		log: wm.log.WithPrefix("api"),
	}
	as.server = &http.Server{
		Addr:              listenAddr,
		Handler:           as.router(),
		ReadHeaderTimeout: 1 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}
	return as
}

func (as *APIServer) router() *mux.Router {
	wm := as.wm
	router := mux.NewRouter()

	router.HandleFunc("/monitors/", func(w http.ResponseWriter, r *http.Request) {
		var (
			items  []monitorView
			sel    int
			status string
		)
		if err := wm.do(func() {
			for _, m := range wm.ctx.Monitors() {
				items = append(items, newMonitorView(m))
			}
			sel = wm.ctx.SelMon().Num
			status = wm.ctx.Status()
		}); err != nil {
			as.fail(w, r, err)
			return
		}
		as.respond(w, r, http.StatusOK, map[string]interface{}{
			"items":    items,
			"selected": sel,
			"status":   status,
		})
	}).Methods("GET")

	router.HandleFunc("/clients/", func(w http.ResponseWriter, r *http.Request) {
		items := []clientView{}
		if err := wm.do(func() {
			for _, c := range wm.ctx.Clients() {
				items = append(items, newClientView(wm.ctx, c))
			}
		}); err != nil {
			as.fail(w, r, err)
			return
		}
		as.respond(w, r, http.StatusOK, map[string]interface{}{"items": items})
	}).Methods("GET")

	router.HandleFunc("/clients/{id:[0-9]+}", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			as.fail(w, r, core.ErrNoSuchClient)
			return
		}
		var update clientUpdate
		if r.Method == http.MethodPost {
			if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
				as.respond(w, r, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
		}
		var view clientView
		if derr := wm.do(func() {
			var c *core.Client
			if c, err = wm.ctx.Client(core.ClientID(id)); err != nil {
				return
			}
			switch r.Method {
			case http.MethodPost:
				err = update.apply(wm.ctx, c)
			case http.MethodDelete:
				err = wm.ctx.CloseClient(c)
			}
			if c.Monitor() != nil {
				view = newClientView(wm.ctx, c)
			}
		}); derr != nil {
			err = derr
		}
		if err != nil {
			as.fail(w, r, err)
			return
		}
		if r.Method == http.MethodDelete {
			as.respond(w, r, http.StatusAccepted, nil)
			return
		}
		as.respond(w, r, http.StatusOK, map[string]interface{}{"item": view})
	}).Methods("GET", "POST", "DELETE")

	router.HandleFunc("/commands/", func(w http.ResponseWriter, r *http.Request) {
		var req commandRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			as.respond(w, r, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		cmd, err := core.ParseCommand(req.Command)
		if err != nil {
			as.fail(w, r, err)
			return
		}
		if derr := wm.do(func() {
			err = wm.ctx.Exec(cmd)
			wm.hub.Publish(commandEvent(cmd, err))
		}); derr != nil {
			err = derr
		}
		if err != nil {
			as.fail(w, r, err)
			return
		}
		as.respond(w, r, http.StatusOK, map[string]string{"command": cmd.String()})
	}).Methods("POST")

	router.HandleFunc("/events", makeWSHandler(as.log, wm.hub.streamEvents)).Methods("GET")

	router.PathPrefix("/").Handler(http.NotFoundHandler())
	return router
}

func (as *APIServer) Start() {
	as.log.Info("listening", "addr", "http://"+as.server.Addr)
	if err := as.server.ListenAndServe(); err != nil {
		as.log.Error("api server stopped", "err", err)
	}
}
