// Package devserver serves a fern application over HTTP for development.
//
// It renders the app into an in-memory host tree, serves the committed
// tree as HTML, and pushes a fresh snapshot to every connected browser
// over a websocket after each settle. Browser events come back over the
// same socket and are dispatched into the tree.
package devserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/fern/internal/config"
	"github.com/vango-dev/fern/pkg/fern"
	"github.com/vango-dev/fern/pkg/host/memdom"
	"github.com/vango-dev/fern/pkg/metrics"
	"github.com/vango-dev/fern/pkg/snapshot"
	"github.com/vango-dev/fern/pkg/vdom"
)

// MessageType represents the type of a websocket message.
type MessageType string

const (
	// TypeSnapshot carries a fresh HTML rendering to the browser.
	TypeSnapshot MessageType = "snapshot"

	// TypeEvent carries a browser event into the tree.
	TypeEvent MessageType = "event"
)

// Message is the websocket frame in both directions.
type Message struct {
	Type MessageType `json:"type"`

	// HTML is the rendered tree (snapshot messages).
	HTML string `json:"html,omitempty"`

	// Event is the browser event type, e.g. "click" (event messages).
	Event string `json:"event,omitempty"`

	// Tag selects the first element with this tag as the dispatch
	// target (event messages).
	Tag string `json:"tag,omitempty"`

	// Value carries the input value for input/change events.
	Value string `json:"value,omitempty"`
}

// Server hosts one fern application for development.
type Server struct {
	cfg  *config.Config
	log  *slog.Logger
	dom  *memdom.DOM
	rt   *fern.Runtime
	root *vdom.VNode

	snaps snapshot.Store
	label string
	rec   *metrics.Recorder

	mu      sync.Mutex // serializes tree access; the runtime is single-threaded
	clients map[string]*websocket.Conn
	cmu     sync.RWMutex

	upgrader websocket.Upgrader
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server's logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithSnapshots persists a snapshot after each settle.
func WithSnapshots(store snapshot.Store, label string) Option {
	return func(s *Server) { s.snaps = store; s.label = label }
}

// WithMetrics instruments the hosted runtime with a Prometheus recorder.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(s *Server) { s.rec = rec }
}

// New creates a dev server for root, an app built with the vdom builder.
func New(cfg *config.Config, root *vdom.VNode, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		log:     slog.Default(),
		dom:     memdom.New(),
		root:    root,
		label:   "app",
		clients: make(map[string]*websocket.Conn),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // dev only
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	rtOpts := []fern.Option{fern.WithLogger(s.log)}
	if s.rec != nil {
		rtOpts = append(rtOpts, fern.WithMetrics(s.rec))
	}
	s.rt = fern.New(s.dom, rtOpts...)
	if err := s.rt.Setup(root, s.dom.Root); err != nil {
		return nil, err
	}
	s.settle()
	return s, nil
}

// Router returns the HTTP routes: the page, the websocket, and optionally
// the Prometheus endpoint.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWebSocket)
	if s.cfg.Dev.MetricsPath != "" {
		r.Handle(s.cfg.Dev.MetricsPath, promhttp.Handler())
	}
	return r
}

// ListenAndServe runs the dev server until the listener fails.
func (s *Server) ListenAndServe() error {
	addr := s.cfg.Addr()
	s.log.Info("dev server listening", "addr", addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// HTML returns the current rendering of the hosted tree.
func (s *Server) HTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dom.Root.InnerHTML()
}

// Dispatch routes a browser event to the first element with the given
// tag, then settles and broadcasts the new rendering.
func (s *Server) Dispatch(event, tag, value string) bool {
	s.mu.Lock()
	target := s.dom.Root.FindByTag(tag)
	if target == nil {
		s.mu.Unlock()
		return false
	}
	handled := target.Dispatch(vdom.Event{Type: event, Value: value})
	s.rt.Settle()
	html := s.dom.Root.InnerHTML()
	s.mu.Unlock()

	if handled {
		s.persist(html)
		s.broadcast(Message{Type: TypeSnapshot, HTML: html})
	}
	return handled
}

func (s *Server) settle() {
	s.mu.Lock()
	s.rt.Settle()
	html := s.dom.Root.InnerHTML()
	s.mu.Unlock()
	s.persist(html)
}

func (s *Server) persist(html string) {
	if s.snaps == nil {
		return
	}
	if _, err := s.snaps.Save(s.label, html); err != nil {
		s.log.Warn("snapshot save failed", "err", err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := "<!DOCTYPE html>\n<html><head><title>" + s.cfg.Name +
		"</title></head><body><div id=\"fern-root\">" + s.HTML() +
		"</div><script>" + clientScript + "</script></body></html>"
	w.Write([]byte(page))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	id := uuid.NewString()
	s.cmu.Lock()
	s.clients[id] = conn
	s.cmu.Unlock()
	s.log.Debug("client connected", "client", id)

	// Initial snapshot so a late joiner sees current state.
	s.send(conn, Message{Type: TypeSnapshot, HTML: s.HTML()})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.log.Debug("bad client message", "client", id, "err", err)
			continue
		}
		if msg.Type == TypeEvent {
			s.Dispatch(msg.Event, msg.Tag, msg.Value)
		}
	}

	s.cmu.Lock()
	delete(s.clients, id)
	s.cmu.Unlock()
	conn.Close()
	s.log.Debug("client disconnected", "client", id)
}

// ClientCount returns the number of connected browsers.
func (s *Server) ClientCount() int {
	s.cmu.RLock()
	defer s.cmu.RUnlock()
	return len(s.clients)
}

func (s *Server) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	s.cmu.RLock()
	conns := make(map[string]*websocket.Conn, len(s.clients))
	for id, conn := range s.clients {
		conns[id] = conn
	}
	s.cmu.RUnlock()

	for id, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.cmu.Lock()
			delete(s.clients, id)
			s.cmu.Unlock()
			conn.Close()
		}
	}
}

func (s *Server) send(conn *websocket.Conn, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	conn.WriteMessage(websocket.TextMessage, data)
}

const clientScript = `
const root = document.getElementById("fern-root");
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.onmessage = (e) => {
  const msg = JSON.parse(e.data);
  if (msg.type === "snapshot") root.innerHTML = msg.html;
};
root.addEventListener("click", (e) => {
  ws.send(JSON.stringify({type: "event", event: "click", tag: e.target.tagName.toLowerCase()}));
});
root.addEventListener("input", (e) => {
  ws.send(JSON.stringify({type: "event", event: "input", tag: e.target.tagName.toLowerCase(), value: e.target.value}));
});
`
