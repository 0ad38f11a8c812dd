package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/linesmerrill/lifeline-api/dashboard"
	"github.com/linesmerrill/lifeline-api/feed"
	"github.com/linesmerrill/lifeline-api/filter"
	"github.com/linesmerrill/lifeline-api/listview"
	"github.com/linesmerrill/lifeline-api/policy"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const writeWait = 10 * time.Second

// pagePaths maps a session page to the navigation entry that gates it
var pagePaths = map[string]string{
	"dashboard":   "/dashboard",
	"accidents":   "/emergencies",
	"medical-ids": "/medical-ids",
	"ambulances":  "/ambulances",
}

// clientMessage is anything a page sends up the socket
type clientMessage struct {
	Type        string           `json:"type"`
	ID          string           `json:"id,omitempty"`
	Status      string           `json:"status,omitempty"`
	AmbulanceID string           `json:"ambulance_id,omitempty"`
	Confirm     bool             `json:"confirm,omitempty"`
	Filter      *filter.Criteria `json:"filter,omitempty"`
	Draft       json.RawMessage  `json:"draft,omitempty"`
}

type event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// session is one open page on one socket
type session struct {
	conn      *websocket.Conn
	principal policy.Principal
	channel   string

	writeMu sync.Mutex
	closed  bool
}

func (s *session) send(name string, data interface{}) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closed {
		return
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(event{Event: name, Data: data}); err != nil {
		zap.S().With(err).Debugw("failed to write to session", "channel", s.channel)
	}
}

func (s *session) notify(n listview.Notification) {
	s.send("notification", n)
}

func (s *session) close() {
	s.writeMu.Lock()
	s.closed = true
	s.writeMu.Unlock()
	s.conn.Close()
}

// page is the server side of one dashboard screen
type page interface {
	start(ctx context.Context)
	handle(ctx context.Context, msg clientMessage)
	close()
}

// Sessions serves the live pages over websockets
type Sessions struct {
	Broker    *feed.Broker
	Accident  Accident
	MedicalID MedicalID
	Ambulance Ambulance
	Dashboard dashboard.Loader
	// Patch applies feed changes to open pages in place instead of
	// refetching the whole collection.
	Patch bool
}

// PageSessionHandler upgrades the request and keeps the page's collection
// live until the socket closes
func (s Sessions) PageSessionHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["page"]
	path, ok := pagePaths[name]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "unknown page"}`))
		return
	}
	p := principal(r)
	item, _ := policy.ItemForPath(path)
	if !policy.IsAllowed(p.Role, item) {
		zap.S().Warnw("page session denied", "page", name, "user_id", p.ID, "role", p.Role)
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": "forbidden"}`))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().With(err).Error("websocket upgrade error")
		return
	}
	sess := &session{conn: conn, principal: p, channel: name + ":" + uuid.NewString()}
	pg := s.newPage(name, sess)

	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		pg.close()
		sess.close()
		zap.S().Debugw("page session closed", "channel", sess.channel, "user_id", p.ID)
	}()

	zap.S().Debugw("page session opened", "channel", sess.channel, "user_id", p.ID)
	pg.start(ctx)

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.S().With(err).Warnw("page session read failed", "channel", sess.channel)
			}
			return
		}
		pg.handle(ctx, msg)
	}
}

func (s Sessions) newPage(name string, sess *session) page {
	switch name {
	case "accidents":
		return s.accidentPage(sess)
	case "medical-ids":
		return s.medicalIDPage(sess)
	case "ambulances":
		return s.ambulancePage(sess)
	}
	return &dashboardPage{sess: sess, broker: s.Broker, loader: s.Dashboard}
}
