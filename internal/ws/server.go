package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"propdastak/internal/domain"
	"propdastak/pkg/logger"
)

// invalidJSONAck is sent back when an inbound frame cannot be parsed.
var invalidJSONAck = []byte(`{"error":"invalid_json"}`)

// Recorder consumes a finalized view session exactly once.
type Recorder interface {
	RecordClose(session *domain.ViewSession, endTime time.Time)
}

// Server accepts view-tracking WebSocket connections. Each connection owns
// one ViewSession; inbound messages update it and the close hands it to the
// Recorder. Connections are fully independent: a slow or failing close
// handler on one connection never blocks accepting or serving others.
type Server struct {
	recorder Recorder
	log      *logger.Logger
	upgrader websocket.Upgrader
	srv      *http.Server

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}

	// recorders tracks in-flight close handlers for bounded shutdown waits.
	recorders sync.WaitGroup
}

// NewServer creates a view-tracker server listening on the given port.
func NewServer(port string, recorder Recorder, log *logger.Logger) *Server {
	s := &Server{
		recorder: recorder,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The tracker is origin-agnostic: it carries no credentials and
			// identifiers are opaque to it.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleConnection)

	s.srv = &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	return s
}

// ListenAndServe blocks serving connections until Shutdown.
func (s *Server) ListenAndServe() error {
	s.log.WithField("addr", s.srv.Addr).Info("View tracker listening")
	return s.srv.ListenAndServe()
}

// Shutdown stops accepting connections, closes live ones so their close
// handlers fire, and waits for in-flight recorders until ctx expires.
// The wait is best effort; a recorder still running when ctx expires keeps
// running on its own timeout but the storage pool may close underneath it.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.srv.Shutdown(ctx)

	s.mu.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.recorders.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.log.Warn("Shutdown deadline reached with view recorders still in flight")
	}

	return err
}

// handleConnection upgrades the request and runs the connection's read loop.
func (s *Server) handleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()

	session := domain.NewViewSession(time.Now())
	log := s.log.WithField("remote", conn.RemoteAddr().String())
	log.Debug("View tracker client connected")

	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()

		// The session is consumed exactly once, off the accept path, so a
		// slow storage write cannot back-pressure other connections.
		endTime := time.Now()
		s.recorders.Add(1)
		go func() {
			defer s.recorders.Done()
			s.recorder.RecordClose(session, endTime)
		}()
		log.Debug("View tracker client disconnected")
	}()

	s.readLoop(conn, session, log)
}

// readLoop processes inbound messages in arrival order until the connection
// closes. Messages after a malformed one still apply; the close handler
// observes the session as of the last successfully processed message.
func (s *Server) readLoop(conn *websocket.Conn, session *domain.ViewSession, log *logger.Logger) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Debug("View tracker connection error")
			}
			return
		}

		applyMessage(session, data, conn, log)
	}
}

// applyMessage validates one inbound frame against the tracker's schema:
// optional string fields propertyId and userId, everything else ignored.
// A frame that is not a JSON object is discarded with an error ack; a field
// of the wrong type is ignored. Neither terminates the connection.
func applyMessage(session *domain.ViewSession, data []byte, conn *websocket.Conn, log *logger.Logger) {
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		log.Debug("Discarding malformed view tracker message")
		if err := conn.WriteMessage(websocket.TextMessage, invalidJSONAck); err != nil {
			log.WithError(err).Debug("Failed to send invalid_json ack")
		}
		return
	}

	if v, ok := fields["propertyId"].(string); ok {
		session.SetProperty(v)
	}
	if v, ok := fields["userId"].(string); ok {
		session.SetUser(v)
	}
}
