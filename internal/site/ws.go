package site

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/nebula-docs/internal/assistant"
	"github.com/ziadkadry99/nebula-docs/internal/shell"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 << 10
)

// A nil CheckOrigin rejects cross-origin upgrades.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// socketMessage is a command sent by the page over the assistant socket.
type socketMessage struct {
	Type string `json:"type"` // "send", "input", "open", "close" or "toggle"
	Text string `json:"text"`
}

// handleAssistantSocket streams the visitor's assistant events. The first
// frame is an "update" carrying the current snapshot. Socket traffic keeps
// the visitor's shell alive; once the shell is evicted the socket is closed
// so the page reconnects to a fresh one.
func (s *Site) handleAssistantSocket(w http.ResponseWriter, r *http.Request) {
	visitor := VisitorID(r.Context())
	sh := s.shellFor(r)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	snap, events, unsubscribe := sh.Assistant().Watch()
	defer unsubscribe()

	touch := func() bool { return s.registry.Touch(visitor, sh) }

	done := make(chan struct{})
	go s.readSocket(conn, sh, touch, done)

	if err := writeEvent(conn, assistant.Event{Type: assistant.EventUpdate, Snapshot: snap}); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case ev, ok := <-events:
			if !ok {
				s.closeStale(conn, visitor)
				return
			}
			if err := writeEvent(conn, ev); err != nil {
				s.logger.Debug("websocket write", zap.Error(err))
				return
			}
		case <-ticker.C:
			if !touch() {
				s.closeStale(conn, visitor)
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// closeStale tells the page its display session is gone.
func (s *Site) closeStale(conn *websocket.Conn, visitor string) {
	s.logger.Debug("closing socket of expired session", zap.String("visitor", visitor))
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "session expired")
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

func (s *Site) readSocket(conn *websocket.Conn, sh *shell.Shell, touch func() bool, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		touch()
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg socketMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read", zap.Error(err))
			}
			return
		}
		// Commands for an evicted shell would go nowhere visible.
		if !touch() {
			return
		}

		switch msg.Type {
		case "send":
			sh.Assistant().Send(msg.Text)
		case "input":
			sh.Assistant().SetInput(msg.Text)
		case "open":
			sh.OpenAssistant()
		case "close":
			sh.CloseAssistant()
		case "toggle":
			sh.ToggleAssistant()
		default:
			s.logger.Debug("unknown socket message", zap.String("type", msg.Type))
		}
	}
}

func writeEvent(conn *websocket.Conn, ev assistant.Event) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(ev)
}
