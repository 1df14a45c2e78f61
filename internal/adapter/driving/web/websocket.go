package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
)

const (
	// tempo máximo para escrever uma resposta ao cliente
	writeWait = 10 * time.Second

	// tempo máximo sem mensagens do cliente
	pongWait = 60 * time.Second

	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 64 * 1024
)

// selectionMessage is what the page sends on every filter change. Missing
// or null lists are empty selections.
type selectionMessage struct {
	Years  []int    `json:"years"`
	Months []string `json:"months"`
	States []string `json:"states"`
	Gender string   `json:"gender"`
}

func (m selectionMessage) selection() (entity.Selection, error) {
	sel := entity.Selection{Years: m.Years, Months: m.Months, States: m.States, Gender: entity.GenderMale}
	if m.Gender != "" {
		g, err := entity.ParseGender(m.Gender)
		if err != nil {
			return entity.Selection{}, err
		}
		sel.Gender = g
	}
	return sel, nil
}

// handleWebSocket answers each selection message with the rebuilt dashboard.
// Messages are handled one at a time, in order.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.console.LogWarning("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session := uuid.NewString()
	s.console.LogInfo("websocket session %s opened from %s", session, r.RemoteAddr)
	defer s.console.LogInfo("websocket session %s closed", session)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go s.pingLoop(conn, done)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.console.LogWarning("websocket session %s: %v", session, err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))

		reply := s.replyTo(r, message)
		if err := s.writeReply(conn, reply); err != nil {
			s.console.LogWarning("websocket session %s: write failed: %v", session, err)
			return
		}
	}
}

func (s *Server) replyTo(r *http.Request, message []byte) dashboardReply {
	var msg selectionMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		return dashboardReply{Type: "error", Error: "invalid selection message: " + err.Error()}
	}
	sel, err := msg.selection()
	if err != nil {
		return dashboardReply{Type: "error", Error: err.Error()}
	}

	d, err := s.svc.BuildDashboard(r.Context(), sel)
	if err != nil {
		return dashboardReply{Type: "error", Error: err.Error()}
	}
	panels, err := s.renderPanels(d)
	if err != nil {
		return dashboardReply{Type: "error", Error: err.Error()}
	}
	return dashboardReply{Type: "dashboard", Dashboard: d, Charts: panels}
}

// writeReply is the only data-frame writer; pingLoop uses WriteControl, which
// gorilla allows concurrently with it.
func (s *Server) writeReply(conn *websocket.Conn, reply dashboardReply) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(reply)
}

func (s *Server) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
