package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// socketRequest is one prettify request sent over the websocket. ID is
// echoed in the reply.
type socketRequest struct {
	ID string `json:"id,omitempty"`
	PrettifyRequest
}

type socketReply struct {
	ID        string `json:"id,omitempty"`
	Status    int    `json:"status"`
	Formatted string `json:"formatted,omitempty"`
	Error     string `json:"error,omitempty"`
	Line      int    `json:"line,omitempty"`
	Column    int    `json:"column,omitempty"`
}

// websocket answers every text message with a socketReply until the client
// goes away.
func (s *Server) websocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxSourceSize + 4096)

	for {
		typ, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("websocket closed", zap.Error(err))
			}
			return
		}
		if typ != websocket.TextMessage {
			continue
		}
		if err := conn.WriteJSON(s.reply(msg)); err != nil {
			s.logger.Warn("failed to write websocket reply", zap.Error(err))
			return
		}
	}
}

func (s *Server) reply(msg []byte) socketReply {
	var req socketRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		return socketReply{Status: http.StatusBadRequest, Error: "invalid request body"}
	}

	status, body := s.handle(req.PrettifyRequest)
	reply := socketReply{ID: req.ID, Status: status}
	switch body := body.(type) {
	case PrettifyResponse:
		reply.Formatted = body.Formatted
	case ErrorResponse:
		reply.Error, reply.Line, reply.Column = body.Error, body.Line, body.Column
	}
	return reply
}
