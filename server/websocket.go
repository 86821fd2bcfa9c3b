package server

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/mobile-next/facepointer/service"
	"github.com/mobile-next/facepointer/utils"
)

// wsReadLimit bounds a single request frame. A full blendshape vector fits
// many times over.
const wsReadLimit = 1 << 20

// wsPeer is one connected WebSocket client. Sessions it creates belong to it
// and are closed when it disconnects.
type wsPeer struct {
	conn     *websocket.Conn
	sessions []string
}

func newUpgrader(enableCORS bool) *websocket.Upgrader {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     isSameOrigin,
	}
	if enableCORS {
		upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}
	return &upgrader
}

func isSameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	return originURL.Host == r.Host
}

// handleWebSocket serves the method registry over one connection, one
// response per text frame, in request order.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := newUpgrader(s.opts.EnableCORS).Upgrade(w, r, nil)
	if err != nil {
		utils.Warn("websocket upgrade from %s failed: %v", r.RemoteAddr, err)
		return
	}
	conn.SetReadLimit(wsReadLimit)

	peer := &wsPeer{conn: conn}
	defer s.disconnect(peer)
	utils.Verbose("websocket client %s connected", r.RemoteAddr)

	for {
		kind, message, err := conn.ReadMessage()
		if err != nil {
			utils.Verbose("websocket client %s disconnected: %v", r.RemoteAddr, err)
			return
		}

		var resp JSONRPCResponse
		if kind != websocket.TextMessage {
			resp = errorResponse(nil, invalidRequest("only text messages accepted for requests"))
		} else {
			resp = s.handleWSMessage(peer, message)
		}
		if err := peer.send(resp); err != nil {
			utils.Verbose("websocket write to %s failed: %v", r.RemoteAddr, err)
			return
		}
	}
}

func (s *Server) handleWSMessage(peer *wsPeer, message []byte) JSONRPCResponse {
	var req JSONRPCRequest
	if err := json.Unmarshal(message, &req); err != nil {
		return errorResponse(nil, &rpcError{Code: ErrCodeParseError, Message: "Parse error", Data: "expecting jsonrpc payload"})
	}

	result, rerr := s.call(req)
	if rerr != nil {
		return errorResponse(req.ID, rerr)
	}
	if snap, ok := result.(service.Snapshot); ok && req.Method == "session_create" {
		peer.sessions = append(peer.sessions, snap.ID)
	}
	return JSONRPCResponse{JSONRPC: "2.0", Result: result, ID: req.ID}
}

// disconnect closes the connection and every session the peer still owns.
func (s *Server) disconnect(peer *wsPeer) {
	_ = peer.conn.Close()
	for _, id := range peer.sessions {
		if s.sessions.remove(id) {
			utils.Verbose("closed session %s with its websocket client", id)
		}
	}
}

func (p *wsPeer) send(resp JSONRPCResponse) error {
	return p.conn.WriteJSON(resp)
}
