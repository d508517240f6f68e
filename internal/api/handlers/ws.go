package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"lastmile-routing-engine/internal/hub"
)

const (
	// wsWriteWait bounds a single broadcast write so one stalled client
	// cannot hold the route's broadcast lock.
	wsWriteWait = 5 * time.Second

	wsReadLimit = 512
)

// The API and the map frontend are served from different origins, so the
// handshake cannot rely on same-origin; cross-origin access is governed by
// the CORS allow-list instead.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// wsSink adapts one WebSocket connection to the hub. Writes are serialised
// by the hub's per-route lock, so no extra mutex is needed here.
type wsSink struct {
	conn *websocket.Conn
}

func (s *wsSink) Send(payload []byte) error {
	if err := s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

// WSHandler upgrades watchers onto the subscription hub. Each connection
// watches exactly one route and receives every reroute payload for it.
type WSHandler struct {
	Hub *hub.Hub
}

func (h *WSHandler) Watch(w http.ResponseWriter, r *http.Request) {
	routeID, err := pathID(r, "route_id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid route id")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the client.
		log.Printf("ws upgrade failed: route_id=%d err=%v", routeID, err)
		return
	}

	sink := &wsSink{conn: conn}
	h.Hub.Subscribe(routeID, sink)
	defer func() {
		h.Hub.Unsubscribe(routeID, sink)
		conn.Close()
	}()

	// Client frames are keep-alives; drain them until the connection
	// drops. The read error is the disconnect signal.
	conn.SetReadLimit(wsReadLimit)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
