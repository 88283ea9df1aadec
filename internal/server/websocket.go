package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	wsPushInterval  = 1 * time.Second
	wsWriteTimeout  = 10 * time.Second
	wsPongTimeout   = 60 * time.Second
	wsPingInterval  = 30 * time.Second
	wsMaxReadLength = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local use
	},
}

// WebsocketHandler pushes a metrics snapshot to the client once per second
// until the client goes away. Each connection polls the actor tree on its
// own; with a handful of dashboard clients that is cheaper than a broadcast
// hub.
func (s *Server) WebsocketHandler(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	go s.wsReadPump(conn, done)
	go s.wsWritePump(conn, done)

	return nil
}

// wsReadPump discards client frames and detects disconnects.
func (s *Server) wsReadPump(conn *websocket.Conn, done chan struct{}) {
	defer close(done)

	conn.SetReadLimit(wsMaxReadLength)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) wsWritePump(conn *websocket.Conn, done chan struct{}) {
	pushTicker := time.NewTicker(wsPushInterval)
	pingTicker := time.NewTicker(wsPingInterval)
	defer func() {
		pushTicker.Stop()
		pingTicker.Stop()
		conn.Close()
	}()

	for {
		select {
		case <-done:
			return
		case <-pushTicker.C:
			resp, err := s.requestMetrics()
			if err != nil {
				continue
			}
			payload := metricsResponse{
				Connected: resp.Connected,
				Metrics:   resp.Metrics,
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(payload); err != nil {
				return
			}
		case <-pingTicker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
