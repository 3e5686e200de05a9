package config

import (
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
}

// NewWebSocket accepts any origin in development and only same-host origins
// otherwise.
func NewWebSocket() (*WebSocket, error) {
	development := Development()
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if development {
				return true
			}
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false
			}
			return u.Host == r.Host
		},
	}

	ws := &WebSocket{
		Upgrader: upgrader,
	}

	return ws, nil
}
