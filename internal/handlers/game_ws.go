package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minefield/internal/command"
	"github.com/vancomm/minefield/internal/mines"
)

// ConnectWS streams a game over a websocket. The current view is sent on
// connect; every text message after that is a command batch answered with
// the new view, or with {"error": ...} when a line is malformed.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s := g.lookup(w, r, true)
	if s == nil {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Error("unable to upgrade")
		return
	}

	defer c.Close()

	log := g.log.WithField("session_id", s.ID)

	if err := c.WriteJSON(NewGameSessionDTO(s.Snapshot())); err != nil {
		log.WithError(err).Error("unable to write json")
		return
	}

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("abnormal ws break")
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		text := strings.TrimSpace(string(message))
		log.Debugf("\t> %s", text)

		snapshot, err := g.play(r.Context(), s, func(m *mines.Minefield) error {
			return command.ExecuteBatch(m, text)
		})

		var reply any = NewGameSessionDTO(snapshot)
		if err != nil {
			reply = wrapError(err)
		}
		if err := c.WriteJSON(reply); err != nil {
			log.WithError(err).Error("unable to write json")
			break
		}
		log.Debug("\t< <session data>")
	}
}
