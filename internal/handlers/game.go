package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/command"
	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/middleware"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/repository"
	"github.com/vancomm/minefield/internal/session"
)

const maxBatchSize = 64 << 10

var (
	ErrBadSessionId = fmt.Errorf("session id must be an int")
	ErrNotOwner     = fmt.Errorf("game session belongs to another player")
)

type RecordStore interface {
	CreateGameRecord(context.Context, repository.CreateGameRecordParams) (*repository.GameRecord, error)
	GetHighscores(context.Context, repository.HighscoreFilter) ([]repository.Highscore, error)
}

type GameHandler struct {
	log      *logrus.Logger
	sessions *session.Store
	records  RecordStore
	board    config.Board
	ws       *config.WebSocket
	newRand  func() mines.Rand
}

// NewGameHandler serves games out of sessions. newRand is called once per
// board since a board keeps its generator for every later reset.
func NewGameHandler(
	log *logrus.Logger,
	sessions *session.Store,
	records RecordStore,
	board config.Board,
	ws *config.WebSocket,
	newRand func() mines.Rand,
) *GameHandler {
	return &GameHandler{
		log:      log,
		sessions: sessions,
		records:  records,
		board:    board,
		ws:       ws,
		newRand:  newRand,
	}
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	board, err := ParseNewGameParams(r.URL.Query(), g.board)
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	field, err := mines.New(board.Rows, board.Cols, board.MinesPercent, g.newRand())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	var playerID *int64
	if claims, ok := middleware.PlayerClaims(r.Context()); ok {
		playerID = &claims.PlayerId
	}

	s := g.sessions.Create(field, playerID)
	g.log.WithFields(logrus.Fields{
		"session_id": s.ID,
		"rows":       board.Rows,
		"cols":       board.Cols,
		"mines":      field.MineCount(),
		"anonymous":  playerID == nil,
	}).Debug("created game session")

	sendJSONOrLog(w, g.log, NewGameSessionDTO(s.Snapshot()))
}

// lookup resolves the {id} path value. It writes the error response itself
// and returns nil when the session cannot be used.
func (g GameHandler) lookup(w http.ResponseWriter, r *http.Request, mutate bool) *session.Session {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, ErrBadSessionId)
		return nil
	}

	s, err := g.sessions.Get(id)
	if errors.Is(err, session.ErrNotFound) {
		sendError(w, g.log, http.StatusNotFound, err)
		return nil
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to fetch session")
		return nil
	}

	if mutate && s.PlayerID != nil {
		claims, ok := middleware.PlayerClaims(r.Context())
		if !ok || claims.PlayerId != *s.PlayerID {
			sendError(w, g.log, http.StatusForbidden, ErrNotOwner)
			return nil
		}
	}

	return s
}

// play runs fn on the board and records the game if fn finished it.
func (g GameHandler) play(
	ctx context.Context, s *session.Session, fn func(*mines.Minefield) error,
) (session.Snapshot, error) {
	snapshot, outcome, err := s.Do(fn)
	if outcome != nil {
		g.record(ctx, outcome)
	}
	return snapshot, err
}

func (g GameHandler) record(ctx context.Context, outcome *session.Outcome) {
	log := g.log.WithFields(logrus.Fields{
		"session_id": outcome.ID,
		"won":        outcome.Won,
	})
	log.Debug("game over")

	if g.records == nil || outcome.EndedAt == nil {
		return
	}
	_, err := g.records.CreateGameRecord(ctx, repository.CreateGameRecordParams{
		PlayerID:     outcome.PlayerID,
		Rows:         outcome.Rows,
		Cols:         outcome.Cols,
		MinesPercent: outcome.MinesPercent,
		MineCount:    outcome.MineCount,
		Won:          outcome.Won,
		StartedAt:    outcome.StartedAt,
		EndedAt:      *outcome.EndedAt,
	})
	if err != nil {
		log.WithError(err).Error("unable to save game record")
	}
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s := g.lookup(w, r, false)
	if s == nil {
		return
	}
	sendJSONOrLog(w, g.log, NewGameSessionDTO(s.Snapshot()))
}

func (g GameHandler) move(w http.ResponseWriter, r *http.Request, fn func(*mines.Minefield, int) mines.State) {
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	s := g.lookup(w, r, true)
	if s == nil {
		return
	}

	snapshot, err := g.play(r.Context(), s, func(m *mines.Minefield) error {
		if !m.ValidatePosition(pos.Row, pos.Col) {
			return command.ErrOutOfBounds
		}
		fn(m, m.Index(pos.Row, pos.Col))
		return nil
	})
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(snapshot))
}

func (g GameHandler) Uncover(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, (*mines.Minefield).UncoverTile)
}

func (g GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, (*mines.Minefield).FlagTile)
}

func (g GameHandler) apply(w http.ResponseWriter, r *http.Request, fn func(*mines.Minefield)) {
	s := g.lookup(w, r, true)
	if s == nil {
		return
	}
	snapshot, _ := g.play(r.Context(), s, func(m *mines.Minefield) error {
		fn(m)
		return nil
	})
	sendJSONOrLog(w, g.log, NewGameSessionDTO(snapshot))
}

func (g GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	g.apply(w, r, (*mines.Minefield).Reset)
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	g.apply(w, r, (*mines.Minefield).Forfeit)
}

// Batch runs the newline-separated commands of the request body. Commands
// before a malformed line stay applied.
func (g GameHandler) Batch(w http.ResponseWriter, r *http.Request) {
	s := g.lookup(w, r, true)
	if s == nil {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBatchSize))
	if err != nil {
		sendError(w, g.log, http.StatusRequestEntityTooLarge, err)
		return
	}

	snapshot, err := g.play(r.Context(), s, func(m *mines.Minefield) error {
		return command.ExecuteBatch(m, string(body))
	})
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	g.log.WithField("session_id", snapshot.ID).Debugf("\t> %q", body)
	sendJSONOrLog(w, g.log, NewGameSessionDTO(snapshot))
}
