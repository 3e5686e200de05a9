package handlers

import (
	"fmt"
	"strconv"

	"github.com/gorilla/schema"
	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

// NewGameParams are the query parameters of a new game. Missing ones fall
// back to the server's default board.
type NewGameParams struct {
	Rows         *int     `schema:"rows"`
	Cols         *int     `schema:"cols"`
	MinesPercent *float64 `schema:"mines_percent"`
}

func ParseNewGameParams(src map[string][]string, defaults config.Board) (config.Board, error) {
	var params NewGameParams
	if err := decoder.Decode(&params, src); err != nil {
		return config.Board{}, err
	}
	board := defaults
	if params.Rows != nil {
		board.Rows = *params.Rows
	}
	if params.Cols != nil {
		board.Cols = *params.Cols
	}
	if params.MinesPercent != nil {
		board.MinesPercent = *params.MinesPercent
	}
	if err := board.Validate(); err != nil {
		return config.Board{}, err
	}
	return board, nil
}

type Position struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePosition(src map[string][]string) (Position, error) {
	var pos Position
	err := decoder.Decode(&pos, src)
	return pos, err
}

type RecordsQuery struct {
	Rows         *int     `schema:"rows"`
	Cols         *int     `schema:"cols"`
	MinesPercent *float64 `schema:"mines_percent"`
	Username     *string  `schema:"username"`
	Limit        int      `schema:"limit"`
}

const (
	defaultRecordsLimit = 10
	maxRecordsLimit     = 100
)

var ErrPartialBoard = fmt.Errorf("rows, cols and mines_percent must be given together")

func ParseRecordsQuery(src map[string][]string) (RecordsQuery, error) {
	var q RecordsQuery
	if err := decoder.Decode(&q, src); err != nil {
		return q, err
	}
	given := 0
	for _, set := range []bool{q.Rows != nil, q.Cols != nil, q.MinesPercent != nil} {
		if set {
			given++
		}
	}
	if given != 0 && given != 3 {
		return q, ErrPartialBoard
	}
	if q.Limit <= 0 {
		q.Limit = defaultRecordsLimit
	}
	q.Limit = min(q.Limit, maxRecordsLimit)
	return q, nil
}

type GameSessionDTO struct {
	SessionId    string     `json:"session_id"`
	Grid         mines.Grid `json:"grid"`
	Rows         int        `json:"rows"`
	Cols         int        `json:"cols"`
	MinesPercent float64    `json:"mines_percent"`
	MineCount    int        `json:"mine_count"`
	MinesLeft    int        `json:"mines_left"`
	State        string     `json:"state"`
	StartedAt    int64      `json:"started_at"`
	EndedAt      *int64     `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(s session.Snapshot) *GameSessionDTO {
	var endedAt *int64
	if s.EndedAt != nil {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		SessionId:    strconv.FormatInt(s.ID, 10),
		Grid:         s.Grid,
		Rows:         s.Rows,
		Cols:         s.Cols,
		MinesPercent: s.MinesPercent,
		MineCount:    s.MineCount,
		MinesLeft:    s.MinesLeft,
		State:        s.State.String(),
		StartedAt:    s.StartedAt.UnixMilli(),
		EndedAt:      endedAt,
	}
}
