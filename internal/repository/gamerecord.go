package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// GameRecord is a finished game. Boards themselves are never stored.
type GameRecord struct {
	GameRecordID int64     `db:"game_record_id"`
	PlayerID     *int64    `db:"player_id"`
	Rows         int       `db:"board_rows"`
	Cols         int       `db:"board_cols"`
	MinesPercent float64   `db:"mines_percent"`
	MineCount    int       `db:"mine_count"`
	Won          bool      `db:"won"`
	StartedAt    time.Time `db:"started_at"`
	EndedAt      time.Time `db:"ended_at"`
	CreatedAt    time.Time `db:"created_at"`
}

type CreateGameRecordParams struct {
	PlayerID     *int64
	Rows         int
	Cols         int
	MinesPercent float64
	MineCount    int
	Won          bool
	StartedAt    time.Time
	EndedAt      time.Time
}

func (p CreateGameRecordParams) args() pgx.NamedArgs {
	return pgx.NamedArgs{
		"player_id":     p.PlayerID,
		"board_rows":    p.Rows,
		"board_cols":    p.Cols,
		"mines_percent": p.MinesPercent,
		"mine_count":    p.MineCount,
		"won":           p.Won,
		"started_at":    p.StartedAt,
		"ended_at":      p.EndedAt,
	}
}

func (q *Queries) CreateGameRecord(
	ctx context.Context, params CreateGameRecordParams,
) (*GameRecord, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_record (
			player_id, board_rows, board_cols, mines_percent, mine_count,
			won, started_at, ended_at
		)
		VALUES (
			@player_id, @board_rows, @board_cols, @mines_percent, @mine_count,
			@won, @started_at, @ended_at
		)
		RETURNING *`,
		params.args(),
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameRecord])
}
