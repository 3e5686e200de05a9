package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

type Highscore struct {
	GameRecordID int64   `json:"game_record_id" db:"game_record_id"`
	Username     *string `json:"username" db:"username"`
	Rows         int     `json:"rows" db:"board_rows"`
	Cols         int     `json:"cols" db:"board_cols"`
	MinesPercent float64 `json:"mines_percent" db:"mines_percent"`
	MineCount    int     `json:"mine_count" db:"mine_count"`
	PlaytimeMs   float64 `json:"playtime_ms" db:"playtime_ms"`
}

type BoardFilter struct {
	Rows         int
	Cols         int
	MinesPercent float64
}

type HighscoreFilter struct {
	Username *string
	Board    *BoardFilter
	Limit    int
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.Board != nil {
		clauses = append(
			clauses,
			"board_rows = @board_rows",
			"board_cols = @board_cols",
			"mines_percent = @mines_percent",
		)
		args["board_rows"] = f.Board.Rows
		args["board_cols"] = f.Board.Cols
		args["mines_percent"] = f.Board.MinesPercent
	}
	return strings.Join(clauses, " AND "), args
}

// GetHighscores lists won games, fastest first.
func (q *Queries) GetHighscores(
	ctx context.Context, filter HighscoreFilter,
) ([]Highscore, error) {
	query := `
	SELECT
		game_record_id,
		username,
		board_rows,
		board_cols,
		mines_percent,
		mine_count,
		(
			extract('epoch' from ended_at) -
			extract('epoch' from started_at)
		) * 1000 playtime_ms
	FROM game_record
		LEFT OUTER JOIN player USING (player_id)
	WHERE won = true`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	query += " ORDER BY playtime_ms"

	if filter.Limit > 0 {
		query += " LIMIT @limit"
		args["limit"] = filter.Limit
	}

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
