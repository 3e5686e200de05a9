package handlers

import (
	"net/http"

	"github.com/vancomm/minefield/internal/repository"
)

// Records lists the fastest won games, optionally narrowed to one board
// setup or one player.
func (g GameHandler) Records(w http.ResponseWriter, r *http.Request) {
	query, err := ParseRecordsQuery(r.URL.Query())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	filter := repository.HighscoreFilter{
		Username: query.Username,
		Limit:    query.Limit,
	}
	if query.Rows != nil {
		filter.Board = &repository.BoardFilter{
			Rows:         *query.Rows,
			Cols:         *query.Cols,
			MinesPercent: *query.MinesPercent,
		}
	}

	records, err := g.records.GetHighscores(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to fetch records")
		return
	}
	if records == nil {
		records = []repository.Highscore{}
	}

	sendJSONOrLog(w, g.log, records)
}
