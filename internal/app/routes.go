package app

import (
	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/handlers"
	"github.com/vancomm/minefield/internal/mines"
)

func newRand() mines.Rand {
	return mines.NewRand()
}

func (a *App) loadRoutes() {
	base := config.BasePath() + "/v1"

	game := handlers.NewGameHandler(
		a.log, a.sessions, a.repo, a.board, a.ws, newRand,
	)
	auth := handlers.NewAuth(a.log, a.repo, a.cookies)

	a.router.HandleFunc("POST "+base+"/game", game.NewGame)
	a.router.HandleFunc("GET "+base+"/game/{id}", game.Fetch)
	a.router.HandleFunc("POST "+base+"/game/{id}/uncover", game.Uncover)
	a.router.HandleFunc("POST "+base+"/game/{id}/flag", game.Flag)
	a.router.HandleFunc("POST "+base+"/game/{id}/reset", game.Reset)
	a.router.HandleFunc("POST "+base+"/game/{id}/forfeit", game.Forfeit)
	a.router.HandleFunc("POST "+base+"/game/{id}/batch", game.Batch)
	a.router.HandleFunc("GET "+base+"/game/{id}/connect", game.ConnectWS)
	a.router.HandleFunc("GET "+base+"/records", game.Records)

	a.router.HandleFunc("POST "+base+"/register", auth.Register)
	a.router.HandleFunc("POST "+base+"/login", auth.Login)
	a.router.HandleFunc("POST "+base+"/logout", auth.Logout)
	a.router.HandleFunc("GET "+base+"/status", auth.Status)
}
