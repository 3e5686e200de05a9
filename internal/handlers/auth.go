package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/middleware"
	"github.com/vancomm/minefield/internal/repository"
)

type PlayerStore interface {
	CreatePlayer(context.Context, repository.CreatePlayerParams) (*repository.Player, error)
	FetchPlayer(ctx context.Context, username string) (*repository.Player, error)
}

type Auth struct {
	log     *logrus.Logger
	players PlayerStore
	cookies *config.Cookies
}

func NewAuth(log *logrus.Logger, players PlayerStore, cookies *config.Cookies) *Auth {
	return &Auth{
		log:     log,
		players: players,
		cookies: cookies,
	}
}

type PlayerInfo struct {
	PlayerId int64  `json:"player_id"`
	Username string `json:"username"`
}

type Status struct {
	LoggedIn bool        `json:"logged_in"`
	Player   *PlayerInfo `json:"player,omitempty"`
}

var (
	ErrBadAuthBody        = fmt.Errorf("request body must contain url-encoded username and password")
	ErrBadPasswordTooLong = fmt.Errorf("password too long")
	ErrBadCredentials     = fmt.Errorf("invalid username or password")
)

// Status reports who is signed in and extends their cookies.
func (a Auth) Status(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		a.cookies.Clear(w)
		sendJSONOrLog(w, a.log, Status{LoggedIn: false})
		return
	}

	a.signIn(w, claims.PlayerId, claims.Username)
}

func (a Auth) credentials(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	if err := r.ParseForm(); err != nil {
		sendError(w, a.log, http.StatusBadRequest, ErrBadAuthBody)
		return "", nil, false
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		sendError(w, a.log, http.StatusBadRequest, ErrBadAuthBody)
		return "", nil, false
	}

	passwordBytes := []byte(password)
	if len(passwordBytes) > 72 {
		sendError(w, a.log, http.StatusBadRequest, ErrBadPasswordTooLong)
		return "", nil, false
	}

	return username, passwordBytes, true
}

func (a Auth) Register(w http.ResponseWriter, r *http.Request) {
	username, password, ok := a.credentials(w, r)
	if !ok {
		return
	}

	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.log.WithError(err).Error("unable to hash password")
		return
	}

	player, err := a.players.CreatePlayer(r.Context(), repository.CreatePlayerParams{
		Username:     username,
		PasswordHash: hash,
	})
	if errors.Is(err, repository.ErrUsernameTaken) {
		sendError(w, a.log, http.StatusConflict, err)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.log.WithError(err).Error("unable to insert player")
		return
	}

	a.log.WithField("player_id", player.PlayerID).Info("player registered")
	a.signIn(w, player.PlayerID, player.Username)
}

func (a Auth) Login(w http.ResponseWriter, r *http.Request) {
	username, password, ok := a.credentials(w, r)
	if !ok {
		return
	}

	player, err := a.players.FetchPlayer(r.Context(), username)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		sendError(w, a.log, http.StatusUnauthorized, ErrBadCredentials)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.log.WithError(err).Error("unable to fetch player")
		return
	}

	if err := bcrypt.CompareHashAndPassword(player.PasswordHash, password); err != nil {
		sendError(w, a.log, http.StatusUnauthorized, ErrBadCredentials)
		return
	}

	a.signIn(w, player.PlayerID, player.Username)
}

func (a Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.cookies.Clear(w)
	sendJSONOrLog(w, a.log, Status{LoggedIn: false})
}

func (a Auth) signIn(w http.ResponseWriter, playerID int64, username string) {
	if err := a.cookies.Refresh(w, config.NewPlayerClaims(playerID, username)); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.log.WithError(err).Error("unable to refresh cookies")
		return
	}
	sendJSONOrLog(w, a.log, Status{
		LoggedIn: true,
		Player:   &PlayerInfo{playerID, username},
	})
}
