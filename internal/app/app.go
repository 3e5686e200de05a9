package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/database"
	"github.com/vancomm/minefield/internal/middleware"
	"github.com/vancomm/minefield/internal/repository"
	"github.com/vancomm/minefield/internal/session"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	log        *logrus.Logger
	router     *http.ServeMux
	db         *pgxpool.Pool
	repo       *repository.Queries
	sessions   *session.Store
	board      config.Board
	idle       time.Duration
	cookies    *config.Cookies
	ws         *config.WebSocket
	migrations fs.FS
}

func New(log *logrus.Logger, migrations fs.FS) *App {
	return &App{
		log:        log,
		router:     http.NewServeMux(),
		sessions:   session.NewStore(),
		migrations: migrations,
	}
}

// setup reads the environment and connects to the database.
func (a *App) setup(ctx context.Context) error {
	board, err := config.NewBoard()
	if err != nil {
		return err
	}
	a.board = *board

	a.idle, err = config.SessionIdle()
	if err != nil {
		return err
	}

	jwt, err := config.NewJWT()
	if err != nil {
		return err
	}

	a.cookies, err = config.NewCookies(jwt)
	if err != nil {
		return err
	}

	a.ws, err = config.NewWebSocket()
	if err != nil {
		return err
	}

	db, _, err := database.ConnectAndMigrate(ctx, a.migrations)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	a.db = db
	a.repo = repository.New(db)

	return nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Auth(a.log, a.cookies),
		middleware.Cors(config.Development(), config.AllowedOrigins()...),
		middleware.Logging(a.log),
	)
}

// Start serves until ctx is cancelled, then shuts the server down.
func (a *App) Start(ctx context.Context) error {
	if err := a.setup(ctx); err != nil {
		return err
	}
	defer a.db.Close()

	a.loadRoutes()

	addr := config.Port()
	server := &http.Server{
		Addr:    addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.log.WithFields(logrus.Fields{
		"addr":      addr,
		"base_path": config.BasePath(),
		"rows":      a.board.Rows,
		"cols":      a.board.Cols,
		"percent":   a.board.MinesPercent,
	}).Info("server listening")

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		a.prune(gCtx)
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	a.log.WithField("live_sessions", a.sessions.Count()).Info("server stopped")
	return err
}

// prune drops idle sessions every tenth of the idle period until ctx ends.
func (a *App) prune(ctx context.Context) {
	ticker := time.NewTicker(a.idle / 10)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.sessions.Prune(a.idle); n > 0 {
				a.log.WithFields(logrus.Fields{
					"pruned": n,
					"live":   a.sessions.Count(),
				}).Debug("pruned idle sessions")
			}
		}
	}
}
