package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/app"
	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/migrations"
)

func main() {
	log, err := config.NewLogger()
	if err != nil {
		logrus.WithError(err).Fatal("unable to set up logging")
	}
	mines.Log = log

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.WithField("development", config.Development()).Info("starting up")

	if err := app.New(log, migrations.FS).Start(ctx); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}
