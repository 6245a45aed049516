package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/nodepop/app/nodepop"
	"github.com/dmitrymomot/nodepop/core/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := nodepop.NewApp(ctx)
	if err != nil {
		logger.New().Error("Failed to start application", logger.Error(err))
		os.Exit(1)
	}
	log := app.Logger()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return app.Run(ctx) })

	runErr := eg.Wait()
	if err := app.Close(context.WithoutCancel(ctx)); err != nil {
		log.Error("Failed to close connections", logger.Error(err))
	}
	if runErr != nil {
		log.Error("Failed to run server", logger.Component("server"), logger.Error(runErr))
		os.Exit(1)
	}

	log.Info("Application stopped")
}
