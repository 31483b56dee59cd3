package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"bpmsclient/internal/app"
	"bpmsclient/internal/infrastructure"
)

func main() {
	application, err := app.NewApplication()
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() { _ = infrastructure.CloseLogFile() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, application); err != nil {
		application.Logger.Error("Application error", slog.String("error", err.Error()))
		_ = infrastructure.CloseLogFile()
		os.Exit(1)
	}
}

// run serves until ctx is cancelled or the listener fails, then shuts down
func run(ctx context.Context, application *app.Application) error {
	g, gctx := errgroup.WithContext(ctx)

	application.Start(gctx)
	g.Go(application.Serve)
	g.Go(func() error {
		<-gctx.Done()
		// shutdown gets its own deadline; gctx is already done
		return application.Stop(context.WithoutCancel(gctx))
	})

	return g.Wait()
}
