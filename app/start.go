package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Run starts the message router, the module and the ops server, then blocks
// until ctx is canceled or one of them fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)

	go func() {
		if err := app.Router.Run(ctx); err != nil {
			errCh <- fmt.Errorf("message router stopped: %w", err)
		}
	}()
	select {
	case <-app.Router.Running():
	case <-time.After(30 * time.Second):
		return errors.New("message router did not start")
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go app.Professionals.Run(ctx, &wg)

	app.opsServer = &http.Server{
		Addr:              app.Config.Observability.MetricsAddress,
		Handler:           NewOpsRouter(app.Registry, app.healthChecks()),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		app.Logger.Info("Starting ops server", slog.String("addr", app.opsServer.Addr))
		if err := app.opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("ops server stopped: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		app.Logger.Error("Shutting down after failure", slog.Any("error", runErr))
	}

	cancel()
	wg.Wait()
	return runErr
}

func (app *App) healthChecks() map[string]HealthCheck {
	checks := map[string]HealthCheck{
		"postgres": app.DB.PingContext,
		"router": func(context.Context) error {
			if app.Router.IsClosed() {
				return errors.New("message router closed")
			}
			return nil
		},
	}
	if app.Professionals != nil && app.Professionals.Queue != nil {
		checks["queue"] = app.Professionals.Queue.HealthCheck
	}
	return checks
}
