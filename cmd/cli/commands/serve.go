package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/frsm-ph/shiftops/pkg/api"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  "Serve the JSON API for attendance actions, change request review and shift listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := api.NewHandler(app.Database, app.Logger, app.Cfg.UpcomingDays)

			srv := &http.Server{
				Addr:    app.Cfg.ListenAddr,
				Handler: handler.Router(),
			}

			ctx, stop := signal.NotifyContext(app.Ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				app.Logger.Info("Listening", zap.String("addr", app.Cfg.ListenAddr))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
			case <-ctx.Done():
				app.Logger.Info("Shutting down")
				shutdownCtx, cancel := context.WithTimeout(app.Ctx,
					time.Duration(app.Cfg.ShutdownTimeout)*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("shutdown failed: %w", err)
				}
			}
			return nil
		},
	}
}
