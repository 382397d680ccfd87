package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/LavaJover/printshop-order-service/internal/config"
	"go.uber.org/zap"
)

// Start runs the HTTP server until ctx is cancelled, then shuts it down gracefully.
func Start(ctx context.Context, cfg config.HTTPServer, router http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
