package stubserver

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Serve runs the stand-in backend on addr until ctx is done.
func Serve(ctx context.Context, addr string, srv *Server) error {
	if addr == "" {
		return errors.New("stubserver: addr is required")
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	srv.opts.Logger.Info().Str("address", addr).Msg("stub backend listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
