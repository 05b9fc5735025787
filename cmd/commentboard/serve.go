package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	commenthttp "github.com/MyNameIsWhaaat/commentboard/internal/board/handler/http"
	"github.com/MyNameIsWhaaat/commentboard/internal/board/service"
	"github.com/MyNameIsWhaaat/commentboard/internal/board/view"
	"github.com/MyNameIsWhaaat/commentboard/internal/config"
)

func newService(ctx context.Context, cfg config.Config) (service.BoardService, func(), error) {
	repo, closeRepo, err := openRepository(ctx, cfg.Storage, log.With().Str("component", "storage").Logger())
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}

	svc, err := service.New(ctx, repo, service.Options{
		BoardID: cfg.Storage.BoardID,
		IDs:     cfg.IDStrategy,
		Logger:  log.With().Str("component", "board").Logger(),
	})
	if err != nil {
		closeRepo()
		return nil, nil, err
	}
	return svc, closeRepo, nil
}

func serve(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, closeRepo, err := newService(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	h := commenthttp.New(svc, log.With().Str("component", "http").Logger())
	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           h.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func show(ctx context.Context, cfg config.Config, w io.Writer) error {
	svc, closeRepo, err := newService(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	_, err = io.WriteString(w, view.RenderText(svc.Snapshot(ctx)))
	return err
}
