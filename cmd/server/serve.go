package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	appmedia "videosvc/internal/application/media"
	"videosvc/internal/config"
	"videosvc/internal/infrastructure/ffmpeg"
	"videosvc/internal/infrastructure/filesystem"
	"videosvc/internal/infrastructure/memory"
	vlog "videosvc/internal/log"
	httptransport "videosvc/internal/transport/http"
)

func newServeCommand(loadConfig func() (config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP task API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	vlog.Configure(vlog.Config{Level: cfg.LogLevel})
	logger := vlog.WithComponent("server")

	srv, svc, err := newServer(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, srv, svc, cfg.ShutdownTimeout(), logger)
}

// newServer wires storage, the ffmpeg runner, the coordinator and the
// router into an http.Server.
func newServer(cfg config.Config, logger zerolog.Logger) (*http.Server, *appmedia.Service, error) {
	files := filesystem.NewStore(cfg.MediaRoot)
	if err := files.EnsureRoot(); err != nil {
		return nil, nil, fmt.Errorf("storage init failed: %w", err)
	}

	runner := ffmpeg.NewRunner(cfg.FFmpegBin, cfg.FFprobeBin, files)
	svc := appmedia.NewService(runner, memory.NewStatusStore(), files, vlog.WithComponent("coordinator"))

	handler := httptransport.NewHandler(svc, vlog.WithComponent("api"))
	router := httptransport.NewRouter(handler, promhttp.Handler(), vlog.WithComponent("http"))

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv, svc, nil
}

// run serves until ctx is done, then stops accepting requests and waits for
// in-flight tasks within timeout.
func run(ctx context.Context, srv *http.Server, svc *appmedia.Service, timeout time.Duration, logger zerolog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", srv.Addr).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		if err := svc.Wait(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("tasks still running at shutdown")
		}
		return nil
	})

	return g.Wait()
}
