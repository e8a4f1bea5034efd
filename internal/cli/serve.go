package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"pomodoro/internal/api"
	"pomodoro/internal/metrics"
	"pomodoro/internal/notify"
	"pomodoro/internal/ui/preferences"
)

const shutdownTimeout = 5 * time.Second

// AddServeCommand adds the serve command to the root command.
func AddServeCommand(root *cobra.Command) {
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run a headless timer controlled over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, _, err := resolveSettings(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			listener, err := net.Listen("tcp", settings.HTTPAddr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", settings.HTTPAddr, err)
			}
			return serve(ctx, settings, listener)
		},
	})
}

// serve runs the engine, agenda, idle watcher, and HTTP API until ctx is done.
// It owns listener.
func serve(ctx context.Context, settings preferences.Settings, listener net.Listener) error {
	logger := GetLogger().With().Str("component", "serve").Logger()

	s, err := newSession(settings, notify.NewLogNotifier(GetLogger()), GetLogger())
	if err != nil {
		_ = listener.Close()
		return err
	}
	defer s.close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewRecorder(registry)
	s.engine.SubscribeEvents(recorder.Observe)

	g, gctx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Handler:           api.NewRouter(s.engine, registry, GetLogger()),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return gctx
		},
	}

	s.runBackground(gctx, g)
	g.Go(func() error {
		logger.Info().Str("addr", listener.Addr().String()).Str("instance", s.engine.ID()).Msg("http api listening")
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	return g.Wait()
}
