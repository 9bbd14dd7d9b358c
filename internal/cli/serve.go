package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashureev/learnzverse/internal/api"
	"github.com/ashureev/learnzverse/internal/middleware"
	"github.com/ashureev/learnzverse/web"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

func serveCommand(opts *options) *cli.Command {
	var port string

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the tutor web page and JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "port",
				Aliases:     []string{"p"},
				Usage:       "Listen port; overrides PORT",
				Destination: &port,
			},
		},
		Action: func(ctx context.Context, _ *cli.Command) error {
			a, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if port != "" {
				a.cfg.Port = port
				if err := a.cfg.Validate(); err != nil {
					return goerr.Wrap(err, "invalid --port")
				}
			}

			srv := &http.Server{
				Addr:         ":" + a.cfg.Port,
				Handler:      newRouter(a),
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 30 * time.Second,
				IdleTimeout:  120 * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("server listening", "addr", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err, ok := <-errCh:
				if ok {
					return goerr.Wrap(err, "server failed", goerr.V("addr", srv.Addr))
				}
				return nil
			case <-ctx.Done():
			}
			stop()

			a.logger.Info("shutting down gracefully")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "server forced to shutdown")
			}

			a.logger.Info("server stopped")
			return nil
		},
	}
}

func newRouter(a *app) http.Handler {
	base := api.NewHandler(a.repo, a.tutor, a.transcript)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestLogger(a.logger))
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS(a.cfg.CORSOrigins))

	api.NewHealthHandler(base).RegisterHealth(r)
	api.NewTutorHandler(base).RegisterRoutes(r)

	r.Handle("/*", web.StaticHandler())
	return r
}
