// Package cli wires configuration, storage and the tutor service into the
// learnzverse command tree.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/ashureev/learnzverse/internal/cache"
	"github.com/ashureev/learnzverse/internal/config"
	"github.com/ashureev/learnzverse/internal/logging"
	"github.com/ashureev/learnzverse/internal/preferences"
	"github.com/ashureev/learnzverse/internal/store"
	"github.com/ashureev/learnzverse/internal/transcript"
	"github.com/ashureev/learnzverse/internal/tutor"
	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Error carries the process exit code for a failed run.
type Error struct {
	Code    int
	Message string
}

// options are the root flags shared by every command.
type options struct {
	envFile  string
	logLevel string
}

func (o *options) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "env-file",
			Usage:       "Path to a .env file loaded before reading configuration",
			Value:       ".env",
			Destination: &o.envFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Aliases:     []string{"l"},
			Usage:       "Log level (debug, info, warn, error); overrides LOG_LEVEL",
			Destination: &o.logLevel,
		},
	}
}

// Run executes the command tree for argv.
func Run(ctx context.Context, argv []string) *Error {
	if err := newCommand().Run(ctx, argv); err != nil {
		slog.Error("learnzverse failed", "error", err)
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}

func newCommand() *cli.Command {
	var opts options

	return &cli.Command{
		Name:   "learnzverse",
		Usage:  "Personal tutors for physics, chemistry, biology and math",
		Flags:  opts.flags(),
		Action: chatAction(&opts),
		Commands: []*cli.Command{
			serveCommand(&opts),
			historyCommand(&opts),
		},
	}
}

// app is the set of long-lived dependencies opened for one command.
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	repo       *store.SQLiteStore
	cache      *cache.Cache
	prefs      *preferences.Store
	transcript *transcript.Logger
	tutor      *tutor.Service
}

func (o *options) open(ctx context.Context) (*app, error) {
	envErr := godotenv.Load(o.envFile)

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}

	logger := logging.New(cfg.LogLevel, os.Stderr)
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Debug("no .env file loaded, using environment variables", "path", o.envFile)
	}

	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize database", goerr.V("path", cfg.DBPath))
	}
	if err := repo.Ping(ctx); err != nil {
		_ = repo.Close()
		return nil, goerr.Wrap(err, "database health check failed")
	}

	tr, err := transcript.New(cfg.TranscriptOptions(), logger)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}

	c := cache.Load(cfg.CachePath, logger)

	a := &app{
		cfg:        cfg,
		logger:     logger,
		repo:       repo,
		cache:      c,
		prefs:      preferences.Load(cfg.PrefsPath, logger),
		transcript: tr,
		tutor:      tutor.NewService(c, tutor.NewGenerator()),
	}
	logger.Debug("learnzverse ready",
		"db", cfg.DBPath,
		"cache_entries", c.Len(),
		"transcript", tr.Path(),
	)
	return a, nil
}

func (a *app) Close() {
	if err := a.transcript.Close(); err != nil {
		a.logger.Error("failed to close transcript", "error", err)
	}
	if err := a.repo.Close(); err != nil {
		a.logger.Error("failed to close repository", "error", err)
	}
}
