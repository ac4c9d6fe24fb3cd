package serverrun

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"

	"reelmate/internal/config"
	"reelmate/internal/enrich"
	"reelmate/internal/importer"
	"reelmate/internal/logging"
	"reelmate/internal/notifications"
	"reelmate/internal/server"
	"reelmate/internal/store"
	"reelmate/internal/tmdb"
)

// Options configures server process runtime behavior.
type Options struct {
	LogLevel string
}

// Run starts the reelmated runtime loop and blocks until the context
// is cancelled or a termination signal arrives.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}
	if strings.TrimSpace(opts.LogLevel) != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	lockPath := filepath.Join(cfg.Paths.DataDir, "reelmated.lock")
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return errors.New("another reelmated instance is already running")
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lockPath)
	}()

	pidPath := filepath.Join(cfg.Paths.LogDir, "reelmated.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	st, err := store.Open(cfg)
	if err != nil {
		logger.Error("open store", logging.Error(err))
		return err
	}
	defer st.Close()

	searcher, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
	if err != nil {
		return fmt.Errorf("init tmdb client: %w", err)
	}
	enricher, err := enrich.New(searcher,
		enrich.WithImageBaseURL(cfg.TMDB.ImageBaseURL),
		enrich.WithLookupTimeout(time.Duration(cfg.TMDB.RequestTimeout)*time.Second),
		enrich.WithRateLimit(cfg.TMDB.RequestsPerWindow, time.Duration(cfg.TMDB.WindowSeconds)*time.Second, cfg.TMDB.Burst),
		enrich.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("init enricher: %w", err)
	}

	notifier := notifications.NewService(cfg)
	imp, err := importer.New(st, enricher,
		importer.WithNotifier(notifier),
		importer.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("init importer: %w", err)
	}

	srv, err := server.New(cfg, st, imp, logger)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	if err := srv.Start(signalCtx); err != nil {
		return err
	}
	defer srv.Stop()

	logger.Info("reelmated started",
		logging.String("address", srv.Addr()),
		logging.String("store", st.Path()),
		logging.Bool("tmdb_key_present", strings.TrimSpace(cfg.TMDB.APIKey) != ""),
	)

	<-signalCtx.Done()
	logger.Info("reelmated shutting down")
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}
