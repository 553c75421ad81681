package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meltforce/liftlog/internal/config"
	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/storage"
	"github.com/meltforce/liftlog/internal/store"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:           "liftlog",
		Short:         "Personal strength training log",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (defaults and LIFTLOG_* env vars when empty)")

	rootCmd.AddCommand(exerciseCmd())
	rootCmd.AddCommand(sessionCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(resetCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(mcpCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app is what every command needs: the loaded config, a logger and the
// store opened over the configured SQLite file.
type app struct {
	cfg   *config.Config
	log   *slog.Logger
	db    *storage.DB
	store *store.Store
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
}

// openApp loads config, opens the database and loads the aggregate. Log
// output goes to logOut so command output on stdout stays clean.
func openApp(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	log := newLogger(logOut, cfg)

	db, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	log.Debug("storage opened", "path", cfg.Storage.Path)

	st := store.New(db, store.WithKey(cfg.Storage.Key), store.WithLogger(log))
	st.Load(ctx)

	return &app{cfg: cfg, log: log, db: db, store: st}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.log.Warn("closing storage", "error", err)
	}
}

func (a *app) save(ctx context.Context) error {
	if err := a.store.Save(ctx); err != nil {
		a.log.Warn("save failed", "error", err)
		return err
	}
	return nil
}

// findExercise resolves an exercise by id, then by case-insensitive name.
func (a *app) findExercise(ref string) (*models.Exercise, error) {
	if ex := a.store.FindExercise(ref); ex != nil {
		return ex, nil
	}
	if ex := a.store.FindExerciseByName(ref); ex != nil {
		return ex, nil
	}
	return nil, fmt.Errorf("no exercise %q", ref)
}

// findSession resolves a session by id or unique id prefix.
func (a *app) findSession(ref string) (*models.Session, error) {
	if sess := a.store.FindSession(ref); sess != nil {
		return sess, nil
	}
	var found *models.Session
	for _, sess := range a.store.Data().Sessions {
		if !strings.HasPrefix(sess.ID, ref) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("session prefix %q is ambiguous", ref)
		}
		found = sess
	}
	if found == nil {
		return nil, fmt.Errorf("no session %q", ref)
	}
	return found, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatWeight(w float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", w), "0"), ".")
}
