// Package upload imports CSV files into the local store or a running
// liftlog server, remembering which files were already imported so a
// sessions file is not applied twice.
package upload

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/meltforce/liftlog/internal/csvio"
	"github.com/meltforce/liftlog/internal/store"
)

// LocalTarget is the name the local store has in the import ledger.
const LocalTarget = "local"

// Target applies one CSV file.
type Target interface {
	Name() string
	Import(ctx context.Context, kind csvio.Kind, data []byte) (*csvio.Result, error)
}

// Ledger records which files (by content hash) went to which target.
type Ledger interface {
	IsImported(ctx context.Context, target, hash string) (bool, error)
	MarkImported(ctx context.Context, target, hash, kind, name string) error
}

// Outcome reports what happened to one file.
type Outcome struct {
	Path    string
	Hash    string
	Skipped bool
	Result  *csvio.Result
}

// Uploader sends files to a target through the ledger.
type Uploader struct {
	target Target
	ledger Ledger
	log    *slog.Logger
}

// New creates an Uploader.
func New(target Target, ledger Ledger, log *slog.Logger) *Uploader {
	return &Uploader{target: target, ledger: ledger, log: log}
}

// ImportFile reads path and imports it as kind. A file whose contents were
// already imported into the same target is skipped unless force is set.
func (u *Uploader) ImportFile(ctx context.Context, kind csvio.Kind, path string, force bool) (*Outcome, error) {
	if kind != csvio.KindExercises && kind != csvio.KindSessions {
		return nil, fmt.Errorf("%s cannot be imported", kind)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	hash := HashBytes(data)
	out := &Outcome{Path: path, Hash: hash}

	if !force {
		done, err := u.ledger.IsImported(ctx, u.target.Name(), hash)
		if err != nil {
			return nil, err
		}
		if done {
			u.log.Info("already imported, skipping", "file", path, "target", u.target.Name())
			out.Skipped = true
			return out, nil
		}
	}

	result, err := u.target.Import(ctx, kind, data)
	if err != nil {
		return nil, err
	}
	out.Result = result

	u.log.Info("file imported",
		"file", path,
		"target", u.target.Name(),
		"rows", result.RowsReceived,
		"skipped", result.RowsSkipped,
	)
	if err := u.ledger.MarkImported(ctx, u.target.Name(), hash, string(kind), filepath.Base(path)); err != nil {
		u.log.Warn("failed to record import", "file", path, "error", err)
	}
	return out, nil
}

// HashBytes returns the hex SHA-256 of data.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Local applies files to a store and saves it after each one.
type Local struct {
	store *store.Store
}

// Compile-time check: Local satisfies Target.
var _ Target = (*Local)(nil)

// NewLocal wraps a loaded store.
func NewLocal(st *store.Store) *Local {
	return &Local{store: st}
}

func (l *Local) Name() string {
	return LocalTarget
}

func (l *Local) Import(ctx context.Context, kind csvio.Kind, data []byte) (*csvio.Result, error) {
	var (
		result *csvio.Result
		err    error
	)
	switch kind {
	case csvio.KindExercises:
		result, err = csvio.ImportExercises(l.store, bytes.NewReader(data))
	case csvio.KindSessions:
		result, err = csvio.ImportSessions(l.store, bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%s cannot be imported", kind)
	}
	if err != nil {
		return nil, err
	}
	if err := l.store.Save(ctx); err != nil {
		return result, err
	}
	return result, nil
}
