// Package store owns the in-memory workout aggregate and its persistence in
// a single key-value slot.
//
// The store does not persist on every mutation. Callers apply a batch of
// edits (including plain field assignments on returned pointers) and then
// call Save once. It is not safe for concurrent use.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/storage"
)

const (
	// DefaultKey is the slot key of the current document layout.
	DefaultKey = "liftlog.v4.data"
	// LegacyKey holds quick-log records written by the first release.
	LegacyKey = "liftlog.v3.records"
)

// ErrPersist wraps any failure to write the aggregate. The in-memory data is
// still intact when it is returned; only durability is in question.
var ErrPersist = errors.New("saving workout data failed")

// Store holds the aggregate and the slot it is persisted to.
type Store struct {
	slot storage.Slot
	key  string
	log  *slog.Logger
	now  func() time.Time
	data *models.Data
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the slot key the aggregate is stored under.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLogger sets the logger used for recovered load failures.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithClock sets the clock used for default session dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store over slot holding an empty aggregate. Call Load to read
// the persisted one.
func New(slot storage.Slot, opts ...Option) *Store {
	s := &Store{
		slot: slot,
		key:  DefaultKey,
		log:  slog.New(slog.DiscardHandler),
		now:  time.Now,
		data: models.NewData(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Data returns the live aggregate. Aggregations read it directly.
func (s *Store) Data() *models.Data {
	return s.data
}

// Today returns the store clock's current time.
func (s *Store) Today() time.Time {
	return s.now()
}

// Load reads the persisted aggregate. It never fails: a missing, unreadable
// or malformed document yields an empty aggregate. When only the legacy
// quick-log records exist they are migrated and saved under the current key.
func (s *Store) Load(ctx context.Context) *models.Data {
	raw, err := s.slot.Get(ctx, s.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.data = s.loadLegacy(ctx)
	case err != nil:
		s.log.Warn("reading workout data failed, starting empty", "key", s.key, "error", err)
		s.data = models.NewData()
	default:
		data, err := decode(raw)
		if err != nil {
			s.log.Warn("workout data is malformed, starting empty", "key", s.key, "error", err)
			data = models.NewData()
		}
		s.data = data
	}
	return s.data
}

// Save writes the whole aggregate, overwriting whatever the slot held.
func (s *Store) Save(ctx context.Context) error {
	b, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("%w: encoding: %w", ErrPersist, err)
	}
	if err := s.slot.Set(ctx, s.key, b); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// Reset replaces the aggregate with an empty one and saves it.
func (s *Store) Reset(ctx context.Context) error {
	s.data = models.NewData()
	return s.Save(ctx)
}

func (s *Store) loadLegacy(ctx context.Context) *models.Data {
	raw, err := s.slot.Get(ctx, LegacyKey)
	if errors.Is(err, storage.ErrNotFound) {
		return models.NewData()
	}
	if err != nil {
		s.log.Warn("reading legacy records failed, starting empty", "error", err)
		return models.NewData()
	}

	entries, err := decodeLegacy(raw, s.now())
	if err != nil {
		s.log.Warn("legacy records are malformed, starting empty", "error", err)
		return models.NewData()
	}

	s.data = MigrateLegacy(entries)
	s.log.Info("migrated legacy records",
		"records", len(entries),
		"sessions", len(s.data.Sessions),
		"exercises", len(s.data.Exercises),
	)
	if err := s.Save(ctx); err != nil {
		s.log.Warn("saving migrated data failed", "error", err)
	}
	return s.data
}

// decode parses a persisted document and brings older shapes up to date:
// missing collections become empty, sessions without muscle tags get an empty
// list, and unknown muscles are read as Other. Ids must be unique within a
// collection; a missing or repeated id is replaced with a fresh one so the
// first holder keeps its references.
func decode(raw []byte) (*models.Data, error) {
	var data models.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}

	out := models.NewData()
	seen := make(map[string]bool, len(data.Exercises))
	for _, ex := range data.Exercises {
		if ex == nil {
			continue
		}
		ex.ID = uniqueID(seen, ex.ID)
		ex.Muscle, _ = models.ParseMuscle(string(ex.Muscle))
		out.Exercises = append(out.Exercises, ex)
	}
	seen = make(map[string]bool, len(data.Sessions))
	for _, sess := range data.Sessions {
		if sess == nil {
			continue
		}
		sess.ID = uniqueID(seen, sess.ID)
		items := make([]*models.SessionItem, 0, len(sess.Items))
		for _, item := range sess.Items {
			if item == nil {
				continue
			}
			if item.Sets == nil {
				item.Sets = []models.Set{}
			}
			items = append(items, item)
		}
		sess.Items = items
		sess.Muscles = muscleTags(sess.Muscles)
		out.Sessions = append(out.Sessions, sess)
	}
	return out, nil
}

// uniqueID returns id, or a fresh id when id is empty or already in seen.
func uniqueID(seen map[string]bool, id string) string {
	for id == "" || seen[id] {
		id = models.NewID()
	}
	seen[id] = true
	return id
}
