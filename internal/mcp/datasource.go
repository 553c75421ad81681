package mcp

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/stats"
	"github.com/meltforce/liftlog/internal/store"
)

// ErrExerciseNotFound is returned when a personal-best check names an
// exercise that is not in the catalogue.
var ErrExerciseNotFound = errors.New("exercise not found")

// DataSource abstracts where the workout data lives. Both LocalSource (the
// store file on this machine) and HTTPClient (a running liftlog server)
// satisfy this interface.
type DataSource interface {
	Exercises(ctx context.Context) ([]models.Exercise, error)
	ExerciseStats(ctx context.Context) ([]stats.ExerciseStats, error)
	MuscleStats(ctx context.Context) ([]stats.MuscleStats, error)
	MuscleStatsInWindow(ctx context.Context, days int) ([]stats.MuscleWindowStats, error)
	WeeklyVolume(ctx context.Context) (*stats.WeeklyReport, error)
	Summary(ctx context.Context) (*stats.Summary, error)
	CheckPersonalBest(ctx context.Context, exercise string, weight float64) (*stats.PersonalBestCheck, error)
}

// LocalSource reads a store directly. Tool calls may run concurrently, so
// every read holds mu.
type LocalSource struct {
	mu    sync.Mutex
	store *store.Store
}

// Compile-time check: LocalSource satisfies DataSource.
var _ DataSource = (*LocalSource)(nil)

// NewLocalSource wraps a loaded store.
func NewLocalSource(st *store.Store) *LocalSource {
	return &LocalSource{store: st}
}

func (l *LocalSource) Exercises(_ context.Context) ([]models.Exercise, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Exercise, 0, len(l.store.Data().Exercises))
	for _, ex := range l.store.Data().Exercises {
		out = append(out, *ex)
	}
	return out, nil
}

func (l *LocalSource) ExerciseStats(_ context.Context) ([]stats.ExerciseStats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return stats.ByExercise(l.store.Data()), nil
}

func (l *LocalSource) MuscleStats(_ context.Context) ([]stats.MuscleStats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return stats.ByMuscle(l.store.Data()), nil
}

func (l *LocalSource) MuscleStatsInWindow(_ context.Context, days int) ([]stats.MuscleWindowStats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return stats.ByMuscleInWindow(l.store.Data(), days, l.store.Today()), nil
}

func (l *LocalSource) WeeklyVolume(_ context.Context) (*stats.WeeklyReport, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	report := stats.Weekly(l.store.Data())
	return &report, nil
}

func (l *LocalSource) Summary(_ context.Context) (*stats.Summary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := stats.Summarize(l.store.Data())
	return &s, nil
}

// CheckPersonalBest accepts an exercise id or name.
func (l *LocalSource) CheckPersonalBest(_ context.Context, exercise string, weight float64) (*stats.PersonalBestCheck, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ex := l.store.FindExercise(exercise)
	if ex == nil {
		ex = l.store.FindExerciseByName(strings.TrimSpace(exercise))
	}
	if ex == nil {
		return nil, ErrExerciseNotFound
	}
	check := stats.CheckPersonalBest(l.store.Data(), ex.ID, weight)
	return &check, nil
}
