// Package csvio reads and writes the comma-separated exchange formats:
// exercises, flattened session sets, and the two stats tables.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/stats"
)

// Kind names one of the tabular formats.
type Kind string

const (
	KindExercises     Kind = "exercises"
	KindSessions      Kind = "sessions"
	KindExerciseStats Kind = "exercise-stats"
	KindMuscleStats   Kind = "muscle-stats"
)

// Kinds lists every exportable format.
var Kinds = []Kind{KindExercises, KindSessions, KindExerciseStats, KindMuscleStats}

// ErrUnknownKind is returned for a format name that is not in Kinds.
var ErrUnknownKind = errors.New("unknown export format")

// Header rows of each format.
var (
	ExercisesHeader     = []string{"id", "name", "muscle"}
	SessionsHeader      = []string{"date", "sessionId", "exercise", "muscle", "weight", "reps"}
	ExerciseStatsHeader = []string{"name", "muscle", "sets", "reps", "maxWeight"}
	MuscleStatsHeader   = []string{"muscle", "sets", "reps"}
)

// ParseKind maps a user-supplied format name to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Filename returns the suggested download name for a format.
func (k Kind) Filename() string {
	return "liftlog-" + string(k) + ".csv"
}

// Export writes data in the given format.
func Export(w io.Writer, kind Kind, data *models.Data) error {
	switch kind {
	case KindExercises:
		return ExportExercises(w, data)
	case KindSessions:
		return ExportSessions(w, data)
	case KindExerciseStats:
		return ExportExerciseStats(w, stats.ByExercise(data))
	case KindMuscleStats:
		return ExportMuscleStats(w, stats.ByMuscle(data))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// ExportExercises writes the catalogue.
func ExportExercises(w io.Writer, data *models.Data) error {
	rows := make([][]string, 0, len(data.Exercises))
	for _, ex := range data.Exercises {
		rows = append(rows, []string{ex.ID, ex.Name, ex.Muscle.String()})
	}
	return write(w, ExercisesHeader, rows)
}

// ExportSessions writes one row per logged set. Sets of deleted exercises
// are written under the "(deleted)" placeholder.
func ExportSessions(w io.Writer, data *models.Data) error {
	known := make(map[string]*models.Exercise, len(data.Exercises))
	for _, ex := range data.Exercises {
		known[ex.ID] = ex
	}

	var rows [][]string
	for _, sess := range data.Sessions {
		for _, item := range sess.Items {
			ex := models.DeletedExercise(item.ExerciseID)
			if found := known[item.ExerciseID]; found != nil {
				ex = *found
			}
			for _, set := range item.Sets {
				rows = append(rows, []string{
					sess.Date,
					sess.ID,
					ex.Name,
					ex.Muscle.String(),
					formatFloat(set.Weight),
					strconv.Itoa(set.Reps),
				})
			}
		}
	}
	return write(w, SessionsHeader, rows)
}

// ExportExerciseStats writes per-exercise totals.
func ExportExerciseStats(w io.Writer, rows []stats.ExerciseStats) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Name,
			r.Muscle.String(),
			strconv.Itoa(r.TotalSets),
			strconv.Itoa(r.TotalReps),
			formatFloat(r.MaxWeight),
		})
	}
	return write(w, ExerciseStatsHeader, out)
}

// ExportMuscleStats writes per-muscle totals.
func ExportMuscleStats(w io.Writer, rows []stats.MuscleStats) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.Muscle.String(), strconv.Itoa(r.TotalSets), strconv.Itoa(r.TotalReps)})
	}
	return write(w, MuscleStatsHeader, out)
}

func write(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
