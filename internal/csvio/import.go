package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/normalize"
)

// ErrMissingHeaders is returned when a file lacks a required column. Nothing
// is imported in that case.
var ErrMissingHeaders = errors.New("missing required CSV headers")

// Target is the part of the store an import writes into. The caller saves
// afterwards.
type Target interface {
	Today() time.Time
	FindExerciseByName(name string) *models.Exercise
	InsertExercise(ex models.Exercise) (*models.Exercise, error)
	NewSession(date string) *models.Session
	FinishSession(sess *models.Session)
	AddSet(sess *models.Session, exerciseID string, set models.Set) (*models.SessionItem, error)
}

// Result holds the outcome of an import.
type Result struct {
	RowsReceived      int `json:"rows_received"`
	RowsSkipped       int `json:"rows_skipped"`
	ExercisesInserted int `json:"exercises_inserted"`
	SessionsInserted  int `json:"sessions_inserted,omitempty"`
	SetsInserted      int `json:"sets_inserted,omitempty"`
}

// ImportExercises adds the exercises in r to the catalogue. Rows without a
// name, and names already in the catalogue (case-insensitive), are skipped.
func ImportExercises(t Target, r io.Reader) (*Result, error) {
	rows, err := readRows(r, ExercisesHeader)
	if err != nil {
		return nil, err
	}

	result := &Result{RowsReceived: len(rows)}
	for _, raw := range rows {
		ex := normalize.Exercise(raw)
		if ex.Name == "" || t.FindExerciseByName(ex.Name) != nil {
			result.RowsSkipped++
			continue
		}
		if _, err := t.InsertExercise(ex); err != nil {
			result.RowsSkipped++
			continue
		}
		result.ExercisesInserted++
	}
	return result, nil
}

// ImportSessions appends the sessions in r. Rows are grouped by session id
// and date in first-seen order; each group becomes a new finished session
// with a fresh id. Exercises are matched by name and created with the row's
// muscle when missing. Rows without an exercise name, rows written for a
// deleted exercise, and rows with a set that would be rejected on entry are
// skipped.
func ImportSessions(t Target, r io.Reader) (*Result, error) {
	rows, err := readRows(r, SessionsHeader)
	if err != nil {
		return nil, err
	}

	type groupKey struct{ sessionID, date string }
	sessions := make(map[groupKey]*models.Session)
	today := t.Today()
	result := &Result{RowsReceived: len(rows)}

	for _, raw := range rows {
		name := normalize.Text(raw["exercise"])
		set := normalize.Set(raw)
		if name == "" || strings.EqualFold(name, models.DeletedExerciseName) || set.Reps <= 0 {
			result.RowsSkipped++
			continue
		}

		ex := t.FindExerciseByName(name)
		if ex == nil {
			muscle, _ := models.ParseMuscle(normalize.Text(raw["muscle"]))
			ex, err = t.InsertExercise(models.Exercise{Name: name, Muscle: muscle})
			if err != nil {
				result.RowsSkipped++
				continue
			}
			result.ExercisesInserted++
		}

		date := normalize.Date(raw["date"], today)
		key := groupKey{normalize.Text(raw["sessionId"]), date}
		sess, ok := sessions[key]
		if !ok {
			sess = t.NewSession(date)
			t.FinishSession(sess)
			sessions[key] = sess
			result.SessionsInserted++
		}

		if _, err := t.AddSet(sess, ex.ID, set); err != nil {
			result.RowsSkipped++
			continue
		}
		result.SetsInserted++
	}
	return result, nil
}

// readRows parses the whole file before returning so a malformed file
// applies nothing. Each row is keyed by the required header names.
func readRows(r io.Reader, required []string) ([]normalize.Raw, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", ErrMissingHeaders)
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		index[strings.ToLower(h)] = i
	}
	var missing []string
	for _, name := range required {
		if _, ok := index[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingHeaders, strings.Join(missing, ", "))
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}

	rows := make([]normalize.Raw, 0, len(records))
	for _, rec := range records {
		if blank(rec) {
			continue
		}
		raw := make(normalize.Raw, len(required))
		for _, name := range required {
			if i := index[strings.ToLower(name)]; i < len(rec) {
				raw[name] = rec[i]
			}
		}
		rows = append(rows, raw)
	}
	return rows, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
