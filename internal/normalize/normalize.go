// Package normalize is the single conversion path from loosely typed input
// (form values, CSV rows, legacy JSON) into canonical model values.
package normalize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/liftlog/internal/models"
)

var (
	ErrInvalidWeight = errors.New("weight must be a non-negative number")
	ErrInvalidReps   = errors.New("reps must be a positive whole number")
)

// Raw is an untrusted record as it arrives from a form, a CSV row or an old
// JSON document. Keys are field names, values may be of any type.
type Raw map[string]any

// Text returns the trimmed string form of v, or "" if v is nil.
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case fmt.Stringer:
		return strings.TrimSpace(x.String())
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

// Number coerces v to a finite, non-negative float. Anything that is not a
// number (including NaN, infinities and negative values) becomes 0.
// Strings may use a decimal comma ("102,5").
func Number(v any) float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case interface{ Float64() (float64, error) }:
		f, _ = x.Float64()
	case string:
		f = parseDecimal(x)
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// MaxCount is the largest count Count accepts. Larger values become 0.
const MaxCount = math.MaxInt32

// Count coerces v like Number and truncates it to a whole number. Values
// above MaxCount are treated as garbage and yield 0.
func Count(v any) int {
	f := math.Trunc(Number(v))
	if f > MaxCount {
		return 0
	}
	return int(f)
}

// parseDecimal converts "102.5" or "102,5" to a float, or 0 when unparseable.
func parseDecimal(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// Date returns v as an ISO calendar date, or today's date when v is missing
// or cannot be parsed.
func Date(v any, today time.Time) string {
	switch x := v.(type) {
	case time.Time:
		if !x.IsZero() {
			return x.Format(models.DateLayout)
		}
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range []string{models.DateLayout, time.RFC3339, "2006-01-02T15:04"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format(models.DateLayout)
			}
		}
	}
	return today.Format(models.DateLayout)
}

// Exercise builds a catalogue entry from raw input. The id is generated when
// missing, the name falls back to "lift", and the muscle to Other.
func Exercise(raw Raw) models.Exercise {
	id := Text(raw["id"])
	if id == "" {
		id = models.NewID()
	}
	name := Text(raw["name"])
	if name == "" {
		name = Text(raw["lift"])
	}
	muscle, _ := models.ParseMuscle(Text(raw["muscle"]))
	return models.Exercise{ID: id, Name: name, Muscle: muscle}
}

// Entry builds a legacy quick-log record from raw input.
func Entry(raw Raw, today time.Time) models.Entry {
	id := Text(raw["id"])
	if id == "" {
		id = models.NewID()
	}
	lift := Text(raw["lift"])
	if lift == "" {
		lift = Text(raw["name"])
	}
	return models.Entry{
		ID:     id,
		Date:   Date(raw["date"], today),
		Lift:   lift,
		Weight: Number(raw["weight"]),
		Reps:   Count(raw["reps"]),
		Sets:   Count(raw["sets"]),
		Notes:  Text(raw["notes"]),
	}
}

// Set coerces raw weight and reps into a set without validating it.
func Set(raw Raw) models.Set {
	return models.Set{
		Weight: Number(raw["weight"]),
		Reps:   Count(raw["reps"]),
	}
}

// ParseSet validates user-entered weight and reps. Unlike Set it rejects
// input instead of coercing it, so nothing invalid reaches the store.
func ParseSet(weight, reps string) (models.Set, error) {
	w, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(weight), ",", "."), 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return models.Set{}, fmt.Errorf("%w: %q", ErrInvalidWeight, weight)
	}
	r, err := strconv.Atoi(strings.TrimSpace(reps))
	if err != nil || r <= 0 {
		return models.Set{}, fmt.Errorf("%w: %q", ErrInvalidReps, reps)
	}
	return models.Set{Weight: w, Reps: r}, nil
}
