package models

// DateLayout is the calendar-day layout used for session dates.
const DateLayout = "2006-01-02"

// DeletedExerciseName is shown in place of an exercise that no longer exists
// in the catalogue but is still referenced by logged sessions.
const DeletedExerciseName = "(deleted)"

// Exercise is a catalogue entry that sets are logged against.
type Exercise struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Muscle Muscle `json:"muscle"`
}

// Set is one logged set. It has no identity beyond its position in the item.
type Set struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// SessionItem holds the sets logged for one exercise within a session.
// ExerciseID is a plain reference and may dangle after the exercise is deleted.
type SessionItem struct {
	ExerciseID string `json:"exerciseId"`
	Sets       []Set  `json:"sets"`
}

// Session is one training occasion.
type Session struct {
	ID      string         `json:"id"`
	Date    string         `json:"date"`
	Notes   string         `json:"notes"`
	Done    bool           `json:"done"`
	Items   []*SessionItem `json:"items"`
	Muscles []Muscle       `json:"muscles"`
}

// Data is the persisted aggregate. It is read and written as a whole.
type Data struct {
	Exercises []*Exercise `json:"exercises"`
	Sessions  []*Session  `json:"sessions"`
}

// NewData returns an empty aggregate with non-nil collections.
func NewData() *Data {
	return &Data{
		Exercises: []*Exercise{},
		Sessions:  []*Session{},
	}
}

// DeletedExercise returns the placeholder used when id no longer resolves.
func DeletedExercise(id string) Exercise {
	return Exercise{ID: id, Name: DeletedExerciseName, Muscle: MuscleOther}
}

// Entry is a record of the legacy quick-log model: one row per
// (lift, weight, reps, sets-count) tuple. It only exists to be migrated.
type Entry struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Lift   string  `json:"lift"`
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
	Sets   int     `json:"sets"`
	Notes  string  `json:"notes"`
}

// CatalogueEntry describes an exercise used to seed an empty catalogue.
type CatalogueEntry struct {
	Name   string
	Muscle Muscle
}

// DefaultCatalogue is offered to new users so logging can start immediately.
var DefaultCatalogue = []CatalogueEntry{
	{"Bench Press", MuscleChest},
	{"Incline Dumbbell Press", MuscleChest},
	{"Pull Up", MuscleBack},
	{"Barbell Row", MuscleBack},
	{"Deadlift", MuscleBack},
	{"Overhead Press", MuscleShoulders},
	{"Lateral Raise", MuscleShoulders},
	{"Barbell Curl", MuscleBiceps},
	{"Triceps Pushdown", MuscleTriceps},
	{"Back Squat", MuscleLegs},
	{"Romanian Deadlift", MuscleLegs},
	{"Hip Thrust", MuscleGlutes},
	{"Plank", MuscleCore},
	{"Standing Calf Raise", MuscleCalves},
}
