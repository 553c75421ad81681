package store

import (
	"errors"
	"strings"

	"github.com/meltforce/liftlog/internal/models"
)

// ErrNameRequired is returned when an exercise would be created without a name.
var ErrNameRequired = errors.New("exercise name is required")

// FindExercise returns the exercise with id, or nil.
func (s *Store) FindExercise(id string) *models.Exercise {
	for _, ex := range s.data.Exercises {
		if ex.ID == id {
			return ex
		}
	}
	return nil
}

// FindExerciseByName returns the first exercise whose name matches
// case-insensitively, or nil.
func (s *Store) FindExerciseByName(name string) *models.Exercise {
	name = strings.TrimSpace(name)
	for _, ex := range s.data.Exercises {
		if strings.EqualFold(ex.Name, name) {
			return ex
		}
	}
	return nil
}

// ResolveExercise returns the exercise with id, or the "(deleted)"
// placeholder when the reference dangles.
func (s *Store) ResolveExercise(id string) models.Exercise {
	if ex := s.FindExercise(id); ex != nil {
		return *ex
	}
	return models.DeletedExercise(id)
}

// AddExercise appends a new exercise to the catalogue. Duplicate names are
// allowed here; only seeding avoids them.
func (s *Store) AddExercise(name string, muscle models.Muscle) (*models.Exercise, error) {
	return s.InsertExercise(models.Exercise{Name: name, Muscle: muscle})
}

// InsertExercise appends ex, keeping its id unless it is empty or already
// taken, in which case a fresh one is generated.
func (s *Store) InsertExercise(ex models.Exercise) (*models.Exercise, error) {
	ex.Name = strings.TrimSpace(ex.Name)
	if ex.Name == "" {
		return nil, ErrNameRequired
	}
	ex.ID = strings.TrimSpace(ex.ID)
	if ex.ID == "" || s.FindExercise(ex.ID) != nil {
		ex.ID = models.NewID()
	}
	ex.Muscle, _ = models.ParseMuscle(string(ex.Muscle))
	s.data.Exercises = append(s.data.Exercises, &ex)
	return &ex, nil
}

// DeleteExercise removes the exercise from the catalogue. Sessions that
// reference it keep their items and sets. Reports whether it existed.
func (s *Store) DeleteExercise(id string) bool {
	for i, ex := range s.data.Exercises {
		if ex.ID == id {
			s.data.Exercises = append(s.data.Exercises[:i], s.data.Exercises[i+1:]...)
			return true
		}
	}
	return false
}

// ExercisesForSession returns the exercises offered for logging in sess:
// those tagged with one of its muscle filters, or all of them when it has
// none.
func (s *Store) ExercisesForSession(sess *models.Session) []*models.Exercise {
	if len(sess.Muscles) == 0 {
		out := make([]*models.Exercise, len(s.data.Exercises))
		copy(out, s.data.Exercises)
		return out
	}
	want := make(map[models.Muscle]bool, len(sess.Muscles))
	for _, m := range sess.Muscles {
		want[m] = true
	}
	out := []*models.Exercise{}
	for _, ex := range s.data.Exercises {
		if want[ex.Muscle] {
			out = append(out, ex)
		}
	}
	return out
}

// SeedCatalogue adds every entry whose name is not already in the catalogue
// (case-insensitive) and returns how many were added.
func (s *Store) SeedCatalogue(entries []models.CatalogueEntry) int {
	added := 0
	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" || s.FindExerciseByName(e.Name) != nil {
			continue
		}
		if _, err := s.AddExercise(e.Name, e.Muscle); err == nil {
			added++
		}
	}
	return added
}
