package store

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/normalize"
)

var (
	ErrInvalidSet  = errors.New("invalid set")
	ErrSetNotFound = errors.New("set not found")
)

// FindSession returns the session with id, or nil.
func (s *Store) FindSession(id string) *models.Session {
	for _, sess := range s.data.Sessions {
		if sess.ID == id {
			return sess
		}
	}
	return nil
}

// SessionsByDate returns the sessions newest first. Sessions sharing a date
// keep their insertion order.
func (s *Store) SessionsByDate() []*models.Session {
	out := make([]*models.Session, len(s.data.Sessions))
	copy(out, s.data.Sessions)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// NewSession appends an open session. An empty or invalid date means today.
func (s *Store) NewSession(date string) *models.Session {
	sess := &models.Session{
		ID:      models.NewID(),
		Date:    normalize.Date(date, s.now()),
		Items:   []*models.SessionItem{},
		Muscles: []models.Muscle{},
	}
	s.data.Sessions = append(s.data.Sessions, sess)
	return sess
}

// DeleteSession removes the session. Reports whether it existed.
func (s *Store) DeleteSession(id string) bool {
	for i, sess := range s.data.Sessions {
		if sess.ID == id {
			s.data.Sessions = append(s.data.Sessions[:i], s.data.Sessions[i+1:]...)
			return true
		}
	}
	return false
}

// FinishSession marks the session done. There is no way back to open; the
// session stays editable.
func (s *Store) FinishSession(sess *models.Session) {
	sess.Done = true
}

// SetMuscleFilter replaces the session's muscle filter tags. Unknown names
// and duplicates are dropped.
func (s *Store) SetMuscleFilter(sess *models.Session, tags []string) {
	muscles := make([]models.Muscle, len(tags))
	for i, t := range tags {
		muscles[i] = models.Muscle(t)
	}
	sess.Muscles = muscleTags(muscles)
}

// UpsertSessionItem returns the session's item for exerciseID, appending an
// empty one first if the exercise has not been logged in this session yet.
func (s *Store) UpsertSessionItem(sess *models.Session, exerciseID string) *models.SessionItem {
	return upsertItem(sess, exerciseID)
}

func upsertItem(sess *models.Session, exerciseID string) *models.SessionItem {
	for _, item := range sess.Items {
		if item.ExerciseID == exerciseID {
			return item
		}
	}
	item := &models.SessionItem{ExerciseID: exerciseID, Sets: []models.Set{}}
	sess.Items = append(sess.Items, item)
	return item
}

// AddSet appends set to the session's item for exerciseID. Invalid sets are
// rejected before anything is touched.
func (s *Store) AddSet(sess *models.Session, exerciseID string, set models.Set) (*models.SessionItem, error) {
	if exerciseID == "" {
		return nil, fmt.Errorf("%w: no exercise selected", ErrInvalidSet)
	}
	if math.IsNaN(set.Weight) || math.IsInf(set.Weight, 0) || set.Weight < 0 {
		return nil, fmt.Errorf("%w: weight %v", ErrInvalidSet, set.Weight)
	}
	if set.Reps <= 0 {
		return nil, fmt.Errorf("%w: reps %d", ErrInvalidSet, set.Reps)
	}
	item := s.UpsertSessionItem(sess, exerciseID)
	item.Sets = append(item.Sets, set)
	return item, nil
}

// DeleteSet removes the set at index from the session's item for exerciseID.
// Later sets shift down by one.
func (s *Store) DeleteSet(sess *models.Session, exerciseID string, index int) error {
	for _, item := range sess.Items {
		if item.ExerciseID != exerciseID {
			continue
		}
		if index < 0 || index >= len(item.Sets) {
			return fmt.Errorf("%w: index %d of %d", ErrSetNotFound, index, len(item.Sets))
		}
		item.Sets = append(item.Sets[:index], item.Sets[index+1:]...)
		return nil
	}
	return fmt.Errorf("%w: exercise %s not in session", ErrSetNotFound, exerciseID)
}

// muscleTags canonicalizes filter tags, dropping unknown and repeated ones.
// The result is never nil.
func muscleTags(in []models.Muscle) []models.Muscle {
	out := make([]models.Muscle, 0, len(in))
	seen := make(map[models.Muscle]bool)
	for _, raw := range in {
		m, ok := models.ParseMuscle(string(raw))
		if !ok || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}
