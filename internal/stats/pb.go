package stats

import "github.com/meltforce/liftlog/internal/models"

// HistoricalMax returns the heaviest weight logged for exerciseID in any
// session other than excludeSessionID. Zero when there is none.
func HistoricalMax(data *models.Data, exerciseID, excludeSessionID string) float64 {
	var best float64
	for _, sess := range data.Sessions {
		if sess.ID == excludeSessionID {
			continue
		}
		if m := sessionMax(sess, exerciseID); m > best {
			best = m
		}
	}
	return best
}

// IsPersonalBest reports whether candidate would be a new personal best if
// logged now for exerciseID in sessionID: it must be strictly heavier than
// every other session and every set already in this one.
func IsPersonalBest(data *models.Data, exerciseID, sessionID string, candidate float64) bool {
	threshold := HistoricalMax(data, exerciseID, sessionID)
	for _, sess := range data.Sessions {
		if sess.ID != sessionID {
			continue
		}
		if m := sessionMax(sess, exerciseID); m > threshold {
			threshold = m
		}
	}
	return candidate > threshold
}

// PersonalBestFlags replays the session's sets for exerciseID in logged
// order and flags each one that beat the running maximum, seeded with the
// historical best from the other sessions.
func PersonalBestFlags(data *models.Data, sess *models.Session, exerciseID string) []bool {
	threshold := HistoricalMax(data, exerciseID, sess.ID)
	var flags []bool
	for _, item := range sess.Items {
		if item.ExerciseID != exerciseID {
			continue
		}
		for _, set := range item.Sets {
			pb := set.Weight > threshold
			if pb {
				threshold = set.Weight
			}
			flags = append(flags, pb)
		}
	}
	if flags == nil {
		flags = []bool{}
	}
	return flags
}

func sessionMax(sess *models.Session, exerciseID string) float64 {
	var best float64
	for _, item := range sess.Items {
		if item.ExerciseID != exerciseID {
			continue
		}
		for _, set := range item.Sets {
			if set.Weight > best {
				best = set.Weight
			}
		}
	}
	return best
}

// PersonalBestCheck answers whether a weight would beat every set ever
// logged for an exercise.
type PersonalBestCheck struct {
	ExerciseID    string  `json:"exercise_id"`
	Name          string  `json:"name"`
	HistoricalMax float64 `json:"historical_max"`
	Candidate     float64 `json:"candidate"`
	PersonalBest  bool    `json:"personal_best"`
}

// CheckPersonalBest compares candidate against every session.
func CheckPersonalBest(data *models.Data, exerciseID string, candidate float64) PersonalBestCheck {
	name := models.DeletedExerciseName
	for _, ex := range data.Exercises {
		if ex.ID == exerciseID {
			name = ex.Name
			break
		}
	}
	best := HistoricalMax(data, exerciseID, "")
	return PersonalBestCheck{
		ExerciseID:    exerciseID,
		Name:          name,
		HistoricalMax: best,
		Candidate:     candidate,
		PersonalBest:  candidate > best,
	}
}
