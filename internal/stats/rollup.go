package stats

import (
	"time"

	"github.com/meltforce/liftlog/internal/models"
)

// ExerciseStats holds all-time totals for one exercise.
type ExerciseStats struct {
	ExerciseID string        `json:"exercise_id"`
	Name       string        `json:"name"`
	Muscle     models.Muscle `json:"muscle"`
	TotalSets  int           `json:"total_sets"`
	TotalReps  int           `json:"total_reps"`
	MaxWeight  float64       `json:"max_weight"`
}

// MuscleStats holds all-time totals for one muscle group.
type MuscleStats struct {
	Muscle    models.Muscle `json:"muscle"`
	TotalSets int           `json:"total_sets"`
	TotalReps int           `json:"total_reps"`
}

// MuscleWindowStats holds totals for one muscle group over a date window.
type MuscleWindowStats struct {
	Muscle       models.Muscle `json:"muscle"`
	TotalSets    int           `json:"total_sets"`
	TotalReps    int           `json:"total_reps"`
	TotalTonnage float64       `json:"total_tonnage"`
}

// ByExercise returns one row per catalogue exercise with at least one logged
// set, in catalogue order. Sets of deleted exercises are not counted.
func ByExercise(data *models.Data) []ExerciseStats {
	totals := make(map[string]*ExerciseStats, len(data.Exercises))
	for _, ex := range data.Exercises {
		totals[ex.ID] = &ExerciseStats{ExerciseID: ex.ID, Name: ex.Name, Muscle: ex.Muscle}
	}

	for _, sess := range data.Sessions {
		for _, item := range sess.Items {
			row := totals[item.ExerciseID]
			if row == nil {
				continue
			}
			for _, set := range item.Sets {
				row.TotalSets++
				row.TotalReps += set.Reps
				if set.Weight > row.MaxWeight {
					row.MaxWeight = set.Weight
				}
			}
		}
	}

	out := make([]ExerciseStats, 0, len(data.Exercises))
	for _, ex := range data.Exercises {
		// One row per id, even if the catalogue repeats one.
		row := totals[ex.ID]
		if row == nil || row.TotalSets == 0 {
			continue
		}
		out = append(out, *row)
		delete(totals, ex.ID)
	}
	return out
}

// ByMuscle rolls all sets up by the muscle their exercise has now, ordered
// by muscle group.
func ByMuscle(data *models.Data) []MuscleStats {
	rows := rollupMuscles(data, func(*models.Session) bool { return true })
	out := make([]MuscleStats, 0, len(rows))
	for _, r := range rows {
		out = append(out, MuscleStats{Muscle: r.Muscle, TotalSets: r.TotalSets, TotalReps: r.TotalReps})
	}
	return out
}

// ByMuscleInWindow is ByMuscle restricted to sessions dated within the last
// days calendar days, today included. days < 1 yields no rows.
func ByMuscleInWindow(data *models.Data, days int, today time.Time) []MuscleWindowStats {
	if days < 1 {
		return []MuscleWindowStats{}
	}
	from := today.AddDate(0, 0, -(days - 1)).Format(models.DateLayout)
	to := today.Format(models.DateLayout)
	return rollupMuscles(data, func(sess *models.Session) bool {
		return sess.Date >= from && sess.Date <= to
	})
}

func rollupMuscles(data *models.Data, include func(*models.Session) bool) []MuscleWindowStats {
	known := catalogue(data)
	totals := make(map[models.Muscle]*MuscleWindowStats)
	for _, sess := range data.Sessions {
		if !include(sess) {
			continue
		}
		for _, item := range sess.Items {
			ex := known[item.ExerciseID]
			if ex == nil || len(item.Sets) == 0 {
				continue
			}
			row := totals[ex.Muscle]
			if row == nil {
				row = &MuscleWindowStats{Muscle: ex.Muscle}
				totals[ex.Muscle] = row
			}
			for _, set := range item.Sets {
				row.TotalSets++
				row.TotalReps += set.Reps
				row.TotalTonnage += Volume(set)
			}
		}
	}

	out := make([]MuscleWindowStats, 0, len(totals))
	for _, m := range models.Muscles {
		if row := totals[m]; row != nil {
			out = append(out, *row)
		}
	}
	return out
}
