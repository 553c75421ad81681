package stats

import "github.com/meltforce/liftlog/internal/models"

// Summary holds the headline numbers shown above the log.
type Summary struct {
	TotalVolume      float64 `json:"total_volume"`
	Sessions         int     `json:"sessions"`
	FinishedSessions int     `json:"finished_sessions"`
	TotalSets        int     `json:"total_sets"`
	BestSet          float64 `json:"best_set"`
	BestOneRepMax    float64 `json:"best_one_rep_max"`
}

// Summarize computes the headline numbers. BestSet is the largest single-set
// volume and BestOneRepMax the largest Epley estimate over all resolvable
// sets.
func Summarize(data *models.Data) Summary {
	known := catalogue(data)
	var s Summary
	for _, sess := range data.Sessions {
		s.Sessions++
		if sess.Done {
			s.FinishedSessions++
		}
		for _, item := range sess.Items {
			if known[item.ExerciseID] == nil {
				continue
			}
			for _, set := range item.Sets {
				v := Volume(set)
				s.TotalVolume += v
				s.TotalSets++
				if v > s.BestSet {
					s.BestSet = v
				}
				if orm, ok := EstimatedOneRepMax(set.Weight, set.Reps); ok && orm > s.BestOneRepMax {
					s.BestOneRepMax = orm
				}
			}
		}
	}
	return s
}
