// Package stats derives summaries from the workout aggregate. Every function
// is a pure read over a snapshot and rescans the full session list; nothing
// is cached between calls.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/meltforce/liftlog/internal/models"
)

// Volume returns weight x reps for one set.
func Volume(set models.Set) float64 {
	return set.Weight * float64(set.Reps)
}

// SessionVolume sums the volume of every set in the session.
func SessionVolume(sess *models.Session) float64 {
	var total float64
	for _, item := range sess.Items {
		for _, set := range item.Sets {
			total += Volume(set)
		}
	}
	return total
}

// EstimatedOneRepMax returns the Epley estimate w * (1 + reps/30).
// It reports false when weight or reps is zero.
func EstimatedOneRepMax(weight float64, reps int) (float64, bool) {
	if weight <= 0 || reps <= 0 {
		return 0, false
	}
	return weight * (1 + float64(reps)/30), true
}

// WeekVolume is the total volume logged in one ISO week.
type WeekVolume struct {
	Week        string  `json:"week"`
	TotalVolume float64 `json:"total_volume"`
}

// DayVolume is the total volume logged on one calendar day.
type DayVolume struct {
	Date        string  `json:"date"`
	TotalVolume float64 `json:"total_volume"`
}

// ISOWeek returns the ISO 8601 week key ("2024-W01") of a calendar date.
func ISOWeek(date string) (string, bool) {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return "", false
	}
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week), true
}

// WeeklyVolume buckets every resolvable set into its ISO week, ascending by
// week key. Sessions with an unparseable date are left out.
func WeeklyVolume(data *models.Data) []WeekVolume {
	buckets := make(map[string]float64)
	known := catalogue(data)
	for _, sess := range data.Sessions {
		week, ok := ISOWeek(sess.Date)
		if !ok {
			continue
		}
		buckets[week] += resolvedVolume(sess, known)
	}

	out := make([]WeekVolume, 0, len(buckets))
	for week, total := range buckets {
		out = append(out, WeekVolume{Week: week, TotalVolume: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out
}

// CompareRecentWeeks returns the volume of the last four weeks in series
// minus the four before them. ok is false until eight weeks exist.
func CompareRecentWeeks(series []WeekVolume) (delta float64, ok bool) {
	n := len(series)
	if n < 8 {
		return 0, false
	}
	var recent, prior float64
	for _, w := range series[n-4:] {
		recent += w.TotalVolume
	}
	for _, w := range series[n-8 : n-4] {
		prior += w.TotalVolume
	}
	return recent - prior, true
}

// WeeklyReport is the weekly series with the recent-vs-prior comparison.
// RecentDelta is nil until eight weeks exist.
type WeeklyReport struct {
	Weeks       []WeekVolume `json:"weeks"`
	RecentDelta *float64     `json:"recent_delta"`
}

// Weekly builds the WeeklyReport for data.
func Weekly(data *models.Data) WeeklyReport {
	report := WeeklyReport{Weeks: WeeklyVolume(data)}
	if delta, ok := CompareRecentWeeks(report.Weeks); ok {
		report.RecentDelta = &delta
	}
	return report
}

// DailyVolume totals resolvable volume per session date, ascending.
func DailyVolume(data *models.Data) []DayVolume {
	days := make(map[string]float64)
	known := catalogue(data)
	for _, sess := range data.Sessions {
		days[sess.Date] += resolvedVolume(sess, known)
	}

	out := make([]DayVolume, 0, len(days))
	for date, total := range days {
		out = append(out, DayVolume{Date: date, TotalVolume: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// catalogue indexes the exercises by id.
func catalogue(data *models.Data) map[string]*models.Exercise {
	m := make(map[string]*models.Exercise, len(data.Exercises))
	for _, ex := range data.Exercises {
		m[ex.ID] = ex
	}
	return m
}

// resolvedVolume is SessionVolume without items whose exercise no longer
// exists.
func resolvedVolume(sess *models.Session, known map[string]*models.Exercise) float64 {
	var total float64
	for _, item := range sess.Items {
		if known[item.ExerciseID] == nil {
			continue
		}
		for _, set := range item.Sets {
			total += Volume(set)
		}
	}
	return total
}
