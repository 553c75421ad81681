package store

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/normalize"
)

// decodeLegacy parses the quick-log record list and normalizes every record.
func decodeLegacy(raw []byte, today time.Time) ([]models.Entry, error) {
	var records []normalize.Raw
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	entries := make([]models.Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, normalize.Entry(r, today))
	}
	return entries, nil
}

// maxLegacySets bounds how many sets a single quick-log record may expand
// into. Records claiming more are treated as corrupt.
const maxLegacySets = 1000

// MigrateLegacy converts quick-log records into the per-set model. Records
// are grouped into one finished session per date (oldest first), lifts become
// exercises matched case-insensitively, and a record of n sets becomes n
// identical sets so weight x reps x sets is preserved. Records without a lift
// name, reps or sets carry no volume and are dropped, as are records with
// more than maxLegacySets sets.
func MigrateLegacy(entries []models.Entry) *models.Data {
	data := models.NewData()
	exercises := make(map[string]*models.Exercise)
	sessions := make(map[string]*models.Session)
	notes := make(map[string][]string)

	for _, e := range entries {
		lift := strings.TrimSpace(e.Lift)
		if lift == "" || e.Reps <= 0 || e.Sets <= 0 || e.Sets > maxLegacySets {
			continue
		}

		key := strings.ToLower(lift)
		ex, ok := exercises[key]
		if !ok {
			ex = &models.Exercise{ID: models.NewID(), Name: lift, Muscle: models.MuscleOther}
			exercises[key] = ex
			data.Exercises = append(data.Exercises, ex)
		}

		sess, ok := sessions[e.Date]
		if !ok {
			sess = &models.Session{
				ID:      models.NewID(),
				Date:    e.Date,
				Done:    true,
				Items:   []*models.SessionItem{},
				Muscles: []models.Muscle{},
			}
			sessions[e.Date] = sess
			data.Sessions = append(data.Sessions, sess)
		}
		if e.Notes != "" {
			notes[e.Date] = append(notes[e.Date], e.Notes)
		}

		item := upsertItem(sess, ex.ID)
		for i := 0; i < e.Sets; i++ {
			item.Sets = append(item.Sets, models.Set{Weight: e.Weight, Reps: e.Reps})
		}
	}

	for _, sess := range data.Sessions {
		sess.Notes = strings.Join(notes[sess.Date], "; ")
	}
	sort.SliceStable(data.Sessions, func(i, j int) bool {
		return data.Sessions[i].Date < data.Sessions[j].Date
	})
	return data
}
