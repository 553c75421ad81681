package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/normalize"
	"github.com/meltforce/liftlog/internal/stats"
	"github.com/meltforce/liftlog/internal/store"
)

// SessionSummary is one row of the session list.
type SessionSummary struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`
	Notes     string          `json:"notes"`
	Done      bool            `json:"done"`
	Muscles   []models.Muscle `json:"muscles"`
	Exercises int             `json:"exercises"`
	Sets      int             `json:"sets"`
	Volume    float64         `json:"volume"`
}

// SessionDetail is a session with its exercises resolved.
type SessionDetail struct {
	SessionSummary
	Items           []ItemDetail       `json:"items"`
	ExerciseChoices []*models.Exercise `json:"exercise_choices"`
}

// ItemDetail holds one exercise's sets within a session, with the
// personal-best flag of each set.
type ItemDetail struct {
	Exercise      models.Exercise `json:"exercise"`
	Sets          []models.Set    `json:"sets"`
	PersonalBests []bool          `json:"personal_bests"`
	Volume        float64         `json:"volume"`
}

type sessionRequest struct {
	Date    *string   `json:"date"`
	Notes   *string   `json:"notes"`
	Muscles *[]string `json:"muscles"`
}

func summarize(sess *models.Session) SessionSummary {
	sum := SessionSummary{
		ID:        sess.ID,
		Date:      sess.Date,
		Notes:     sess.Notes,
		Done:      sess.Done,
		Muscles:   sess.Muscles,
		Exercises: len(sess.Items),
		Volume:    stats.SessionVolume(sess),
	}
	for _, item := range sess.Items {
		sum.Sets += len(item.Sets)
	}
	return sum
}

func (s *Server) detail(sess *models.Session) SessionDetail {
	d := SessionDetail{
		SessionSummary:  summarize(sess),
		Items:           make([]ItemDetail, 0, len(sess.Items)),
		ExerciseChoices: s.store.ExercisesForSession(sess),
	}
	data := s.store.Data()
	for _, item := range sess.Items {
		var volume float64
		for _, set := range item.Sets {
			volume += stats.Volume(set)
		}
		d.Items = append(d.Items, ItemDetail{
			Exercise:      s.store.ResolveExercise(item.ExerciseID),
			Sets:          item.Sets,
			PersonalBests: stats.PersonalBestFlags(data, sess, item.ExerciseID),
			Volume:        volume,
		})
	}
	return d
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := s.store.SessionsByDate()
	out := make([]SessionSummary, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, summarize(sess))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.detail(sess))
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	var date string
	if req.Date != nil {
		date = *req.Date
	}
	sess := s.store.NewSession(date)
	if req.Notes != nil {
		sess.Notes = *req.Notes
	}
	if req.Muscles != nil {
		s.store.SetMuscleFilter(sess, *req.Muscles)
	}
	if !s.persist(w, r) {
		return
	}
	writeJSON(w, http.StatusCreated, s.detail(sess))
}

// handleUpdateSession applies date, notes and muscle filter edits together
// and saves once.
func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionParam(w, r)
	if !ok {
		return
	}
	var req sessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Date != nil {
		sess.Date = normalize.Date(*req.Date, s.store.Today())
	}
	if req.Notes != nil {
		sess.Notes = *req.Notes
	}
	if req.Muscles != nil {
		s.store.SetMuscleFilter(sess, *req.Muscles)
	}
	if !s.persist(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, s.detail(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteSession(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if !s.persist(w, r) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFinishSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionParam(w, r)
	if !ok {
		return
	}
	s.store.FinishSession(sess)
	if !s.persist(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, s.detail(sess))
}

// handleAddSet validates and logs one set. The response says whether the set
// was a personal best at the moment it was logged.
func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionParam(w, r)
	if !ok {
		return
	}
	var raw normalize.Raw
	if !decodeJSON(w, r, &raw) {
		return
	}

	exerciseID := normalize.Text(raw["exerciseId"])
	if exerciseID == "" {
		writeError(w, http.StatusBadRequest, "no exercise selected")
		return
	}
	if s.store.FindExercise(exerciseID) == nil {
		writeError(w, http.StatusBadRequest, "unknown exercise")
		return
	}
	set, err := normalize.ParseSet(normalize.Text(raw["weight"]), normalize.Text(raw["reps"]))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pb := stats.IsPersonalBest(s.store.Data(), exerciseID, sess.ID, set.Weight)
	item, err := s.store.AddSet(sess, exerciseID, set)
	if errors.Is(err, store.ErrInvalidSet) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !s.persist(w, r) {
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"exercise_id":   item.ExerciseID,
		"index":         len(item.Sets) - 1,
		"set":           set,
		"personal_best": pb,
	})
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionParam(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid set index")
		return
	}
	if err := s.store.DeleteSet(sess, chi.URLParam(r, "exerciseID"), index); err != nil {
		if errors.Is(err, store.ErrSetNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !s.persist(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, s.detail(sess))
}
