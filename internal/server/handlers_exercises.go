package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/store"
)

type exerciseRequest struct {
	Name   *string `json:"name"`
	Muscle *string `json:"muscle"`
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	muscle := r.URL.Query().Get("muscle")
	out := make([]*models.Exercise, 0, len(s.store.Data().Exercises))
	for _, ex := range s.store.Data().Exercises {
		if muscle != "" && !strings.EqualFold(string(ex.Muscle), muscle) {
			continue
		}
		out = append(out, ex)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var req exerciseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var name, muscle string
	if req.Name != nil {
		name = *req.Name
	}
	if req.Muscle != nil {
		muscle = *req.Muscle
	}

	ex, err := s.store.AddExercise(name, models.Muscle(muscle))
	if errors.Is(err, store.ErrNameRequired) {
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
	writeJSON(w, http.StatusCreated, ex)
}

// handleUpdateExercise renames or re-tags an exercise. A new muscle applies
// retroactively to every stat, since muscles are resolved at read time.
func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	ex := s.store.FindExercise(chi.URLParam(r, "id"))
	if ex == nil {
		writeError(w, http.StatusNotFound, "exercise not found")
		return
	}
	var req exerciseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			writeError(w, http.StatusBadRequest, store.ErrNameRequired.Error())
			return
		}
		ex.Name = name
	}
	if req.Muscle != nil {
		ex.Muscle, _ = models.ParseMuscle(*req.Muscle)
	}
	if !s.persist(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteExercise(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "exercise not found")
		return
	}
	if !s.persist(w, r) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSeedExercises(w http.ResponseWriter, r *http.Request) {
	added := s.store.SeedCatalogue(models.DefaultCatalogue)
	if added > 0 && !s.persist(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"added": added})
}
