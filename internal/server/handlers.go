package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/liftlog/internal/models"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

// persist saves the store after a mutation. A failed write keeps the change
// in memory and is reported to the caller as 503.
func (s *Server) persist(w http.ResponseWriter, r *http.Request) bool {
	if err := s.store.Save(r.Context()); err != nil {
		s.log.Warn("change applied but not saved", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusServiceUnavailable, "change applied but not saved: "+err.Error())
		return false
	}
	return true
}

// sessionParam looks up the {id} session, writing 404 when it does not exist.
func (s *Server) sessionParam(w http.ResponseWriter, r *http.Request) (*models.Session, bool) {
	sess := s.store.FindSession(chi.URLParam(r, "id"))
	if sess == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return sess, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (int, bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}
