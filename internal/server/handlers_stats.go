package server

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/liftlog/internal/csvio"
	"github.com/meltforce/liftlog/internal/stats"
	"github.com/meltforce/liftlog/internal/upload"
)

// maxImportSize bounds an uploaded CSV file.
const maxImportSize = 10 << 20

func (s *Server) handleExerciseStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.ByExercise(s.store.Data()))
}

// handleMuscleStats returns all-time muscle totals, or totals over the last
// ?days calendar days including tonnage.
func (s *Server) handleMuscleStats(w http.ResponseWriter, r *http.Request) {
	days, ok, err := queryInt(r, "days")
	if err != nil {
		writeError(w, http.StatusBadRequest, "days must be a whole number")
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, stats.ByMuscle(s.store.Data()))
		return
	}
	writeJSON(w, http.StatusOK, stats.ByMuscleInWindow(s.store.Data(), days, s.store.Today()))
}

func (s *Server) handleWeeklyVolume(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.Weekly(s.store.Data()))
}

// handleCheckPersonalBest answers whether ?weight would beat every logged
// set of ?exercise, given as an id or a name.
func (s *Server) handleCheckPersonalBest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ex := s.store.FindExercise(q.Get("exercise"))
	if ex == nil {
		ex = s.store.FindExerciseByName(q.Get("exercise"))
	}
	if ex == nil {
		writeError(w, http.StatusNotFound, "exercise not found")
		return
	}
	weight, err := strconv.ParseFloat(q.Get("weight"), 64)
	if err != nil || math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		writeError(w, http.StatusBadRequest, "weight must be a non-negative number")
		return
	}
	writeJSON(w, http.StatusOK, stats.CheckPersonalBest(s.store.Data(), ex.ID, weight))
}

func (s *Server) handleDailyVolume(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.DailyVolume(s.store.Data()))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.Summarize(s.store.Data()))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	kind, err := csvio.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+kind.Filename()+`"`)
	if err := csvio.Export(w, kind, s.store.Data()); err != nil {
		s.log.Error("export failed", "kind", kind, "error", err)
	}
}

// handleImport accepts a CSV file either as the raw body or as the "file"
// field of a multipart form.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var body io.Reader = http.MaxBytesReader(w, r.Body, maxImportSize)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImportSize); err != nil {
			writeError(w, http.StatusBadRequest, "invalid upload: "+err.Error())
			return
		}
		f, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing file field")
			return
		}
		defer f.Close()
		body = f
	}

	var (
		result *csvio.Result
		err    error
	)
	switch kind := chi.URLParam(r, "kind"); csvio.Kind(kind) {
	case csvio.KindExercises:
		result, err = csvio.ImportExercises(s.store, body)
	case csvio.KindSessions:
		result, err = csvio.ImportSessions(s.store, body)
	default:
		writeError(w, http.StatusNotFound, "cannot import "+kind)
		return
	}
	if errors.Is(err, csvio.ErrMissingHeaders) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.log.Error("import failed", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.log.Info("import complete",
		"rows", result.RowsReceived,
		"skipped", result.RowsSkipped,
		"sessions", result.SessionsInserted,
		"sets", result.SetsInserted,
		"user", userInfoFromContext(r).Login,
	)
	if !s.persist(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Reset(r.Context()); err != nil {
		s.log.Warn("reset not saved", "error", err)
		writeError(w, http.StatusServiceUnavailable, "store cleared but not saved: "+err.Error())
		return
	}
	if s.imports != nil {
		if err := s.imports.ForgetImports(r.Context(), upload.LocalTarget); err != nil {
			s.log.Warn("import ledger not cleared", "error", err)
		}
	}
	s.log.Info("store reset", "user", userInfoFromContext(r).Login)
	w.WriteHeader(http.StatusNoContent)
}
