package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/liftlog/internal/store"
)

// Server holds dependencies for HTTP handlers.
//
// The store is not safe for concurrent use, so every API request runs under
// mu, one at a time.
type Server struct {
	mu      sync.Mutex
	store   *store.Store
	log     *slog.Logger
	apiKey  string
	whois   WhoIsClient
	imports ImportLedger
	router  chi.Router
}

// ImportLedger remembers which files were already imported. Resetting the
// store clears the local entries so the same files can be imported again.
type ImportLedger interface {
	ForgetImports(ctx context.Context, target string) error
}

// New creates a new Server with all routes configured. An empty apiKey
// leaves mutating routes open.
func New(st *store.Store, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:  st,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetTailscale makes requests carry the tailnet identity of the caller.
func (s *Server) SetTailscale(lc WhoIsClient) {
	s.whois = lc
}

// SetImportLedger attaches the ledger that reset clears.
func (s *Server) SetImportLedger(l ImportLedger) {
	s.imports = l
}

// Save persists the store once no request holds it. Call it after the HTTP
// server has shut down.
func (s *Server) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Save(ctx)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.identity)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.serialize)

		r.Get("/me", s.handleMe)
		r.Get("/exercises", s.handleListExercises)
		r.Get("/sessions", s.handleListSessions)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Get("/stats/exercises", s.handleExerciseStats)
		r.Get("/stats/muscles", s.handleMuscleStats)
		r.Get("/stats/weekly", s.handleWeeklyVolume)
		r.Get("/stats/daily", s.handleDailyVolume)
		r.Get("/stats/summary", s.handleSummary)
		r.Get("/stats/personal-best", s.handleCheckPersonalBest)
		r.Get("/export/{kind}", s.handleExport)

		// Mutating endpoints (API key required when configured)
		r.Group(func(r chi.Router) {
			if s.apiKey != "" {
				r.Use(APIKeyAuth(s.apiKey))
			}
			r.Post("/exercises", s.handleCreateExercise)
			r.Post("/exercises/seed", s.handleSeedExercises)
			r.Patch("/exercises/{id}", s.handleUpdateExercise)
			r.Delete("/exercises/{id}", s.handleDeleteExercise)

			r.Post("/sessions", s.handleCreateSession)
			r.Patch("/sessions/{id}", s.handleUpdateSession)
			r.Delete("/sessions/{id}", s.handleDeleteSession)
			r.Post("/sessions/{id}/finish", s.handleFinishSession)
			r.Post("/sessions/{id}/sets", s.handleAddSet)
			r.Delete("/sessions/{id}/sets/{exerciseID}/{index}", s.handleDeleteSet)

			r.Post("/import/{kind}", s.handleImport)
			r.Post("/reset", s.handleReset)
		})
	})
}
