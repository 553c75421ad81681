package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftLog strength training log. Query the exercise catalogue, per-exercise and per-muscle totals, weekly volume, and check whether a weight would be a personal best."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetExerciseStats, Handler: h.getExerciseStats},
		server.ServerTool{Tool: toolGetMuscleStats, Handler: h.getMuscleStats},
		server.ServerTool{Tool: toolGetWeeklyVolume, Handler: h.getWeeklyVolume},
		server.ServerTool{Tool: toolGetSummary, Handler: h.getSummary},
		server.ServerTool{Tool: toolCheckPersonalBest, Handler: h.checkPersonalBest},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCatalogue, Handler: h.catalogue},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resCatalogue = mcp.NewResource(
	"liftlog://catalogue",
	"Exercise Catalogue",
	mcp.WithResourceDescription("All exercises with their primary muscle group"),
	mcp.WithMIMEType("application/json"),
)
