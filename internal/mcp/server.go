package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftPlan", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftPlan workout routine server. Generate routines from a goal, experience level and available equipment, save them, read logged workouts, and review strength trends, training volume and coaching recommendations. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGenerateRoutine, Handler: h.generateRoutine},
		server.ServerTool{Tool: toolSaveGeneratedRoutine, Handler: h.saveGeneratedRoutine},
		server.ServerTool{Tool: toolListRoutines, Handler: h.listRoutines},
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolGetPRTrend, Handler: h.getPRTrend},
		server.ServerTool{Tool: toolGetTrainingVolume, Handler: h.getTrainingVolume},
		server.ServerTool{Tool: toolGetCoachRecommendations, Handler: h.getCoachRecommendations},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resTemplates, Handler: h.templates},
		server.ServerResource{Resource: resCatalog, Handler: h.catalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resTemplates = mcp.NewResource(
	"liftplan://templates",
	"Routine Templates",
	mcp.WithResourceDescription("Every goal × experience template with its prescriptions, before equipment filtering"),
	mcp.WithMIMEType("application/json"),
)

var resCatalog = mcp.NewResource(
	"liftplan://catalog",
	"Profile Catalog",
	mcp.WithResourceDescription("Accepted goals, experience levels and equipment tags with their Korean labels, plus frequency bounds"),
	mcp.WithMIMEType("application/json"),
)
