package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/routinegen"
	"github.com/meltforce/liftplan/internal/storage"
)

// defaultTimeRange returns start/end defaulting to the last 7 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -7)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

func profileTool(name, description string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithString("goal", mcp.Description("Training goal: strength, fat-loss or hypertrophy (Korean labels 근력 향상, 체중 감량, 근육량 증가 also accepted). Defaults to strength.")),
		mcp.WithString("experience", mcp.Description("Experience level: beginner, intermediate or advanced (초보자, 중급자, 고급자). Defaults to beginner.")),
		mcp.WithString("equipment", mcp.Description("Comma-separated equipment the user has, e.g. 'dumbbell,barbell,machine'. Exercises needing anything else are removed.")),
		mcp.WithNumber("frequency", mcp.Description("Sessions per week, 1-7. Defaults to 3.")),
	)
}

var toolGenerateRoutine = profileTool("generate_routine",
	"Generate a workout routine for a goal, experience level and equipment list. Deterministic: the same profile always yields the same routine. An empty item list means no template exercise fits the equipment.")

var toolSaveGeneratedRoutine = profileTool("save_generated_routine",
	"Generate a routine exactly like generate_routine and save it to the user's routines.")

var toolListRoutines = mcp.NewTool("list_routines",
	mcp.WithDescription("List the user's saved routines, newest first, with their exercises."),
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query logged workouts with their sets or cardio data."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

// profileFromRequest reads the shared profile arguments.
func profileFromRequest(req mcp.CallToolRequest) routinegen.UserProfile {
	up := routinegen.UserProfile{
		Goal:       req.GetString("goal", ""),
		Experience: req.GetString("experience", ""),
		Equipment:  []string{},
		Frequency:  req.GetInt("frequency", 0),
	}
	for _, e := range strings.Split(req.GetString("equipment", ""), ",") {
		if e = strings.TrimSpace(e); e != "" {
			up.Equipment = append(up.Equipment, e)
		}
	}
	return up
}

// logGeneration records a generation request. Failures only warn.
func (h *handlers) logGeneration(ctx context.Context, userID int, routine routinegen.GeneratedRoutine, saved *models.RoutineRow) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if _, err := h.ds.InsertGenerationLog(ctx, storage.NewGenerationLog(userID, routine, saved)); err != nil {
		h.log.Warn("mcp generation log failed", "error", err)
	}
}

// --- Tool handlers ---

func (h *handlers) generateRoutine(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	routine := routinegen.Generate(profileFromRequest(req))
	h.logGeneration(ctx, UserIDFromContext(ctx), routine, nil)

	result, err := mcp.NewToolResultJSON(routine)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) saveGeneratedRoutine(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	routine := routinegen.Generate(profileFromRequest(req))
	row := models.NewGeneratedRoutine(UserIDFromContext(ctx), routine)

	if err := h.ds.InsertRoutine(ctx, &row); err != nil {
		h.log.Error("mcp save_generated_routine", "error", err)
		return mcp.NewToolResultError("save failed: " + err.Error()), nil
	}
	h.logGeneration(ctx, row.UserID, routine, &row)

	result, err := mcp.NewToolResultJSON(row)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listRoutines(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	routines, err := h.ds.ListRoutines(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp list_routines", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(routines)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	workouts, err := h.ds.QueryWorkouts(ctx, uid, start, end)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
