package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/liftplan/internal/coach"
	"github.com/meltforce/liftplan/internal/storage"
)

// Volume groupings accepted by get_training_volume.
const (
	groupWeek     = "week"
	groupMonth    = "month"
	groupCategory = "category"
)

// openDateRange parses optional bounds. An empty string leaves that side
// open (zero time).
func openDateRange(startStr, endStr string) (start, end time.Time, err error) {
	if startStr != "" {
		if start, err = parseFlexTime(startStr); err != nil {
			return
		}
	}
	if endStr != "" {
		end, err = parseFlexTime(endStr)
	}
	return
}

var toolGetPRTrend = mcp.NewTool("get_pr_trend",
	mcp.WithDescription("Best estimated one-rep max (Epley: weight × (1 + reps/30)) per day for one exercise, oldest first."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name exactly as logged, e.g. '벤치프레스'.")),
	mcp.WithString("start", mcp.Description("First day (YYYY-MM-DD or ISO 8601). Omit for no lower bound.")),
	mcp.WithString("end", mcp.Description("Last day, inclusive. Omit for no upper bound.")),
)

var toolGetTrainingVolume = mcp.NewTool("get_training_volume",
	mcp.WithDescription("Training volume (sum of weight × reps over strength sets) grouped by week, month or muscle category."),
	mcp.WithString("group_by", mcp.Enum(groupWeek, groupMonth, groupCategory), mcp.Description("Grouping: week (default), month or category.")),
	mcp.WithString("start", mcp.Description("First day for category grouping. Omit for no lower bound.")),
	mcp.WithString("end", mcp.Description("Last day for category grouping, inclusive. Omit for no upper bound.")),
)

var toolGetCoachRecommendations = mcp.NewTool("get_coach_recommendations",
	mcp.WithDescription("Rule-based coaching over the window ending on the latest logged workout: weekly volume and frequency, 1RM changes, and prioritised recommendations."),
	mcp.WithNumber("days", mcp.Description("Window length in days, 7-180. Defaults to 30.")),
)

func (h *handlers) getPRTrend(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise := strings.TrimSpace(req.GetString("exercise", ""))
	if exercise == "" {
		return mcp.NewToolResultError("exercise is required"), nil
	}
	start, end, err := openDateRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	points, err := h.ds.PRTrend(ctx, UserIDFromContext(ctx), exercise, start, end)
	if err != nil {
		h.log.Error("mcp get_pr_trend", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(points)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingVolume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	var (
		data any
		err  error
	)
	switch group := req.GetString("group_by", groupWeek); group {
	case groupWeek:
		data, err = h.ds.VolumeByPeriod(ctx, uid, storage.BucketWeek)
	case groupMonth:
		data, err = h.ds.VolumeByPeriod(ctx, uid, storage.BucketMonth)
	case groupCategory:
		start, end, perr := openDateRange(req.GetString("start", ""), req.GetString("end", ""))
		if perr != nil {
			return mcp.NewToolResultError("invalid date format: " + perr.Error()), nil
		}
		data, err = h.ds.MuscleVolume(ctx, uid, start, end)
	default:
		return mcp.NewToolResultError("group_by must be week, month or category, got " + group), nil
	}
	if err != nil {
		h.log.Error("mcp get_training_volume", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getCoachRecommendations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := req.GetInt("days", coach.DefaultDays)
	if err := coach.ValidateDays(days); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := h.ds.CoachReport(ctx, UserIDFromContext(ctx), days)
	if err != nil {
		h.log.Error("mcp get_coach_recommendations", "error", err)
		return mcp.NewToolResultError("coach failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(report)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
