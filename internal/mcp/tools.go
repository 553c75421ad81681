package mcp

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/stats"
)

// --- Tool definitions ---

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List the exercise catalogue with each exercise's id and primary muscle group."),
	mcp.WithString("muscle", mcp.Description("Only list exercises for this muscle group (e.g. Chest, Back, Legs). Unknown names match Other.")),
)

var toolGetExerciseStats = mcp.NewTool("get_exercise_stats",
	mcp.WithDescription("Per-exercise totals over all sessions: working sets, reps, and heaviest weight. Exercises without sets are omitted."),
	mcp.WithString("exercise", mcp.Description("Filter by exercise name (partial match, e.g. 'bench')")),
)

var toolGetMuscleStats = mcp.NewTool("get_muscle_stats",
	mcp.WithDescription("Sets and reps per muscle group. With days set, only sessions in the last N days (today included) are counted and tonnage is added."),
	mcp.WithNumber("days", mcp.Description("Window size in days, e.g. 7 or 30. Omit for all time.")),
)

var toolGetWeeklyVolume = mcp.NewTool("get_weekly_volume",
	mcp.WithDescription("Training volume (weight x reps) per ISO week, oldest first, plus the total of the last four weeks minus the four before them once eight weeks exist."),
)

var toolGetSummary = mcp.NewTool("get_summary",
	mcp.WithDescription("Headline numbers: total volume, session counts, total sets, best single-set volume and best estimated one-rep max."),
)

var toolCheckPersonalBest = mcp.NewTool("check_personal_best",
	mcp.WithDescription("Check whether lifting a weight on an exercise would beat the heaviest set ever logged for it."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise id or exact name (case-insensitive)")),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Candidate weight")),
)

// --- Tool handlers ---

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercises, err := h.ds.Exercises(ctx)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if filter := req.GetString("muscle", ""); filter != "" {
		muscle, _ := models.ParseMuscle(filter)
		kept := make([]models.Exercise, 0, len(exercises))
		for _, ex := range exercises {
			if ex.Muscle == muscle {
				kept = append(kept, ex)
			}
		}
		exercises = kept
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := h.ds.ExerciseStats(ctx)
	if err != nil {
		h.log.Error("mcp get_exercise_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if filter := strings.ToLower(strings.TrimSpace(req.GetString("exercise", ""))); filter != "" {
		kept := make([]stats.ExerciseStats, 0, len(rows))
		for _, row := range rows {
			if strings.Contains(strings.ToLower(row.Name), filter) {
				kept = append(kept, row)
			}
		}
		rows = kept
	}

	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMuscleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := req.GetInt("days", 0)

	var (
		rows any
		err  error
	)
	if days > 0 {
		rows, err = h.ds.MuscleStatsInWindow(ctx, days)
	} else {
		rows, err = h.ds.MuscleStats(ctx)
	}
	if err != nil {
		h.log.Error("mcp get_muscle_stats", "days", days, "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeeklyVolume(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := h.ds.WeeklyVolume(ctx)
	if err != nil {
		h.log.Error("mcp get_weekly_volume", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(report)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSummary(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := h.ds.Summary(ctx)
	if err != nil {
		h.log.Error("mcp get_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(summary)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) checkPersonalBest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return mcp.NewToolResultError("weight must be a non-negative number"), nil
	}

	check, err := h.ds.CheckPersonalBest(ctx, exercise, weight)
	if errors.Is(err, ErrExerciseNotFound) {
		return mcp.NewToolResultError("unknown exercise: " + exercise), nil
	}
	if err != nil {
		h.log.Error("mcp check_personal_best", "exercise", exercise, "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(check)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
