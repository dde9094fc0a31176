// ABOUTME: MCP tool implementations for hydration planning.
// ABOUTME: Plans sessions, records daily intake and urine readings, lists logs.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/hydration/internal/daily"
	"github.com/harperreed/hydration/internal/engine"
	"github.com/harperreed/hydration/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// compute_plan
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "compute_plan",
		Description: "Compute a hydration plan for a workout without saving it",
	}, s.handleComputePlan)

	// plan_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "plan_workout",
		Description: "Plan a workout using today's daily record and profile, and save it to the log",
	}, s.handlePlanWorkout)

	// log_urine
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_urine",
		Description: "Record a urine color reading (1 = clear, 10 = dark)",
	}, s.handleLogUrine)

	// log_water
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_water",
		Description: "Record a drink of water in liters",
	}, s.handleLogWater)

	// update_daily
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_daily",
		Description: "Update the daily record: alcohol, caffeine, fluids, note or rating",
	}, s.handleUpdateDaily)

	// get_daily
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_daily",
		Description: "Get the daily record with its hydration context and goal",
	}, s.handleGetDaily)

	// list_logs
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_logs",
		Description: "List recent planned workouts with their intake status",
	}, s.handleListLogs)

	// record_intake
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_intake",
		Description: "Record how many liters were actually drunk for a planned workout",
	}, s.handleRecordIntake)

	// drink_schedule
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "drink_schedule",
		Description: "Split a during-workout fluid target into timed sips",
	}, s.handleDrinkSchedule)
}

// Tool input/output types

type planInput struct {
	WorkoutType   string   `json:"workout_type,omitempty" jsonschema:"Type of workout (run, bike, lift, etc.)"`
	RPE           int      `json:"rpe" jsonschema:"Rate of perceived exertion, 0-10"`
	DurationMin   int      `json:"duration_min" jsonschema:"Session length in minutes"`
	PreScore      int      `json:"pre_score,omitempty" jsonschema:"How hydrated you feel before starting, 1 (dry) to 5 (well hydrated), default 3"`
	TempC         *float64 `json:"temp_c,omitempty" jsonschema:"Air temperature in Celsius"`
	HumidityPct   *float64 `json:"humidity_pct,omitempty" jsonschema:"Relative humidity percent"`
	UVIndex       *float64 `json:"uv_index,omitempty" jsonschema:"UV index"`
	FluidPriorL   float64  `json:"fluid_prior_l,omitempty" jsonschema:"Liters drunk in the hours before the session"`
	CaffeineMg    float64  `json:"caffeine_mg,omitempty" jsonschema:"Caffeine taken today in mg"`
	AlcoholDrinks float64  `json:"alcohol_drinks,omitempty" jsonschema:"Alcoholic drinks in the last 24 hours"`
	UrineColor    *int     `json:"urine_color,omitempty" jsonschema:"Latest urine color, 1-10"`
	MassKg        *float64 `json:"mass_kg,omitempty" jsonschema:"Body mass in kg"`
	Date          string   `json:"date,omitempty" jsonschema:"Date of the daily record to seed from (YYYY-MM-DD), defaults to today"`
}

func (in planInput) session() models.SessionInput {
	preScore := in.PreScore
	if preScore == 0 {
		preScore = 3
	}
	return models.SessionInput{
		WorkoutType:   in.WorkoutType,
		RPE:           in.RPE,
		DurationMin:   in.DurationMin,
		PreScore:      preScore,
		TempC:         in.TempC,
		HumidityPct:   in.HumidityPct,
		UVIndex:       in.UVIndex,
		FluidPriorL:   in.FluidPriorL,
		CaffeineMg:    in.CaffeineMg,
		AlcoholDrinks: in.AlcoholDrinks,
		UrineColor:    in.UrineColor,
		MassKg:        in.MassKg,
	}
}

type planOutput struct {
	TS       int64                `json:"ts,omitempty"`
	Input    models.SessionInput  `json:"input"`
	Plan     models.HydrationPlan `json:"plan"`
	Schedule []engine.Sip         `json:"schedule"`
	Status   string               `json:"status"`
	Message  string               `json:"message"`
}

type urineInput struct {
	Level      float64 `json:"level" jsonschema:"Urine color, 1 (clear) to 10 (dark)"`
	Date       string  `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
	RecordedAt string  `json:"recorded_at,omitempty" jsonschema:"Time of the reading (RFC 3339 or HH:MM), defaults to now"`
}

type waterInput struct {
	VolumeL    float64 `json:"volume_l" jsonschema:"Volume drunk in liters"`
	Date       string  `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
	RecordedAt string  `json:"recorded_at,omitempty" jsonschema:"Time of the drink (RFC 3339 or HH:MM), defaults to now"`
}

type dailyUpdateInput struct {
	Date          string   `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
	AlcoholDrinks *float64 `json:"alcohol_drinks,omitempty" jsonschema:"Alcoholic drinks in the last 24 hours"`
	CaffeineMg    *float64 `json:"caffeine_mg,omitempty" jsonschema:"Caffeine taken today in mg"`
	CaffeineCups  *float64 `json:"caffeine_cups,omitempty" jsonschema:"Caffeine taken today in cups of coffee"`
	FluidL        *float64 `json:"fluid_l,omitempty" jsonschema:"Liters drunk before the workout"`
	Note          *string  `json:"note,omitempty" jsonschema:"Free-form note for the day"`
	Rating        *float64 `json:"rating,omitempty" jsonschema:"How the day felt, free-form number"`
}

type dateInput struct {
	Date string `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
}

type dailySummary struct {
	Date        string  `json:"date"`
	UrineCount  int     `json:"urine_count"`
	LatestUrine int     `json:"latest_urine,omitempty"`
	WaterTotalL float64 `json:"water_total_l"`
	Message     string  `json:"message"`
}

type listLogsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type loggedSession struct {
	*models.LogEntry
	Date   string              `json:"date"`
	Intake engine.IntakeStatus `json:"intake"`
}

type intakeInput struct {
	TS     int64   `json:"ts" jsonschema:"Timestamp id of the planned workout (from list_logs)"`
	Liters float64 `json:"liters" jsonschema:"Liters actually drunk"`
}

type intakeOutput struct {
	TS      int64   `json:"ts"`
	Liters  float64 `json:"liters"`
	Percent int     `json:"percent"`
	Message string  `json:"message"`
}

type scheduleInput struct {
	DurationMin int     `json:"duration_min" jsonschema:"Session length in minutes"`
	DuringL     float64 `json:"during_l" jsonschema:"Liters to drink during the session"`
}

// Tool handlers

func (s *Server) handleComputePlan(ctx context.Context, req *mcp.CallToolRequest, input planInput) (*mcp.CallToolResult, any, error) {
	in := input.session()
	plan := engine.ComputePlan(in)

	return nil, planOutput{
		Input:    in,
		Plan:     plan,
		Schedule: engine.BuildDrinkSchedule(in.DurationMin, plan.DrinkDuring),
		Status:   engine.StatusBadge(plan.PctBodyMassLoss).Text,
		Message:  fmt.Sprintf("Drink %.2f L during and %.2f L after (%.2f L total)", plan.DrinkDuring, plan.DrinkPost, plan.TotalTargetL),
	}, nil
}

func (s *Server) handlePlanWorkout(ctx context.Context, req *mcp.CallToolRequest, input planInput) (*mcp.CallToolResult, any, error) {
	entry, err := s.service.PlanToday(ctx, s.email, input.Date, input.session(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to plan workout: %w", err)
	}

	plan := entry.Plan
	return nil, planOutput{
		TS:       entry.TS,
		Input:    entry.Input,
		Plan:     plan,
		Schedule: engine.BuildDrinkSchedule(entry.Input.DurationMin, plan.DrinkDuring),
		Status:   engine.StatusBadge(plan.PctBodyMassLoss).Text,
		Message:  fmt.Sprintf("Saved plan %d: drink %.2f L during and %.2f L after", entry.TS, plan.DrinkDuring, plan.DrinkPost),
	}, nil
}

func (s *Server) handleLogUrine(ctx context.Context, req *mcp.CallToolRequest, input urineInput) (*mcp.CallToolResult, dailySummary, error) {
	at, err := s.recordedAt(input.RecordedAt, input.Date)
	if err != nil {
		return nil, dailySummary{}, err
	}

	rec, err := s.service.LogUrine(ctx, s.email, input.Date, input.Level, at)
	if err != nil {
		return nil, dailySummary{}, fmt.Errorf("failed to log urine: %w", err)
	}

	out := summarize(rec)
	meta := engine.UrineLevelMeta(out.LatestUrine)
	out.Message = fmt.Sprintf("Logged urine color %d (%s)", out.LatestUrine, meta.Status)
	return nil, out, nil
}

func (s *Server) handleLogWater(ctx context.Context, req *mcp.CallToolRequest, input waterInput) (*mcp.CallToolResult, dailySummary, error) {
	at, err := s.recordedAt(input.RecordedAt, input.Date)
	if err != nil {
		return nil, dailySummary{}, err
	}

	rec, err := s.service.LogWater(ctx, s.email, input.Date, input.VolumeL, at)
	if err != nil {
		return nil, dailySummary{}, fmt.Errorf("failed to log water: %w", err)
	}

	out := summarize(rec)
	out.Message = fmt.Sprintf("Logged %.2f L of water (%.2f L today)", input.VolumeL, out.WaterTotalL)
	return nil, out, nil
}

func (s *Server) handleUpdateDaily(ctx context.Context, req *mcp.CallToolRequest, input dailyUpdateInput) (*mcp.CallToolResult, any, error) {
	date := input.Date
	if date == "" {
		date = s.service.Today()
	}

	incoming := models.NewDailyRecord(date)
	if input.AlcoholDrinks != nil {
		incoming.WithMetric(models.MetricAlcohol, *input.AlcoholDrinks)
	}
	switch {
	case input.CaffeineMg != nil:
		incoming.WithCaffeine(*input.CaffeineMg, models.CaffeineUnitMg)
	case input.CaffeineCups != nil:
		incoming.WithCaffeine(*input.CaffeineCups, models.CaffeineUnitCups)
	}
	if input.FluidL != nil {
		incoming.WithMetric(models.MetricFluidL, *input.FluidL)
	}
	incoming.Note = input.Note
	incoming.Rating = input.Rating

	rec, err := s.service.RecordDaily(ctx, s.email, *incoming)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update daily record: %w", err)
	}
	return nil, rec, nil
}

func (s *Server) handleGetDaily(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, any, error) {
	rec, err := s.service.DailyFor(ctx, s.email, input.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get daily record: %w", err)
	}
	goal, err := s.service.Goal(ctx, s.email, rec.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute goal: %w", err)
	}

	return nil, map[string]any{
		"record":  rec,
		"context": daily.ContextFor(rec),
		"goal":    goal,
	}, nil
}

func (s *Server) handleListLogs(ctx context.Context, req *mcp.CallToolRequest, input listLogsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	logs, err := s.service.ListLogs(ctx, s.email, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list logs: %w", err)
	}

	if len(logs) == 0 {
		return nil, map[string]any{"message": "No planned workouts found."}, nil
	}

	out := make([]loggedSession, 0, len(logs))
	for _, l := range logs {
		out = append(out, loggedSession{LogEntry: l, Date: l.Date(), Intake: engine.StatusForLog(l)})
	}
	return nil, out, nil
}

func (s *Server) handleRecordIntake(ctx context.Context, req *mcp.CallToolRequest, input intakeInput) (*mcp.CallToolResult, intakeOutput, error) {
	entry, err := s.service.RecordIntake(ctx, s.email, input.TS, input.Liters)
	if err != nil {
		return nil, intakeOutput{}, fmt.Errorf("failed to record intake: %w", err)
	}

	status := engine.StatusForLog(entry)
	return nil, intakeOutput{
		TS:      entry.TS,
		Liters:  input.Liters,
		Percent: status.Percent,
		Message: fmt.Sprintf("Recorded %.2f L for plan %d (%s)", input.Liters, entry.TS, status.Label),
	}, nil
}

func (s *Server) handleDrinkSchedule(ctx context.Context, req *mcp.CallToolRequest, input scheduleInput) (*mcp.CallToolResult, any, error) {
	sips := engine.BuildDrinkSchedule(input.DurationMin, input.DuringL)
	if len(sips) == 0 {
		return nil, map[string]any{"message": "Nothing to drink during this session."}, nil
	}
	return nil, map[string]any{"sips": sips}, nil
}

func (s *Server) recordedAt(value, date string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return daily.ParseRecordedAt(value, date, s.service.Now())
}

func summarize(rec *models.DailyRecord) dailySummary {
	out := dailySummary{Date: rec.Date}
	if rec.Urine != nil {
		out.UrineCount = len(rec.Urine.Entries)
	}
	if latest := daily.LatestUrine(rec); latest != nil {
		out.LatestUrine = latest.Level
	}
	if rec.Hydration != nil {
		out.WaterTotalL = rec.Hydration.TotalL
	}
	return out
}
