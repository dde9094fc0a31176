// ABOUTME: MCP resource implementations for hydration data.
// ABOUTME: Provides hydration://today and hydration://recent resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/hydration/internal/daily"
	"github.com/harperreed/hydration/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	todayURI  = "hydration://today"
	recentURI = "hydration://recent"

	recentLogLimit   = 10
	recentDailyLimit = 7
)

func (s *Server) registerResources() {
	// hydration://today - today's record, context and goal
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Hydration",
		Description: "Today's daily record, pre-workout context and drinking goal",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// hydration://recent - last planned workouts and daily records
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentURI,
		Name:        "Recent Hydration",
		Description: "Last 10 planned workouts and the last week of daily records",
		MIMEType:    "application/json",
	}, s.handleRecentResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	rec, err := s.service.DailyFor(ctx, s.email, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get daily record: %w", err)
	}
	goal, err := s.service.Goal(ctx, s.email, rec.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to compute goal: %w", err)
	}

	var drankL float64
	if rec.Hydration != nil {
		drankL = rec.Hydration.TotalL
	}

	result := map[string]interface{}{
		"date":    rec.Date,
		"record":  rec,
		"context": daily.ContextFor(rec),
		"goal":    goal,
		"drankL":  drankL,
		"leftL":   engine.Round2(max(0, goal.GoalL-drankL)),
	}
	return jsonResource(todayURI, result)
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	logs, err := s.service.ListLogs(ctx, s.email, recentLogLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	records, err := s.service.ListDaily(ctx, s.email, recentDailyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily records: %w", err)
	}

	sessions := make([]loggedSession, 0, len(logs))
	for _, l := range logs {
		sessions = append(sessions, loggedSession{LogEntry: l, Date: l.Date(), Intake: engine.StatusForLog(l)})
	}

	result := map[string]interface{}{
		"logs":  sessions,
		"daily": records,
	}
	return jsonResource(recentURI, result)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
