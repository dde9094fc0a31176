// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"os/signal"
	"syscall"

	"github.com/harperreed/hydration/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to plan workouts and log hydration for
the selected user. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "hydration": {
        "command": "hydration",
        "args": ["mcp", "--user", "you@example.com"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  compute_plan      Compute a plan without storing it
  plan_workout      Compute and store a plan seeded from today's record
  log_urine         Log a urine color reading
  log_water         Log a drink
  update_daily      Set alcohol, caffeine, fluids, note or rating
  get_daily         Daily record with derived context and goal
  list_logs         Recent plans with intake status
  record_intake     Record liters drunk for a plan
  drink_schedule    Split a during-workout target into sips

AVAILABLE RESOURCES:

  hydration://today     Today's record, goal and progress
  hydration://recent    Recent plans and daily records`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := currentUser()
		if err != nil {
			return err
		}
		server, err := mcp.NewServer(svc, email)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
