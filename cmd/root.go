package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the intervals-mcp application
var rootCmd = &cobra.Command{
	Use:   "intervals-mcp",
	Short: "MCP server for Intervals.icu and Strava",
	Long: `intervals-mcp is an MCP (Model Context Protocol) server that gives AI
assistants access to an athlete's Intervals.icu calendar, wellness and
activity data, following through to Strava for activities hosted there.

Credentials are read from environment variables (INTERVALS_ATHLETE_ID,
INTERVALS_API_KEY, STRAVA_CLIENT_ID, STRAVA_CLIENT_SECRET,
STRAVA_ACCESS_TOKEN, STRAVA_REFRESH_TOKEN). A missing credential is
reported per tool call; the server always starts.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "intervals-mcp version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
