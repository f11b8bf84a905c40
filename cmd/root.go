package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/meridian-data/snowkit/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "snowkit",
	Short: "Snowflake dashboard and SPCS deployment CLI",
	Long: `snowkit builds and deploys dashboards on Snowflake.

It scaffolds a Next.js dashboard wired to Snowflake, provisions
Snowpark Container Services resources (compute pools, image
repositories, services), and runs the build-push-deploy pipeline
with confirmation prompts before anything that bills.

The playbooks behind these workflows are also available as agent
skills: see 'snowkit skill list'.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	_          = logging.UserError // reserved for future use
)
