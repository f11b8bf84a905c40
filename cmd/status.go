package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-data/snowkit/internal/app"
	"github.com/meridian-data/snowkit/internal/errors"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show connection status and session context",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := requireConnection(); err != nil {
		return err
	}

	cfg := getConfig()
	fmt.Printf("Account: %s\n", cfg.Account)
	fmt.Printf("Auth mode: %s\n", app.Default.Pool.AuthMode())

	rows, err := getExecutor().Query(cmd.Context(),
		"SELECT CURRENT_USER() AS u, CURRENT_ROLE() AS r, CURRENT_WAREHOUSE() AS w, CURRENT_DATABASE() AS d, CURRENT_SCHEMA() AS s, CURRENT_VERSION() AS v")
	if err != nil {
		return errors.ConnectionError("failed to reach Snowflake", err)
	}
	if len(rows) == 0 {
		return errors.ConnectionError("session query returned no rows", nil)
	}

	row := rows[0]
	fmt.Printf("User: %v\n", row["U"])
	fmt.Printf("Role: %v\n", row["R"])
	fmt.Printf("Warehouse: %v\n", row["W"])
	fmt.Printf("Database: %v\n", row["D"])
	fmt.Printf("Schema: %v\n", row["S"])
	fmt.Printf("Version: %v\n", row["V"])

	logSuccess("Connected")
	return nil
}
