package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/meridian-data/snowkit/internal/errors"
	"github.com/meridian-data/snowkit/internal/snowflake"
	"github.com/meridian-data/snowkit/internal/system"
)

var (
	queryFile string
	queryJSON bool
)

var queryCmd = &cobra.Command{
	Use:   "query [sql]",
	Short: "Execute a SQL statement against Snowflake",
	Long: `query runs a single SQL statement and prints the result rows.

The statement comes from the argument or from a file (-f). Expired
OAuth tokens and dropped connections are retried once automatically.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&queryFile, "file", "f", "", "Read the statement from a file")
	queryCmd.Flags().BoolVar(&queryJSON, "output-json", false, "Print rows as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	stmt, err := statementFromArgs(args)
	if err != nil {
		return err
	}
	if err := requireConnection(); err != nil {
		return err
	}

	rows, err := getExecutor().Query(cmd.Context(), stmt)
	if err != nil {
		return errors.QueryError("statement failed", err)
	}

	if queryJSON {
		return printRowsJSON(rows)
	}
	printRowsTable(rows)
	return nil
}

// statementFromArgs resolves the SQL text from the argument or --file.
func statementFromArgs(args []string) (string, error) {
	if queryFile != "" {
		data, err := system.DefaultFS().ReadFile(queryFile)
		if err != nil {
			return "", errors.QueryError(fmt.Sprintf("failed to read %s", queryFile), err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		return args[0], nil
	}
	return "", errors.ValidationError("provide a SQL statement or -f <file>")
}

func printRowsJSON(rows []snowflake.Row) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func printRowsTable(rows []snowflake.Row) {
	if len(rows) == 0 {
		logInfo("0 rows")
		return
	}

	cols := make([]string, 0, len(rows[0]))
	for col := range rows[0] {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(cols, "\t"))

	for _, row := range rows {
		vals := make([]string, len(cols))
		for i, col := range cols {
			vals[i] = fmt.Sprintf("%v", row[col])
		}
		fmt.Fprintln(w, strings.Join(vals, "\t"))
	}
	w.Flush()
	fmt.Printf("%d rows\n", len(rows))
}
