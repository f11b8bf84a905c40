package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/meridian-data/snowkit/internal/errors"
	"github.com/meridian-data/snowkit/internal/scaffold"
	"github.com/meridian-data/snowkit/internal/skills"
	"github.com/meridian-data/snowkit/internal/system"
)

var (
	initName    string
	initDB      string
	initSchema  string
	initWH      string
	initPort    int
	initPM      string
	initInstall bool
	initSkills  bool
)

var initCmd = &cobra.Command{
	Use:   "init <dir>",
	Short: "Scaffold a Next.js dashboard wired to Snowflake",
	Long: `init generates a Next.js project that queries Snowflake through a
server-side API route. The generated connection helper automatically
uses the SPCS OAuth token when running inside a container and falls
back to SNOWFLAKE_USER/SNOWFLAKE_PASSWORD locally.`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "App name (default: directory name)")
	initCmd.Flags().StringVar(&initDB, "database", "", "Snowflake database (default: from config)")
	initCmd.Flags().StringVar(&initSchema, "schema", "", "Snowflake schema (default: from config)")
	initCmd.Flags().StringVar(&initWH, "warehouse", "", "Snowflake warehouse (default: from config)")
	initCmd.Flags().IntVar(&initPort, "port", 0, "Port the dashboard listens on (default: 3000)")
	initCmd.Flags().StringVar(&initPM, "pm", "", "Package manager: npm, pnpm, or yarn (default: detect)")
	initCmd.Flags().BoolVar(&initInstall, "install", false, "Run the package manager install step")
	initCmd.Flags().BoolVar(&initSkills, "skills", true, "Install the agent playbooks into .claude/skills")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := args[0]
	cfg := getConfig()

	opts := scaffold.Options{
		Dir:            dir,
		AppName:        initName,
		Account:        cfg.Account,
		Warehouse:      cfg.Warehouse,
		Database:       cfg.Database,
		Schema:         cfg.Schema,
		Port:           initPort,
		PackageManager: initPM,
		Install:        initInstall,
	}
	if initDB != "" {
		opts.Database = initDB
	}
	if initSchema != "" {
		opts.Schema = initSchema
	}
	if initWH != "" {
		opts.Warehouse = initWH
	}

	s := scaffold.NewScaffolder()
	result, err := s.Scaffold(cmd.Context(), opts)
	if err != nil {
		return errors.ScaffoldError("failed to generate project", err)
	}

	logSuccess("Generated %d files in %s", len(result.Files), result.Dir)
	for _, f := range result.Files {
		logInfo("  %s", filepath.Join(result.Dir, f))
	}

	if initSkills {
		data := skills.DataFromConfig(cfg)
		if initDB != "" {
			data.Database = initDB
		}
		if initSchema != "" {
			data.Schema = initSchema
		}
		if initWH != "" {
			data.Warehouse = initWH
		}
		paths, err := skills.Install(system.DefaultFS(), dir, data)
		if err != nil {
			return errors.ScaffoldError("failed to install skills", err)
		}
		logSuccess("Installed %d agent skills", len(paths))
	}

	if result.InstallRun {
		logSuccess("Dependencies installed with %s", result.PackageManager)
	} else {
		logInfo("Next: cd %s && %s install && %s run dev", dir, result.PackageManager, result.PackageManager)
	}

	return nil
}
