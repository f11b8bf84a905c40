package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/meridian-data/snowkit/internal/errors"
	"github.com/meridian-data/snowkit/internal/skills"
	"github.com/meridian-data/snowkit/internal/system"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Manage the snowkit agent playbooks",
	Long: `skill lists, prints, and installs the snowkit playbooks: markdown
documents an AI coding agent can follow to build a dashboard or deploy
to SPCS. Installed skills are rendered with the active configuration,
so they reference your actual warehouse, pool, and repository names.`,
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available skills",
	Args:  cobra.NoArgs,
	RunE:  runSkillList,
}

var skillShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a skill",
	Args:  cobra.ExactArgs(1),
	RunE:  runSkillShow,
}

var skillInstallCmd = &cobra.Command{
	Use:   "install [dir]",
	Short: "Install skills into a project's .claude/skills directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSkillInstall,
}

func init() {
	skillCmd.AddCommand(skillListCmd, skillShowCmd, skillInstallCmd)
	rootCmd.AddCommand(skillCmd)
}

func runSkillList(cmd *cobra.Command, args []string) error {
	all, err := skills.List(skills.DataFromConfig(getConfig()))
	if err != nil {
		return errors.Wrap(errors.ExitGeneralError, "failed to load skills", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION")
	for _, s := range all {
		fmt.Fprintf(w, "%s\t%s\n", s.Name, s.Description)
	}
	return w.Flush()
}

func runSkillShow(cmd *cobra.Command, args []string) error {
	s, err := skills.Get(args[0], skills.DataFromConfig(getConfig()))
	if err != nil {
		return err
	}
	fmt.Print(s.Body)
	return nil
}

func runSkillInstall(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	paths, err := skills.Install(system.DefaultFS(), dir, skills.DataFromConfig(getConfig()))
	if err != nil {
		return errors.Wrap(errors.ExitGeneralError, "failed to install skills", err)
	}

	for _, p := range paths {
		logSuccess("Installed %s", p)
	}
	return nil
}
