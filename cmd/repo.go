package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/meridian-data/snowkit/internal/errors"
)

var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Manage SPCS image repositories",
}

var repoCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an image repository if it does not exist",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepoCreate,
}

var repoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List image repositories in the current schema",
	Args:  cobra.NoArgs,
	RunE:  runRepoList,
}

var repoURLCmd = &cobra.Command{
	Use:   "url <name>",
	Short: "Print the registry URL of an image repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepoURL,
}

func init() {
	repoCmd.AddCommand(repoCreateCmd, repoListCmd, repoURLCmd)
	rootCmd.AddCommand(repoCmd)
}

func runRepoCreate(cmd *cobra.Command, args []string) error {
	if err := requireConnection(); err != nil {
		return err
	}

	if err := getSPCS().EnsureImageRepository(cmd.Context(), args[0]); err != nil {
		return errors.ImageError("repository create", err)
	}
	logSuccess("Image repository %s ready", args[0])
	return nil
}

func runRepoList(cmd *cobra.Command, args []string) error {
	if err := requireConnection(); err != nil {
		return err
	}

	repos, err := getSPCS().ListImageRepositories(cmd.Context())
	if err != nil {
		return errors.ImageError("repository list", err)
	}
	if len(repos) == 0 {
		logInfo("No image repositories found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tURL")
	for _, r := range repos {
		fmt.Fprintf(w, "%s\t%s\n", r.Name, r.URL)
	}
	return w.Flush()
}

func runRepoURL(cmd *cobra.Command, args []string) error {
	if err := requireConnection(); err != nil {
		return err
	}

	url, err := getSPCS().RepositoryURL(cmd.Context(), args[0])
	if err != nil {
		return errors.ImageError("repository url", err)
	}
	fmt.Println(url)
	return nil
}
