package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/meridian-data/snowkit/internal/errors"
	"github.com/meridian-data/snowkit/internal/spcs"
)

var (
	poolFamily string
	poolMin    int
	poolMax    int
)

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Manage SPCS compute pools",
}

var poolCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a compute pool if it does not exist",
	Args:  cobra.ExactArgs(1),
	RunE:  runPoolCreate,
}

var poolListCmd = &cobra.Command{
	Use:   "list",
	Short: "List compute pools",
	Args:  cobra.NoArgs,
	RunE:  runPoolList,
}

var poolStatusCmd = &cobra.Command{
	Use:   "status [name]",
	Short: "Show compute pool state",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPoolStatus,
}

var poolSuspendCmd = &cobra.Command{
	Use:   "suspend [name]",
	Short: "Suspend a compute pool",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPoolSuspend,
}

var poolResumeCmd = &cobra.Command{
	Use:   "resume [name]",
	Short: "Resume a suspended compute pool",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPoolResume,
}

var poolDropCmd = &cobra.Command{
	Use:   "drop [name]",
	Short: "Drop a compute pool",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPoolDrop,
}

func init() {
	poolCreateCmd.Flags().StringVar(&poolFamily, "family", "CPU_X64_XS", "Instance family")
	poolCreateCmd.Flags().IntVar(&poolMin, "min", 1, "Minimum nodes")
	poolCreateCmd.Flags().IntVar(&poolMax, "max", 1, "Maximum nodes")

	poolCmd.AddCommand(poolCreateCmd, poolListCmd, poolStatusCmd, poolSuspendCmd, poolResumeCmd, poolDropCmd)
	rootCmd.AddCommand(poolCmd)
}

// resolvePoolName takes the pool from the argument or an interactive picker.
func resolvePoolName(ctx context.Context, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return pickComputePool(ctx)
}

func runPoolCreate(cmd *cobra.Command, args []string) error {
	if err := requireConnection(); err != nil {
		return err
	}

	opts := spcs.CreatePoolOptions{
		Name:           args[0],
		InstanceFamily: poolFamily,
		MinNodes:       poolMin,
		MaxNodes:       poolMax,
	}
	if err := getSPCS().EnsureComputePool(cmd.Context(), opts); err != nil {
		return errors.ComputePoolError("create", err)
	}

	logSuccess("Compute pool %s ready (%s, nodes %d-%d)", args[0], poolFamily, poolMin, poolMax)
	return nil
}

func runPoolList(cmd *cobra.Command, args []string) error {
	if err := requireConnection(); err != nil {
		return err
	}

	pools, err := getSPCS().ListComputePools(cmd.Context())
	if err != nil {
		return errors.ComputePoolError("list", err)
	}
	if len(pools) == 0 {
		logInfo("No compute pools found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATE\tFAMILY\tNODES\tSERVICES")
	for _, p := range pools {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d-%d\t%d\n", p.Name, p.State, p.InstanceFamily, p.MinNodes, p.MaxNodes, p.NumServices)
	}
	return w.Flush()
}

func runPoolStatus(cmd *cobra.Command, args []string) error {
	if err := requireConnection(); err != nil {
		return err
	}

	name, err := resolvePoolName(cmd.Context(), args)
	if err != nil {
		return err
	}

	pool, err := getSPCS().DescribeComputePool(cmd.Context(), name)
	if err != nil {
		return errors.ComputePoolError("status", err)
	}

	fmt.Printf("Name: %s\n", pool.Name)
	fmt.Printf("State: %s\n", pool.State)
	fmt.Printf("Family: %s\n", pool.InstanceFamily)
	fmt.Printf("Nodes: %d-%d\n", pool.MinNodes, pool.MaxNodes)
	fmt.Printf("Services: %d\n", pool.NumServices)
	return nil
}

func runPoolSuspend(cmd *cobra.Command, args []string) error {
	if err := requireConnection(); err != nil {
		return err
	}

	name, err := resolvePoolName(cmd.Context(), args)
	if err != nil {
		return err
	}
	if err := getSPCS().SuspendComputePool(cmd.Context(), name); err != nil {
		return errors.ComputePoolError("suspend", err)
	}
	logSuccess("Compute pool %s suspended", name)
	return nil
}

func runPoolResume(cmd *cobra.Command, args []string) error {
	if err := requireConnection(); err != nil {
		return err
	}

	name, err := resolvePoolName(cmd.Context(), args)
	if err != nil {
		return err
	}
	if err := getSPCS().ResumeComputePool(cmd.Context(), name); err != nil {
		return errors.ComputePoolError("resume", err)
	}
	logSuccess("Compute pool %s resumed", name)
	return nil
}

func runPoolDrop(cmd *cobra.Command, args []string) error {
	if err := requireConnection(); err != nil {
		return err
	}

	name, err := resolvePoolName(cmd.Context(), args)
	if err != nil {
		return err
	}
	if err := getSPCS().DropComputePool(cmd.Context(), name); err != nil {
		return errors.ComputePoolError("drop", err)
	}
	logSuccess("Compute pool %s dropped", name)
	return nil
}
