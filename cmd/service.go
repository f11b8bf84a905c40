package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridian-data/snowkit/internal/errors"
	"github.com/meridian-data/snowkit/internal/spcs"
	"github.com/meridian-data/snowkit/internal/spec"
)

var (
	servicePool      string
	serviceSpecFile  string
	serviceMin       int
	serviceMax       int
	serviceInstance  string
	serviceContainer string
	serviceTail      int
	serviceWait      bool
)

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage SPCS services",
}

var serviceCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a service from a specification file",
	Args:  cobra.ExactArgs(1),
	RunE:  runServiceCreate,
}

var serviceUpgradeCmd = &cobra.Command{
	Use:   "upgrade <name>",
	Short: "Update a running service from a specification file",
	Args:  cobra.ExactArgs(1),
	RunE:  runServiceUpgrade,
}

var serviceStatusCmd = &cobra.Command{
	Use:   "status <name>",
	Short: "Show container status of a service",
	Args:  cobra.ExactArgs(1),
	RunE:  runServiceStatus,
}

var serviceLogsCmd = &cobra.Command{
	Use:   "logs <name>",
	Short: "Fetch service container logs",
	Args:  cobra.ExactArgs(1),
	RunE:  runServiceLogs,
}

var serviceEndpointsCmd = &cobra.Command{
	Use:   "endpoints <name>",
	Short: "Show service endpoints and ingress URLs",
	Args:  cobra.ExactArgs(1),
	RunE:  runServiceEndpoints,
}

var serviceSuspendCmd = &cobra.Command{
	Use:   "suspend <name>",
	Short: "Suspend a service",
	Args:  cobra.ExactArgs(1),
	RunE:  runServiceSuspend,
}

var serviceResumeCmd = &cobra.Command{
	Use:   "resume <name>",
	Short: "Resume a suspended service",
	Args:  cobra.ExactArgs(1),
	RunE:  runServiceResume,
}

var serviceDropCmd = &cobra.Command{
	Use:   "drop <name>",
	Short: "Drop a service",
	Args:  cobra.ExactArgs(1),
	RunE:  runServiceDrop,
}

func init() {
	serviceCreateCmd.Flags().StringVar(&servicePool, "pool", "", "Compute pool to run in (required)")
	serviceCreateCmd.Flags().StringVar(&serviceSpecFile, "spec", "", "Specification file (required)")
	serviceCreateCmd.Flags().IntVar(&serviceMin, "min", 0, "Minimum instances")
	serviceCreateCmd.Flags().IntVar(&serviceMax, "max", 0, "Maximum instances")
	serviceCreateCmd.Flags().BoolVar(&serviceWait, "wait", false, "Wait until the service is ready")
	serviceCreateCmd.MarkFlagRequired("pool")
	serviceCreateCmd.MarkFlagRequired("spec")

	serviceUpgradeCmd.Flags().StringVar(&serviceSpecFile, "spec", "", "Specification file (required)")
	serviceUpgradeCmd.MarkFlagRequired("spec")

	serviceLogsCmd.Flags().StringVar(&serviceInstance, "instance", "0", "Service instance id")
	serviceLogsCmd.Flags().StringVar(&serviceContainer, "container", "main", "Container name")
	serviceLogsCmd.Flags().IntVar(&serviceTail, "tail", 100, "Number of trailing lines")

	serviceCmd.AddCommand(serviceCreateCmd, serviceUpgradeCmd, serviceStatusCmd,
		serviceLogsCmd, serviceEndpointsCmd, serviceSuspendCmd, serviceResumeCmd, serviceDropCmd)
	rootCmd.AddCommand(serviceCmd)
}

func runServiceCreate(cmd *cobra.Command, args []string) error {
	if err := requireConnection(); err != nil {
		return err
	}

	s, err := spec.LoadFile(serviceSpecFile)
	if err != nil {
		return errors.ServiceError("spec load", err)
	}

	opts := spcs.CreateServiceOptions{
		Name:         args[0],
		ComputePool:  servicePool,
		Spec:         s,
		MinInstances: serviceMin,
		MaxInstances: serviceMax,
	}
	if err := getSPCS().CreateService(cmd.Context(), opts); err != nil {
		return errors.ServiceError("create", err)
	}
	logSuccess("Service %s created in pool %s", args[0], servicePool)

	if serviceWait {
		return waitForService(cmd, args[0])
	}
	return nil
}

func waitForService(cmd *cobra.Command, name string) error {
	logInfo("Waiting for %s to become ready...", name)
	if err := getSPCS().WaitReady(cmd.Context(), name, 5*time.Second); err != nil {
		return errors.ServiceError("wait", err)
	}
	logSuccess("Service %s is ready", name)
	return nil
}

func runServiceUpgrade(cmd *cobra.Command, args []string) error {
	if err := requireConnection(); err != nil {
		return err
	}

	s, err := spec.LoadFile(serviceSpecFile)
	if err != nil {
		return errors.ServiceError("spec load", err)
	}
	if err := getSPCS().UpgradeService(cmd.Context(), args[0], s); err != nil {
		return errors.ServiceError("upgrade", err)
	}
	logSuccess("Service %s upgraded", args[0])
	return nil
}

func runServiceStatus(cmd *cobra.Command, args []string) error {
	if err := requireConnection(); err != nil {
		return err
	}

	statuses, err := getSPCS().ServiceStatus(cmd.Context(), args[0])
	if err != nil {
		return errors.ServiceError("status", err)
	}
	if len(statuses) == 0 {
		logInfo("No containers reported for %s", args[0])
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INSTANCE\tCONTAINER\tSTATUS\tRESTARTS\tMESSAGE")
	for _, s := range statuses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", s.InstanceID, s.ContainerName, s.Status, s.RestartCount, s.Message)
	}
	return w.Flush()
}

func runServiceLogs(cmd *cobra.Command, args []string) error {
	if err := requireConnection(); err != nil {
		return err
	}

	logs, err := getSPCS().ServiceLogs(cmd.Context(), args[0], serviceInstance, serviceContainer, serviceTail)
	if err != nil {
		return errors.ServiceError("logs", err)
	}
	fmt.Print(logs)
	return nil
}

func runServiceEndpoints(cmd *cobra.Command, args []string) error {
	if err := requireConnection(); err != nil {
		return err
	}

	endpoints, err := getSPCS().ServiceEndpoints(cmd.Context(), args[0])
	if err != nil {
		return errors.ServiceError("endpoints", err)
	}
	if len(endpoints) == 0 {
		logInfo("No endpoints for %s", args[0])
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPORT\tPROTOCOL\tINGRESS")
	for _, e := range endpoints {
		ingress := e.IngressURL
		if ingress == "" {
			ingress = "(provisioning)"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", e.Name, e.Port, e.Protocol, ingress)
	}
	return w.Flush()
}

func runServiceSuspend(cmd *cobra.Command, args []string) error {
	if err := requireConnection(); err != nil {
		return err
	}
	if err := getSPCS().SuspendService(cmd.Context(), args[0]); err != nil {
		return errors.ServiceError("suspend", err)
	}
	logSuccess("Service %s suspended", args[0])
	return nil
}

func runServiceResume(cmd *cobra.Command, args []string) error {
	if err := requireConnection(); err != nil {
		return err
	}
	if err := getSPCS().ResumeService(cmd.Context(), args[0]); err != nil {
		return errors.ServiceError("resume", err)
	}
	logSuccess("Service %s resumed", args[0])
	return nil
}

func runServiceDrop(cmd *cobra.Command, args []string) error {
	if err := requireConnection(); err != nil {
		return err
	}
	if err := getSPCS().DropService(cmd.Context(), args[0]); err != nil {
		return errors.ServiceError("drop", err)
	}
	logSuccess("Service %s dropped", args[0])
	return nil
}
