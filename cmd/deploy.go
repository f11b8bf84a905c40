package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/meridian-data/snowkit/internal/errors"
	"github.com/meridian-data/snowkit/internal/image"
	"github.com/meridian-data/snowkit/internal/spcs"
	"github.com/meridian-data/snowkit/internal/spec"
)

var (
	deployYes     bool
	deployPool    string
	deployRepo    string
	deployService string
	deployPort    int
	deployFamily  string
	deployMin     int
	deployMax     int
	deploySkip    bool
)

var deployCmd = &cobra.Command{
	Use:   "deploy <dir>",
	Short: "Build, push, and deploy a project to SPCS",
	Long: `deploy runs the full pipeline: ensure the compute pool and image
repository exist, build and push the image, render the service
specification, and create or upgrade the service.

The pipeline pauses for confirmation before provisioning compute,
pushing the image, and creating the service. Pass --yes to skip the
prompts in scripted runs.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeploy,
}

func init() {
	deployCmd.Flags().BoolVarP(&deployYes, "yes", "y", false, "Skip confirmation prompts")
	deployCmd.Flags().StringVar(&deployPool, "pool", "", "Compute pool name (default: from config)")
	deployCmd.Flags().StringVar(&deployRepo, "repo", "", "Image repository name (default: from config)")
	deployCmd.Flags().StringVar(&deployService, "service", "", "Service name (default: from config or directory)")
	deployCmd.Flags().IntVar(&deployPort, "port", 0, "Application port (default: from config)")
	deployCmd.Flags().StringVar(&deployFamily, "family", "", "Compute pool instance family (default: from config)")
	deployCmd.Flags().IntVar(&deployMin, "min", 0, "Minimum pool nodes (default: from config)")
	deployCmd.Flags().IntVar(&deployMax, "max", 0, "Maximum pool nodes (default: from config)")
	deployCmd.Flags().BoolVar(&deploySkip, "skip-build", false, "Push and deploy an already-built image")
	rootCmd.AddCommand(deployCmd)
}

// deployPlan is the resolved set of names and parameters for one run.
type deployPlan struct {
	Dir     string
	App     string
	Pool    string
	Family  string
	Min     int
	Max     int
	Repo    string
	Service string
	Port    int
}

// resolveDeployPlan merges config defaults with command flags. Flags win.
func resolveDeployPlan(dir string) (*deployPlan, error) {
	cfg := getConfig()
	d := cfg.Deploy

	plan := &deployPlan{
		Dir:     dir,
		App:     strings.ToLower(filepath.Base(dir)),
		Pool:    d.ComputePool,
		Family:  d.InstanceFamily,
		Min:     d.MinNodes,
		Max:     d.MaxNodes,
		Repo:    d.Repository,
		Service: d.ServiceName,
		Port:    d.Port,
	}

	if deployPool != "" {
		plan.Pool = deployPool
	}
	if deployFamily != "" {
		plan.Family = deployFamily
	}
	if deployMin > 0 {
		plan.Min = deployMin
	}
	if deployMax > 0 {
		plan.Max = deployMax
	}
	if deployRepo != "" {
		plan.Repo = deployRepo
	}
	if deployService != "" {
		plan.Service = deployService
	}
	if deployPort > 0 {
		plan.Port = deployPort
	}

	if plan.Service == "" {
		plan.Service = strings.ToUpper(strings.ReplaceAll(plan.App, "-", "_"))
	}
	if plan.Pool == "" {
		return nil, errors.ValidationError("compute pool is required (set --pool or deploy.compute_pool)")
	}
	if plan.Repo == "" {
		return nil, errors.ValidationError("image repository is required (set --repo or deploy.repository)")
	}
	if plan.Port == 0 {
		plan.Port = 3000
	}
	return plan, nil
}

func runDeploy(cmd *cobra.Command, args []string) error {
	if err := requireConnection(); err != nil {
		return err
	}
	rt, err := getRuntime()
	if err != nil {
		return err
	}

	plan, err := resolveDeployPlan(args[0])
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	logInfo("Deploying %s as service %s (pool %s, repo %s)", plan.App, plan.Service, plan.Pool, plan.Repo)

	// Stopping point: compute pools bill while running.
	ok, err := confirm(fmt.Sprintf("Provision compute pool %s (%s, nodes %d-%d) and repository %s?",
		plan.Pool, plan.Family, plan.Min, plan.Max, plan.Repo), deployYes)
	if err != nil {
		return err
	}
	if !ok {
		logWarning("Deployment cancelled before provisioning")
		return nil
	}

	if err := getSPCS().EnsureComputePool(ctx, spcs.CreatePoolOptions{
		Name:           plan.Pool,
		InstanceFamily: plan.Family,
		MinNodes:       plan.Min,
		MaxNodes:       plan.Max,
	}); err != nil {
		return errors.ComputePoolError("create", err)
	}
	if err := getSPCS().EnsureImageRepository(ctx, plan.Repo); err != nil {
		return errors.ImageError("repository create", err)
	}

	repoURL, err := getSPCS().RepositoryURL(ctx, plan.Repo)
	if err != nil {
		return errors.ImageError("repository url", err)
	}
	tag := fmt.Sprintf("%s/%s:latest", repoURL, plan.App)

	if !deploySkip {
		logInfo("Building: %s", shellquote.Join(rt.Name(), "build", "--platform", "linux/amd64", "-t", tag, plan.Dir))
		if err := rt.Build(ctx, image.BuildOptions{
			ContextDir: plan.Dir,
			Tag:        tag,
			Platform:   "linux/amd64",
		}); err != nil {
			return errors.ImageError("build", err)
		}
		logSuccess("Built %s", tag)
	}

	// Stopping point: pushed images are visible to other roles.
	ok, err = confirm(fmt.Sprintf("Push %s to the registry?", tag), deployYes)
	if err != nil {
		return err
	}
	if !ok {
		logWarning("Deployment cancelled before push")
		return nil
	}

	cfg := getConfig()
	if cfg.User != "" && cfg.Password != "" {
		if err := rt.Login(ctx, cfg.RegistryHost(), cfg.User, cfg.Password); err != nil {
			return errors.ImageError("login", err)
		}
	}
	if err := rt.Push(ctx, tag); err != nil {
		return errors.ImageError("push", err)
	}
	logSuccess("Pushed %s", tag)

	s, err := spec.Render(spec.RenderOptions{
		Image: tag,
		Port:  plan.Port,
		Env: map[string]string{
			"SNOWFLAKE_ACCOUNT":   cfg.Account,
			"SNOWFLAKE_WAREHOUSE": cfg.Warehouse,
			"SNOWFLAKE_DATABASE":  cfg.Database,
			"SNOWFLAKE_SCHEMA":    cfg.Schema,
			"PORT":                fmt.Sprintf("%d", plan.Port),
		},
	})
	if err != nil {
		return errors.ServiceError("spec render", err)
	}

	exists, err := getSPCS().ServiceExists(ctx, plan.Service)
	if err != nil {
		return errors.ServiceError("lookup", err)
	}

	// Stopping point: this starts containers on the compute pool.
	action := "Create"
	if exists {
		action = "Upgrade"
	}
	ok, err = confirm(fmt.Sprintf("%s service %s in pool %s?", action, plan.Service, plan.Pool), deployYes)
	if err != nil {
		return err
	}
	if !ok {
		logWarning("Deployment cancelled before service %s", strings.ToLower(action))
		return nil
	}

	if exists {
		if err := getSPCS().UpgradeService(ctx, plan.Service, s); err != nil {
			return errors.ServiceError("upgrade", err)
		}
		logSuccess("Service %s upgraded", plan.Service)
	} else {
		if err := getSPCS().CreateService(ctx, spcs.CreateServiceOptions{
			Name:        plan.Service,
			ComputePool: plan.Pool,
			Spec:        s,
		}); err != nil {
			return errors.ServiceError("create", err)
		}
		logSuccess("Service %s created", plan.Service)
	}

	logInfo("Waiting for %s to become ready...", plan.Service)
	if err := getSPCS().WaitReady(ctx, plan.Service, 5*time.Second); err != nil {
		return errors.ServiceError("wait", err)
	}
	logSuccess("Service %s is ready", plan.Service)

	endpoints, err := getSPCS().ServiceEndpoints(ctx, plan.Service)
	if err != nil {
		return errors.ServiceError("endpoints", err)
	}
	for _, e := range endpoints {
		if e.IngressURL != "" {
			logSuccess("Endpoint %s: https://%s", e.Name, e.IngressURL)
		} else {
			logInfo("Endpoint %s on port %d is still provisioning; check 'snowkit service endpoints %s'", e.Name, e.Port, plan.Service)
		}
	}
	return nil
}
