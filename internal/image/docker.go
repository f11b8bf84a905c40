package image

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/meridian-data/snowkit/internal/logging"
	"github.com/meridian-data/snowkit/internal/system"
)

// DockerRuntime implements the Runtime interface by shelling out to
// Docker or Podman through the system executor.
type DockerRuntime struct {
	// Command is the container engine command (docker or podman)
	Command string

	// Executor runs engine commands; defaults to the system executor.
	Executor system.CommandExecutor
}

// NewDockerRuntime creates a runtime for the detected container engine.
func NewDockerRuntime() (*DockerRuntime, error) {
	command, err := Detect(system.DefaultExecutor())
	if err != nil {
		return nil, err
	}
	return &DockerRuntime{
		Command:  command,
		Executor: system.DefaultExecutor(),
	}, nil
}

// runCmd executes an engine command and folds stderr into the error.
func (r *DockerRuntime) runCmd(ctx context.Context, args ...string) (string, error) {
	out, err := r.Executor.Execute(ctx, r.Command, args...)
	if err != nil {
		return "", fmt.Errorf("%s %s failed: %s: %w", r.Command, args[0], strings.TrimSpace(string(out)), err)
	}
	return string(out), nil
}

// Name returns the engine identifier
func (r *DockerRuntime) Name() string {
	return r.Command
}

// Build builds an image from a context directory
func (r *DockerRuntime) Build(ctx context.Context, opts BuildOptions) error {
	args := []string{"build"}

	if opts.Platform != "" {
		args = append(args, "--platform", opts.Platform)
	}
	if opts.Dockerfile != "" {
		args = append(args, "-f", opts.Dockerfile)
	}
	if opts.Tag != "" {
		args = append(args, "-t", opts.Tag)
	}

	// Sorted for deterministic command lines.
	keys := make([]string, 0, len(opts.BuildArgs))
	for k := range opts.BuildArgs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "--build-arg", fmt.Sprintf("%s=%s", k, opts.BuildArgs[k]))
	}

	args = append(args, opts.ContextDir)

	logging.Debug("building image", "engine", r.Command, "tag", opts.Tag, "platform", opts.Platform)
	_, err := r.runCmd(ctx, args...)
	return err
}

// Tag applies an additional reference to an existing image
func (r *DockerRuntime) Tag(ctx context.Context, src, dst string) error {
	logging.Debug("tagging image", "src", src, "dst", dst)
	_, err := r.runCmd(ctx, "tag", src, dst)
	return err
}

// Push uploads an image reference to its registry
func (r *DockerRuntime) Push(ctx context.Context, ref string) error {
	logging.Debug("pushing image", "ref", ref)
	_, err := r.runCmd(ctx, "push", ref)
	return err
}

// Login authenticates against a registry with the secret on stdin.
func (r *DockerRuntime) Login(ctx context.Context, registry, user, secret string) error {
	logging.Debug("registry login", "registry", registry, "user", user)

	out, err := r.Executor.ExecuteWithStdin(ctx, secret,
		r.Command, "login", registry, "-u", user, "--password-stdin")
	if err != nil {
		return fmt.Errorf("%s login failed: %s: %w", r.Command, strings.TrimSpace(string(out)), err)
	}
	return nil
}

// Exists checks whether an image reference is present locally
func (r *DockerRuntime) Exists(ctx context.Context, ref string) (bool, error) {
	out, err := r.runCmd(ctx, "images", "-q", ref)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// Ensure DockerRuntime implements Runtime
var _ Runtime = (*DockerRuntime)(nil)
