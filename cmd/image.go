package cmd

import (
	"fmt"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/meridian-data/snowkit/internal/errors"
	"github.com/meridian-data/snowkit/internal/image"
)

var (
	imageTag        string
	imageDockerfile string
	imagePlatform   string
	imageBuildArgs  []string
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Build and push container images for SPCS",
}

var imageBuildCmd = &cobra.Command{
	Use:   "build <dir>",
	Short: "Build an image from a project directory",
	Long: `build runs the detected container engine (docker or podman) against
the project's Dockerfile. SPCS nodes run linux/amd64, so builds default
to that platform.`,
	Args: cobra.ExactArgs(1),
	RunE: runImageBuild,
}

var imageTagCmd = &cobra.Command{
	Use:   "tag <src> <dst>",
	Short: "Apply an additional reference to a local image",
	Long: `tag points a new reference at an existing local image, typically to
retag a locally built image against the SPCS registry path before
pushing it.`,
	Args: cobra.ExactArgs(2),
	RunE: runImageTag,
}

var imagePushCmd = &cobra.Command{
	Use:   "push <ref>",
	Short: "Push an image to the SPCS registry",
	Args:  cobra.ExactArgs(1),
	RunE:  runImagePush,
}

var imageLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the account's SPCS registry",
	Args:  cobra.NoArgs,
	RunE:  runImageLogin,
}

func init() {
	imageBuildCmd.Flags().StringVarP(&imageTag, "tag", "t", "", "Image reference to apply (required)")
	imageBuildCmd.Flags().StringVar(&imageDockerfile, "dockerfile", "", "Dockerfile path relative to the context")
	imageBuildCmd.Flags().StringVar(&imagePlatform, "platform", "linux/amd64", "Target platform")
	imageBuildCmd.Flags().StringArrayVar(&imageBuildArgs, "build-arg", nil, "Build argument KEY=VALUE (repeatable)")
	imageBuildCmd.MarkFlagRequired("tag")

	imageCmd.AddCommand(imageBuildCmd, imageTagCmd, imagePushCmd, imageLoginCmd)
	rootCmd.AddCommand(imageCmd)
}

func runImageBuild(cmd *cobra.Command, args []string) error {
	rt, err := getRuntime()
	if err != nil {
		return err
	}

	buildArgs, err := parseEnvFlags(imageBuildArgs)
	if err != nil {
		return err
	}

	opts := image.BuildOptions{
		ContextDir: args[0],
		Dockerfile: imageDockerfile,
		Tag:        imageTag,
		Platform:   imagePlatform,
		BuildArgs:  buildArgs,
	}

	logInfo("Building with %s: %s", rt.Name(),
		shellquote.Join(rt.Name(), "build", "--platform", imagePlatform, "-t", imageTag, args[0]))

	if err := rt.Build(cmd.Context(), opts); err != nil {
		return errors.ImageError("build", err)
	}
	logSuccess("Built %s", imageTag)
	return nil
}

func runImageTag(cmd *cobra.Command, args []string) error {
	rt, err := getRuntime()
	if err != nil {
		return err
	}

	src, dst := args[0], args[1]
	exists, err := rt.Exists(cmd.Context(), src)
	if err != nil {
		return errors.ImageError("tag", err)
	}
	if !exists {
		return errors.ImageError("tag", fmt.Errorf("image %s not found locally; build it first", src))
	}

	if err := rt.Tag(cmd.Context(), src, dst); err != nil {
		return errors.ImageError("tag", err)
	}
	logSuccess("Tagged %s as %s", src, dst)
	return nil
}

func runImagePush(cmd *cobra.Command, args []string) error {
	rt, err := getRuntime()
	if err != nil {
		return err
	}

	ref := args[0]
	exists, err := rt.Exists(cmd.Context(), ref)
	if err != nil {
		return errors.ImageError("push", err)
	}
	if !exists {
		return errors.ImageError("push", fmt.Errorf("image %s not found locally; build it first", ref))
	}

	if err := rt.Push(cmd.Context(), ref); err != nil {
		return errors.ImageError("push", err)
	}
	logSuccess("Pushed %s", ref)
	return nil
}

func runImageLogin(cmd *cobra.Command, args []string) error {
	rt, err := getRuntime()
	if err != nil {
		return err
	}
	if err := requireConnection(); err != nil {
		return err
	}

	cfg := getConfig()
	if cfg.User == "" || cfg.Password == "" {
		return errors.ConfigError("registry login needs SNOWFLAKE_USER and SNOWFLAKE_PASSWORD", nil)
	}

	registry := cfg.RegistryHost()
	if err := rt.Login(cmd.Context(), registry, cfg.User, cfg.Password); err != nil {
		return errors.ImageError("login", err)
	}
	logSuccess("Logged in to %s", registry)
	return nil
}
