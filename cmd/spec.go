package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meridian-data/snowkit/internal/errors"
	"github.com/meridian-data/snowkit/internal/spec"
)

var (
	specImage     string
	specPort      int
	specContainer string
	specEndpoint  string
	specEnv       []string
	specCPU       string
	specMemory    string
	specReadiness string
	specOut       string
)

var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "Render and validate SPCS service specifications",
}

var specRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a single-container service specification",
	Args:  cobra.NoArgs,
	RunE:  runSpecRender,
}

var specValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a service specification file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSpecValidate,
}

func init() {
	specRenderCmd.Flags().StringVar(&specImage, "image", "", "Full registry path of the image (required)")
	specRenderCmd.Flags().IntVar(&specPort, "port", 0, "Application port (default: 3000)")
	specRenderCmd.Flags().StringVar(&specContainer, "container", "", "Container name (default: main)")
	specRenderCmd.Flags().StringVar(&specEndpoint, "endpoint", "", "Endpoint name (default: app)")
	specRenderCmd.Flags().StringArrayVar(&specEnv, "env", nil, "Environment variable KEY=VALUE (repeatable)")
	specRenderCmd.Flags().StringVar(&specCPU, "cpu", "", "CPU request (e.g. 1, 500m)")
	specRenderCmd.Flags().StringVar(&specMemory, "memory", "", "Memory request (e.g. 512Mi, 2Gi)")
	specRenderCmd.Flags().StringVar(&specReadiness, "readiness-path", "", "Readiness probe path (default: /)")
	specRenderCmd.Flags().StringVarP(&specOut, "output", "o", "", "Write to file instead of stdout")
	specRenderCmd.MarkFlagRequired("image")

	specCmd.AddCommand(specRenderCmd, specValidateCmd)
	rootCmd.AddCommand(specCmd)
}

// parseEnvFlags turns KEY=VALUE pairs into a map.
func parseEnvFlags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errors.ValidationError(fmt.Sprintf("invalid env %q: expected KEY=VALUE", pair))
		}
		env[key] = value
	}
	return env, nil
}

func runSpecRender(cmd *cobra.Command, args []string) error {
	env, err := parseEnvFlags(specEnv)
	if err != nil {
		return err
	}

	s, err := spec.Render(spec.RenderOptions{
		ContainerName: specContainer,
		Image:         specImage,
		Port:          specPort,
		EndpointName:  specEndpoint,
		Env:           env,
		CPU:           specCPU,
		Memory:        specMemory,
		ReadinessPath: specReadiness,
	})
	if err != nil {
		return errors.ServiceError("spec render", err)
	}

	if specOut != "" {
		if err := s.WriteFile(specOut); err != nil {
			return errors.ServiceError("spec write", err)
		}
		logSuccess("Specification written to %s", specOut)
		return nil
	}

	data, err := s.Marshal()
	if err != nil {
		return errors.ServiceError("spec render", err)
	}
	fmt.Print(string(data))
	return nil
}

func runSpecValidate(cmd *cobra.Command, args []string) error {
	if _, err := spec.LoadFile(args[0]); err != nil {
		return errors.ServiceError("spec validate", err)
	}
	logSuccess("%s is a valid service specification", args[0])
	return nil
}
