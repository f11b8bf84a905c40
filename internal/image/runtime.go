// Package image defines the container image workflow for snowkit.
// This abstraction allows for multiple engine implementations (docker,
// podman) and enables comprehensive testing through mocking.
package image

import "context"

// BuildOptions holds options for building an image.
type BuildOptions struct {
	// ContextDir is the build context directory.
	ContextDir string

	// Dockerfile is the path to the Dockerfile, relative to ContextDir.
	// Empty means the engine default.
	Dockerfile string

	// Tag is the image reference to apply.
	Tag string

	// Platform pins the target platform. SPCS nodes run linux/amd64,
	// so builds from arm64 workstations must cross-build.
	Platform string

	// BuildArgs are passed through as --build-arg KEY=VALUE.
	BuildArgs map[string]string
}

// Runtime is the interface container engines must implement.
// All methods should be safe for concurrent use.
type Runtime interface {
	// Name returns the engine identifier (e.g., "docker", "podman")
	Name() string

	// Build builds an image from a context directory
	Build(ctx context.Context, opts BuildOptions) error

	// Tag applies an additional reference to an existing image
	Tag(ctx context.Context, src, dst string) error

	// Push uploads an image reference to its registry
	Push(ctx context.Context, ref string) error

	// Login authenticates against a registry. The secret is passed on
	// stdin, never on the command line.
	Login(ctx context.Context, registry, user, secret string) error

	// Exists checks whether an image reference is present locally
	Exists(ctx context.Context, ref string) (bool, error)
}
