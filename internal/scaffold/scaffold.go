package scaffold

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/meridian-data/snowkit/internal/logging"
	"github.com/meridian-data/snowkit/internal/system"
)

// appNameRegex validates npm package names the scaffold accepts.
var appNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{0,213}$`)

// Options holds the scaffold inputs.
type Options struct {
	// Dir is the target project directory; created if missing.
	Dir string

	// AppName is the npm package name.
	AppName string

	// Snowflake context baked into the generated env file.
	Account   string
	Warehouse string
	Database  string
	Schema    string

	// Port the dashboard listens on.
	Port int

	// PackageManager is npm, pnpm, or yarn. Empty means detect.
	PackageManager string

	// Install runs the package manager install step after generation.
	Install bool
}

// Result reports what the scaffold produced.
type Result struct {
	Dir            string
	Files          []string
	PackageManager string
	InstallRun     bool
}

// templateData is the rendering context shared by all project templates.
type templateData struct {
	AppName   string
	Account   string
	Warehouse string
	Database  string
	Schema    string
	Port      int
}

// projectFiles maps template names to their path in the project.
var projectFiles = map[string]string{
	"package.json.tmpl":    "package.json",
	"next.config.mjs.tmpl": "next.config.mjs",
	"env.local.tmpl":       ".env.local",
	"gitignore.tmpl":       ".gitignore",
	"dockerignore.tmpl":    ".dockerignore",
	"Dockerfile.tmpl":      "Dockerfile",
	"layout.jsx.tmpl":      "src/app/layout.jsx",
	"page.jsx.tmpl":        "src/app/page.jsx",
	"route.js.tmpl":        "src/app/api/query/route.js",
	"snowflake.js.tmpl":    "src/lib/snowflake.js",
}

// Scaffolder generates dashboard projects.
type Scaffolder struct {
	FS   system.FileSystem
	Exec system.CommandExecutor
}

// NewScaffolder creates a scaffolder using the default OS implementations.
func NewScaffolder() *Scaffolder {
	return &Scaffolder{
		FS:   system.DefaultFS(),
		Exec: system.DefaultExecutor(),
	}
}

// Scaffold generates the project files and optionally installs
// dependencies.
func (s *Scaffolder) Scaffold(ctx context.Context, opts Options) (*Result, error) {
	if opts.AppName == "" {
		opts.AppName = filepath.Base(opts.Dir)
	}
	if !appNameRegex.MatchString(opts.AppName) {
		return nil, fmt.Errorf("invalid app name %q: must be a valid npm package name", opts.AppName)
	}
	if opts.Port == 0 {
		opts.Port = 3000
	}

	pm := opts.PackageManager
	if pm == "" {
		pm = s.detectPackageManager(opts.Dir)
	}
	if pm != "npm" && pm != "pnpm" && pm != "yarn" {
		return nil, fmt.Errorf("unsupported package manager %q", pm)
	}

	data := templateData{
		AppName:   opts.AppName,
		Account:   opts.Account,
		Warehouse: opts.Warehouse,
		Database:  opts.Database,
		Schema:    opts.Schema,
		Port:      opts.Port,
	}

	result := &Result{Dir: opts.Dir, PackageManager: pm}

	for tmpl, rel := range projectFiles {
		// SecureJoin keeps generated paths inside the project even if a
		// template mapping ever carries traversal segments.
		path, err := securejoin.SecureJoin(opts.Dir, rel)
		if err != nil {
			return nil, fmt.Errorf("invalid project path %q: %w", rel, err)
		}

		if s.FS.Exists(path) {
			return nil, fmt.Errorf("refusing to overwrite existing file %s", path)
		}

		if err := s.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
		}

		content := renderTemplate(tmpl, data)
		if err := s.FS.WriteFile(path, []byte(content), 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		result.Files = append(result.Files, rel)
	}

	logging.Debug("project generated", "dir", opts.Dir, "files", len(result.Files), "pm", pm)

	if opts.Install {
		if err := s.install(ctx, opts.Dir, pm); err != nil {
			return result, err
		}
		result.InstallRun = true
	}

	return result, nil
}

// detectPackageManager picks the package manager by lockfile, then by
// availability, preferring npm as the playbook default.
func (s *Scaffolder) detectPackageManager(dir string) string {
	switch {
	case s.FS.Exists(filepath.Join(dir, "pnpm-lock.yaml")):
		return "pnpm"
	case s.FS.Exists(filepath.Join(dir, "yarn.lock")):
		return "yarn"
	case s.FS.Exists(filepath.Join(dir, "package-lock.json")):
		return "npm"
	}

	for _, pm := range []string{"npm", "pnpm", "yarn"} {
		if _, err := s.Exec.LookPath(pm); err == nil {
			return pm
		}
	}
	return "npm"
}

// install runs the package manager install step in the project directory.
func (s *Scaffolder) install(ctx context.Context, dir, pm string) error {
	logging.Debug("installing dependencies", "pm", pm, "dir", dir)

	var args []string
	switch pm {
	case "npm":
		args = []string{"install", "--prefix", dir}
	case "pnpm":
		args = []string{"install", "--dir", dir}
	case "yarn":
		args = []string{"--cwd", dir, "install"}
	}

	out, err := s.Exec.Execute(ctx, pm, args...)
	if err != nil {
		return fmt.Errorf("%s install failed: %s: %w", pm, string(out), err)
	}
	return nil
}
