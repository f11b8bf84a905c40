package skills

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/meridian-data/snowkit/internal/config"
	"github.com/meridian-data/snowkit/internal/errors"
	"github.com/meridian-data/snowkit/internal/system"
)

// InstallDir is the per-project directory skills are installed into.
const InstallDir = ".claude/skills"

// skillFiles maps embedded template names to the installed skill name.
var skillFiles = map[string]string{
	"dashboard-builder.md.tmpl": "snowflake-dashboard",
	"spcs-deploy.md.tmpl":       "spcs-deploy",
}

// Skill is a rendered playbook.
type Skill struct {
	// Name identifies the skill; it doubles as the install directory.
	Name string

	// Description is the one-line summary from the frontmatter.
	Description string

	// Body is the markdown content without the frontmatter block.
	Body string

	// Raw is the complete document as installed, frontmatter included.
	Raw string
}

// Data is the rendering context for skill templates.
type Data struct {
	Account        string
	User           string
	Warehouse      string
	Database       string
	Schema         string
	TokenPath      string
	ComputePool    string
	InstanceFamily string
	MinNodes       int
	MaxNodes       int
	Repository     string
	ServiceName    string
	Port           int
	RegistryHost   string
	RepoPath       string
}

// DataFromConfig builds skill rendering data from the active configuration,
// substituting readable placeholders for unset values so rendered playbooks
// stay usable before a project is configured.
func DataFromConfig(cfg *config.Config) Data {
	d := Data{
		Account:        cfg.Account,
		User:           cfg.User,
		Warehouse:      cfg.Warehouse,
		Database:       cfg.Database,
		Schema:         cfg.Schema,
		TokenPath:      cfg.TokenPath,
		ComputePool:    cfg.Deploy.ComputePool,
		InstanceFamily: cfg.Deploy.InstanceFamily,
		MinNodes:       cfg.Deploy.MinNodes,
		MaxNodes:       cfg.Deploy.MaxNodes,
		Repository:     cfg.Deploy.Repository,
		ServiceName:    cfg.Deploy.ServiceName,
		Port:           cfg.Deploy.Port,
	}
	if d.Account == "" {
		d.Account = "<org>-<account>"
	}
	if d.Warehouse == "" {
		d.Warehouse = "MY_WAREHOUSE"
	}
	if d.Database == "" {
		d.Database = "MY_DB"
	}
	if d.Schema == "" {
		d.Schema = "PUBLIC"
	}
	if d.TokenPath == "" {
		d.TokenPath = config.DefaultTokenPath
	}
	if d.ComputePool == "" {
		d.ComputePool = "DASHBOARD_POOL"
	}
	if d.InstanceFamily == "" {
		d.InstanceFamily = "CPU_X64_XS"
	}
	if d.MinNodes == 0 {
		d.MinNodes = 1
	}
	if d.MaxNodes == 0 {
		d.MaxNodes = 1
	}
	if d.Repository == "" {
		d.Repository = "DASHBOARD_REPO"
	}
	if d.ServiceName == "" {
		d.ServiceName = "DASHBOARD_SERVICE"
	}
	if d.Port == 0 {
		d.Port = 3000
	}
	d.RegistryHost = cfg.RegistryHost()
	if cfg.Account == "" {
		d.RegistryHost = "<org>-<account>.registry.snowflakecomputing.com"
	}
	d.RepoPath = strings.ToLower(fmt.Sprintf("%s/%s/%s", d.Database, d.Schema, d.Repository))
	return d
}

// frontmatter is the YAML header every skill document carries.
type frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// parseSkill splits a rendered document into frontmatter and body.
func parseSkill(raw string) (*Skill, error) {
	rest, ok := strings.CutPrefix(raw, "---\n")
	if !ok {
		return nil, fmt.Errorf("skill document missing frontmatter")
	}
	header, body, ok := strings.Cut(rest, "\n---\n")
	if !ok {
		return nil, fmt.Errorf("skill document has unterminated frontmatter")
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return nil, fmt.Errorf("invalid skill frontmatter: %w", err)
	}
	if fm.Name == "" {
		return nil, fmt.Errorf("skill frontmatter missing name")
	}

	return &Skill{
		Name:        fm.Name,
		Description: fm.Description,
		Body:        strings.TrimLeft(body, "\n"),
		Raw:         raw,
	}, nil
}

// List renders every embedded skill, sorted by name.
func List(data Data) ([]Skill, error) {
	out := make([]Skill, 0, len(skillFiles))
	for tmpl := range skillFiles {
		s, err := parseSkill(renderTemplate(tmpl, data))
		if err != nil {
			return nil, fmt.Errorf("skill %s: %w", tmpl, err)
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Get returns the named skill.
func Get(name string, data Data) (*Skill, error) {
	all, err := List(data)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Name == name {
			return &all[i], nil
		}
	}
	return nil, errors.SkillNotFound(name)
}

// Install writes every skill into projectDir under .claude/skills/<name>/SKILL.md
// and returns the written paths. Existing skill files are overwritten so
// reinstalling refreshes stale playbooks.
func Install(fs system.FileSystem, projectDir string, data Data) ([]string, error) {
	all, err := List(data)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, s := range all {
		dir := filepath.Join(projectDir, InstallDir, s.Name)
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
		path := filepath.Join(dir, "SKILL.md")
		if err := fs.WriteFile(path, []byte(s.Raw), 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
