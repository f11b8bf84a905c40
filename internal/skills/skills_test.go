package skills

import (
	"strings"
	"testing"

	"github.com/meridian-data/snowkit/internal/config"
	"github.com/meridian-data/snowkit/internal/errors"
	"github.com/meridian-data/snowkit/internal/system"
)

func testData() Data {
	cfg := config.Default()
	cfg.Account = "myorg-myacct"
	cfg.Warehouse = "ANALYTICS_WH"
	cfg.Database = "SALES"
	cfg.Deploy.ComputePool = "SALES_POOL"
	cfg.Deploy.Repository = "SALES_REPO"
	cfg.Deploy.ServiceName = "SALES_SVC"
	return DataFromConfig(cfg)
}

func TestListRendersAllSkills(t *testing.T) {
	all, err := List(testData())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != len(skillFiles) {
		t.Fatalf("expected %d skills, got %d", len(skillFiles), len(all))
	}

	// Sorted by name.
	for i := 1; i < len(all); i++ {
		if all[i-1].Name > all[i].Name {
			t.Errorf("skills not sorted: %s before %s", all[i-1].Name, all[i].Name)
		}
	}

	for _, s := range all {
		if s.Description == "" {
			t.Errorf("skill %s has no description", s.Name)
		}
		if !strings.Contains(s.Body, "STOP") {
			t.Errorf("skill %s has no stopping points", s.Name)
		}
		if strings.Contains(s.Body, "---\nname:") {
			t.Errorf("skill %s body still contains frontmatter", s.Name)
		}
	}
}

func TestGetRendersConfiguration(t *testing.T) {
	s, err := Get("spcs-deploy", testData())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	for _, want := range []string{
		"SALES_POOL",
		"SALES_REPO",
		"SALES_SVC",
		"myorg-myacct.registry.snowflakecomputing.com",
		"sales/public/sales_repo",
	} {
		if !strings.Contains(s.Body, want) {
			t.Errorf("spcs-deploy body missing %q", want)
		}
	}
}

func TestGetUnknownSkill(t *testing.T) {
	_, err := Get("no-such-skill", testData())
	if err == nil {
		t.Fatal("expected error for unknown skill")
	}
	if errors.GetExitCode(err) != errors.ExitSkillNotFound {
		t.Errorf("expected skill-not-found exit code, got %d", errors.GetExitCode(err))
	}
}

func TestDataFromConfigPlaceholders(t *testing.T) {
	d := DataFromConfig(&config.Config{})
	if d.Account != "<org>-<account>" {
		t.Errorf("expected account placeholder, got %q", d.Account)
	}
	if d.TokenPath != config.DefaultTokenPath {
		t.Errorf("expected default token path, got %q", d.TokenPath)
	}
	if d.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", d.Port)
	}
}

func TestInstallWritesSkillFiles(t *testing.T) {
	fs := system.NewMockFileSystem()

	paths, err := Install(fs, "/work/app", testData())
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	if len(paths) != len(skillFiles) {
		t.Fatalf("expected %d paths, got %d", len(skillFiles), len(paths))
	}

	raw, err := fs.ReadFile("/work/app/.claude/skills/spcs-deploy/SKILL.md")
	if err != nil {
		t.Fatalf("reading installed skill: %v", err)
	}
	if !strings.HasPrefix(string(raw), "---\n") {
		t.Error("installed skill missing frontmatter")
	}
}

func TestInstallOverwritesExisting(t *testing.T) {
	fs := system.NewMockFileSystem()
	fs.AddFile("/work/app/.claude/skills/spcs-deploy/SKILL.md", []byte("stale"))

	if _, err := Install(fs, "/work/app", testData()); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	raw, _ := fs.ReadFile("/work/app/.claude/skills/spcs-deploy/SKILL.md")
	if string(raw) == "stale" {
		t.Error("expected reinstall to overwrite stale skill")
	}
}

func TestParseSkillErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no frontmatter", "# just markdown\n"},
		{"unterminated frontmatter", "---\nname: x\n"},
		{"missing name", "---\ndescription: d\n---\nbody\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseSkill(tt.raw); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}
