// Package skills ships the snowkit agent playbooks as installable skills.
//
// Each skill is a markdown document with YAML frontmatter (name,
// description) followed by an ordered checklist an AI coding agent can
// follow. Bodies contain explicit STOP markers where the agent must pause
// and ask the user for confirmation before continuing.
//
// Skills are embedded as templates and rendered against the active
// project configuration, so installed playbooks carry the user's actual
// account, warehouse, and deployment names instead of placeholders.
//
// Usage:
//
//	data := skills.DataFromConfig(cfg)
//	all, _ := skills.List(data)
//	paths, _ := skills.Install(fs, "/path/to/project", data)
//
// Install writes each skill to .claude/skills/<name>/SKILL.md inside the
// target project.
package skills
