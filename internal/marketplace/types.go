// Package marketplace models the community component catalog and builds the
// flattened, searchable view of it from the remote index and team manifests.
package marketplace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kamusis/pandora-cli/internal/frontmatter"
)

// ComponentType is the kind of a catalog component.
type ComponentType string

const (
	TypeAgent        ComponentType = "agent"
	TypeSkill        ComponentType = "skill"
	TypeSlashCommand ComponentType = "slash_command"
	TypeHook         ComponentType = "hook"
	TypeMCPServer    ComponentType = "mcp_server"
	TypeWorkflow     ComponentType = "workflow"
)

// ComponentTypes lists every type in flattening order.
var ComponentTypes = []ComponentType{
	TypeAgent,
	TypeSlashCommand,
	TypeSkill,
	TypeHook,
	TypeMCPServer,
	TypeWorkflow,
}

var pluralSegments = map[ComponentType]string{
	TypeAgent:        "agents",
	TypeSkill:        "skills",
	TypeSlashCommand: "slash_commands",
	TypeHook:         "hooks",
	TypeMCPServer:    "mcp_servers",
	TypeWorkflow:     "workflows",
}

var titles = map[ComponentType][2]string{
	TypeAgent:        {"Agent", "Agents"},
	TypeSkill:        {"Skill", "Skills"},
	TypeSlashCommand: {"Command", "Commands"},
	TypeHook:         {"Hook", "Hooks"},
	TypeMCPServer:    {"MCP Server", "MCP Servers"},
	TypeWorkflow:     {"Workflow", "Workflows"},
}

// Valid reports whether t is one of the six known types.
func (t ComponentType) Valid() bool {
	_, ok := pluralSegments[t]
	return ok
}

// Plural returns the directory segment and manifest key for t, e.g. "agents".
func (t ComponentType) Plural() string {
	return pluralSegments[t]
}

// Title returns the singular display name, e.g. "MCP Server".
func (t ComponentType) Title() string {
	return titles[t][0]
}

// TitlePlural returns the plural display name, e.g. "Commands".
func (t ComponentType) TitlePlural() string {
	return titles[t][1]
}

// ParseComponentType accepts a singular type, its plural segment, or one of
// the short aliases "command", "commands" and "mcp".
func ParseComponentType(s string) (ComponentType, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.ReplaceAll(v, "-", "_")
	switch v {
	case "command", "commands":
		return TypeSlashCommand, nil
	case "mcp":
		return TypeMCPServer, nil
	}
	if t := ComponentType(v); t.Valid() {
		return t, nil
	}
	if t, ok := typeFromPlural(v); ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown component type %q (want one of agent, slash_command, skill, hook, mcp_server, workflow)", s)
}

func typeFromPlural(seg string) (ComponentType, bool) {
	for t, p := range pluralSegments {
		if p == seg {
			return t, true
		}
	}
	return "", false
}

// CommunityIndex is the root document listing every participating team.
type CommunityIndex struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Version     string   `json:"version"`
	Teams       []string `json:"teams"`
}

// TeamManifest is a team's list of contributed components.
type TeamManifest struct {
	Team        string             `json:"team"`
	Description string             `json:"description"`
	Version     string             `json:"version"`
	Maintainers []string           `json:"maintainers"`
	Components  ManifestComponents `json:"components"`
}

// ManifestComponents holds one entry list per component type. Absent keys
// decode to empty lists.
type ManifestComponents struct {
	Agents        EntryList `json:"agents"`
	SlashCommands EntryList `json:"slash_commands"`
	Skills        EntryList `json:"skills"`
	Hooks         EntryList `json:"hooks"`
	MCPServers    EntryList `json:"mcp_servers"`
	Workflows     EntryList `json:"workflows"`
}

// Entries returns the bucket for t.
func (c ManifestComponents) Entries(t ComponentType) []ComponentEntry {
	switch t {
	case TypeAgent:
		return c.Agents
	case TypeSlashCommand:
		return c.SlashCommands
	case TypeSkill:
		return c.Skills
	case TypeHook:
		return c.Hooks
	case TypeMCPServer:
		return c.MCPServers
	case TypeWorkflow:
		return c.Workflows
	}
	return nil
}

// Count returns the total number of entries across every bucket.
func (c ManifestComponents) Count() int {
	n := 0
	for _, t := range ComponentTypes {
		n += len(c.Entries(t))
	}
	return n
}

// EntryList is a manifest bucket. Anything other than a JSON array decodes
// to an empty list.
type EntryList []ComponentEntry

// UnmarshalJSON implements json.Unmarshaler.
func (l *EntryList) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		*l = nil
		return nil
	}
	out := make(EntryList, 0, len(raw))
	for _, r := range raw {
		var e ComponentEntry
		if err := json.Unmarshal(r, &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	*l = out
	return nil
}

// ComponentEntry is one manifest entry. On the wire it is either a bare name
// string or an object {name, description?, labels?}.
type ComponentEntry struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Labels      []string `json:"labels,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler. Fields of the wrong type are
// ignored rather than failing the whole manifest.
func (e *ComponentEntry) UnmarshalJSON(b []byte) error {
	*e = ComponentEntry{}
	b = bytes.TrimSpace(b)

	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		e.Name = name
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		// Numbers, booleans, null: leave the zero entry.
		return nil
	}
	if v, ok := obj["name"]; ok {
		_ = json.Unmarshal(v, &e.Name)
	}
	if v, ok := obj["description"]; ok {
		_ = json.Unmarshal(v, &e.Description)
	}
	if v, ok := obj["labels"]; ok {
		var labels []string
		if err := json.Unmarshal(v, &labels); err == nil {
			e.Labels = labels
		} else {
			var one string
			if err := json.Unmarshal(v, &one); err == nil && one != "" {
				e.Labels = []string{one}
			}
		}
	}
	return nil
}

// FlatComponent is one row of the searchable index.
type FlatComponent struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Type        ComponentType `json:"type"`
	TeamName    string        `json:"teamName"`
	Path        string        `json:"path"`
	Labels      []string      `json:"labels"`
}

// HasLabel reports whether c carries any of labels.
func (c FlatComponent) HasLabel(labels map[string]bool) bool {
	for _, l := range c.Labels {
		if labels[l] {
			return true
		}
	}
	return false
}

// ParsedComponent is a fetched component document with its metadata.
type ParsedComponent struct {
	Frontmatter frontmatter.Frontmatter `json:"frontmatter"`
	Content     string                  `json:"content"`
	Path        string                  `json:"path"`
	Type        ComponentType           `json:"type"`
	TeamName    string                  `json:"teamName"`
}
