package marketplace

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_BareAndRecordAgree(t *testing.T) {
	var bare, rec ComponentEntry
	require.NoError(t, json.Unmarshal([]byte(`"x"`), &bare))
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x"}`), &rec))

	assert.Equal(t, Normalize(bare), Normalize(rec))
	assert.Equal(t, NormalizedEntry{Name: "x", Labels: []string{"general"}}, Normalize(bare))
}

func TestNormalize_Labels(t *testing.T) {
	assert.Equal(t, []string{"frontend", "testing"},
		Normalize(ComponentEntry{Name: "a", Labels: []string{"frontend", "testing"}}).Labels)
	assert.Equal(t, []string{"general"},
		Normalize(ComponentEntry{Name: "a", Labels: []string{}}).Labels)
	assert.Equal(t, []string{"general"},
		Normalize(ComponentEntry{Name: "a", Labels: []string{" ", ""}}).Labels)
}

func TestComponentEntry_Lenient(t *testing.T) {
	cases := []struct {
		in   string
		want ComponentEntry
	}{
		{`"helper"`, ComponentEntry{Name: "helper"}},
		{`{"name":"a","description":"d","labels":["x","y"]}`, ComponentEntry{Name: "a", Description: "d", Labels: []string{"x", "y"}}},
		{`{"name":"a","labels":"solo"}`, ComponentEntry{Name: "a", Labels: []string{"solo"}}},
		{`{"name":"a","labels":42}`, ComponentEntry{Name: "a"}},
		{`{"name":7}`, ComponentEntry{}},
		{`12`, ComponentEntry{}},
		{`null`, ComponentEntry{}},
	}
	for _, tc := range cases {
		var e ComponentEntry
		require.NoError(t, json.Unmarshal([]byte(tc.in), &e), tc.in)
		assert.Equal(t, tc.want, e, tc.in)
	}
}

func TestTeamManifest_MissingAndMalformedBuckets(t *testing.T) {
	doc := `{
		"team": "acme",
		"maintainers": ["ann"],
		"components": {
			"agents": ["helper", {"name": "reviewer", "labels": ["code-review"]}],
			"skills": [],
			"hooks": null,
			"workflows": "not-a-list"
		}
	}`
	var m TeamManifest
	require.NoError(t, json.Unmarshal([]byte(doc), &m))

	assert.Len(t, m.Components.Entries(TypeAgent), 2)
	for _, typ := range []ComponentType{TypeSkill, TypeHook, TypeWorkflow, TypeMCPServer, TypeSlashCommand} {
		assert.Empty(t, m.Components.Entries(typ), typ)
	}
	assert.Equal(t, 2, m.Components.Count())
}

func TestParseComponentType(t *testing.T) {
	cases := map[string]ComponentType{
		"agent":          TypeAgent,
		"Agents":         TypeAgent,
		"slash_command":  TypeSlashCommand,
		"slash-commands": TypeSlashCommand,
		"command":        TypeSlashCommand,
		"mcp":            TypeMCPServer,
		"mcp_servers":    TypeMCPServer,
		"workflow":       TypeWorkflow,
		" skill ":        TypeSkill,
		"hooks":          TypeHook,
	}
	for in, want := range cases {
		got, err := ParseComponentType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseComponentType("widget")
	assert.Error(t, err)
}

func TestComponentType_Titles(t *testing.T) {
	assert.Equal(t, "Command", TypeSlashCommand.Title())
	assert.Equal(t, "MCP Servers", TypeMCPServer.TitlePlural())
	assert.False(t, ComponentType("widget").Valid())
}
