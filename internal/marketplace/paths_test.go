package marketplace

import (
	"errors"
	"testing"
)

func TestBuildComponentPath(t *testing.T) {
	cases := map[ComponentType]string{
		TypeAgent:        "plugins/community/online/acme/agents/helper.md",
		TypeSkill:        "plugins/community/online/acme/skills/helper.md",
		TypeSlashCommand: "plugins/community/online/acme/slash_commands/helper.md",
		TypeHook:         "plugins/community/online/acme/hooks/helper.md",
		TypeMCPServer:    "plugins/community/online/acme/mcp_servers/helper.md",
		TypeWorkflow:     "plugins/community/online/acme/workflows/helper.md",
	}
	for typ, want := range cases {
		if got := BuildComponentPath("acme", typ, "helper"); got != want {
			t.Errorf("BuildComponentPath(%s) = %q, want %q", typ, got, want)
		}
	}
}

func TestPathRoundTrip(t *testing.T) {
	teams := []string{"acme", "decide-team", "a.b", "x"}
	nameList := []string{"helper", "hello-world", "v1.2", "with space"}
	for _, team := range teams {
		for _, typ := range ComponentTypes {
			for _, name := range nameList {
				p := BuildComponentPath(team, typ, name)
				gotTeam, ok := ExtractTeamFromPath(p)
				if !ok || gotTeam != team {
					t.Fatalf("ExtractTeamFromPath(%q) = %q, %v", p, gotTeam, ok)
				}
				gotType, ok := ComponentTypeFromPath(p)
				if !ok || gotType != typ {
					t.Fatalf("ComponentTypeFromPath(%q) = %q, %v", p, gotType, ok)
				}
			}
		}
	}
}

func TestPathInverse_Malformed(t *testing.T) {
	for _, p := range []string{
		"",
		"README.md",
		"plugins/community/online",
		"plugins/community/online/",
		"plugins/community/online/acme",
		"plugins/other/acme/agents/x.md",
	} {
		if team, ok := ExtractTeamFromPath(p); ok {
			t.Errorf("ExtractTeamFromPath(%q) = %q, want no team", p, team)
		}
	}
	if typ, ok := ComponentTypeFromPath("plugins/community/online/acme/widgets/x.md"); ok {
		t.Errorf("unknown segment resolved to %q", typ)
	}
}

func TestInstallCommands(t *testing.T) {
	p := "plugins/community/online/decide-team/agents/hello-world.md"
	if got := InstallCommand(p); got != "/pandora:install decide-team/agents/hello-world" {
		t.Fatalf("InstallCommand = %q", got)
	}
	if got := InstallAllCommand("decide-team", TypeSlashCommand); got != "/pandora:install decide-team/slash_commands/*" {
		t.Fatalf("InstallAllCommand = %q", got)
	}
}

func TestCanonicalPath(t *testing.T) {
	want := "plugins/community/online/acme/agents/helper.md"
	for _, in := range []string{
		want,
		"/" + want,
		"plugins/community/online/acme/agents/helper",
		"acme/agents/helper",
		"acme/agent/helper.md",
		"/pandora:install acme/agents/helper",
	} {
		got, err := CanonicalPath(in)
		if err != nil {
			t.Fatalf("CanonicalPath(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("CanonicalPath(%q) = %q, want %q", in, got, want)
		}
	}

	if got, err := CanonicalPath("acme/commands/deploy"); err != nil || got != "plugins/community/online/acme/slash_commands/deploy.md" {
		t.Fatalf("alias: %q, %v", got, err)
	}

	for _, bad := range []string{"", "acme/helper", "acme/widgets/x", "a/b/c/d"} {
		if _, err := CanonicalPath(bad); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("CanonicalPath(%q) err = %v, want ErrInvalidPath", bad, err)
		}
	}
}
