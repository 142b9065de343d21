package marketplace

import (
	"fmt"
	"strings"
)

// CommunityRoot is the repository directory holding every team's components.
const CommunityRoot = "plugins/community/online"

// InstallCommandPrefix is the assistant command that installs components.
const InstallCommandPrefix = "/pandora:install"

// BuildComponentPath returns the canonical repository path of a component:
// plugins/community/online/{team}/{plural}/{name}.md.
func BuildComponentPath(team string, t ComponentType, name string) string {
	return CommunityRoot + "/" + team + "/" + t.Plural() + "/" + name + ".md"
}

// splitPath returns the segments below CommunityRoot, or false when p does
// not start with it.
func splitPath(p string) ([]string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimPrefix(p, "/"), CommunityRoot+"/")
	if !ok {
		return nil, false
	}
	return strings.Split(rest, "/"), true
}

// ExtractTeamFromPath returns the team segment of a component path.
func ExtractTeamFromPath(p string) (string, bool) {
	segs, ok := splitPath(p)
	if !ok || len(segs) < 2 || segs[0] == "" {
		return "", false
	}
	return segs[0], true
}

// ComponentTypeFromPath returns the type encoded by the plural segment of a
// component path.
func ComponentTypeFromPath(p string) (ComponentType, bool) {
	segs, ok := splitPath(p)
	if !ok || len(segs) < 2 {
		return "", false
	}
	return typeFromPlural(segs[1])
}

// InstallCommand turns a component path into its install command, e.g.
// "/pandora:install acme/agents/helper".
func InstallCommand(p string) string {
	clean := strings.TrimPrefix(strings.TrimPrefix(p, "/"), CommunityRoot+"/")
	clean = strings.TrimSuffix(clean, ".md")
	return InstallCommandPrefix + " " + clean
}

// InstallAllCommand returns the command installing every component of type t
// from team.
func InstallAllCommand(team string, t ComponentType) string {
	return InstallCommandPrefix + " " + team + "/" + t.Plural() + "/*"
}

// CanonicalPath accepts a full component path, the short form
// "team/type/name" (type singular or plural, ".md" optional), or an install
// command, and returns the full path.
func CanonicalPath(arg string) (string, error) {
	s := strings.TrimSpace(arg)
	s = strings.TrimSpace(strings.TrimPrefix(s, InstallCommandPrefix))
	s = strings.TrimPrefix(s, "/")
	if s == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.HasPrefix(s, CommunityRoot+"/") {
		if !strings.HasSuffix(s, ".md") {
			s += ".md"
		}
		return s, nil
	}

	parts := strings.Split(s, "/")
	if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
		return "", fmt.Errorf("%w: %q (want team/type/name or %s/...)", ErrInvalidPath, arg, CommunityRoot)
	}
	t, err := ParseComponentType(parts[1])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	return BuildComponentPath(parts[0], t, strings.TrimSuffix(parts[2], ".md")), nil
}
