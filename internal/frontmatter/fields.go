package frontmatter

import (
	"fmt"
	"sort"
	"strings"
)

// Recognized keys. Any other key is carried through untouched.
const (
	KeyName         = "name"
	KeyDescription  = "description"
	KeyTools        = "tools"
	KeyModel        = "model"
	KeySkills       = "skills"
	KeyArgumentHint = "argument-hint"
	KeyAllowedTools = "allowed-tools"
	KeyVersion      = "version"
	KeyStatus       = "status"
)

var recognizedOrder = []string{
	KeyName,
	KeyDescription,
	KeyVersion,
	KeyStatus,
	KeyModel,
	KeyTools,
	KeyAllowedTools,
	KeySkills,
	KeyArgumentHint,
}

// String returns the value of key as text. Lists are joined with ", ".
func (f Frontmatter) String(key string) string {
	switch v := f[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// List returns the value of key as a list. A string value is split on commas
// and whitespace, matching how tool lists are usually written.
func (f Frontmatter) List(key string) []string {
	switch v := f[key].(type) {
	case []string:
		return v
	case string:
		return strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
	default:
		return nil
	}
}

// Name returns the "name" key.
func (f Frontmatter) Name() string { return f.String(KeyName) }

// Description returns the "description" key.
func (f Frontmatter) Description() string { return f.String(KeyDescription) }

// Keys returns the keys worth displaying: recognized keys first in a fixed
// order, then the rest alphabetically. Keys with empty values are left out.
func (f Frontmatter) Keys() []string {
	seen := make(map[string]bool, len(f))
	var out []string
	for _, k := range recognizedOrder {
		if _, ok := f[k]; ok && !isEmpty(f[k]) {
			out = append(out, k)
		}
		seen[k] = true
	}

	var extra []string
	for k, v := range f {
		if seen[k] || isEmpty(v) {
			continue
		}
		extra = append(extra, k)
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func isEmpty(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	}
	return false
}
