package frontmatter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Delimiter is the line that opens and closes a frontmatter block.
const Delimiter = "---"

// Frontmatter is the open key/value metadata block of a component document.
// Values are string, []string or bool when produced by Parse; callers may
// also store numbers, which Serialize writes verbatim.
type Frontmatter map[string]any

// Document is a markdown document split into its metadata and body.
type Document struct {
	Frontmatter Frontmatter
	Content     string
}

type parseState int

const (
	stateBefore parseState = iota
	stateIn
	stateDone
)

// Parse splits raw into frontmatter and body.
//
// A block is recognized only when the very first line is the delimiter and a
// matching closing delimiter line follows. Without both, Parse returns an
// empty mapping and raw unchanged. Lines inside the block that are not
// key: value pairs are skipped.
func Parse(raw string) Document {
	s := strings.TrimPrefix(raw, "\ufeff")
	b := newBlock()

	state := stateBefore
	rest := s
	content := raw
	for state != stateDone {
		line, tail, more := cutLine(rest)
		switch state {
		case stateBefore:
			if !more || !isDelimiter(line) {
				return Document{Frontmatter: Frontmatter{}, Content: raw}
			}
			state = stateIn
		case stateIn:
			if isDelimiter(line) {
				content = tail
				state = stateDone
				continue
			}
			if !more {
				// Unterminated block.
				return Document{Frontmatter: Frontmatter{}, Content: raw}
			}
			b.addLine(line)
		}
		rest = tail
	}
	return Document{Frontmatter: b.fm, Content: content}
}

// Serialize writes fm as a frontmatter block followed by body. Keys are
// written in sorted order and string values that would read back as another
// type are quoted, so Parse(Serialize(fm, body)) returns fm and body.
func Serialize(fm Frontmatter, body string) string {
	keys := make([]string, 0, len(fm))
	for k := range fm {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(Delimiter + "\n")
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(formatValue(fm[k]))
		sb.WriteByte('\n')
	}
	sb.WriteString(Delimiter + "\n")
	sb.WriteString(body)
	return sb.String()
}

// cutLine returns the first line of s (without its newline), the remainder,
// and whether a newline was found.
func cutLine(s string) (line, rest string, more bool) {
	i := strings.IndexByte(s, '\n')
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+1:], true
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t\r") == Delimiter
}

// block accumulates key/value lines. listKey is set after a key with an
// empty value so that following "- item" lines become its list.
type block struct {
	fm      Frontmatter
	listKey string
}

func newBlock() *block {
	return &block{fm: Frontmatter{}}
}

func (b *block) addLine(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return
	}

	if item, ok := listItem(trimmed); ok {
		if b.listKey == "" {
			return
		}
		items, _ := b.fm[b.listKey].([]string)
		if item != "" {
			items = append(items, item)
		}
		if items == nil {
			items = []string{}
		}
		b.fm[b.listKey] = items
		return
	}
	b.listKey = ""

	key, value, ok := strings.Cut(trimmed, ":")
	if !ok {
		return
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" {
		return
	}
	if value == "" {
		b.fm[key] = ""
		b.listKey = key
		return
	}
	b.fm[key] = parseValue(value)
}

func listItem(trimmed string) (string, bool) {
	if trimmed == "-" {
		return "", true
	}
	rest, ok := strings.CutPrefix(trimmed, "- ")
	if !ok {
		return "", false
	}
	return unquote(strings.TrimSpace(rest)), true
}

func parseValue(v string) any {
	switch {
	case isQuoted(v):
		return unquote(v)
	case strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]"):
		return parseFlowList(v)
	case v == "true":
		return true
	case v == "false":
		return false
	}
	return v
}

func isQuoted(v string) bool {
	if len(v) < 2 {
		return false
	}
	first, last := v[0], v[len(v)-1]
	return (first == '"' && last == '"') || (first == '\'' && last == '\'')
}

func unquote(v string) string {
	if !isQuoted(v) {
		return v
	}
	if v[0] == '"' {
		if s, err := strconv.Unquote(v); err == nil {
			return s
		}
	}
	var s string
	if err := yaml.Unmarshal([]byte(v), &s); err == nil {
		return s
	}
	return v[1 : len(v)-1]
}

func parseFlowList(v string) []string {
	out := []string{}

	var items []any
	if err := yaml.Unmarshal([]byte(v), &items); err == nil {
		for _, it := range items {
			if it == nil {
				continue
			}
			out = append(out, fmt.Sprint(it))
		}
		return out
	}

	// Not valid YAML; fall back to a plain comma split.
	inner := strings.TrimSpace(v[1 : len(v)-1])
	for _, part := range strings.Split(inner, ",") {
		part = unquote(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return formatString(v)
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = strconv.Quote(s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func formatString(s string) string {
	if needsQuoting(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuoting(s string) bool {
	if s == "" || s != strings.TrimSpace(s) {
		return true
	}
	if s == "true" || s == "false" {
		return true
	}
	if strings.ContainsAny(s, "\n\r") {
		return true
	}
	switch s[0] {
	case '"', '\'', '[':
		return true
	}
	return false
}
