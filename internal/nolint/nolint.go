package nolint

import (
	"strings"
)

const (
	directive         = "implint-ignore"
	nextLineDirective = "implint-ignore-next-line"
)

// scope is one line a directive suppresses, with an optional rule
// filter. An empty rule set suppresses every rule.
type scope struct {
	rules map[string]struct{}
}

// Manager holds the suppressed lines of a single source file.
type Manager struct {
	lines map[int]scope
}

// Parse collects `implint-ignore` and `implint-ignore-next-line`
// comment directives. A directive may name the rules it silences
// (comma- or space-separated); a bare directive silences all of them.
// Only comment text is honored; directives inside string literals are
// ignored.
func Parse(src []byte) *Manager {
	m := &Manager{lines: make(map[int]scope)}

	for i, line := range strings.Split(string(src), "\n") {
		comment, ok := commentText(line)
		if !ok {
			continue
		}
		idx := strings.Index(comment, directive)
		if idx < 0 {
			continue
		}

		rest := comment[idx:]
		target := i + 1 // 1-based current line
		if strings.HasPrefix(rest, nextLineDirective) {
			rest = rest[len(nextLineDirective):]
			target = i + 2
		} else {
			rest = rest[len(directive):]
		}

		m.lines[target] = scope{rules: parseRules(rest)}
	}
	return m
}

// IsSuppressed reports whether the given rule is silenced on line.
func (m *Manager) IsSuppressed(line int, rule string) bool {
	if m == nil {
		return false
	}
	s, ok := m.lines[line]
	if !ok {
		return false
	}
	if len(s.rules) == 0 {
		return true
	}
	_, ok = s.rules[rule]
	return ok
}

// commentText returns the text of a // or /* comment on the line,
// skipping over string literals so quoted directives don't count.
func commentText(line string) (string, bool) {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '/':
			if i+1 < len(line) && (line[i+1] == '/' || line[i+1] == '*') {
				return line[i+2:], true
			}
		}
	}
	return "", false
}

func parseRules(rest string) map[string]struct{} {
	rest = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), "*/"))
	if rest == "" {
		return nil
	}
	rules := make(map[string]struct{})
	for _, field := range strings.FieldsFunc(rest, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	}) {
		rules[strings.TrimSpace(field)] = struct{}{}
	}
	return rules
}
