package parser

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rollbook-dev/rollbook/internal/model"
)

// CourseTable is the known course table the parser resolves codes against.
type CourseTable interface {
	Lookup(code string) (model.Course, bool)
	// Codes returns every known code in a stable order.
	Codes() []string
}

// CodeMatcher is one strategy for finding a course code in a line.
type CodeMatcher interface {
	MatchCode(line string, tokens []string) (string, bool)
}

// ExactTokenMatcher selects the first token equal to a known course code.
type ExactTokenMatcher struct {
	Table CourseTable
}

// MatchCode implements CodeMatcher.
func (m ExactTokenMatcher) MatchCode(_ string, tokens []string) (string, bool) {
	for _, tok := range tokens {
		if _, ok := m.Table.Lookup(tok); ok {
			return tok, true
		}
	}
	return "", false
}

// SubstringMatcher selects the first known code, in table order, that occurs
// anywhere in the raw line.
type SubstringMatcher struct {
	Table CourseTable
}

// MatchCode implements CodeMatcher.
func (m SubstringMatcher) MatchCode(line string, _ []string) (string, bool) {
	for _, code := range m.Table.Codes() {
		if strings.Contains(line, code) {
			return code, true
		}
	}
	return "", false
}

// DefaultCodeMatchers returns the exact-token strategy followed by the
// substring strategy.
func DefaultCodeMatchers(table CourseTable) []CodeMatcher {
	return []CodeMatcher{
		ExactTokenMatcher{Table: table},
		SubstringMatcher{Table: table},
	}
}

// MatchStatusToken returns the first token equal to "present" or "absent",
// ignoring case.
func MatchStatusToken(tokens []string) (model.Status, bool) {
	for _, tok := range tokens {
		lower := strings.ToLower(tok)
		if lower == "present" || lower == "absent" {
			return normalizeStatus(lower), true
		}
	}
	return "", false
}

// MatchStatusSubstring looks for "present", then "absent", anywhere in the
// line. A line with neither counts as Present.
func MatchStatusSubstring(line string) model.Status {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "present"):
		return model.StatusPresent
	case strings.Contains(lower, "absent"):
		return model.StatusAbsent
	default:
		return model.StatusPresent
	}
}

// ResolveStatus applies the token strategy, then the substring strategy.
func ResolveStatus(line string, tokens []string) model.Status {
	if s, ok := MatchStatusToken(tokens); ok {
		return s
	}
	return MatchStatusSubstring(line)
}

func normalizeStatus(s string) model.Status {
	// Casers carry state, so each call gets its own.
	return model.Status(cases.Title(language.English).String(s))
}
