package parser

import (
	"regexp"
	"strings"
)

// delimiter matches a run of tabs or a run of two or more spaces. A single
// space is part of a token so multi-word course names survive.
var delimiter = regexp.MustCompile(`\t+| {2,}`)

// Tokenize splits a roster line into trimmed tokens.
func Tokenize(line string) []string {
	parts := delimiter.Split(line, -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		tokens = append(tokens, strings.TrimSpace(p))
	}
	return tokens
}
