package parser

import (
	"strings"

	"github.com/rollbook-dev/rollbook/internal/model"
)

// DefaultHeaderPrefix marks a table header line, e.g. "S.No.\tCourse Code\t...".
const DefaultHeaderPrefix = "S.No"

// Parser turns roster text into attendance entries. It holds no mutable
// state and is safe for concurrent use.
type Parser struct {
	table        CourseTable
	matchers     []CodeMatcher
	headerPrefix string
}

// Option configures a Parser.
type Option func(*Parser)

// WithHeaderPrefix overrides the case-sensitive prefix of header lines.
func WithHeaderPrefix(prefix string) Option {
	return func(p *Parser) { p.headerPrefix = prefix }
}

// WithCodeMatchers replaces the code matching strategies. They are tried in order.
func WithCodeMatchers(matchers ...CodeMatcher) Option {
	return func(p *Parser) { p.matchers = matchers }
}

// New creates a Parser over the given course table.
func New(table CourseTable, opts ...Option) *Parser {
	p := &Parser{
		table:        table,
		matchers:     DefaultCodeMatchers(table),
		headerPrefix: DefaultHeaderPrefix,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is the outcome of parsing a block of text.
type Result struct {
	Entries []model.Entry
	Headers int
	Blank   int
	Dropped []string // non-blank, non-header lines with no known course code
}

// Parse returns the entries found in text, in line order. Duplicate codes
// yield separate entries. An empty result is not an error.
func (p *Parser) Parse(text string) []model.Entry {
	return p.ParseAll(text).Entries
}

// ParseAll is Parse plus bookkeeping about skipped and dropped lines.
func (p *Parser) ParseAll(text string) Result {
	var res Result
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			res.Blank++
			continue
		case p.headerPrefix != "" && strings.HasPrefix(line, p.headerPrefix):
			res.Headers++
			continue
		}

		entry, ok := p.ParseLine(line)
		if !ok {
			res.Dropped = append(res.Dropped, line)
			continue
		}
		res.Entries = append(res.Entries, entry)
	}
	return res
}

// ParseLine resolves a single data line. It does not skip headers.
func (p *Parser) ParseLine(line string) (model.Entry, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return model.Entry{}, false
	}
	tokens := Tokenize(line)

	code, ok := p.matchCode(line, tokens)
	if !ok {
		return model.Entry{}, false
	}
	course, ok := p.table.Lookup(code)
	if !ok {
		return model.Entry{}, false
	}

	return model.Entry{
		CourseCode: course.Code,
		CourseName: course.Name,
		Status:     ResolveStatus(line, tokens),
	}, true
}

func (p *Parser) matchCode(line string, tokens []string) (string, bool) {
	for _, m := range p.matchers {
		if code, ok := m.MatchCode(line, tokens); ok {
			return code, true
		}
	}
	return "", false
}
