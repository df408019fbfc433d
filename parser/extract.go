// Package parser turns command argument strings of the form
//
//	SUBJECT [prefix/value ...]
//
// into typed field sets. A value runs from its prefix to the next
// whitespace-separated word/ token, so values may contain spaces. A word/
// token the command does not accept is a format error.
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"bookkeeper/library"
)

// Field prefixes.
const (
	Author    = "a/"
	Category  = "cat/"
	Condition = "cond/"
	Location  = "loc/"
	Note      = "note/"
	Borrower  = "n/"
	Date      = "d/"
	Phone     = "p/"
	Email     = "e/"
	NewTitle  = "new/"
)

var (
	// A new field starts at whitespace followed by word/.
	fieldStartRe = regexp.MustCompile(`\s+(\w+/)`)
	prefixRe     = regexp.MustCompile(`^\w+/`)
)

// Schema describes one command shape.
type Schema struct {
	Command  string
	Usage    string
	Required []string
	Optional []string
	// AtLeastOne demands that at least one optional field is present.
	AtLeastOne bool
}

func (s Schema) known(prefix string) bool {
	for _, p := range s.Required {
		if p == prefix {
			return true
		}
	}
	for _, p := range s.Optional {
		if p == prefix {
			return true
		}
	}
	return false
}

func (s Schema) formatError() error {
	return fmt.Errorf("%w for %s.\nExpected format: %s", library.ErrIncorrectFormat, s.Command, s.Usage)
}

func (s Schema) duplicateError(prefix string) error {
	return fmt.Errorf("%w for %s. Duplicate prefix %s\nExpected format: %s",
		library.ErrIncorrectFormat, s.Command, prefix, s.Usage)
}

// Args is the result of Extract.
type Args struct {
	Subject string
	values  map[string]string
}

// Get returns the trimmed value of prefix, or "" when it was not given.
func (a Args) Get(prefix string) string { return a.values[prefix] }

// Has reports whether prefix appeared in the input.
func (a Args) Has(prefix string) bool {
	_, ok := a.values[prefix]
	return ok
}

// Extract splits input according to s.
func Extract(s Schema, input string) (Args, error) {
	tokens := split(strings.TrimSpace(input))

	subject := strings.TrimSpace(tokens[0])
	if subject == "" {
		return Args{}, s.formatError()
	}
	if p := prefixRe.FindString(subject); p != "" && s.known(p) {
		return Args{}, s.formatError()
	}

	args := Args{Subject: subject, values: make(map[string]string, len(tokens)-1)}
	for _, tok := range tokens[1:] {
		tok = strings.TrimSpace(tok)
		p := prefixRe.FindString(tok)
		if p == "" || !s.known(p) {
			return Args{}, s.formatError()
		}
		if args.Has(p) {
			return Args{}, s.duplicateError(p)
		}
		args.values[p] = strings.TrimSpace(tok[len(p):])
	}

	for _, p := range s.Required {
		if args.Get(p) == "" {
			return Args{}, s.formatError()
		}
	}
	if s.AtLeastOne {
		given := false
		for _, p := range s.Optional {
			if args.Get(p) != "" {
				given = true
				break
			}
		}
		if !given {
			return Args{}, fmt.Errorf("%w for %s.\nNo fields provided for edits\nExpected format: %s",
				library.ErrIncorrectFormat, s.Command, s.Usage)
		}
	}
	return args, nil
}

// split cuts s before every run of whitespace that is followed by a word/
// token. The first element is everything before the first such token.
func split(s string) []string {
	var tokens []string
	start := 0
	for _, m := range fieldStartRe.FindAllStringSubmatchIndex(s, -1) {
		tokens = append(tokens, s[start:m[0]])
		start = m[2]
	}
	return append(tokens, s[start:])
}
