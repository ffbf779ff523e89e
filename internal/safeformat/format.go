// Package safeformat renders resource paths from templates whose placeholders
// carry a type tag. Every substituted argument is checked against the character
// class of its tag before it reaches the output, so a caller-supplied value can
// never smuggle "/", "?" or ".." into a broker URL.
//
// Placeholder syntax is {N:type} or {:type}:
//
//	safeformat.Format("/objects/{:int}/tokens/{:hex}", 42, "a1b2")
//	// "/objects/42/tokens/a1b2"
//
// Types:
//
//	int, hex, ident|identifier, str|string
//
// Auto-indexed placeholders consume arguments left to right starting at 0,
// independently of explicitly indexed ones.
package safeformat

import (
	"fmt"
	"regexp"
	"strconv"
)

var placeholder = regexp.MustCompile(`\{(\d*):(\w+)\}`)

// classes maps a placeholder type to the pattern its argument must match.
// A nil pattern means the value is accepted as is.
var classes = map[string]*regexp.Regexp{
	"int":        regexp.MustCompile(`^\d+$`),
	"hex":        regexp.MustCompile(`^[a-fA-F\d]+$`),
	"ident":      regexp.MustCompile(`^[-\w]*$`),
	"identifier": regexp.MustCompile(`^[-\w]*$`),
	"str":        nil,
	"string":     nil,
}

// FormatError reports a template that cannot be rendered with the given
// arguments.
type FormatError struct {
	Pattern string
	Reason  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format %q: %s", e.Pattern, e.Reason)
}

// Format substitutes args into pattern. Literal text is copied unchanged.
func Format(pattern string, args ...any) (string, error) {
	matches := placeholder.FindAllStringSubmatchIndex(pattern, -1)
	if len(matches) == 0 {
		return pattern, nil
	}

	out := make([]byte, 0, len(pattern)+16)
	last, auto := 0, 0

	for _, m := range matches {
		out = append(out, pattern[last:m[0]]...)
		last = m[1]

		var idx int
		if m[2] == m[3] {
			idx = auto
			auto++
		} else {
			n, err := strconv.Atoi(pattern[m[2]:m[3]])
			if err != nil {
				return "", &FormatError{Pattern: pattern, Reason: "bad placeholder index"}
			}
			idx = n
		}
		if idx >= len(args) {
			return "", &FormatError{Pattern: pattern, Reason: fmt.Sprintf("argument index %d out of range", idx)}
		}

		kind := pattern[m[4]:m[5]]
		re, ok := classes[kind]
		if !ok {
			return "", &FormatError{Pattern: pattern, Reason: fmt.Sprintf("unknown placeholder type %q", kind)}
		}

		val := fmt.Sprint(args[idx])
		if re != nil && !re.MatchString(val) {
			return "", &FormatError{Pattern: pattern, Reason: fmt.Sprintf("argument %d (%q) is not a valid %s", idx, val, kind)}
		}
		out = append(out, val...)
	}

	out = append(out, pattern[last:]...)
	return string(out), nil
}
