// Package datex normalizes the date expressions accepted by the broker client.
//
// A value can be an absolute timestamp ("2010-10-05 15:40", ISO-8601 in
// extended or basic form), a relative expression ("+15 minutes",
// "+1 month 2 days", "tomorrow"), or an ISO-8601 period ("P1D") which the
// backend understands natively and is forwarded untouched apart from the
// leading designator.
package datex

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"github.com/tj/go-naturaldate"
)

// Output layouts.
const (
	ISO      = time.RFC3339
	ISOBasic = "20060102T150405-0700"
	Human    = "January 2, 2006 at 15:04:05 -0700"
)

// Never is what ToHuman renders for an absent date.
const Never = "never"

var ErrUnparsable = errors.New("unparsable date")

// nowFn is the clock used for relative expressions. Tests replace it.
var nowFn = time.Now

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"20060102T150405-0700",
	"20060102T150405-07",
	"20060102T150405Z0700",
	"20060102T150405",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05-07",
}

// Format normalizes value into layout. An empty value is replaced by
// fallback; if both are empty the result is empty. Periods (a leading "P" or
// "p") get the designator replaced by "+" and are otherwise left as they are.
func Format(layout, value, fallback string) (string, error) {
	out, err := FormatAll(value, fallback, layout)
	if err != nil {
		return "", err
	}
	return out[0], nil
}

// FormatAll is Format for several layouts at once. The expression is resolved
// a single time, so "+15 minutes" yields the same instant in every layout.
func FormatAll(value, fallback string, layouts ...string) ([]string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = strings.TrimSpace(fallback)
	}
	out := make([]string, len(layouts))
	if value == "" {
		return out, nil
	}
	if value[0] == 'P' || value[0] == 'p' {
		for i := range out {
			out[i] = "+" + value[1:]
		}
		return out, nil
	}

	t, err := Parse(value)
	if err != nil {
		return nil, err
	}
	for i, layout := range layouts {
		out[i] = t.Format(layout)
	}
	return out, nil
}

func ToISO(value, fallback string) (string, error) {
	return Format(ISO, value, fallback)
}

func ToISOBasic(value, fallback string) (string, error) {
	return Format(ISOBasic, value, fallback)
}

// ToHuman renders value for display, or Never when there is nothing to show.
func ToHuman(value, fallback string) (string, error) {
	if strings.TrimSpace(value) == "" && strings.TrimSpace(fallback) == "" {
		return Never, nil
	}
	return Format(Human, value, fallback)
}

// Parse resolves a relative or absolute date expression against the current
// clock. Relative and natural-language forms ("+15 minutes", "1 day",
// "3 days ago", "next month") are resolved as future dates unless they say
// otherwise.
func Parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	ref := nowFn()

	if t, ok := parseCasual(ref, value); ok {
		return t, nil
	}

	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, value, ref.Location()); err == nil {
			return t, nil
		}
	}

	if value != "" && (value[0] == '+' || value[0] == '-') {
		if t, ok := parseSigned(ref, value); ok {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparsable, value)
	}

	if t, err := now.With(ref).Parse(value); err == nil {
		return t, nil
	}

	// an expression naturaldate ignores comes back as ref
	t, err := naturaldate.Parse(value, ref, naturaldate.WithDirection(naturaldate.Future))
	if err != nil || t.Equal(ref) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparsable, value)
	}
	return t, nil
}

// parseCasual handles now, today, tomorrow and yesterday, optionally followed
// by a time of day ("tomorrow 12:00", "today at 9:30").
func parseCasual(ref time.Time, value string) (time.Time, bool) {
	word, rest, _ := strings.Cut(value, " ")
	rest = strings.TrimSpace(rest)

	var day time.Time
	switch strings.ToLower(word) {
	case "now":
		if rest != "" {
			return time.Time{}, false
		}
		return ref, true
	case "today":
		day = now.With(ref).BeginningOfDay()
	case "tomorrow":
		day = now.With(ref.AddDate(0, 0, 1)).BeginningOfDay()
	case "yesterday":
		day = now.With(ref.AddDate(0, 0, -1)).BeginningOfDay()
	default:
		return time.Time{}, false
	}

	rest = strings.TrimSpace(strings.TrimPrefix(rest, "at "))
	if rest == "" {
		return day, true
	}
	t, err := now.With(day).Parse(rest)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

var (
	signedTerm  = regexp.MustCompile(`([+-]?)\s*(\d+)\s*([a-zA-Z]+)`)
	unitAliases = map[string]string{
		"sec":  "seconds",
		"secs": "seconds",
		"min":  "minutes",
		"mins": "minutes",
	}
)

// parseSigned resolves sequences such as "+1 month 2 days" or "-3 hours" one
// term at a time. A sign carries over to the following terms until another
// sign appears.
func parseSigned(ref time.Time, value string) (time.Time, bool) {
	if strings.TrimSpace(signedTerm.ReplaceAllString(value, "")) != "" {
		return time.Time{}, false
	}

	t := ref
	dir := naturaldate.Future
	for _, m := range signedTerm.FindAllStringSubmatch(value, -1) {
		switch m[1] {
		case "+":
			dir = naturaldate.Future
		case "-":
			dir = naturaldate.Past
		}
		unit := strings.ToLower(m[3])
		if alias, ok := unitAliases[unit]; ok {
			unit = alias
		}

		next, err := naturaldate.Parse(m[2]+" "+unit, t, naturaldate.WithDirection(dir))
		if err != nil || next.Equal(t) {
			return time.Time{}, false
		}
		t = next
	}
	return t, true
}
