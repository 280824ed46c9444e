package extraction

import (
	"regexp"
	"strings"
	"time"
)

const monthNames = `(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)`

// datePattern pairs a date-shaped regexp with the layouts tried on its match
type datePattern struct {
	re        *regexp.Regexp
	layouts   []string
	normalize func(string) string
}

// Order matters: the first pattern that both matches and parses wins.
var datePatterns = []datePattern{
	{
		re:      regexp.MustCompile(`(?i)\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
		layouts: []string{"1/2/2006"},
	},
	{
		// ambiguous day/month order and year width, resolved by layout order
		re:      regexp.MustCompile(`(?i)\b\d{1,2}-\d{1,2}-\d{2,4}\b`),
		layouts: []string{"1-2-2006", "2-1-2006", "1-2-06", "2-1-06"},
	},
	{
		re:      regexp.MustCompile(`(?i)\b\d{4}-\d{2}-\d{2}\b`),
		layouts: []string{dateLayout},
	},
	{
		re:        regexp.MustCompile(`(?i)\b` + monthNames + `[a-z]* \d{1,2},? \d{4}\b`),
		layouts:   []string{"Jan 2, 2006", "Jan 2 2006"},
		normalize: shortenMonth,
	},
	{
		re:        regexp.MustCompile(`(?i)\b\d{1,2} ` + monthNames + `[a-z]* \d{4}\b`),
		layouts:   []string{"2 Jan 2006"},
		normalize: shortenMonth,
	},
}

var monthWord = regexp.MustCompile(`(?i)\b` + monthNames + `[a-z]*`)

// shortenMonth rewrites "September" or "Sept" to "Sep" so a single layout fits
func shortenMonth(s string) string {
	return monthWord.ReplaceAllStringFunc(s, func(w string) string {
		return w[:3]
	})
}

// FindDate returns the first parseable date in text as YYYY-MM-DD
func FindDate(text string) Field[string] {
	for _, p := range datePatterns {
		match := p.re.FindString(text)
		if match == "" {
			continue
		}
		if p.normalize != nil {
			match = p.normalize(match)
		}
		if d, ok := parseDate(strings.TrimSpace(match), p.layouts); ok {
			return Some(d.Format(dateLayout))
		}
	}
	return None[string]()
}

func parseDate(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if d, err := time.Parse(layout, s); err == nil && d.Year() >= 1 {
			return d, true
		}
	}
	return time.Time{}, false
}
