package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Normalizers are pure string functions shared by the site extractors. None
// of them can fail: a malformed input yields an empty string/slice, never an
// error. The poller relies on this to keep one bad cell from costing a cycle.

var (
	// DashSlash matches "LPA - 500 / 2025" style case numbers.
	DashSlash = regexp.MustCompile(`-\s*(\d+)\s*/`)
	// SlashSlash matches "MAT/67/2026" and "CRMP / 3087 / 2025" style case
	// numbers.
	SlashSlash = regexp.MustCompile(`/\s*(\d+)\s*/`)
	// Slash matches a number directly after a slash, "WPA/444".
	Slash = regexp.MustCompile(`/\s*(\d+)`)
	// DotSlash matches "WP.1083/2026" style case numbers.
	DotSlash = regexp.MustCompile(`\.?(\d+)/`)
	// CaseToken matches a full "TYPE/number/year" case token.
	CaseToken = regexp.MustCompile(`([A-Z]+/\d+/\d+)`)

	anyNumber     = regexp.MustCompile(`\b(\d+)\b`)
	digitRun      = regexp.MustCompile(`(\d+)`)
	leadingNumber = regexp.MustCompile(`^\s*(\d+)`)
	serialRange   = regexp.MustCompile(`(\d+)-(\d+)`)
	versusSplit   = regexp.MustCompile(`\s+[Vv][Ss][.]?\s+`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// CleanText collapses runs of whitespace (including newlines from nested
// markup) into single spaces and trims the ends.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// CaseNumberNumeric pulls the numeric part out of a composite case number
// using the site's preferred patterns in order, falling back to the first
// bounded number found anywhere. Returns "" when the string holds no digits.
//
//	"LPA - 500 / 2025" with DashSlash  -> "500"
//	"MAT/67/2026"      with SlashSlash -> "67"
//	"WP.1083/2026"     with DotSlash   -> "1083"
func CaseNumberNumeric(caseFull string, patterns ...*regexp.Regexp) string {
	caseFull = strings.TrimSpace(caseFull)
	if caseFull == "" {
		return ""
	}
	for _, re := range patterns {
		if m := re.FindStringSubmatch(caseFull); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	if m := anyNumber.FindStringSubmatch(caseFull); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ItemNumberNumeric extracts the numeric part of a day-list item number.
// "A23" -> "23", "O50" -> "50"; the placeholder "*" (empty slot) yields "".
func ItemNumberNumeric(item string) string {
	item = strings.TrimSpace(item)
	if item == "" || item == "*" {
		return ""
	}
	if m := digitRun.FindStringSubmatch(item); m != nil {
		return m[1]
	}
	return ""
}

// LeadingNumber extracts a number at the start of the string, "" otherwise.
// Used for court identifiers like "1 (FIRST COURT)".
func LeadingNumber(s string) string {
	if m := leadingNumber.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// SerialRange expands a serial display like "AD 27-31" into the inclusive
// list [27 28 29 30 31]. A single bounded number ("AD 7") yields a one-element
// list. Empty or unparseable input yields an empty list. A reversed range
// (N > M) yields an empty list rather than guessing.
func SerialRange(serial string) []int {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return nil
	}
	if m := serialRange.FindStringSubmatch(serial); m != nil {
		start, err1 := strconv.Atoi(m[1])
		end, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil || start > end {
			return nil
		}
		out := make([]int, 0, end-start+1)
		for n := start; n <= end; n++ {
			out = append(out, n)
		}
		return out
	}
	if m := anyNumber.FindStringSubmatch(serial); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}
		return []int{n}
	}
	return nil
}

// SplitCauseTitle splits a cause title on the "Vs" separator into petitioner
// and respondent. Without a separator the whole title is the petitioner.
func SplitCauseTitle(title string) (petitioner, respondent string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ""
	}
	parts := versusSplit.Split(title, 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return title, ""
}
