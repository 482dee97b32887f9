package numeric

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Pattern order matters: more specific patterns claim their text span first,
// so "$96.8 billion" is not re-reported as the bare decimal "96.8".
var numberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)[$€£]\s?\d+(?:,\d{3})*(?:\.\d+)?\s?(?:trillion|billion|million|thousand|[tbmk]\b)?`),
	regexp.MustCompile(`\d+(?:\.\d+)?\s?%`),
	regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s(?:trillion|billion|million|thousand)\b`),
	regexp.MustCompile(`\d{1,3}(?:,\d{3})+`),
	regexp.MustCompile(`\d+\.\d+`),
	regexp.MustCompile(`\b(?:1[0-9]|20)\d{2}\b`),
	regexp.MustCompile(`\d{4,}`),
}

// yearPattern matches plain 4-digit years (1000-2099)
var yearPattern = regexp.MustCompile(`^(?:1[0-9]|20)\d{2}$`)

// magnitude suffixes, word forms before single letters so "billion" is not
// consumed as a trailing "n"
var magnitudes = []struct {
	suffix string
	factor float64
}{
	{"trillion", 1e12},
	{"billion", 1e9},
	{"million", 1e6},
	{"thousand", 1e3},
	{"t", 1e12},
	{"b", 1e9},
	{"m", 1e6},
	{"k", 1e3},
}

// ExtractNumbers scans text for quantities: currency amounts with magnitude
// suffixes, percentages, thousands-separated integers, decimals, bare
// "N billion"-style magnitudes, 4-digit years, and other 4+ digit integers.
// Returns de-duplicated lowercase raw matches in order of appearance.
// Empty text yields an empty list; never panics.
func ExtractNumbers(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	type match struct {
		start, end int
		text       string
	}

	var claimed []match
	overlaps := func(start, end int) bool {
		for _, c := range claimed {
			if start < c.end && c.start < end {
				return true
			}
		}
		return false
	}

	for _, re := range numberPatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if overlaps(loc[0], loc[1]) {
				continue
			}
			claimed = append(claimed, match{
				start: loc[0],
				end:   loc[1],
				text:  strings.ToLower(strings.TrimSpace(text[loc[0]:loc[1]])),
			})
		}
	}

	sort.Slice(claimed, func(i, j int) bool { return claimed[i].start < claimed[j].start })

	seen := make(map[string]bool)
	var out []string
	for _, m := range claimed {
		if !seen[m.text] {
			seen[m.text] = true
			out = append(out, m.text)
		}
	}
	return out
}

// NormalizeNumber converts a raw extracted number to a comparable float.
// Currency symbols and thousands separators are stripped; a trailing "%"
// returns the leading value unscaled; a trailing magnitude word or letter
// scales the value (t=1e12, b=1e9, m=1e6, k=1e3). Returns false for empty,
// whitespace-only, symbol-only, or non-numeric input.
func NormalizeNumber(raw string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, false
	}

	s = strings.NewReplacer("$", "", "€", "", "£", "", ",", "").Replace(s)
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "%")), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}

	multiplier := 1.0
	for _, m := range magnitudes {
		if strings.HasSuffix(s, m.suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, m.suffix))
			multiplier = m.factor
			break
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v * multiplier, true
}

// IsYear reports whether a raw extracted number is a plain 4-digit year.
// Years are skipped by the strict numeric-consistency pass: "in 2021" and a
// dollar amount should never fuzzy-match each other.
func IsYear(raw string) bool {
	return yearPattern.MatchString(strings.TrimSpace(raw))
}
