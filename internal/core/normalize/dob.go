package normalize

import (
	"fmt"
	"strings"
)

// DOBCandidates produces the set of canonical YYYYMMDD interpretations of a
// date-of-birth input. Eight digits with no leading plausible year are
// ambiguous between day-first and month-first ordering, so both readings are
// emitted and matching is done on set intersection rather than a single
// guessed form.
//
// Validation is range-only (month 1-12, day 1-31); month lengths and leap
// years are deliberately not checked.
func DOBCandidates(v any) []string {
	switch d := v.(type) {
	case nil:
		return nil
	case map[string]any:
		return structuredCandidate(d)
	}

	raw := strings.TrimSpace(fmt.Sprintf("%v", v))
	if raw == "" {
		return nil
	}
	digits := digitsOnly(raw)
	if len(digits) != 8 {
		return nil
	}

	var out []string
	if y := atoi4(digits[:4]); y >= 1900 && y <= 2100 {
		// YYYYMMDD
		if c, ok := candidate(y, atoi(digits[4:6]), atoi(digits[6:8])); ok {
			out = append(out, c)
		}
		return out
	}

	y := atoi4(digits[4:8])
	// DDMMYYYY
	if c, ok := candidate(y, atoi(digits[2:4]), atoi(digits[:2])); ok {
		out = append(out, c)
	}
	// MMDDYYYY
	if c, ok := candidate(y, atoi(digits[:2]), atoi(digits[2:4])); ok && !contains(out, c) {
		out = append(out, c)
	}
	return out
}

// DOBMatch reports whether any interpretation of the input date coincides
// with any interpretation of the stored date.
func DOBMatch(input, stored []string) bool {
	for _, c := range input {
		if contains(stored, c) {
			return true
		}
	}
	return false
}

func structuredCandidate(m map[string]any) []string {
	y, okY := Number(firstKey(m, "year", "y"))
	mo, okM := Number(firstKey(m, "month", "m"))
	d, okD := Number(firstKey(m, "day", "d"))
	if !okY || !okM || !okD {
		return nil
	}
	if c, ok := candidate(int(y), int(mo), int(d)); ok {
		return []string{c}
	}
	return nil
}

func candidate(year, month, day int) (string, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	return fmt.Sprintf("%04d%02d%02d", year, month, day), true
}

func firstKey(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}

func atoi(s string) int  { return int(s[0]-'0')*10 + int(s[1]-'0') }
func atoi4(s string) int { return atoi(s[:2])*100 + atoi(s[2:4]) }

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
