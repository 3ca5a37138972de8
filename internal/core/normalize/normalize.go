// Package normalize turns loosely-typed webhook input into canonical
// comparable values. Webhook parameters arrive from JSON, so a field may be
// a string, a number, or (for dates) a structured object.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number parses an order id or phone number. The second return is false when
// the input carries no usable value (nil, empty, non-numeric); that is a
// distinct condition from a valid-but-mismatched number and callers must
// treat it as such.
func Number(v any) (int64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case int64:
		return n, n != 0
	case int:
		return int64(n), n != 0
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), n != 0
	}

	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	if s == "" {
		return 0, false
	}
	// Tolerate formatted phone input like "+7 999 888-77-76".
	s = digitsOnly(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
