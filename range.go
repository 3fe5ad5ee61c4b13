package simconf

import (
	"strconv"
	"strings"
)

// Numeric range and set descriptors are node prefixes such as "3", "1,4,7",
// "2-4", "5-" or "-5" that match integer pattern segments by containment.
// They are stored as opaque literal strings and interpreted only here, at
// match time, so a malformed descriptor surfaces as a *RangeError from the
// Match call that touched it.

// span is one inclusive interval of a descriptor; an open bound is flagged
// rather than encoded as a sentinel value.
type span struct {
	min, max         int64
	openMin, openMax bool
}

func (s span) contains(n int64) bool {
	if !s.openMin && n < s.min {
		return false
	}
	if !s.openMax && n > s.max {
		return false
	}
	return true
}

// looksLikeRange reports whether a literal prefix is shaped like a numeric
// range/set descriptor. Literals failing this test simply do not match a
// numeric segment; literals passing it must parse or the match errors.
func looksLikeRange(s string) bool {
	if s == "" {
		return false
	}
	sawRangeChar := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '-' || r == ',':
			sawRangeChar = true
		case r == ' ' || r == '\t':
		default:
			return false
		}
	}
	return sawRangeChar
}

// parseRange parses a full descriptor: a comma-separated list of integers
// and min-max intervals with either bound optionally open.
func parseRange(descriptor string) ([]span, error) {
	var spans []span
	for _, token := range strings.Split(descriptor, ",") {
		token = strings.TrimSpace(token)
		sp, err := parseSpan(token)
		if err != nil {
			return nil, err
		}
		spans = append(spans, sp)
	}
	return spans, nil
}

func parseSpan(token string) (span, error) {
	dash := strings.IndexByte(token, '-')
	if dash < 0 {
		n, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return span{}, &RangeError{Token: token}
		}
		return span{min: n, max: n}, nil
	}

	lo := strings.TrimSpace(token[:dash])
	hi := strings.TrimSpace(token[dash+1:])
	sp := span{openMin: lo == "", openMax: hi == ""}
	var err error
	if !sp.openMin {
		if sp.min, err = strconv.ParseInt(lo, 10, 64); err != nil {
			return span{}, &RangeError{Token: token}
		}
	}
	if !sp.openMax {
		if sp.max, err = strconv.ParseInt(hi, 10, 64); err != nil {
			return span{}, &RangeError{Token: token}
		}
	}
	if !sp.openMin && !sp.openMax && sp.min > sp.max {
		return span{}, &RangeError{Token: token}
	}
	return sp, nil
}

// rangeContains reports whether the descriptor contains n.
func rangeContains(descriptor string, n int64) (bool, error) {
	spans, err := parseRange(descriptor)
	if err != nil {
		return false, err
	}
	for _, sp := range spans {
		if sp.contains(n) {
			return true, nil
		}
	}
	return false, nil
}
