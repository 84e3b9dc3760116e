package labelmkr

import (
	"strconv"
	"strings"
)

// Selection is the set of record ordinals picked for output. A nil
// Selection picks every record.
type Selection map[int]bool

// ParseSelection parses a comma-separated list of ordinals and inclusive
// ranges, such as "1,3-5". An empty string returns a nil Selection.
func ParseSelection(s string) (Selection, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	sel := make(Selection)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		lo, hi, isRange := strings.Cut(part, "-")
		first, err := parseOrdinal(lo)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid ordinal %q in selection %q", part, s)
		}
		last := first
		if isRange {
			if last, err = parseOrdinal(hi); err != nil || last < first {
				return nil, Errorf(EINVALID, "invalid range %q in selection %q", part, s)
			}
		}
		for n := first; n <= last; n++ {
			sel[n] = true
		}
	}
	return sel, nil
}

func parseOrdinal(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

// Filter returns the records whose ordinal is selected, keeping their order
// and ordinals.
func (s Selection) Filter(records []Record) []Record {
	if s == nil {
		return records
	}
	out := make([]Record, 0, min(len(s), len(records)))
	for _, r := range records {
		if s[r.Ordinal] {
			out = append(out, r)
		}
	}
	return out
}
