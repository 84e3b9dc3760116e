package labelmkr

import (
	"strconv"
	"strings"
)

// emptyValue stands in for blank values in formatted output.
const emptyValue = "(empty)"

// FormatItems formats items one per line as "#k value".
func FormatItems(items []Item) string {
	if len(items) == 0 {
		return ""
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, item.Position+" "+displayValue(item.Value))
	}
	return strings.Join(lines, "\n")
}

// FormatRecords formats records one per line as "#k code | label".
func FormatRecords(records []Record) string {
	if len(records) == 0 {
		return ""
	}

	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, "#"+strconv.Itoa(r.Ordinal)+" "+displayValue(r.Code)+" | "+displayValue(r.Label))
	}
	return strings.Join(lines, "\n")
}

func displayValue(v string) string {
	if v == "" {
		return emptyValue
	}
	return v
}
