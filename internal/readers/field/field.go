// Package field converts raw report values into AdapterData field values.
package field

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Reserved field names that map onto AdapterData members rather than Fields.
const (
	Artifact   = "artifact"
	DateTime   = "datetime"
	DataSource = "datasource"
)

// timeLayouts are tried in order by Time.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Value returns s as an int64, float64 or bool when it parses as one,
// otherwise the trimmed string. Only "true" and "false" (any case) are booleans.
func Value(s string) any {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

// Time parses a report timestamp. Values without a zone are read as UTC.
func Time(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// Key normalises a column or attribute name.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
