package helpers

import (
	"fmt"
	"time"
)

// NormalizeEmailTimes restores the human-readable Time field on email
// job data after its trip through the queue, where time.Time values
// arrive back as RFC3339 strings. An already-set Time is left alone.
func NormalizeEmailTimes(data map[string]any) {
	if data == nil {
		return
	}
	if v, ok := data["Time"]; ok && fmt.Sprintf("%v", v) != "" {
		return
	}
	v, ok := data["TimeAt"]
	if !ok {
		return
	}
	if t, ok := parseTimeAny(v); ok {
		data["Time"] = t.UTC().Format("02 January 2006, 15:04 MST")
	}
}

func parseTimeAny(v any) (time.Time, bool) {
	if t, ok := v.(time.Time); ok {
		return t, true
	}
	s := fmt.Sprintf("%v", v)
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05 -0700 MST",
		"2006-01-02 15:04:05 -0700",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
