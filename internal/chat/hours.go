package chat

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var hoursWindow = regexp.MustCompile(`^(\d{2}):(\d{2})-(\d{2}):(\d{2})$`)

// WithinBusinessHours reports whether now falls inside any of the windows in
// spec, a comma-separated list like "08:00-12:00,13:00-17:00". Malformed
// windows are ignored; an empty or unparseable spec is always false.
func WithinBusinessHours(spec string, now time.Time) bool {
	parts := strings.Split(spec, ",")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m := hoursWindow.FindStringSubmatch(part)
		if m == nil {
			continue
		}

		startH, _ := strconv.Atoi(m[1])
		startM, _ := strconv.Atoi(m[2])
		endH, _ := strconv.Atoi(m[3])
		endM, _ := strconv.Atoi(m[4])

		start := time.Date(now.Year(), now.Month(), now.Day(), startH, startM, 0, 0, now.Location())
		end := time.Date(now.Year(), now.Month(), now.Day(), endH, endM, 0, 0, now.Location())

		if !now.Before(start) && !now.After(end) {
			return true
		}
	}
	return false
}
