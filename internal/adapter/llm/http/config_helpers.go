package http

import "time"

// ParseTimeout parses a configured transport timeout string.
// An empty or unparseable value yields the fallback; negative durations are
// rejected (they would panic inside http.Client). A zero result means no
// per-call deadline at all, which is the baseline behavior: a slow but
// successful call must never be truncated artificially.
func ParseTimeout(configured string, fallback time.Duration) time.Duration {
	if configured != "" {
		if d, err := time.ParseDuration(configured); err == nil && d >= 0 {
			return d
		}
	}
	if fallback < 0 {
		return 0
	}
	return fallback
}
