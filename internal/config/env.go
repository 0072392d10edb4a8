package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// lookup returns the value of `key`, or the trimmed contents of the file
// named by `key + "_FILE"`.
func lookup(key string) (string, bool) {
	if val := os.Getenv(key); val != "" {
		return val, true
	}
	if path := os.Getenv(key + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data)), true
		}
	}
	return "", false
}

// Get returns the value of the environment variable `key` if set.
// If not set, and `key + "_FILE"` is set, the file at that path is read and
// its trimmed contents are returned. If neither are set, def is returned.
func Get(key, def string) string {
	if val, ok := lookup(key); ok {
		return val
	}
	return def
}

// GetInt returns the integer value of `key`, or def if unset or unparsable.
func GetInt(key string, def int) int {
	if val, ok := lookup(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return i
		}
	}
	return def
}

// GetBool returns the boolean value of the environment variable `key`.
// Recognised true values are: 1, t, true, y, yes (case-insensitive).
// Recognised false values are: 0, f, false, n, no.
func GetBool(key string, def bool) bool {
	if val, ok := lookup(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "y", "yes":
			return true
		case "0", "f", "false", "n", "no":
			return false
		}
	}
	return def
}

// ParseDuration behaves like time.ParseDuration but also accepts a bare
// number of days such as "2d".
func ParseDuration(s string) (time.Duration, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if days, ok := strings.CutSuffix(lower, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil {
			return time.Duration(n) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(lower)
}

// GetDuration returns the duration value of `key` parsed with ParseDuration,
// or def if unset or unparsable.
func GetDuration(key string, def time.Duration) time.Duration {
	if val, ok := lookup(key); ok {
		if d, err := ParseDuration(val); err == nil {
			return d
		}
	}
	return def
}
