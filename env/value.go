package env

import (
	"github.com/saylorsolutions/unit/slogx"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Prefix is prepended to every key looked up in this package, so "LOG_LEVEL" reads UNIT_LOG_LEVEL.
var Prefix = "UNIT_"

func getEnv() map[string]string {
	envMap := map[string]string{}
	environ := os.Environ()
	for i := 0; i < len(environ); i++ {
		key, val, found := strings.Cut(environ[i], "=")
		if !found {
			continue
		}
		envMap[strings.ToLower(key)] = val
	}
	return envMap
}

// Key returns the full, prefixed variable name for key.
func Key(key string) string {
	return Prefix + key
}

// Val will attempt to get the value of the prefixed environment variable key.
// If the variable isn't set, or is empty, then the defaultVal will be returned.
// Note that keys are compared case-insensitive.
func Val(key string, defaultVal string) string {
	val, ok := getEnv()[strings.ToLower(Key(key))]
	if !ok {
		return defaultVal
	}
	trimmed := strings.TrimSpace(val)
	if len(trimmed) == 0 {
		return defaultVal
	}
	return trimmed
}

var (
	DefaultTrue  = []string{"1", "yes", "true", "on"}  // DefaultTrue are the values considered "true" when using [Bool], and can be changed.
	DefaultFalse = []string{"0", "no", "false", "off"} // DefaultFalse are the values considered "false" when using [Bool], and can be changed.
)

// Bool interprets an environment variable as a boolean, using [DefaultTrue] and [DefaultFalse].
// The defaultVal will be returned if the variable isn't set, is empty, or can't be a boolean value.
func Bool(key string, defaultVal bool) bool {
	sval := strings.ToLower(Val(key, ""))
	switch {
	case len(sval) == 0:
		return defaultVal
	case containsFold(DefaultTrue, sval):
		return true
	case containsFold(DefaultFalse, sval):
		return false
	default:
		return defaultVal
	}
}

func containsFold(vals []string, target string) bool {
	for _, val := range vals {
		if strings.EqualFold(val, target) {
			return true
		}
	}
	return false
}

// Duration will attempt to interpret an environment variable as a [time.Duration], returning the defaultVal if the environment variable isn't found or can't be a valid [time.Duration].
func Duration(key string, defaultVal time.Duration) time.Duration {
	sval := Val(key, "")
	if len(sval) == 0 {
		return defaultVal
	}
	dval, err := time.ParseDuration(sval)
	if err != nil {
		return defaultVal
	}
	return dval
}

// Level interprets an environment variable as a [slog.Level] name like "debug" or "warn+2".
// The defaultVal will be returned if the variable isn't set, is empty, or isn't a valid level.
func Level(key string, defaultVal slog.Level) slog.Level {
	return slogx.ParseLevel(Val(key, ""), defaultVal)
}
