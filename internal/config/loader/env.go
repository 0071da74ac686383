package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader reads prefixed environment variables as a configuration
// layer. Names passed to the lookup methods are the suffix after the
// prefix, e.g. "HISTORY_LIMIT" for REELSMITH_HISTORY_LIMIT.
type EnvLoader struct {
	prefix string
}

// NewEnvLoader creates an environment loader. The prefix should include
// the trailing underscore (e.g. "REELSMITH_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix}
}

// String returns the raw value of a prefixed variable.
func (l *EnvLoader) String(name string) (string, bool) {
	return os.LookupEnv(l.prefix + name)
}

// Int parses a prefixed variable as an integer.
func (l *EnvLoader) Int(name string) (int, bool) {
	raw, ok := l.String(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return v, true
}

// Float parses a prefixed variable as a float.
func (l *EnvLoader) Float(name string) (float64, bool) {
	raw, ok := l.String(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Bool parses a prefixed variable as a boolean. It accepts the forms
// strconv.ParseBool does ("1", "t", "true", "0", "false", ...).
func (l *EnvLoader) Bool(name string) (bool, bool) {
	raw, ok := l.String(name)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, false
	}
	return v, true
}
