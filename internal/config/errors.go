package config

import "fmt"

// ValidationError describes a configuration value outside its allowed
// range or enumeration.
type ValidationError struct {
	// Path is the dotted setting path, e.g. "magnet.tie_break".
	Path string
	// Message describes the violation.
	Message string
	// Value is the offending value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s (value: %v)", e.Path, e.Message, e.Value)
}
