package engine

import "fmt"

// ConfigurationError reports a malformed habit goal. It is raised at the
// point a goal is evaluated, not at storage time, so stored habits with
// stale configurations surface the problem on first use.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid habit configuration: %s %s", e.Field, e.Reason)
}

// ValidationError reports user input that cannot be accepted for an
// otherwise well-configured habit, such as a missing logged value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}
