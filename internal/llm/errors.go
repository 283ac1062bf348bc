package llm

import "fmt"

// The adapter distinguishes two failure tiers. A ConfigError (bad key,
// unreachable endpoint) is systemic: the batch orchestrator stops calling
// the adapter on the first one. A TranslationError is local to one input
// and must not block its siblings.

// ConfigErrorKind discriminates configuration failures.
type ConfigErrorKind string

const (
	ConfigTimeout          ConfigErrorKind = "timeout"
	ConfigConnectionFailed ConfigErrorKind = "connection_failed"
	ConfigAuthFailed       ConfigErrorKind = "auth_failed"
)

// ConfigError reports a failure attributable to the endpoint configuration.
type ConfigError struct {
	Kind ConfigErrorKind
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm config error (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("llm config error (%s)", e.Kind)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// TranslationErrorKind discriminates per-constraint translation failures.
type TranslationErrorKind string

const (
	TranslationTimeout   TranslationErrorKind = "timeout"
	TranslationFailed    TranslationErrorKind = "failed"
	TranslationMalformed TranslationErrorKind = "malformed"
)

// TranslationError reports a failure local to a single constraint.
type TranslationError struct {
	Kind TranslationErrorKind
	Err  error
}

func (e *TranslationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm translation error (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("llm translation error (%s)", e.Kind)
}

func (e *TranslationError) Unwrap() error { return e.Err }
