package llm

import "fmt"

// GenerationError indicates the provider call itself failed
// (network, quota, timeout or cancelled context).
type GenerationError struct {
	Task  Task
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Task, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// ModelOutputNotJSONError indicates every extraction strategy failed.
// Raw holds the model text for diagnostics.
type ModelOutputNotJSONError struct {
	Raw   string
	Cause error
}

func (e *ModelOutputNotJSONError) Error() string {
	return fmt.Sprintf("model output is not JSON: %v", e.Cause)
}

func (e *ModelOutputNotJSONError) Unwrap() error {
	return e.Cause
}
