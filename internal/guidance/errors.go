package guidance

import (
	"fmt"

	"github.com/jonathan/career-guide/internal/llm"
)

// ValidationRejectedError indicates the parsed model output has the wrong
// top-level shape for the task.
type ValidationRejectedError struct {
	Task   llm.Task
	Reason string
}

func (e *ValidationRejectedError) Error() string {
	return fmt.Sprintf("%s output rejected: %s", e.Task, e.Reason)
}

func rejected(task llm.Task, format string, args ...any) error {
	return &ValidationRejectedError{Task: task, Reason: fmt.Sprintf(format, args...)}
}
