//nolint:revive // types is a standard Go package name pattern
package types

// QuestionType is the input widget a generated question is rendered with.
type QuestionType string

// Supported question types.
const (
	QuestionText           QuestionType = "text"
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionCheckbox       QuestionType = "checkbox"
	QuestionNumber         QuestionType = "number"
	QuestionTextarea       QuestionType = "textarea"
)

// QuestionTypes lists every supported question type in prompt order.
var QuestionTypes = []QuestionType{
	QuestionText,
	QuestionMultipleChoice,
	QuestionCheckbox,
	QuestionNumber,
	QuestionTextarea,
}

// IsValid reports whether t is one of the supported question types.
func (t QuestionType) IsValid() bool {
	for _, known := range QuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// GeneratedQuestion is a follow-up question produced by the model.
// ID is assigned when the batch is accepted, never by the model.
type GeneratedQuestion struct {
	ID           string       `json:"id,omitempty"`
	QuestionText string       `json:"question_text"`
	QuestionType QuestionType `json:"question_type"`
	Category     string       `json:"category"`
	Options      []string     `json:"options,omitempty"`
	IsRequired   bool         `json:"is_required"`
}
