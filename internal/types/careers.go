//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCurrency is applied to career options that omit a currency.
const DefaultCurrency = "INR"

// RecommendationSet is the model's free-form recommendation payload.
// Its schema is a contract with the prompt; it is stored and returned verbatim.
type RecommendationSet map[string]any

// CareerOption is one generated career suggestion stored for a user.
type CareerOption struct {
	ID             uuid.UUID `json:"id,omitempty"`
	UserID         int64     `json:"user_id,omitempty"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	SalaryRangeMin float64   `json:"salary_range_min"`
	SalaryRangeMax float64   `json:"salary_range_max"`
	Currency       string    `json:"currency"`
	RequiredSkills []string  `json:"required_skills"`
	GrowthRate     float64   `json:"growth_rate"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
	UpdatedAt      time.Time `json:"updated_at,omitempty"`
}
