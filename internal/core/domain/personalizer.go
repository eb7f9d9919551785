package domain

import "time"

// Personalizer wizard steps, in order.
const (
	StepOccasion  = "occasion"
	StepRecipient = "recipient"
	StepInterests = "interests"
	StepBudget    = "budget"
	StepDone      = "done"
)

// PersonalizerSession holds the state of one gift-personalizer wizard run.
// Sessions live in the cache with a TTL; abandoning the wizard simply lets
// the session expire.
type PersonalizerSession struct {
	ID        string    `json:"id"`
	Step      string    `json:"step"`
	Occasion  string    `json:"occasion,omitempty"`
	Recipient string    `json:"recipient,omitempty"`
	Interests []string  `json:"interests,omitempty"`
	BudgetMin int       `json:"budget_min,omitempty"`
	BudgetMax int       `json:"budget_max,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GiftSuggestion is one ranked recommendation returned at the end of the wizard.
type GiftSuggestion struct {
	ExperienceID string  `json:"experience_id"`
	Title        string  `json:"title"`
	Price        int     `json:"price"`
	Reason       string  `json:"reason,omitempty"`
	Score        float64 `json:"score"`
}
