package models

// Transaction represents a shared expense paid by one member and split among others.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// TripID is the trip this transaction belongs to.
	TripID string `json:"tripId,omitempty" yaml:"tripId,omitempty"`

	// Amount is the total paid, in Currency. Never negative.
	Amount float64 `json:"amount" yaml:"amount"`

	// Currency is an ISO-4217-like code. Empty means "USD" in per-currency views.
	Currency string `json:"currency,omitempty" yaml:"currency,omitempty"`

	// Description is a free-text note (e.g., "Ramen dinner").
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// PaidBy is the user ID of the member who paid.
	PaidBy string `json:"paidBy" yaml:"paidBy"`

	// SplitBetween lists the user IDs sharing the cost equally.
	// Duplicates are allowed and each one counts as an extra share.
	SplitBetween []string `json:"splitBetween,omitempty" yaml:"splitBetween,omitempty"`

	// Timestamp is when the expense happened, as an ISO-8601 string.
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`

	// CategoryID is one of the expense categories; empty means "other".
	CategoryID string `json:"categoryId,omitempty" yaml:"categoryId,omitempty"`

	// CustomSplitAmountsJSON is a serialized object of user ID to amount.
	// When it holds at least one positive amount it replaces the equal split.
	CustomSplitAmountsJSON string `json:"customSplitAmountsJson,omitempty" yaml:"customSplitAmountsJson,omitempty"`

	// CreatedAt is the Unix timestamp when the transaction was recorded.
	CreatedAt int64 `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// Category is an expense category with its display label.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// DefaultCategoryID is assigned to transactions without a category.
const DefaultCategoryID = "other"

// ExpenseCategories lists the categories offered when logging an expense.
var ExpenseCategories = []Category{
	{ID: "food", Label: "Food & drink"},
	{ID: "transport", Label: "Transport"},
	{ID: "accommodation", Label: "Accommodation"},
	{ID: "activities", Label: "Activities"},
	{ID: "shopping", Label: "Shopping"},
	{ID: "other", Label: "Other"},
}

// CategoryLabel returns the display label for a category ID.
// Unknown IDs are returned as-is; an empty ID is "Other".
func CategoryLabel(id string) string {
	if id == "" {
		return "Other"
	}
	for _, c := range ExpenseCategories {
		if c.ID == id {
			return c.Label
		}
	}
	return id
}
