package models

// Trip is the shared context members upload media and log expenses under.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string `json:"id" yaml:"id"`

	// Name is the display name of the trip (e.g., "Tokyo 2024").
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// TripCode is the short code members use to join the trip.
	TripCode string `json:"tripCode,omitempty" yaml:"tripCode,omitempty"`

	// StartDate is the first day of the trip ("YYYY-MM-DD"), empty if unset.
	// Day numbers in the journal are counted from here.
	StartDate string `json:"startDate,omitempty" yaml:"startDate,omitempty"`

	// EndDate is the last day of the trip ("YYYY-MM-DD"), empty if unset.
	EndDate string `json:"endDate,omitempty" yaml:"endDate,omitempty"`

	// BaseCurrency is the currency aggregate totals are shown in.
	// No conversion is performed into it.
	BaseCurrency string `json:"baseCurrency,omitempty" yaml:"baseCurrency,omitempty"`

	// BudgetPerPax is the planned spend per member; 0 means no budget.
	BudgetPerPax float64 `json:"budgetPerPax,omitempty" yaml:"budgetPerPax,omitempty"`

	// Members is the list of user IDs taking part in the trip.
	Members []string `json:"members,omitempty" yaml:"members,omitempty"`

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64 `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// DefaultBaseCurrency is used when neither the trip nor the caller names one.
const DefaultBaseCurrency = "USD"

// Currency returns the trip's base currency, falling back to DefaultBaseCurrency.
func (t *Trip) Currency() string {
	if t == nil || t.BaseCurrency == "" {
		return DefaultBaseCurrency
	}
	return t.BaseCurrency
}
