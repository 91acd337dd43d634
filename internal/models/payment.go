package models

// Payment is a settlement that trip members have recorded as paid.
// Recorded payments are applied on top of balances derived from transactions.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// TripID is the trip this payment belongs to.
	TripID string `json:"tripId,omitempty" yaml:"tripId,omitempty"`

	// FromUserID is the member who paid (debtor settling up).
	FromUserID string `json:"fromUserId" yaml:"fromUserId"`

	// ToUserID is the member who received payment (creditor being paid).
	ToUserID string `json:"toUserId" yaml:"toUserId"`

	// Amount is the payment amount in the trip's base currency.
	Amount float64 `json:"amount" yaml:"amount"`

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64 `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`

	// Note is an optional description for the payment.
	Note string `json:"note,omitempty" yaml:"note,omitempty"`
}

// SavedLocation is a place a user has named, e.g. "Hotel" or "Grandma's".
// Clusters near a saved location take its name before any external lookup.
type SavedLocation struct {
	ID     string  `json:"id,omitempty" yaml:"id,omitempty"`
	UserID string  `json:"userId" yaml:"userId"`
	Lat    float64 `json:"lat" yaml:"lat"`
	Lng    float64 `json:"lng" yaml:"lng"`
	Name   string  `json:"name" yaml:"name"`
}
