package service

import (
	"github.com/mmynk/tripwrap/internal/calculator"
	"github.com/mmynk/tripwrap/internal/journal"
	"github.com/mmynk/tripwrap/internal/models"
	"github.com/mmynk/tripwrap/internal/recap"
)

// Request and response messages for TripService. Field names follow the
// JSON the web client sends.

type CreateTripRequest struct {
	Name         string   `json:"name"`
	TripCode     string   `json:"tripCode,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	BaseCurrency string   `json:"baseCurrency,omitempty"`
	BudgetPerPax float64  `json:"budgetPerPax,omitempty"`
	MemberIDs    []string `json:"memberIds"`
}

type CreateTripResponse struct {
	Trip *models.Trip `json:"trip"`
}

type GetTripRequest struct {
	TripID string `json:"tripId"`
}

type GetTripResponse struct {
	Trip *models.Trip `json:"trip"`
}

type AddTransactionRequest struct {
	Transaction models.Transaction `json:"transaction"`
}

type AddTransactionResponse struct {
	TransactionID string `json:"transactionId"`
}

type ListTransactionsRequest struct {
	TripID string `json:"tripId"`
}

type ListTransactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

type DeleteTransactionRequest struct {
	TransactionID string `json:"transactionId"`
}

type DeleteTransactionResponse struct{}

type AddMediaRequest struct {
	Media models.Media `json:"media"`
}

type AddMediaResponse struct {
	MediaID string `json:"mediaId"`
}

type ListMediaRequest struct {
	TripID string `json:"tripId"`
}

type ListMediaResponse struct {
	Media []models.Media `json:"media"`
}

type RecordPaymentRequest struct {
	Payment models.Payment `json:"payment"`
}

type RecordPaymentResponse struct {
	PaymentID string `json:"paymentId"`
}

type SaveLocationRequest struct {
	Location models.SavedLocation `json:"location"`
}

type SaveLocationResponse struct {
	LocationID string `json:"locationId"`
}

type GetBalancesRequest struct {
	TripID string `json:"tripId"`
}

// GetBalancesResponse is the trip's money overview. Balances already have
// recorded payments applied.
type GetBalancesResponse struct {
	BaseCurrency      string                   `json:"baseCurrency"`
	Balances          []calculator.NetBalance  `json:"balances"`
	Settlements       []calculator.Settlement  `json:"settlements"`
	TotalExpense      float64                  `json:"totalExpense"`
	ExpenseByCategory map[string]float64       `json:"expenseByCategory"`
	Budget            calculator.BudgetSummary `json:"budget"`
}

type GetJournalRequest struct {
	TripID string `json:"tripId"`

	// UserID selects whose saved locations name POIs. Defaults to the
	// caller's identity.
	UserID string `json:"userId,omitempty"`
}

type GetJournalResponse struct {
	Days       []journal.Day `json:"days"`
	DistanceKm float64       `json:"distanceKm"`
}

type GetRecapRequest struct {
	TripID           string   `json:"tripId"`
	BaseCurrency     string   `json:"baseCurrency,omitempty"`
	ExcludedMediaIDs []string `json:"excludedMediaIds,omitempty"`
}

type GetRecapResponse struct {
	Recap    recap.Recap  `json:"recap"`
	Timeline []recap.Item `json:"timeline"`
}
