package calculator

import (
	"github.com/mmynk/tripwrap/internal/models"
)

// NetBalance is a user's aggregate position across a trip's transactions.
type NetBalance struct {
	UserID  string  `json:"userId"`
	Balance float64 `json:"balance"` // Positive = is owed money, negative = owes money
}

// GroupBalances is the full money picture for a trip.
type GroupBalances struct {
	Balances    []NetBalance `json:"balances"`
	Settlements []Settlement `json:"settlements"`
}

// runningTotals accumulates signed amounts per user in first-seen order.
type runningTotals struct {
	order []string
	total map[string]float64
}

func newRunningTotals() *runningTotals {
	return &runningTotals{total: make(map[string]float64)}
}

func (r *runningTotals) add(userID string, amount float64) {
	if _, exists := r.total[userID]; !exists {
		r.order = append(r.order, userID)
	}
	r.total[userID] += amount
}

// balances returns the non-settled totals (|balance| > Epsilon).
func (r *runningTotals) balances() []NetBalance {
	out := make([]NetBalance, 0, len(r.order))
	for _, id := range r.order {
		b := r.total[id]
		if b > Epsilon || b < -Epsilon {
			out = append(out, NetBalance{UserID: id, Balance: b})
		}
	}
	return out
}

func (l Ledger) accumulate(totals *runningTotals, transactions []models.Transaction) {
	for _, tx := range transactions {
		// Payer contributed the full amount
		totals.add(tx.PaidBy, l.toBase(tx.Amount, tx.Currency, dayKey(tx.Timestamp)))

		// Each share holder owes their portion
		for _, share := range l.Shares(tx) {
			totals.add(share.UserID, -share.Amount)
		}
	}
}

// NetBalances computes each user's total paid minus total share.
// Users whose balance is within Epsilon of zero are omitted.
func (l Ledger) NetBalances(transactions []models.Transaction) []NetBalance {
	totals := newRunningTotals()
	l.accumulate(totals, transactions)
	return totals.balances()
}

// ComputeNetBalances computes net balances in baseCurrency without conversion.
func ComputeNetBalances(transactions []models.Transaction, baseCurrency string) []NetBalance {
	return NewLedger(baseCurrency).NetBalances(transactions)
}

// GroupBalances computes balances across transactions and recorded payments
// and the settlements that would clear what is left.
//
// Algorithm:
//   - For each transaction: payer contributed +amount, each share holder owes their share
//   - For each payment: payer's balance improves, receiver's balance decreases
//   - Settlements: greedy largest-creditor/largest-debtor matching (SimplifyDebts)
func (l Ledger) GroupBalances(transactions []models.Transaction, payments []models.Payment) GroupBalances {
	totals := newRunningTotals()
	l.accumulate(totals, transactions)

	for _, p := range payments {
		totals.add(p.FromUserID, p.Amount)
		totals.add(p.ToUserID, -p.Amount)
	}

	balances := totals.balances()
	return GroupBalances{
		Balances:    balances,
		Settlements: SimplifyDebts(balances),
	}
}

// ApplyPayments returns balances after recorded payments: the payer's balance
// rises by the amount and the receiver's falls by it.
func ApplyPayments(balances []NetBalance, payments []models.Payment) []NetBalance {
	totals := newRunningTotals()
	for _, b := range balances {
		totals.add(b.UserID, b.Balance)
	}
	for _, p := range payments {
		totals.add(p.FromUserID, p.Amount)
		totals.add(p.ToUserID, -p.Amount)
	}
	return totals.balances()
}

// ApplySettlements returns balances after each settlement has been paid.
// Users driven to within Epsilon of zero are omitted.
func ApplySettlements(balances []NetBalance, settlements []Settlement) []NetBalance {
	totals := newRunningTotals()
	for _, b := range balances {
		totals.add(b.UserID, b.Balance)
	}
	for _, s := range settlements {
		totals.add(s.FromUserID, s.Amount)
		totals.add(s.ToUserID, -s.Amount)
	}
	return totals.balances()
}
