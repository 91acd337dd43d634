package calculator

import "sort"

// Settlement is a suggested payment from a debtor to a creditor.
type Settlement struct {
	FromUserID string  `json:"fromUserId"` // Person who owes
	ToUserID   string  `json:"toUserId"`   // Person who is owed
	Amount     float64 `json:"amount"`
}

type party struct {
	userID    string
	remaining float64
}

// SimplifyDebts turns net balances into a short list of settlements.
//
// Creditors and debtors are each sorted by magnitude, largest first, and the
// current largest debtor pays the current largest creditor the smaller of
// the two remaining amounts until one side runs out. Amounts within Epsilon
// count as settled, so no zero settlement is emitted. For N users with a
// non-zero balance the result has at most N-1 entries. Largest-first matching
// keeps the count low in practice; it is not guaranteed minimal.
func SimplifyDebts(balances []NetBalance) []Settlement {
	var creditors, debtors []*party
	for _, b := range balances {
		switch {
		case b.Balance > Epsilon:
			creditors = append(creditors, &party{userID: b.UserID, remaining: b.Balance})
		case b.Balance < -Epsilon:
			// Store as positive amount owed
			debtors = append(debtors, &party{userID: b.UserID, remaining: -b.Balance})
		}
	}
	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].remaining > creditors[j].remaining })
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].remaining > debtors[j].remaining })

	var settlements []Settlement
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		cred, deb := creditors[i], debtors[j]

		amount := min(cred.remaining, deb.remaining)
		if amount <= Epsilon {
			if cred.remaining <= Epsilon {
				i++
			} else {
				j++
			}
			continue
		}

		settlements = append(settlements, Settlement{
			FromUserID: deb.userID,
			ToUserID:   cred.userID,
			Amount:     amount,
		})

		cred.remaining -= amount
		deb.remaining -= amount

		// Move to next creditor/debtor if fully settled
		if cred.remaining <= Epsilon {
			i++
		}
		if deb.remaining <= Epsilon {
			j++
		}
	}

	return settlements
}
