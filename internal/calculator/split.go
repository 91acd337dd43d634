package calculator

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripwrap/internal/models"
)

// Share is one user's portion of a transaction, in base currency.
type Share struct {
	UserID string
	Amount float64
}

// Shares computes how much each user owes for a transaction.
//
// A custom split object with at least one positive amount wins; its
// non-positive entries are dropped. Otherwise the converted amount is divided
// equally over SplitBetween, where a repeated user ID collects one share per
// occurrence. Shares are returned in first-seen user order.
func (l Ledger) Shares(tx models.Transaction) []Share {
	date := dayKey(tx.Timestamp)

	if custom, ok := parseCustomSplit(tx.CustomSplitAmountsJSON); ok {
		shares := make([]Share, 0, len(custom))
		for _, c := range custom {
			// Custom amounts are in the transaction's currency.
			shares = append(shares, Share{UserID: c.UserID, Amount: l.toBase(c.Amount, tx.Currency, date)})
		}
		return shares
	}

	participants := make([]string, 0, len(tx.SplitBetween))
	for _, id := range tx.SplitBetween {
		if id != "" {
			participants = append(participants, id)
		}
	}
	// Nobody to charge: the payer is credited and no one is debited.
	if len(participants) == 0 {
		return nil
	}

	each := l.toBase(tx.Amount, tx.Currency, date) / float64(len(participants))
	var shares []Share
	index := make(map[string]int, len(participants))
	for _, id := range participants {
		if i, ok := index[id]; ok {
			shares[i].Amount += each
			continue
		}
		index[id] = len(shares)
		shares = append(shares, Share{UserID: id, Amount: each})
	}
	return shares
}

// Shares computes a transaction's shares in baseCurrency without conversion.
func Shares(tx models.Transaction, baseCurrency string) []Share {
	return NewLedger(baseCurrency).Shares(tx)
}

// parseCustomSplit decodes a custom split object, keeping key order and
// dropping non-positive amounts. Values may be JSON numbers or numeric
// strings. ok is false when the input is blank, is not a JSON object, or
// holds no positive amount.
func parseCustomSplit(raw string) ([]Share, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, false
	}

	var values map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &values); err != nil || values == nil {
		return nil, false
	}

	keys, err := objectKeys(raw)
	if err != nil {
		return nil, false
	}

	var shares []Share
	for _, key := range keys {
		amount, ok := customAmount(values[key])
		if !ok || amount <= 0 {
			continue
		}
		shares = append(shares, Share{UserID: key, Amount: amount})
	}
	if len(shares) == 0 {
		return nil, false
	}
	return shares, true
}

// objectKeys returns the top-level keys of a JSON object in document order.
func objectKeys(raw string) ([]string, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var keys []string
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func customAmount(raw json.RawMessage) (float64, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}
