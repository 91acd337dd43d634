package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tripJSON = `{
  "trip": {"id": "t1", "name": "Road trip", "baseCurrency": "USD", "budgetPerPax": 100, "members": ["A", "B", "C"]},
  "transactions": [
    {"amount": 120, "paidBy": "A", "splitBetween": ["A", "B", "C"], "timestamp": "2024-03-01T12:00:00Z", "categoryId": "food"}
  ],
  "payments": [
    {"fromUserId": "B", "toUserId": "A", "amount": 40}
  ]
}`

const tripYAML = `
trip:
  id: t2
  name: Osaka
  startDate: "2024-03-01"
  baseCurrency: JPY
  members: [alice, bob]
transactions:
  - amount: 3000
    paidBy: alice
    splitBetween: [alice, bob]
    timestamp: "2024-03-01T19:00:00+09:00"
media:
  - id: m1
    storagePath: osaka/hotel.jpg
    timestamp: "2024-03-01T08:00:00Z"
    lat: 34.6937
    lng: 135.5023
    isFavorite: true
  - id: m2
    storagePath: osaka/walk.mp4
    timestamp: "2024-03-01T09:00:00Z"
    lat: 34.6873
    lng: 135.5262
    locationName: Osaka Castle
savedLocations:
  - userId: alice
    lat: 34.6937
    lng: 135.5023
    name: Hotel
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runTripctl(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSettle(t *testing.T) {
	path := writeFile(t, "trip.json", tripJSON)

	out, err := runTripctl(t, "settle", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "C pays A 40.00 USD\n", out)
}

func TestBalances(t *testing.T) {
	path := writeFile(t, "trip.json", tripJSON)

	out, err := runTripctl(t, "balances", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Balances (USD)")
	assert.Regexp(t, `A\s+\+40\.00`, out)
	assert.Regexp(t, `C\s+-40\.00`, out)
	assert.NotRegexp(t, `\n  B\s`, out)
	assert.Contains(t, out, "Total expense: 120.00 USD")
	assert.Regexp(t, `Food & drink\s+120\.00`, out)
	assert.Contains(t, out, "Budget: 120.00 of 300.00 USD (40.0%)")
}

func TestBalancesJSONFromYAML(t *testing.T) {
	path := writeFile(t, "trip.yaml", tripYAML)

	out, err := runTripctl(t, "balances", "--file", path, "--json")
	require.NoError(t, err)

	var report balancesReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "JPY", report.BaseCurrency)
	assert.InDelta(t, 3000, report.TotalExpense, 1e-9)
	require.Len(t, report.Balances, 2)
	assert.Equal(t, "alice", report.Balances[0].UserID)
	assert.InDelta(t, 1500, report.Balances[0].Balance, 1e-9)
	assert.False(t, report.Budget.HasBudget)
}

func TestJournal(t *testing.T) {
	path := writeFile(t, "trip.yml", tripYAML)

	out, err := runTripctl(t, "journal", "--file", path, "--timezone", "UTC")
	require.NoError(t, err)
	assert.Contains(t, out, "Day 1: Fri, Mar 1, 2024")
	assert.Contains(t, out, "  2 items")
	assert.Contains(t, out, "  highlight: osaka/hotel.jpg")
	assert.Contains(t, out, "  - Hotel (1)")
	assert.Contains(t, out, "  - Osaka Castle (1)")
	assert.Contains(t, out, "  spent 3000.00 JPY")
}

func TestRecap(t *testing.T) {
	path := writeFile(t, "trip.yaml", tripYAML)

	out, err := runTripctl(t, "recap", "--file", path, "--timezone", "UTC")
	require.NoError(t, err)
	assert.Contains(t, out, "1 photos, 1 videos")
	assert.Contains(t, out, "Spent 3000.00 JPY")
	assert.Contains(t, out, "Friday, Mar 1, 2024")
	assert.Contains(t, out, "  at Osaka Castle")
	assert.Contains(t, out, "  [video] osaka/walk.mp4\n  [photo] osaka/hotel.jpg")

	out, err = runTripctl(t, "recap", "--file", path, "--timezone", "UTC", "--exclude", "m1,m2", "--currency", "USD")
	require.NoError(t, err)
	assert.Contains(t, out, "Spent 3000.00 USD")
	assert.NotContains(t, out, "Friday")
}

func TestErrors(t *testing.T) {
	_, err := runTripctl(t, "settle")
	assert.Error(t, err, "--file is required")

	_, err = runTripctl(t, "settle", "--file", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "reading export")

	bad := writeFile(t, "bad.json", "{")
	_, err = runTripctl(t, "balances", "--file", bad)
	assert.ErrorContains(t, err, "parsing")

	good := writeFile(t, "trip.json", tripJSON)
	_, err = runTripctl(t, "journal", "--file", good, "--timezone", "Mars/Olympus")
	assert.ErrorContains(t, err, "loading timezone")

	_, err = runTripctl(t, "settle", "--file", good, "--log-level", "loud")
	assert.Error(t, err)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "40.00", money(40))
	assert.Equal(t, "0.10", money(0.1))
	assert.Equal(t, "33.33", money(100.0/3))
	assert.Equal(t, "+1.50", signedMoney(1.5))
	assert.Equal(t, "-0.01", signedMoney(-0.005))
	assert.Equal(t, "0.00", signedMoney(0.004))
}
