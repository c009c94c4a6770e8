package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epartment/society-backend/internal/ledger"
)

func tx(typ ledger.TransactionType, amount int64, date string) ledger.Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return ledger.Transaction{Type: typ, Amount: amount, TransactionDate: d}
}

func TestAggregateSingleMonth(t *testing.T) {
	txs := []ledger.Transaction{
		tx(ledger.TypeIncome, 100000, "2024-01-15"),
		tx(ledger.TypeExpense, 40000, "2024-01-20"),
	}
	now := time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC)

	buckets, sum := Aggregate(txs, now)

	require.Len(t, buckets, 1)
	assert.Equal(t, "Jan 2024", buckets[0].Name)
	assert.Equal(t, int64(100000), buckets[0].Income)
	assert.Equal(t, int64(40000), buckets[0].Expense)

	assert.Equal(t, int64(100000), sum.TotalIncome)
	assert.Equal(t, int64(40000), sum.TotalExpenses)
	assert.Equal(t, int64(60000), sum.NetBalance)
}

func TestAggregateSortsByDateNotLabel(t *testing.T) {
	// "Dec 2023" sorts after "Apr 2024" lexicographically; the real date must win.
	txs := []ledger.Transaction{
		tx(ledger.TypeIncome, 1, "2024-04-10"),
		tx(ledger.TypeIncome, 2, "2023-12-01"),
		tx(ledger.TypeExpense, 3, "2024-01-05"),
	}

	buckets, _ := Aggregate(txs, time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC))

	require.Len(t, buckets, 3)
	assert.Equal(t, "Dec 2023", buckets[0].Name)
	assert.Equal(t, "Jan 2024", buckets[1].Name)
	assert.Equal(t, "Apr 2024", buckets[2].Name)
}

func TestSummaryExcludesOtherMonths(t *testing.T) {
	txs := []ledger.Transaction{
		tx(ledger.TypeIncome, 100000, "2024-01-15"),
		tx(ledger.TypeIncome, 55500, "2024-02-10"),
		tx(ledger.TypeExpense, 20000, "2024-02-12"),
		tx(ledger.TypeExpense, 40000, "2023-02-12"), // same month, wrong year
	}
	now := time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)

	buckets, sum := Aggregate(txs, now)

	require.Len(t, buckets, 3)
	assert.Equal(t, int64(55500), sum.TotalIncome)
	assert.Equal(t, int64(20000), sum.TotalExpenses)
	assert.Equal(t, int64(35500), sum.NetBalance)
}

func TestAggregateEmptyInput(t *testing.T) {
	buckets, sum := Aggregate(nil, time.Now())
	assert.Empty(t, buckets)
	assert.Zero(t, sum.TotalIncome)
	assert.Zero(t, sum.TotalExpenses)
	assert.Zero(t, sum.NetBalance)
}

func TestAggregateIsPure(t *testing.T) {
	txs := []ledger.Transaction{
		tx(ledger.TypeIncome, 100000, "2024-01-15"),
		tx(ledger.TypeExpense, 40000, "2024-03-20"),
	}
	now := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)

	b1, s1 := Aggregate(txs, now)
	b2, s2 := Aggregate(txs, now)

	assert.Equal(t, b1, b2)
	assert.Equal(t, s1, s2)
	assert.Equal(t, int64(100000), txs[0].Amount, "input must not be mutated")
}
