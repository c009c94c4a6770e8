package summary

import (
	"sort"
	"time"

	"github.com/epartment/society-backend/internal/ledger"
)

// MonthlyBucket is one month of aggregated ledger activity. Amounts are paise.
type MonthlyBucket struct {
	Name    string `json:"name"` // "Jan 2024"
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`

	date time.Time // sort key: real calendar date, not the label
}

// MonthSummary totals the reference month only.
type MonthSummary struct {
	TotalIncome   int64 `json:"total_income"`
	TotalExpenses int64 `json:"total_expenses"`
	NetBalance    int64 `json:"net_balance"`
}

// Aggregate derives the monthly series and the summary for now's calendar
// month in a single pass. It is a pure function of its inputs: an empty slice
// yields an empty series and a zero summary.
func Aggregate(txs []ledger.Transaction, now time.Time) ([]MonthlyBucket, MonthSummary) {
	byMonth := make(map[string]*MonthlyBucket)
	var sum MonthSummary

	for _, tx := range txs {
		d := tx.TransactionDate
		key := d.Format("Jan 2006")

		bucket, ok := byMonth[key]
		if !ok {
			bucket = &MonthlyBucket{
				Name: key,
				date: time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC),
			}
			byMonth[key] = bucket
		}

		currentMonth := d.Month() == now.Month() && d.Year() == now.Year()

		switch tx.Type {
		case ledger.TypeIncome:
			bucket.Income += tx.Amount
			if currentMonth {
				sum.TotalIncome += tx.Amount
			}
		case ledger.TypeExpense:
			bucket.Expense += tx.Amount
			if currentMonth {
				sum.TotalExpenses += tx.Amount
			}
		}
	}
	sum.NetBalance = sum.TotalIncome - sum.TotalExpenses

	buckets := make([]MonthlyBucket, 0, len(byMonth))
	for _, b := range byMonth {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].date.Before(buckets[j].date)
	})

	return buckets, sum
}
