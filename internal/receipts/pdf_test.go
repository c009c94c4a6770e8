package receipts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epartment/society-backend/internal/domain"
	"github.com/epartment/society-backend/internal/ledger"
)

func strp(s string) *string { return &s }

func approvedIncome() ledger.Transaction {
	approvedAt := time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC)
	return ledger.Transaction{
		ID:              "3f1c9a2e-0000-0000-0000-000000000001",
		Type:            ledger.TypeIncome,
		Amount:          250000,
		TransactionDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		PaymentMethod:   ledger.MethodUPI,
		UpiID:           strp("john@upi"),
		TransactionID:   strp("TXN987654"),
		PayerName:       strp("John Doe"),
		FlatNumber:      strp("A-101"),
		ForMonth:        strp("Jan 2024"),
		Description:     "Monthly maintenance",
		PaidStatus:      true,
		IsApproved:      true,
		ApprovedAt:      &approvedAt,
	}
}

func testSociety() domain.Society {
	return domain.Society{
		ID:      "soc-1",
		Name:    "Green Meadows CHS",
		Address: "14 Lake Road, Pune 411001",
	}
}

func TestRenderReceiptRefusesUnapproved(t *testing.T) {
	tx := approvedIncome()
	tx.IsApproved = false
	tx.ApprovedAt = nil

	_, err := RenderReceipt(tx, testSociety())
	assert.ErrorIs(t, err, ErrNotApproved, "paid but unapproved must be refused")

	tx = approvedIncome()
	tx.PaidStatus = false
	_, err = RenderReceipt(tx, testSociety())
	assert.ErrorIs(t, err, ErrNotApproved)
}

func TestRenderReceiptProducesPDF(t *testing.T) {
	doc, err := RenderReceipt(approvedIncome(), testSociety())
	require.NoError(t, err)
	require.NotEmpty(t, doc)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestRenderReceiptIsDeterministic(t *testing.T) {
	a, err := RenderReceipt(approvedIncome(), testSociety())
	require.NoError(t, err)
	b, err := RenderReceipt(approvedIncome(), testSociety())
	require.NoError(t, err)
	assert.Equal(t, a, b, "same input must render byte-identical output")
}
