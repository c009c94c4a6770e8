package ledger

import "time"

type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

type PaymentMethod string

const (
	MethodCash          PaymentMethod = "CASH"
	MethodBankTransfer  PaymentMethod = "BANK_TRANSFER"
	MethodCheque        PaymentMethod = "CHEQUE"
	MethodOnlinePayment PaymentMethod = "ONLINE_PAYMENT"
	MethodUPI           PaymentMethod = "UPI"
)

// Transaction is the atomic unit of financial activity. Amounts are paise.
// Amount, date and method are immutable after creation; the approval flags on
// income records are the only post-creation mutation.
type Transaction struct {
	ID              string          `db:"id" json:"id"`
	SocietyID       string          `db:"society_id" json:"society_id"`
	RecordedBy      string          `db:"recorded_by" json:"recorded_by"`
	Type            TransactionType `db:"type" json:"type"`
	Amount          int64           `db:"amount" json:"amount"`
	TransactionDate time.Time       `db:"transaction_date" json:"transaction_date"`
	PaymentMethod   PaymentMethod   `db:"payment_method" json:"payment_method"`

	// Method-conditional; exactly the fields for the selected method are set.
	ChequeNumber  *string `db:"cheque_number" json:"cheque_number,omitempty"`
	BankName      *string `db:"bank_name" json:"bank_name,omitempty"`
	IfscCode      *string `db:"ifsc_code" json:"ifsc_code,omitempty"`
	TransactionID *string `db:"transaction_id" json:"transaction_id,omitempty"`
	UpiID         *string `db:"upi_id" json:"upi_id,omitempty"`

	// Income only.
	PayerName  *string    `db:"payer_name" json:"payer_name,omitempty"`
	FlatNumber *string    `db:"flat_number" json:"flat_number,omitempty"`
	ForMonth   *string    `db:"for_month" json:"for_month,omitempty"`
	PaidStatus bool       `db:"paid_status" json:"paid_status"`
	IsApproved bool       `db:"is_approved" json:"is_approved"`
	ApprovedAt *time.Time `db:"approved_at" json:"approved_at,omitempty"`

	// Expense only.
	Category *string `db:"category" json:"category,omitempty"`

	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// CreateTransactionRequest is the intake payload. Amount is a decimal rupee
// string ("2500" or "1234.50") so precision survives the wire.
type CreateTransactionRequest struct {
	Type            string `json:"type"`
	Amount          string `json:"amount"`
	TransactionDate string `json:"transaction_date"`
	PaymentMethod   string `json:"payment_method"`

	ChequeNumber  string `json:"cheque_number"`
	BankName      string `json:"bank_name"`
	IfscCode      string `json:"ifsc_code"`
	TransactionID string `json:"transaction_id"`
	UpiID         string `json:"upi_id"`

	PayerName  string `json:"payer_name"`
	FlatNumber string `json:"flat_number"`
	ForMonth   string `json:"for_month"`

	Category    string `json:"category"`
	Description string `json:"description"`
}
