package ledger

import (
	"strings"
	"time"

	"github.com/epartment/society-backend/internal/money"
)

// buildTransaction validates an intake request and produces the record to
// persist. Validation order: universal/type-specific fields, then
// method-conditional fields, then the amount. Fields belonging to non-selected
// payment methods are discarded so a stored row never carries stray metadata.
func buildTransaction(req CreateTransactionRequest) (*Transaction, error) {
	txType := TransactionType(strings.ToUpper(strings.TrimSpace(req.Type)))
	if txType != TypeIncome && txType != TypeExpense {
		return nil, &ValidationError{Field: "type", Reason: "must be INCOME or EXPENSE"}
	}

	if strings.TrimSpace(req.Amount) == "" {
		return nil, missingField("amount")
	}
	if strings.TrimSpace(req.TransactionDate) == "" {
		return nil, missingField("transaction_date")
	}
	method := PaymentMethod(strings.ToUpper(strings.TrimSpace(req.PaymentMethod)))
	switch method {
	case MethodCash, MethodBankTransfer, MethodCheque, MethodOnlinePayment, MethodUPI:
	case "":
		return nil, missingField("payment_method")
	default:
		return nil, &ValidationError{Field: "payment_method", Reason: "unknown payment method"}
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, missingField("description")
	}

	tx := &Transaction{
		Type:          txType,
		PaymentMethod: method,
		Description:   strings.TrimSpace(req.Description),
	}

	switch txType {
	case TypeIncome:
		if strings.TrimSpace(req.PayerName) == "" {
			return nil, missingField("payer_name")
		}
		if strings.TrimSpace(req.FlatNumber) == "" {
			return nil, missingField("flat_number")
		}
		if strings.TrimSpace(req.ForMonth) == "" {
			return nil, missingField("for_month")
		}
		tx.PayerName = ptr(req.PayerName)
		tx.FlatNumber = ptr(req.FlatNumber)
		tx.ForMonth = ptr(req.ForMonth)
		// Recorded by the collecting party, so the payment itself is done;
		// approval comes later from an admin.
		tx.PaidStatus = true
		tx.IsApproved = false
	case TypeExpense:
		if strings.TrimSpace(req.Category) == "" {
			return nil, missingField("category")
		}
		tx.Category = ptr(req.Category)
	}

	if err := applyMethodDetails(tx, req); err != nil {
		return nil, err
	}

	amount, err := money.ParseAmount(req.Amount)
	if err != nil {
		return nil, &ValidationError{Field: "amount", Reason: "must be a non-negative number with at most 2 decimal places"}
	}
	tx.Amount = amount

	date, err := time.Parse("2006-01-02", strings.TrimSpace(req.TransactionDate))
	if err != nil {
		return nil, &ValidationError{Field: "transaction_date", Reason: "must be YYYY-MM-DD"}
	}
	tx.TransactionDate = date

	return tx, nil
}

// applyMethodDetails enforces the per-method required fields and copies only
// the fields owned by the selected method.
func applyMethodDetails(tx *Transaction, req CreateTransactionRequest) error {
	switch tx.PaymentMethod {
	case MethodCash:
		// No metadata.
	case MethodCheque:
		if strings.TrimSpace(req.ChequeNumber) == "" {
			return missingField("cheque_number")
		}
		tx.ChequeNumber = ptr(req.ChequeNumber)
	case MethodBankTransfer:
		if strings.TrimSpace(req.BankName) == "" {
			return missingField("bank_name")
		}
		if strings.TrimSpace(req.IfscCode) == "" {
			return missingField("ifsc_code")
		}
		if strings.TrimSpace(req.TransactionID) == "" {
			return missingField("transaction_id")
		}
		tx.BankName = ptr(req.BankName)
		tx.IfscCode = ptr(req.IfscCode)
		tx.TransactionID = ptr(req.TransactionID)
	case MethodOnlinePayment:
		if strings.TrimSpace(req.TransactionID) == "" {
			return missingField("transaction_id")
		}
		tx.TransactionID = ptr(req.TransactionID)
	case MethodUPI:
		upi := strings.TrimSpace(req.UpiID)
		txnID := strings.TrimSpace(req.TransactionID)
		if upi == "" && txnID == "" {
			return missingField("upi_id")
		}
		if upi != "" {
			tx.UpiID = &upi
		}
		if txnID != "" {
			tx.TransactionID = &txnID
		}
	}
	return nil
}

func ptr(s string) *string {
	t := strings.TrimSpace(s)
	return &t
}
