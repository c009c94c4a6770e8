package receipts

import (
	"bytes"
	"errors"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/epartment/society-backend/internal/domain"
	"github.com/epartment/society-backend/internal/ledger"
	"github.com/epartment/society-backend/internal/money"
)

// ErrNotApproved is returned when a receipt is requested for a record that is
// not both paid and approved.
var ErrNotApproved = errors.New("transaction is not approved for receipt")

// RenderReceipt produces the fixed single-page receipt document. Output is
// byte-identical for the same transaction and society info.
func RenderReceipt(tx ledger.Transaction, society domain.Society) ([]byte, error) {
	if !tx.PaidStatus || !tx.IsApproved {
		return nil, ErrNotApproved
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	// Pin the metadata timestamp so rendering is reproducible.
	if tx.ApprovedAt != nil {
		pdf.SetCreationDate(tx.ApprovedAt.UTC())
	} else {
		pdf.SetCreationDate(time.Unix(0, 0).UTC())
	}
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(20, 20, 80)
	pdf.CellFormat(0, 10, society.Name, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 6, society.Address, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(18, pdf.GetY(), 192, pdf.GetY())
	pdf.Ln(6)

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Payment Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeRow := func(label, value string) {
		if value == "" {
			value = "-"
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(55, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	writeRow("Name", deref(tx.PayerName))
	writeRow("Flat No.", deref(tx.FlatNumber))
	writeRow("Amount", "Rs. "+money.FormatPaise(tx.Amount))
	writeRow("Category", deref(tx.Category))
	writeRow("Description", tx.Description)
	writeRow("For Month", deref(tx.ForMonth))
	writeRow("Payment Method", string(tx.PaymentMethod))
	if tx.TransactionID != nil && *tx.TransactionID != "" {
		writeRow("Transaction ID", *tx.TransactionID)
	}
	if tx.ApprovedAt != nil {
		writeRow("Approved On", tx.ApprovedAt.UTC().Format("2 January 2006"))
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(20, 110, 40)
	pdf.CellFormat(0, 8, "Payment Received", "1", 1, "C", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, "Thank you for your payment!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
