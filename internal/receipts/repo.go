package receipts

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/epartment/society-backend/internal/domain"
	"github.com/epartment/society-backend/internal/ledger"
)

// Filters are conjunctive; zero values mean no constraint on that dimension.
type Filters struct {
	Month int // 1-12
	Year  int
	Flat  string
	Type  ledger.TransactionType
}

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

const txColumns = `id::text, society_id::text, recorded_by, type, amount, transaction_date,
	payment_method, cheque_number, bank_name, ifsc_code, transaction_id, upi_id,
	payer_name, flat_number, for_month, paid_status, is_approved, approved_at,
	category, description, created_at`

// QueryApproved returns approved records matching the filters. Approval is
// enforced here, not by the caller. Ordering is newest approval first and ties
// break on id, so a fixed input always yields the same page.
func (r *Repository) QueryApproved(ctx context.Context, societyID string, f Filters) ([]ledger.Transaction, error) {
	where := []string{"society_id = $1::uuid", "is_approved = TRUE"}
	args := []interface{}{societyID}

	if f.Month >= 1 && f.Month <= 12 {
		args = append(args, f.Month)
		where = append(where, fmt.Sprintf("EXTRACT(MONTH FROM transaction_date) = $%d", len(args)))
	}
	if f.Year > 0 {
		args = append(args, f.Year)
		where = append(where, fmt.Sprintf("EXTRACT(YEAR FROM transaction_date) = $%d", len(args)))
	}
	if strings.TrimSpace(f.Flat) != "" {
		args = append(args, strings.TrimSpace(f.Flat))
		where = append(where, fmt.Sprintf("flat_number = $%d", len(args)))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT `+txColumns+`
		FROM transactions
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY approved_at DESC, id DESC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ledger.Transaction, 0)
	for rows.Next() {
		var t ledger.Transaction
		if err := rows.Scan(
			&t.ID, &t.SocietyID, &t.RecordedBy, &t.Type, &t.Amount, &t.TransactionDate,
			&t.PaymentMethod, &t.ChequeNumber, &t.BankName, &t.IfscCode, &t.TransactionID, &t.UpiID,
			&t.PayerName, &t.FlatNumber, &t.ForMonth, &t.PaidStatus, &t.IsApproved, &t.ApprovedAt,
			&t.Category, &t.Description, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Approve marks an income record approved. Re-approving keeps the original
// approved_at, so retries are no-ops.
func (r *Repository) Approve(ctx context.Context, societyID, id string) (*ledger.Transaction, error) {
	row := r.Pool.QueryRow(ctx, `
		UPDATE transactions
		SET is_approved = TRUE,
		    approved_at = COALESCE(approved_at, NOW())
		WHERE society_id = $1::uuid AND id = $2::uuid AND type = 'INCOME'
		RETURNING `+txColumns,
		societyID, id,
	)

	var t ledger.Transaction
	err := row.Scan(
		&t.ID, &t.SocietyID, &t.RecordedBy, &t.Type, &t.Amount, &t.TransactionDate,
		&t.PaymentMethod, &t.ChequeNumber, &t.BankName, &t.IfscCode, &t.TransactionID, &t.UpiID,
		&t.PayerName, &t.FlatNumber, &t.ForMonth, &t.PaidStatus, &t.IsApproved, &t.ApprovedAt,
		&t.Category, &t.Description, &t.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Society loads the header info for receipt rendering.
func (r *Repository) Society(ctx context.Context, id string) (domain.Society, error) {
	var s domain.Society
	err := r.Pool.QueryRow(ctx,
		`SELECT id::text, name, address FROM societies WHERE id = $1::uuid`,
		id,
	).Scan(&s.ID, &s.Name, &s.Address)
	if err == pgx.ErrNoRows {
		return domain.Society{}, ledger.ErrNotFound
	}
	return s, err
}

// RecorderPhone returns the phone number of the user who recorded a
// transaction, if they have one on file.
func (r *Repository) RecorderPhone(ctx context.Context, email string) (string, error) {
	var phone *string
	err := r.Pool.QueryRow(ctx,
		`SELECT phone_number FROM users WHERE email = $1`,
		email,
	).Scan(&phone)
	if err != nil || phone == nil {
		return "", err
	}
	return *phone, nil
}
