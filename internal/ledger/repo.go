package ledger

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

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

func scanTransaction(row pgx.Row) (*Transaction, error) {
	var t Transaction
	err := row.Scan(
		&t.ID, &t.SocietyID, &t.RecordedBy, &t.Type, &t.Amount, &t.TransactionDate,
		&t.PaymentMethod, &t.ChequeNumber, &t.BankName, &t.IfscCode, &t.TransactionID, &t.UpiID,
		&t.PayerName, &t.FlatNumber, &t.ForMonth, &t.PaidStatus, &t.IsApproved, &t.ApprovedAt,
		&t.Category, &t.Description, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repository) Insert(ctx context.Context, tx *Transaction) (*Transaction, error) {
	row := r.Pool.QueryRow(ctx, `
		INSERT INTO transactions (
			society_id, recorded_by, type, amount, transaction_date, payment_method,
			cheque_number, bank_name, ifsc_code, transaction_id, upi_id,
			payer_name, flat_number, for_month, paid_status, is_approved,
			category, description
		)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING `+txColumns,
		tx.SocietyID, tx.RecordedBy, tx.Type, tx.Amount, tx.TransactionDate, tx.PaymentMethod,
		tx.ChequeNumber, tx.BankName, tx.IfscCode, tx.TransactionID, tx.UpiID,
		tx.PayerName, tx.FlatNumber, tx.ForMonth, tx.PaidStatus, tx.IsApproved,
		tx.Category, tx.Description,
	)
	return scanTransaction(row)
}

// ListBySociety returns every transaction for one society, oldest first, so
// the aggregator sees the full set.
func (r *Repository) ListBySociety(ctx context.Context, societyID string) ([]Transaction, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+txColumns+`
		FROM transactions
		WHERE society_id = $1::uuid
		ORDER BY transaction_date ASC, created_at ASC`,
		societyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// GetByID fetches one society-scoped transaction.
func (r *Repository) GetByID(ctx context.Context, societyID, id string) (*Transaction, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+txColumns+`
		FROM transactions
		WHERE society_id = $1::uuid AND id = $2::uuid`,
		societyID, id,
	)
	t, err := scanTransaction(row)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}
