package billing

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the persistence surface of the subscription workflow.
type Store interface {
	CreatePaymentLog(ctx context.Context, orderID string, amount int64, currency string) (*PaymentLog, error)
	MarkPaid(ctx context.Context, orderID, paymentID, signature string) (*PaymentLog, error)
	UpsertPendingAdmin(ctx context.Context, form AdminRequestForm, totalFlats int, paymentLogID string) (string, error)
	ListPending(ctx context.Context) ([]PendingAdmin, error)
}

type PgStore struct {
	Pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{Pool: pool}
}

const logColumns = `id::text, rz_order_id, rz_payment_id, rz_signature, amount, currency, status, created_at, updated_at`

func (s *PgStore) CreatePaymentLog(ctx context.Context, orderID string, amount int64, currency string) (*PaymentLog, error) {
	row := s.Pool.QueryRow(ctx, `
		INSERT INTO payment_logs (rz_order_id, amount, currency, status)
		VALUES ($1, $2, $3, 'CREATED')
		RETURNING `+logColumns,
		orderID, amount, currency,
	)
	return scanLog(row)
}

// MarkPaid promotes the log matched by order id. Update-by-unique-key makes
// retried callbacks effectively idempotent.
func (s *PgStore) MarkPaid(ctx context.Context, orderID, paymentID, signature string) (*PaymentLog, error) {
	row := s.Pool.QueryRow(ctx, `
		UPDATE payment_logs
		SET status = 'PAID', rz_payment_id = $2, rz_signature = $3, updated_at = NOW()
		WHERE rz_order_id = $1
		RETURNING `+logColumns,
		orderID, paymentID, signature,
	)
	log, err := scanLog(row)
	if err == pgx.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	return log, err
}

// UpsertPendingAdmin creates the request on first payment and relinks it to
// the new payment log on resubmission, leaving status untouched.
func (s *PgStore) UpsertPendingAdmin(ctx context.Context, form AdminRequestForm, totalFlats int, paymentLogID string) (string, error) {
	var id string
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO pending_admins (
			email, name, apartment_name, address, registration_number,
			phone_number, total_flats, status, payment_log_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'PENDING', $8::uuid)
		ON CONFLICT (email) DO UPDATE SET
			payment_log_id = EXCLUDED.payment_log_id,
			updated_at = NOW()
		RETURNING id::text`,
		form.Email, form.Name, form.ApartmentName, form.Address, form.RegistrationNumber,
		form.PhoneNumber, totalFlats, paymentLogID,
	).Scan(&id)
	return id, err
}

func (s *PgStore) ListPending(ctx context.Context) ([]PendingAdmin, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id::text, email, name, apartment_name, address, registration_number,
		       phone_number, total_flats, status, payment_log_id::text, created_at, updated_at
		FROM pending_admins
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PendingAdmin, 0)
	for rows.Next() {
		var p PendingAdmin
		if err := rows.Scan(
			&p.ID, &p.Email, &p.Name, &p.ApartmentName, &p.Address, &p.RegistrationNumber,
			&p.PhoneNumber, &p.TotalFlats, &p.Status, &p.PaymentLogID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanLog(row pgx.Row) (*PaymentLog, error) {
	var l PaymentLog
	err := row.Scan(
		&l.ID, &l.RzOrderID, &l.RzPaymentID, &l.RzSignature,
		&l.Amount, &l.Currency, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
