package billing

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/epartment/society-backend/internal/money"
)

// Gateway abstracts the payment provider: create an order, nothing more.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency string) (*Order, error)
}

type Service struct {
	Gateway   Gateway
	Store     Store
	KeySecret string
	Log       zerolog.Logger

	validate *validator.Validate
}

func NewService(gateway Gateway, store Store, keySecret string, log zerolog.Logger) *Service {
	return &Service{
		Gateway:   gateway,
		Store:     store,
		KeySecret: keySecret,
		Log:       log,
		validate:  validator.New(),
	}
}

// CreateOrder obtains an order from the gateway and records a CREATED payment
// log keyed by the gateway's order id. Amount is in rupees.
func (s *Service) CreateOrder(ctx context.Context, amountRupees int64) (*Order, error) {
	order, err := s.Gateway.CreateOrder(ctx, money.RupeesToPaise(amountRupees), "INR")
	if err != nil {
		return nil, err
	}

	if _, err := s.Store.CreatePaymentLog(ctx, order.ID, order.Amount, order.Currency); err != nil {
		return nil, err
	}

	s.Log.Info().Str("rz_order_id", order.ID).Int64("amount", order.Amount).Msg("payment order created")
	return order, nil
}

// VerifyCallbackRequest is the signed callback delivered after checkout.
type VerifyCallbackRequest struct {
	OrderID   string
	PaymentID string
	Signature string
	Form      AdminRequestForm
}

// VerifyCallback checks the callback signature and, on success, marks the
// payment log PAID and upserts the pending-admin request. The log update runs
// strictly before the upsert, so no invalid payment can ever promote a
// pending admin.
func (s *Service) VerifyCallback(ctx context.Context, req VerifyCallbackRequest) (string, error) {
	if strings.TrimSpace(req.OrderID) == "" ||
		strings.TrimSpace(req.PaymentID) == "" ||
		strings.TrimSpace(req.Signature) == "" {
		return "", ErrIncompleteCallback
	}

	if !VerifySignature(req.OrderID, req.PaymentID, req.Signature, s.KeySecret) {
		// Log the order id for investigation; the payment log stays CREATED
		// so a legitimate retry can still land.
		s.Log.Error().Str("rz_order_id", req.OrderID).Msg("callback signature mismatch")
		return "", ErrSignatureMismatch
	}

	if err := s.validate.Struct(req.Form); err != nil {
		return "", ErrInvalidForm
	}
	totalFlats, err := strconv.Atoi(strings.TrimSpace(req.Form.TotalFlats))
	if err != nil || totalFlats <= 0 {
		return "", ErrInvalidForm
	}

	log, err := s.Store.MarkPaid(ctx, req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		return "", err
	}

	pendingID, err := s.Store.UpsertPendingAdmin(ctx, req.Form, totalFlats, log.ID)
	if err != nil {
		return "", err
	}

	s.Log.Info().
		Str("rz_order_id", req.OrderID).
		Str("pending_admin_id", pendingID).
		Msg("payment verified, pending admin recorded")

	return pendingID, nil
}
