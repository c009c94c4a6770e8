package billing

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	nextID string
	calls  int
}

func (g *fakeGateway) CreateOrder(_ context.Context, amount int64, currency string) (*Order, error) {
	g.calls++
	return &Order{ID: g.nextID, Amount: amount, Currency: currency}, nil
}

type fakeStore struct {
	logs    map[string]*PaymentLog // by order id
	pending map[string]*PendingAdmin
	nextID  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		logs:    map[string]*PaymentLog{},
		pending: map[string]*PendingAdmin{},
	}
}

func (s *fakeStore) CreatePaymentLog(_ context.Context, orderID string, amount int64, currency string) (*PaymentLog, error) {
	s.nextID++
	l := &PaymentLog{
		ID:        "log-" + orderID,
		RzOrderID: orderID,
		Amount:    amount,
		Currency:  currency,
		Status:    StatusCreated,
		CreatedAt: time.Now(),
	}
	s.logs[orderID] = l
	return l, nil
}

func (s *fakeStore) MarkPaid(_ context.Context, orderID, paymentID, signature string) (*PaymentLog, error) {
	l, ok := s.logs[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	l.Status = StatusPaid
	l.RzPaymentID = &paymentID
	l.RzSignature = &signature
	return l, nil
}

func (s *fakeStore) UpsertPendingAdmin(_ context.Context, form AdminRequestForm, totalFlats int, paymentLogID string) (string, error) {
	if p, ok := s.pending[form.Email]; ok {
		p.PaymentLogID = paymentLogID
		p.UpdatedAt = time.Now()
		return p.ID, nil
	}
	s.nextID++
	p := &PendingAdmin{
		ID:           "pending-" + form.Email,
		Email:        form.Email,
		Name:         form.Name,
		TotalFlats:   totalFlats,
		Status:       PendingStatusPending,
		PaymentLogID: paymentLogID,
	}
	s.pending[form.Email] = p
	return p.ID, nil
}

func (s *fakeStore) ListPending(_ context.Context) ([]PendingAdmin, error) {
	out := make([]PendingAdmin, 0, len(s.pending))
	for _, p := range s.pending {
		out = append(out, *p)
	}
	return out, nil
}

const testSecret = "test_key_secret"

func sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func validForm() AdminRequestForm {
	return AdminRequestForm{
		Name:          "Asha Rao",
		Email:         "a@b.com",
		ApartmentName: "Green Meadows",
		Address:       "14 Lake Road, Pune",
		PhoneNumber:   "9800000000",
		TotalFlats:    "48",
	}
}

func newService(store Store) *Service {
	return NewService(&fakeGateway{nextID: "order_1"}, store, testSecret, zerolog.Nop())
}

func TestVerifySignatureVector(t *testing.T) {
	sig := sign("order_1", "pay_1")
	assert.True(t, VerifySignature("order_1", "pay_1", sig, testSecret))

	// Any single-character mutation must fail.
	mutated := "f" + sig[1:]
	if mutated == sig {
		mutated = "0" + sig[1:]
	}
	assert.False(t, VerifySignature("order_1", "pay_1", mutated, testSecret))
	assert.False(t, VerifySignature("order_2", "pay_1", sig, testSecret))
}

func TestCreateOrderPersistsCreatedLog(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	order, err := svc.CreateOrder(context.Background(), 999)
	require.NoError(t, err)
	assert.Equal(t, int64(99900), order.Amount, "rupees are converted to paise")

	log := store.logs["order_1"]
	require.NotNil(t, log)
	assert.Equal(t, StatusCreated, log.Status)
}

func TestVerifyCallbackHappyPath(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)
	_, err := svc.CreateOrder(context.Background(), 999)
	require.NoError(t, err)

	pendingID, err := svc.VerifyCallback(context.Background(), VerifyCallbackRequest{
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: sign("order_1", "pay_1"),
		Form:      validForm(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pendingID)

	log := store.logs["order_1"]
	assert.Equal(t, StatusPaid, log.Status)
	require.NotNil(t, log.RzPaymentID)
	assert.Equal(t, "pay_1", *log.RzPaymentID)

	p := store.pending["a@b.com"]
	require.NotNil(t, p)
	assert.Equal(t, PendingStatusPending, p.Status)
	assert.Equal(t, 48, p.TotalFlats)
	assert.Equal(t, log.ID, p.PaymentLogID)
}

func TestVerifyCallbackSignatureMismatchLeavesLogCreated(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)
	_, err := svc.CreateOrder(context.Background(), 999)
	require.NoError(t, err)

	_, err = svc.VerifyCallback(context.Background(), VerifyCallbackRequest{
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: "deadbeef",
		Form:      validForm(),
	})
	assert.ErrorIs(t, err, ErrSignatureMismatch)

	assert.Equal(t, StatusCreated, store.logs["order_1"].Status, "mismatch must not change state")
	assert.Empty(t, store.pending)
}

func TestVerifyCallbackMissingFields(t *testing.T) {
	svc := newService(newFakeStore())

	for _, req := range []VerifyCallbackRequest{
		{PaymentID: "pay_1", Signature: "sig"},
		{OrderID: "order_1", Signature: "sig"},
		{OrderID: "order_1", PaymentID: "pay_1"},
	} {
		req.Form = validForm()
		_, err := svc.VerifyCallback(context.Background(), req)
		assert.ErrorIs(t, err, ErrIncompleteCallback)
	}
}

func TestVerifyCallbackUnknownOrder(t *testing.T) {
	svc := newService(newFakeStore())

	_, err := svc.VerifyCallback(context.Background(), VerifyCallbackRequest{
		OrderID:   "order_missing",
		PaymentID: "pay_1",
		Signature: sign("order_missing", "pay_1"),
		Form:      validForm(),
	})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestVerifyCallbackRejectsBadForm(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)
	_, err := svc.CreateOrder(context.Background(), 999)
	require.NoError(t, err)

	form := validForm()
	form.Email = "not-an-email"
	_, err = svc.VerifyCallback(context.Background(), VerifyCallbackRequest{
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: sign("order_1", "pay_1"),
		Form:      form,
	})
	assert.ErrorIs(t, err, ErrInvalidForm)
	assert.Equal(t, StatusCreated, store.logs["order_1"].Status)

	form = validForm()
	form.TotalFlats = "zero"
	_, err = svc.VerifyCallback(context.Background(), VerifyCallbackRequest{
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: sign("order_1", "pay_1"),
		Form:      form,
	})
	assert.ErrorIs(t, err, ErrInvalidForm)
}

func TestResubmissionRelinksWithoutStatusChange(t *testing.T) {
	store := newFakeStore()
	gw := &fakeGateway{nextID: "order_1"}
	svc := NewService(gw, store, testSecret, zerolog.Nop())

	_, err := svc.CreateOrder(context.Background(), 999)
	require.NoError(t, err)
	firstID, err := svc.VerifyCallback(context.Background(), VerifyCallbackRequest{
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: sign("order_1", "pay_1"),
		Form:      validForm(),
	})
	require.NoError(t, err)

	// Simulate an out-of-band status change, then a resubmission.
	store.pending["a@b.com"].Status = PendingStatusRejected

	gw.nextID = "order_2"
	_, err = svc.CreateOrder(context.Background(), 999)
	require.NoError(t, err)
	secondID, err := svc.VerifyCallback(context.Background(), VerifyCallbackRequest{
		OrderID:   "order_2",
		PaymentID: "pay_2",
		Signature: sign("order_2", "pay_2"),
		Form:      validForm(),
	})
	require.NoError(t, err)

	assert.Equal(t, firstID, secondID, "resubmission must not create a duplicate row")
	p := store.pending["a@b.com"]
	assert.Equal(t, PendingStatusRejected, p.Status, "status is untouched on relink")
	assert.Equal(t, "log-order_2", p.PaymentLogID, "relinked to the new payment log")
	require.Len(t, store.pending, 1)
}
