package billing

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/epartment/society-backend/internal/auth"
)

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

type createOrderRequest struct {
	Amount int64 `json:"amount"` // rupees
}

// CreateOrder handles POST /api/payments/order.
func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	if _, ok := auth.CurrentIdentity(c); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var body createOrderRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if body.Amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")
	}

	order, err := h.Service.CreateOrder(userContext(c), body.Amount)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create payment order")
	}
	return c.JSON(order)
}

type verifyRequest struct {
	RazorpayOrderID   string           `json:"razorpay_order_id"`
	RazorpayPaymentID string           `json:"razorpay_payment_id"`
	RazorpaySignature string           `json:"razorpay_signature"`
	FormData          AdminRequestForm `json:"formData"`
}

// Verify handles POST /api/payments/verify.
func (h *Handler) Verify(c *fiber.Ctx) error {
	if _, ok := auth.CurrentIdentity(c); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var body verifyRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	pendingID, err := h.Service.VerifyCallback(userContext(c), VerifyCallbackRequest{
		OrderID:   body.RazorpayOrderID,
		PaymentID: body.RazorpayPaymentID,
		Signature: body.RazorpaySignature,
		Form:      body.FormData,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrIncompleteCallback):
			return fiber.NewError(fiber.StatusBadRequest, "incomplete callback payload")
		case errors.Is(err, ErrSignatureMismatch):
			return fiber.NewError(fiber.StatusBadRequest, "signature mismatch")
		case errors.Is(err, ErrInvalidForm):
			return fiber.NewError(fiber.StatusBadRequest, "invalid admin request form")
		case errors.Is(err, ErrOrderNotFound):
			return fiber.NewError(fiber.StatusNotFound, "unknown order")
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "verification failed")
		}
	}

	return c.JSON(fiber.Map{"ok": true, "pending_id": pendingID})
}

// ListPending handles GET /api/admin/pending.
func (h *Handler) ListPending(c *fiber.Ctx) error {
	ident, ok := auth.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if !ident.Role.CanListPendingAdmins() {
		return fiber.NewError(fiber.StatusForbidden, "super admin only")
	}

	items, err := h.Service.Store.ListPending(userContext(c))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load pending admins")
	}
	return c.JSON(items)
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
