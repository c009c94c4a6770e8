package ledger

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/epartment/society-backend/internal/auth"
)

type Handler struct {
	Service *Service
	Repo    *Repository
}

func NewHandler(service *Service, repo *Repository) *Handler {
	return &Handler{Service: service, Repo: repo}
}

// Create handles POST /api/accounting/transactions.
func (h *Handler) Create(c *fiber.Ctx) error {
	ident, ok := auth.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if ident.SocietyID == "" {
		return fiber.NewError(fiber.StatusForbidden, "no society membership")
	}

	var req CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	tx, err := h.Service.Record(userContext(c), req, Actor{
		Email:     ident.Email,
		Role:      ident.Role,
		SocietyID: ident.SocietyID,
	})
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": verr.Reason,
				"field": verr.Field,
			})
		}
		if errors.Is(err, ErrForbidden) {
			return fiber.NewError(fiber.StatusForbidden, "role not permitted")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to record transaction")
	}

	return c.Status(fiber.StatusCreated).JSON(tx)
}

// List handles GET /api/accounting/transactions.
func (h *Handler) List(c *fiber.Ctx) error {
	ident, ok := auth.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if ident.SocietyID == "" {
		return fiber.NewError(fiber.StatusForbidden, "no society membership")
	}

	txs, err := h.Repo.ListBySociety(userContext(c), ident.SocietyID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load transactions")
	}
	return c.JSON(txs)
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
