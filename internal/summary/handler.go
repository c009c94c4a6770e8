package summary

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/epartment/society-backend/internal/auth"
	"github.com/epartment/society-backend/internal/ledger"
)

type Handler struct {
	Repo *ledger.Repository
}

func NewHandler(repo *ledger.Repository) *Handler {
	return &Handler{Repo: repo}
}

type response struct {
	Monthly []MonthlyBucket `json:"monthly"`
	Summary MonthSummary    `json:"summary"`
}

// GetSummary handles GET /api/accounting/summary: the full monthly series plus
// the current calendar month's totals, recomputed from the transaction set on
// every read.
func (h *Handler) GetSummary(c *fiber.Ctx) error {
	ident, ok := auth.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if ident.SocietyID == "" {
		return fiber.NewError(fiber.StatusForbidden, "no society membership")
	}

	txs, err := h.Repo.ListBySociety(userContext(c), ident.SocietyID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to compute summary")
	}

	monthly, sum := Aggregate(txs, time.Now())
	return c.JSON(response{Monthly: monthly, Summary: sum})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
