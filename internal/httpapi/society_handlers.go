package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/epartment/society-backend/internal/auth"
	"github.com/epartment/society-backend/internal/domain"
)

type SocietyHandler struct {
	DB *pgxpool.Pool
}

// Get handles GET /api/society/:id — name/address for receipt headers.
func (h *SocietyHandler) Get(c *fiber.Ctx) error {
	if _, ok := auth.CurrentIdentity(c); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var s domain.Society
	err := h.DB.QueryRow(
		userContext(c),
		`SELECT id::text, name, address FROM societies WHERE id = $1::uuid`,
		c.Params("id"),
	).Scan(&s.ID, &s.Name, &s.Address)
	if err == pgx.ErrNoRows {
		return fiber.NewError(fiber.StatusNotFound, "society not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load society")
	}
	return c.JSON(s)
}
