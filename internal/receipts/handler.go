package receipts

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/epartment/society-backend/internal/auth"
	"github.com/epartment/society-backend/internal/domain"
	"github.com/epartment/society-backend/internal/ledger"
)

// Notifier delivers a best-effort receipt-ready message to the payer.
type Notifier interface {
	ReceiptApproved(ctx context.Context, toPhone string, tx ledger.Transaction) error
}

type Handler struct {
	Repo     *Repository
	Ledger   *ledger.Repository
	Notifier Notifier
	Log      zerolog.Logger
}

func NewHandler(repo *Repository, ledgerRepo *ledger.Repository, notifier Notifier, log zerolog.Logger) *Handler {
	return &Handler{Repo: repo, Ledger: ledgerRepo, Notifier: notifier, Log: log}
}

// Query handles GET /api/accounting/approve-transaction with optional
// month/year/flat/type filters. Non-administrative callers are served income
// records regardless of the requested type.
func (h *Handler) Query(c *fiber.Ctx) error {
	ident, ok := auth.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if ident.SocietyID == "" {
		return fiber.NewError(fiber.StatusForbidden, "no society membership")
	}

	f, err := resolveFilters(ident.Role, c.Query("month"), c.Query("year"), c.Query("flat"), c.Query("type"))
	if err != nil {
		return err
	}

	items, err := h.Repo.QueryApproved(userContext(c), ident.SocietyID, f)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load receipts")
	}
	return c.JSON(items)
}

// Approve handles PATCH /api/accounting/approve-transaction/:id.
func (h *Handler) Approve(c *fiber.Ctx) error {
	ident, ok := auth.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if !ident.Role.CanApprove() {
		return fiber.NewError(fiber.StatusForbidden, "approval requires an admin role")
	}

	ctx := userContext(c)
	tx, err := h.Repo.Approve(ctx, ident.SocietyID, c.Params("id"))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "transaction not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to approve transaction")
	}

	h.Log.Info().
		Str("transaction_id", tx.ID).
		Str("approved_by", ident.Email).
		Msg("income transaction approved")

	h.notifyApproved(ctx, tx)

	return c.JSON(tx)
}

// ReceiptPDF handles GET /api/accounting/receipts/:id/pdf.
func (h *Handler) ReceiptPDF(c *fiber.Ctx) error {
	ident, ok := auth.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if ident.SocietyID == "" {
		return fiber.NewError(fiber.StatusForbidden, "no society membership")
	}

	ctx := userContext(c)
	tx, err := h.Ledger.GetByID(ctx, ident.SocietyID, c.Params("id"))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "transaction not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load transaction")
	}

	society, err := h.Repo.Society(ctx, ident.SocietyID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load society")
	}

	doc, err := RenderReceipt(*tx, society)
	if err != nil {
		if errors.Is(err, ErrNotApproved) {
			return fiber.NewError(fiber.StatusForbidden, "receipt available after admin approval")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render receipt")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="receipt_`+tx.ID+`.pdf"`)
	return c.Send(doc)
}

// resolveFilters maps query parameters onto Filters. Non-administrative
// callers are served income records regardless of the requested type.
func resolveFilters(role domain.Role, month, year, flat, txType string) (Filters, error) {
	var f Filters
	if v := strings.TrimSpace(month); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return Filters{}, fiber.NewError(fiber.StatusBadRequest, "month must be 1-12")
		}
		f.Month = m
	}
	if v := strings.TrimSpace(year); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return Filters{}, fiber.NewError(fiber.StatusBadRequest, "year invalid")
		}
		f.Year = y
	}
	f.Flat = flat

	if !role.CanFilterByType() {
		f.Type = ledger.TypeIncome
		return f, nil
	}
	switch strings.ToUpper(strings.TrimSpace(txType)) {
	case "":
	case "INCOME":
		f.Type = ledger.TypeIncome
	case "EXPENSE":
		f.Type = ledger.TypeExpense
	default:
		return Filters{}, fiber.NewError(fiber.StatusBadRequest, "type must be INCOME or EXPENSE")
	}
	return f, nil
}

// notifyApproved is best-effort: delivery failure is logged, never surfaced.
func (h *Handler) notifyApproved(ctx context.Context, tx *ledger.Transaction) {
	if h.Notifier == nil {
		return
	}
	phone, err := h.Repo.RecorderPhone(ctx, tx.RecordedBy)
	if err != nil || phone == "" {
		return
	}
	if err := h.Notifier.ReceiptApproved(ctx, phone, *tx); err != nil {
		h.Log.Warn().Err(err).Str("transaction_id", tx.ID).Msg("receipt notification failed")
	}
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
