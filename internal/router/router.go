package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/epartment/society-backend/internal/billing"
	"github.com/epartment/society-backend/internal/httpapi"
	"github.com/epartment/society-backend/internal/ledger"
	"github.com/epartment/society-backend/internal/receipts"
	"github.com/epartment/society-backend/internal/summary"
)

type Router struct {
	AuthHandler     *httpapi.AuthHandler
	SocietyHandler  *httpapi.SocietyHandler
	LedgerHandler   *ledger.Handler
	SummaryHandler  *summary.Handler
	ReceiptsHandler *receipts.Handler
	BillingHandler  *billing.Handler
	AuthMW          fiber.Handler
	WriteLimit      fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	if r.AuthHandler != nil {
		app.Post("/api/auth/signup", RateLimitAuth(), r.AuthHandler.Signup)
		app.Post("/api/auth/login", RateLimitAuth(), r.AuthHandler.Login)
		app.Get("/api/users/me", r.AuthMW, r.AuthHandler.Me)
	}

	if r.SocietyHandler != nil {
		app.Get("/api/society/:id", r.AuthMW, r.SocietyHandler.Get)
	}

	if r.LedgerHandler != nil {
		app.Post("/api/accounting/transactions", r.WriteLimit, r.AuthMW, r.LedgerHandler.Create)
		app.Get("/api/accounting/transactions", r.AuthMW, r.LedgerHandler.List)
	}

	if r.SummaryHandler != nil {
		app.Get("/api/accounting/summary", r.AuthMW, r.SummaryHandler.GetSummary)
	}

	if r.ReceiptsHandler != nil {
		app.Get("/api/accounting/approve-transaction", r.AuthMW, r.ReceiptsHandler.Query)
		app.Patch("/api/accounting/approve-transaction/:id", r.WriteLimit, r.AuthMW, r.ReceiptsHandler.Approve)
		app.Get("/api/accounting/receipts/:id/pdf", r.AuthMW, r.ReceiptsHandler.ReceiptPDF)
	}

	if r.BillingHandler != nil {
		app.Post("/api/payments/order", r.WriteLimit, r.AuthMW, r.BillingHandler.CreateOrder)
		app.Post("/api/payments/verify", r.WriteLimit, r.AuthMW, r.BillingHandler.Verify)
		app.Get("/api/admin/pending", r.AuthMW, r.BillingHandler.ListPending)
	}
}
