package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/analytics"
	"github.com/jhoicas/cuentas-por-pagar/internal/application/auth"
	"github.com/jhoicas/cuentas-por-pagar/internal/application/payables"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/access"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	SupplierUC  *payables.SupplierUseCase
	DebtUC      *payables.DebtUseCase
	InvoiceUC   *payables.InvoiceUseCase
	PaymentUC   *payables.PaymentUseCase
	StatementUC *payables.StatementUseCase
	DashboardUC *analytics.DashboardUseCase
	Sessions    *session.Store
	AppName     string
}

// Router registra las rutas de la API. Cada ruta protegida declara su operación y
// Authorize consulta la tabla de políticas; los handlers no revisan roles.
func Router(app *fiber.App, deps RouterDeps) {
	sa := NewSessionAuth(deps.AuthUC, deps.Sessions)
	api := app.Group("/api", sa.Middleware())

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.Sessions)
	authGroup := api.Group("/auth")
	authGroup.Get("/login", authHandler.LoginForm)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", sa.Authorize(access.SessionLogout), authHandler.Logout)

	// Inicio
	homeHandler := NewHomeHandler(sa, deps.AppName)
	api.Get("/", sa.Authorize(access.HomeView), homeHandler.Home)
	api.Get("/contact", sa.Authorize(access.ContactView), homeHandler.Contact)

	// Tablero (solo admin)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", sa.Authorize(access.DashboardView), dashboardHandler.Summary)

	// Proveedores (solo admin, también lectura)
	supplierHandler := NewSupplierHandler(deps.SupplierUC, deps.StatementUC)
	suppliers := api.Group("/suppliers")
	suppliers.Post("/", sa.Authorize(access.SupplierCreate), supplierHandler.Create)
	suppliers.Get("/", sa.Authorize(access.SupplierList), supplierHandler.List)
	suppliers.Get("/:id", sa.Authorize(access.SupplierGet), supplierHandler.Get)
	suppliers.Put("/:id", sa.Authorize(access.SupplierUpdate), supplierHandler.Update)
	suppliers.Delete("/:id", sa.Authorize(access.SupplierDelete), supplierHandler.Delete)
	suppliers.Get("/:id/statement", sa.Authorize(access.SupplierStatement), supplierHandler.Statement)

	// Deudas (solo admin, también lectura)
	debtHandler := NewDebtHandler(deps.DebtUC)
	debts := api.Group("/debts")
	debts.Post("/", sa.Authorize(access.DebtCreate), debtHandler.Create)
	debts.Get("/", sa.Authorize(access.DebtList), debtHandler.List)
	debts.Get("/:id", sa.Authorize(access.DebtGet), debtHandler.Get)
	debts.Put("/:id", sa.Authorize(access.DebtUpdate), debtHandler.Update)
	debts.Delete("/:id", sa.Authorize(access.DebtDelete), debtHandler.Delete)

	// Facturas
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices := api.Group("/invoices")
	invoices.Post("/", sa.Authorize(access.InvoiceCreate), invoiceHandler.Create)
	invoices.Get("/", sa.Authorize(access.InvoiceList), invoiceHandler.List)
	invoices.Get("/:id", sa.Authorize(access.InvoiceGet), invoiceHandler.Get)
	invoices.Put("/:id", sa.Authorize(access.InvoiceUpdate), invoiceHandler.Update)
	invoices.Delete("/:id", sa.Authorize(access.InvoiceDelete), invoiceHandler.Delete)
	invoices.Get("/:id/file", sa.Authorize(access.InvoiceFile), invoiceHandler.File)

	// Pagos
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments := api.Group("/payments")
	payments.Post("/", sa.Authorize(access.PaymentCreate), paymentHandler.Create)
	payments.Get("/", sa.Authorize(access.PaymentList), paymentHandler.List)
	payments.Get("/:id", sa.Authorize(access.PaymentGet), paymentHandler.Get)
	payments.Put("/:id", sa.Authorize(access.PaymentUpdate), paymentHandler.Update)
	payments.Delete("/:id", sa.Authorize(access.PaymentDelete), paymentHandler.Delete)
	payments.Get("/:id/file", sa.Authorize(access.PaymentFile), paymentHandler.File)
}
