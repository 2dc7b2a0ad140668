package http_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/analytics"
	"github.com/jhoicas/cuentas-por-pagar/internal/application/auth"
	"github.com/jhoicas/cuentas-por-pagar/internal/application/dto"
	"github.com/jhoicas/cuentas-por-pagar/internal/application/payables"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/entity"
	"github.com/jhoicas/cuentas-por-pagar/internal/infrastructure/filestore"
	"github.com/jhoicas/cuentas-por-pagar/internal/infrastructure/pdf"
	"github.com/jhoicas/cuentas-por-pagar/internal/infrastructure/sessionstore"
	"github.com/jhoicas/cuentas-por-pagar/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/cuentas-por-pagar/internal/interfaces/http"
	"github.com/jhoicas/cuentas-por-pagar/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor de pruebas
// ──────────────────────────────────────────────────────────────────────────────

const (
	cookieName = "cxp_session"
	acceptHTML = "text/html,application/xhtml+xml"
)

type testServer struct {
	app       *fiber.App
	db        *sql.DB
	uploadDir string
}

// newTestServer levanta la app completa sobre SQLite en un directorio temporal,
// con los usuarios admin/admin123 y user/user123.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	db, err := sqlite.Open(ctx, filepath.Join(dir, "cxp.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repos := sqlite.NewRepositories(db)
	for _, u := range []struct{ name, pass, role string }{
		{"admin", "admin123", entity.RoleAdmin},
		{"user", "user123", entity.RoleUser},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.pass), bcrypt.MinCost)
		require.NoError(t, err)
		_, err = repos.Users.CreateIfAbsent(ctx, &entity.User{Username: u.name, PasswordHash: string(hash), Role: u.role})
		require.NoError(t, err)
	}

	storage := sessionstore.NewMemory(0)
	t.Cleanup(func() { _ = storage.Close() })

	uploadDir := filepath.Join(dir, "uploads")
	files, err := filestore.NewLocal(uploadDir, 1<<20)
	require.NoError(t, err)

	authUC := auth.NewAuthUseCase(repos.Users, sessionstore.NewBlacklist(storage), auth.TokenConfig{
		Secret: "secret-de-pruebas",
		TTL:    time.Hour,
		Issuer: "cxp-test",
	})

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(requestid.New())
	app.Use(apphttp.Observe(logger.Nop()))
	app.Get("/metrics", apphttp.MetricsHandler())
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		SupplierUC:  payables.NewSupplierUseCase(repos.Suppliers),
		DebtUC:      payables.NewDebtUseCase(repos.Debts),
		InvoiceUC:   payables.NewInvoiceUseCase(repos.Invoices, files),
		PaymentUC:   payables.NewPaymentUseCase(repos.Payments, files),
		StatementUC: payables.NewStatementUseCase(sqlite.NewTxRunner(db), pdf.NewStatementGenerator("cxp-test")),
		DashboardUC: analytics.NewDashboardUseCase(repos),
		Sessions: session.New(session.Config{
			Storage:        storage,
			KeyLookup:      "cookie:" + cookieName,
			Expiration:     time.Hour,
			CookieHTTPOnly: true,
			CookieSameSite: fiber.CookieSameSiteLaxMode,
		}),
		AppName: "cxp-test",
	})
	return &testServer{app: app, db: db, uploadDir: uploadDir}
}

// ──────────────────────────────────────────────────────────────────────────────
// Peticiones
// ──────────────────────────────────────────────────────────────────────────────

type reqOpt func(r *http.Request)

func bearer(token string) reqOpt {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func withCookie(c *http.Cookie) reqOpt {
	return func(r *http.Request) { r.AddCookie(c) }
}

func acceptsHTML() reqOpt {
	return func(r *http.Request) { r.Header.Set("Accept", acceptHTML) }
}

func (s *testServer) do(t *testing.T, req *http.Request, opts ...reqOpt) *http.Response {
	t.Helper()
	for _, o := range opts {
		o(req)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func (s *testServer) get(t *testing.T, path string, opts ...reqOpt) *http.Response {
	t.Helper()
	return s.do(t, httptest.NewRequest(http.MethodGet, path, nil), opts...)
}

func (s *testServer) delete(t *testing.T, path string, opts ...reqOpt) *http.Response {
	t.Helper()
	return s.do(t, httptest.NewRequest(http.MethodDelete, path, nil), opts...)
}

func (s *testServer) sendJSON(t *testing.T, method, path string, body any, opts ...reqOpt) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return s.do(t, req, opts...)
}

func (s *testServer) postForm(t *testing.T, path, form string, opts ...reqOpt) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(t, req, opts...)
}

// sendMultipart envía fields y, si fileName no está vacío, un archivo en el campo "file".
func (s *testServer) sendMultipart(t *testing.T, method, path string, fields map[string]string, fileName, content string, opts ...reqOpt) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = io.WriteString(fw, content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return s.do(t, req, opts...)
}

// loginToken inicia sesión como cliente API y devuelve el Bearer token.
func (s *testServer) loginToken(t *testing.T, username, password string) string {
	t.Helper()
	resp := s.sendJSON(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Username: username, Password: password})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

// loginCookie inicia sesión como navegador y devuelve la cookie de sesión.
func (s *testServer) loginCookie(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	resp := s.postForm(t, "/api/auth/login", "username="+username+"&password="+password, acceptsHTML())
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	return sessionCookie(t, resp)
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatalf("la respuesta no trae la cookie %s", cookieName)
	return nil
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return b
}

// createSupplier crea un proveedor como admin y devuelve su ID.
func (s *testServer) createSupplier(t *testing.T, adminToken, name string) int64 {
	t.Helper()
	resp := s.sendJSON(t, http.MethodPost, "/api/suppliers", dto.SupplierRequest{
		Name: name, Email: "a@x.com", Phone: "555-0100",
	}, bearer(adminToken))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var out dto.SupplierResponse
	decode(t, resp, &out)
	return out.ID
}
