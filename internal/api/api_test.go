package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mizanhq/mizan/internal/i18n"
	"github.com/mizanhq/mizan/internal/models"
	"github.com/mizanhq/mizan/internal/repo"
	"github.com/mizanhq/mizan/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	backend, err := store.OpenFlat(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	repositories := repo.NewRepositories(backend)
	require.NoError(t, repo.NewSeeder(repositories, zerolog.Nop()).Seed(context.Background()))

	i18nManager, err := i18n.NewManager(i18n.LangAR)
	require.NoError(t, err)

	handler := NewHandler(backend, "test-secret", i18nManager, i18n.LangAR, time.UTC)
	app := fiber.New()
	RegisterRoutes(app, handler)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	require.NoError(t, err)
	payload, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	return response, payload
}

func login(t *testing.T, app *fiber.App, username string, password string) string {
	t.Helper()

	response, payload := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": username,
		"password": password,
	})
	require.Equal(t, fiber.StatusOK, response.StatusCode, string(payload))

	parsed := struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}{}
	require.NoError(t, json.Unmarshal(payload, &parsed))
	require.NotEmpty(t, parsed.Token)
	require.Empty(t, parsed.User.PasswordHash)
	return parsed.Token
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := newTestApp(t)

	response, _ := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, response.StatusCode)
}

func TestRoutesRequireSession(t *testing.T) {
	app := newTestApp(t)

	response, _ := doJSON(t, app, fiber.MethodGet, "/api/invoices/", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, response.StatusCode)

	response, _ = doJSON(t, app, fiber.MethodGet, "/api/invoices/", "not-a-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, response.StatusCode)
}

func TestPermissionGate(t *testing.T) {
	app := newTestApp(t)

	// The stock viewer account only carries the "view" tag.
	viewerToken := login(t, app, "user", "user123")
	response, _ := doJSON(t, app, fiber.MethodGet, "/api/invoices/", viewerToken, nil)
	assert.Equal(t, fiber.StatusForbidden, response.StatusCode)

	accountantToken := login(t, app, "accountant", "account123")
	response, _ = doJSON(t, app, fiber.MethodGet, "/api/invoices/", accountantToken, nil)
	assert.Equal(t, fiber.StatusOK, response.StatusCode)

	// Backup needs the "all" tag; the accountant does not have it.
	response, _ = doJSON(t, app, fiber.MethodGet, "/api/backup/", accountantToken, nil)
	assert.Equal(t, fiber.StatusForbidden, response.StatusCode)
}

func TestInvoicePaymentFlow(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "admin", "admin123")

	response, payload := doJSON(t, app, fiber.MethodPost, "/api/invoices/", token, fiber.Map{
		"clientId":   7,
		"clientName": "شركة النور",
		"total":      50000,
	})
	require.Equal(t, fiber.StatusCreated, response.StatusCode, string(payload))

	invoice := models.Invoice{}
	require.NoError(t, json.Unmarshal(payload, &invoice))
	assert.NotZero(t, invoice.ID)
	assert.Equal(t, models.InvoiceStatusPending, invoice.Status)

	response, payload = doJSON(t, app, fiber.MethodPost, "/api/payments/", token, fiber.Map{
		"invoiceId": invoice.ID,
		"amount":    30000,
	})
	require.Equal(t, fiber.StatusCreated, response.StatusCode, string(payload))

	paymentResult := createPaymentResponse{}
	require.NoError(t, json.Unmarshal(payload, &paymentResult))
	assert.True(t, paymentResult.InvoiceUpdated)

	response, payload = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/invoices/%d", invoice.ID), token, nil)
	require.Equal(t, fiber.StatusOK, response.StatusCode)
	require.NoError(t, json.Unmarshal(payload, &invoice))
	assert.Equal(t, 30000.0, invoice.PaidAmount)
	assert.Equal(t, 20000.0, invoice.Balance)
	assert.Equal(t, models.InvoiceStatusPartial, invoice.Status)
}

func TestCreatePaymentForMissingInvoice(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "admin", "admin123")

	response, payload := doJSON(t, app, fiber.MethodPost, "/api/payments/", token, fiber.Map{
		"invoiceId": 424242,
		"amount":    100,
	})
	require.Equal(t, fiber.StatusCreated, response.StatusCode, string(payload))

	paymentResult := createPaymentResponse{}
	require.NoError(t, json.Unmarshal(payload, &paymentResult))
	assert.False(t, paymentResult.InvoiceUpdated)
}

func TestGetInvoiceNotFound(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "admin", "admin123")

	response, _ := doJSON(t, app, fiber.MethodGet, "/api/invoices/999999", token, nil)
	assert.Equal(t, fiber.StatusNotFound, response.StatusCode)
}

func TestFinancialReportEndpoint(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "admin", "admin123")

	response, payload := doJSON(t, app, fiber.MethodGet, "/api/reports/financial?period=year", token, nil)
	require.Equal(t, fiber.StatusOK, response.StatusCode, string(payload))

	report := map[string]any{}
	require.NoError(t, json.Unmarshal(payload, &report))
	assert.Equal(t, "year", report["period"])
}

func TestBackupRestoreEndpoints(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "admin", "admin123")

	response, payload := doJSON(t, app, fiber.MethodPost, "/api/invoices/", token, fiber.Map{"total": 100})
	require.Equal(t, fiber.StatusCreated, response.StatusCode)
	invoice := models.Invoice{}
	require.NoError(t, json.Unmarshal(payload, &invoice))

	response, payload = doJSON(t, app, fiber.MethodGet, "/api/backup/", token, nil)
	require.Equal(t, fiber.StatusOK, response.StatusCode, string(payload))

	bundle := map[string]any{}
	require.NoError(t, json.Unmarshal(payload, &bundle))
	assert.NotEmpty(t, bundle["backupId"])

	response, _ = doJSON(t, app, fiber.MethodPost, "/api/backup/restore", token, json.RawMessage(payload))
	require.Equal(t, fiber.StatusOK, response.StatusCode)

	response, _ = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/invoices/%d", invoice.ID), token, nil)
	assert.Equal(t, fiber.StatusOK, response.StatusCode)
}
