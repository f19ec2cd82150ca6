package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"katalog/internal/database"
	"katalog/internal/handlers"
	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupApp builds a Fiber app backed by an in-memory database, mirroring the
// wiring in main.go (no events broker).
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gateway, err := database.New(database.Config{DSN: dsn})
	require.NoError(t, err)
	db, err := gateway.Connect()
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Provider{}, &models.Product{}))

	productRepo := repositories.NewGORMProductRepository(db)
	providerRepo := repositories.NewGORMProviderRepository(db)

	productService := services.NewProductService(productRepo, nil)
	providerService := services.NewProviderService(providerRepo, nil)

	productHandler := handlers.NewProductHandler(productService)
	providerHandler := handlers.NewProviderHandler(providerService)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	api := app.Group("/api")
	productHandler.RegisterRoutes(api)
	providerHandler.RegisterRoutes(api)

	return app
}

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

type productListResponse struct {
	Products   []models.Product `json:"products"`
	TotalPages int64            `json:"totalPages"`
}

type providerListResponse struct {
	Providers  []models.Provider `json:"providers"`
	TotalPages int64             `json:"totalPages"`
}

func createProvider(t *testing.T, app *fiber.App, name string) models.Provider {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/providers", map[string]interface{}{
		"name":    name,
		"address": "1 Main St",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var provider models.Provider
	decodeBody(t, resp, &provider)
	return provider
}

func TestProviderLifecycle(t *testing.T) {
	app := setupApp(t)

	// Create
	resp := doJSON(t, app, http.MethodPost, "/api/providers", map[string]interface{}{
		"name":    "Acme",
		"address": "1 Main St",
		"phone":   "555-1234",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Provider
	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, "Acme", created.Name)

	// Listed on the first page
	resp = doJSON(t, app, http.MethodGet, "/api/providers?page=1&limit=5", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var list providerListResponse
	decodeBody(t, resp, &list)
	assert.Equal(t, int64(1), list.TotalPages)
	require.Len(t, list.Providers, 1)
	assert.Equal(t, created.ID, list.Providers[0].ID)

	// Delete, then reads 404
	resp = doJSON(t, app, http.MethodDelete, "/api/providers/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var deleteResp map[string]string
	decodeBody(t, resp, &deleteResp)
	assert.Contains(t, deleteResp["message"], "deleted successfully")

	resp = doJSON(t, app, http.MethodGet, "/api/providers/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestProviderValidation(t *testing.T) {
	app := setupApp(t)

	// Missing address is rejected on the write path.
	resp := doJSON(t, app, http.MethodPost, "/api/providers", map[string]interface{}{
		"name": "Acme",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/providers", nil)
	var list providerListResponse
	decodeBody(t, resp, &list)
	assert.Empty(t, list.Providers)
	assert.Equal(t, int64(0), list.TotalPages)
}

func TestProductCreateAndReadBack(t *testing.T) {
	app := setupApp(t)
	provider := createProvider(t, app, "Acme")

	resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]interface{}{
		"name":        "Laptop",
		"price":       1200.50,
		"description": "High performance laptop",
		"provider":    provider.ID,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Product
	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.ID)

	// Read back returns the same fields with the provider resolved.
	resp = doJSON(t, app, http.MethodGet, "/api/products/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.Product
	decodeBody(t, resp, &fetched)
	assert.Equal(t, "Laptop", fetched.Name)
	assert.Equal(t, 1200.50, fetched.Price)
	assert.Equal(t, "High performance laptop", fetched.Description)
	require.NotNil(t, fetched.ProviderID)
	assert.Equal(t, provider.ID, *fetched.ProviderID)
	require.NotNil(t, fetched.Provider)
	assert.Equal(t, "Acme", fetched.Provider.Name)
}

func TestProductCreateValidation(t *testing.T) {
	app := setupApp(t)

	// Zero price
	resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]interface{}{
		"name":  "Freebie",
		"price": 0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Missing name
	resp = doJSON(t, app, http.MethodPost, "/api/products", map[string]interface{}{
		"price": 10,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Malformed provider reference
	resp = doJSON(t, app, http.MethodPost, "/api/products", map[string]interface{}{
		"name":     "Laptop",
		"price":    10,
		"provider": "not-an-id",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Nothing was stored.
	resp = doJSON(t, app, http.MethodGet, "/api/products", nil)
	var list productListResponse
	decodeBody(t, resp, &list)
	assert.Empty(t, list.Products)
	assert.Equal(t, int64(0), list.TotalPages)
}

func TestProductPutReplacesFields(t *testing.T) {
	app := setupApp(t)
	provider := createProvider(t, app, "Acme")

	resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]interface{}{
		"name":        "Laptop",
		"price":       1200,
		"description": "Old description",
		"provider":    provider.ID,
	})
	var created models.Product
	decodeBody(t, resp, &created)

	// Full replace: omitted description and provider are cleared.
	resp = doJSON(t, app, http.MethodPut, "/api/products/"+created.ID, map[string]interface{}{
		"name":  "Laptop Pro",
		"price": 1500,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Product
	decodeBody(t, resp, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Laptop Pro", updated.Name)
	assert.Equal(t, 1500.0, updated.Price)
	assert.Empty(t, updated.Description)
	assert.Nil(t, updated.ProviderID)
}

func TestProductPatchPartialUpdate(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]interface{}{
		"name":        "Laptop",
		"price":       1200,
		"description": "Keep me",
	})
	var created models.Product
	decodeBody(t, resp, &created)

	resp = doJSON(t, app, http.MethodPatch, "/api/products/"+created.ID, map[string]interface{}{
		"price": 999.99,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var patched models.Product
	decodeBody(t, resp, &patched)
	assert.Equal(t, "Laptop", patched.Name)
	assert.Equal(t, 999.99, patched.Price)
	assert.Equal(t, "Keep me", patched.Description)
}

func TestProductPutMissingIDDoesNotCreate(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodPut, "/api/products/"+uuid.New().String(), map[string]interface{}{
		"name":  "Ghost",
		"price": 10,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/products", nil)
	var list productListResponse
	decodeBody(t, resp, &list)
	assert.Empty(t, list.Products)
}

func TestMalformedIDRejectedBeforeStore(t *testing.T) {
	app := setupApp(t)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		resp := doJSON(t, app, method, "/api/products/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()

		resp = doJSON(t, app, method, "/api/providers/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, app, http.MethodPut, "/api/products/not-a-uuid", map[string]interface{}{
		"name":  "Laptop",
		"price": 10,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestDeletingProviderLeavesProductIntact(t *testing.T) {
	app := setupApp(t)
	provider := createProvider(t, app, "Acme")

	resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]interface{}{
		"name":     "Laptop",
		"price":    1200,
		"provider": provider.ID,
	})
	var created models.Product
	decodeBody(t, resp, &created)

	resp = doJSON(t, app, http.MethodDelete, "/api/providers/"+provider.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The product still exists and keeps its now-dangling reference.
	resp = doJSON(t, app, http.MethodGet, "/api/products/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.Product
	decodeBody(t, resp, &fetched)
	require.NotNil(t, fetched.ProviderID)
	assert.Equal(t, provider.ID, *fetched.ProviderID)
	assert.Nil(t, fetched.Provider)
}

func TestProductListPaginationAndSearch(t *testing.T) {
	app := setupApp(t)

	names := []string{"Laptop", "Lapel Pin", "Keyboard", "Mouse", "Monitor", "Webcam", "Headset"}
	for _, name := range names {
		resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]interface{}{
			"name":  name,
			"price": 10,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, app, http.MethodGet, "/api/products?page=2&limit=5", nil)
	var list productListResponse
	decodeBody(t, resp, &list)
	assert.Equal(t, int64(2), list.TotalPages)
	assert.Len(t, list.Products, 2)

	// Case-insensitive substring search on name.
	resp = doJSON(t, app, http.MethodGet, "/api/products?query=LAP", nil)
	decodeBody(t, resp, &list)
	assert.Equal(t, int64(1), list.TotalPages)
	assert.Len(t, list.Products, 2)

	// Filter fields outside the allowlist are rejected.
	resp = doJSON(t, app, http.MethodGet, "/api/products?filterBy=secret&filterValue=x", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestMethodNotAllowed(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodPut, "/api/products", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	allow := resp.Header.Get("Allow")
	assert.Contains(t, allow, http.MethodGet)
	assert.Contains(t, allow, http.MethodPost)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body["error"])
}
