package httpapi

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bazaar-admin/internal/domain/entity"
	"github.com/yourusername/bazaar-admin/internal/infrastructure/api"
	"github.com/yourusername/bazaar-admin/internal/infrastructure/parser"
	"github.com/yourusername/bazaar-admin/internal/infrastructure/storage"
	"github.com/yourusername/bazaar-admin/internal/usecase"
)

// fakeBackend stands in for the e-commerce API
type fakeBackend struct {
	mu       sync.Mutex
	created  []entity.ProductPayload
	statuses map[string]entity.OrderStatus
}

func (b *fakeBackend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer backend-token" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "backend-token"})
	})
	mux.HandleFunc("GET /api/categories", authed(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]entity.Category{{ID: "c1", Name: "Snacks", Slug: "snacks"}})
	}))
	mux.HandleFunc("POST /api/products", authed(func(w http.ResponseWriter, r *http.Request) {
		var p entity.ProductPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		b.mu.Lock()
		b.created = append(b.created, p)
		b.mu.Unlock()
		if p.SKU == "DUP" {
			http.Error(w, "sku already exists", http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(entity.Product{ID: "p-" + p.Name, Name: p.Name})
	}))
	mux.HandleFunc("GET /api/products", authed(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]entity.Product{{ID: "p1", Active: true, Stock: 2}})
	}))
	mux.HandleFunc("DELETE /api/products/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "p1" {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	mux.HandleFunc("GET /api/orders", authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		var out []entity.Order
		for id, st := range b.statuses {
			out = append(out, entity.Order{ID: id, Status: st, TotalCents: 1000, PlacedAt: time.Now()})
		}
		_ = json.NewEncoder(w).Encode(out)
	}))
	mux.HandleFunc("GET /api/orders/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		st, ok := b.statuses[r.PathValue("id")]
		if !ok {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(entity.Order{ID: r.PathValue("id"), Status: st})
	}))
	mux.HandleFunc("PUT /api/orders/{id}/status", authed(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status entity.OrderStatus `json:"status"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		b.mu.Lock()
		b.statuses[r.PathValue("id")] = body.Status
		b.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	return mux
}

func setupTestEcho(t *testing.T) (*echo.Echo, *fakeBackend) {
	t.Helper()

	backend := &fakeBackend{statuses: map[string]entity.OrderStatus{
		"o1": entity.OrderPending,
		"o2": entity.OrderDelivered,
	}}
	upstream := httptest.NewServer(backend.handler(t))
	t.Cleanup(upstream.Close)

	client := api.NewClient(upstream.URL+"/api", 2*time.Second)
	audit := storage.NewMemoryAuditRepository()
	executor := usecase.NewImportExecutor(client, nil)

	srv := NewServer(
		usecase.NewAdminUseCase(client, storage.NewMemoryAdminRepository(time.Hour), audit),
		usecase.NewImportUseCase(parser.NewSpreadsheetParser(), client, executor, audit),
		usecase.NewOrderUseCase(client, audit),
		usecase.NewProductUseCase(client, audit),
		usecase.NewDashboardUseCase(client, client),
		1<<20,
	)

	e := echo.New()
	srv.RegisterRoutes(e)
	return e, backend
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@shop.test", "password": "secret"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	assert.NotEqual(t, "backend-token", resp.Token)
	return resp.Token
}

func uploadFile(t *testing.T, e *echo.Echo, token, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/imports", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_RequireSession(t *testing.T) {
	e, _ := setupTestEcho(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"Health check", http.MethodGet, "/health", http.StatusOK},
		{"Dashboard", http.MethodGet, "/api/dashboard", http.StatusUnauthorized},
		{"Products", http.MethodGet, "/api/products", http.StatusUnauthorized},
		{"Import template", http.MethodGet, "/api/imports/template", http.StatusUnauthorized},
		{"Import history", http.MethodGet, "/api/imports/history", http.StatusUnauthorized},
		{"Orders", http.MethodGet, "/api/orders", http.StatusUnauthorized},
		{"Advance order", http.MethodPost, "/api/orders/o1/advance", http.StatusUnauthorized},
		{"Logout", http.MethodPost, "/api/auth/logout", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, e, tt.method, tt.path, "", nil)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	rec := doJSON(t, e, http.MethodGet, "/api/orders", "not-a-session", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginLogout(t *testing.T) {
	e, _ := setupTestEcho(t)

	rec := doJSON(t, e, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@shop.test", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := login(t, e)
	assert.Equal(t, http.StatusOK, doJSON(t, e, http.MethodGet, "/api/orders", token, nil).Code)

	assert.Equal(t, http.StatusNoContent, doJSON(t, e, http.MethodPost, "/api/auth/logout", token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, e, http.MethodGet, "/api/orders", token, nil).Code)
}

func TestImportFlow(t *testing.T) {
	e, backend := setupTestEcho(t)
	token := login(t, e)

	csv := "name,description,price,stock,category,sku\n" +
		"Chips,Salty,1.99,10,SNACKS,CH-1\n" +
		",,2,1,,\n" +
		"Nuts,,abc,5,,\n" +
		"Dup,,3.5,2,snacks,DUP\n" +
		"Tea,,4,x,,\n"

	rec := uploadFile(t, e, token, "products.csv", csv)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var batch entity.ImportBatch
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &batch))
	assert.Equal(t, entity.PhaseReady, batch.Phase)
	require.Len(t, batch.Rows, 5)
	assert.Equal(t, 2, batch.Rows[0].RowNumber)
	assert.Equal(t, []string{usecase.MsgNameRequired}, batch.Rows[1].Errors)
	assert.Equal(t, []string{usecase.MsgPriceNotNum}, batch.Rows[2].Errors)
	assert.Equal(t, []string{usecase.MsgStockNotNum}, batch.Rows[4].Errors)

	rec = doJSON(t, e, http.MethodPost, "/api/imports/"+batch.ID+"/run", token, nil)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	var final entity.ImportBatch
	require.Eventually(t, func() bool {
		rec := doJSON(t, e, http.MethodGet, "/api/imports/"+batch.ID, token, nil)
		if rec.Code != http.StatusOK {
			return false
		}
		final = entity.ImportBatch{}
		_ = json.Unmarshal(rec.Body.Bytes(), &final)
		return final.Phase == entity.PhaseComplete
	}, 5*time.Second, 20*time.Millisecond)

	assert.Equal(t, entity.ImportSummary{Succeeded: 1, Failed: 1}, final.Summary)
	assert.Equal(t, 100, final.Progress.Percent)
	assert.Equal(t, entity.ImportSuccess, final.Rows[0].Status)
	assert.Equal(t, "p-Chips", final.Rows[0].ProductID)
	assert.Equal(t, entity.ImportPending, final.Rows[1].Status)
	assert.Equal(t, entity.ImportError, final.Rows[3].Status)
	assert.Equal(t, "sku already exists", final.Rows[3].Message)

	backend.mu.Lock()
	require.Len(t, backend.created, 2)
	assert.Equal(t, int64(199), backend.created[0].PriceCents)
	assert.Equal(t, []string{"c1"}, backend.created[0].CategoryIDs)
	assert.True(t, backend.created[0].Active)
	backend.mu.Unlock()

	// a finished batch cannot run again
	rec = doJSON(t, e, http.MethodPost, "/api/imports/"+batch.ID+"/run", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/api/imports/history", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var runs []entity.ImportRun
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "products.csv", runs[0].Filename)
}

func TestImportUploadErrors(t *testing.T) {
	e, _ := setupTestEcho(t)
	token := login(t, e)

	rec := uploadFile(t, e, token, "legacy.xls", "binary")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = uploadFile(t, e, token, "empty.csv", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = uploadFile(t, e, token, "big.csv", strings.Repeat("x", 1<<20+1))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	// header only: a batch with nothing to run
	rec = uploadFile(t, e, token, "header.csv", "name,price,stock\n")
	require.Equal(t, http.StatusCreated, rec.Code)
	var batch entity.ImportBatch
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &batch))
	rec = doJSON(t, e, http.MethodPost, "/api/imports/"+batch.ID+"/run", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// batches belong to the session that uploaded them
	other := login(t, e)
	rec = doJSON(t, e, http.MethodGet, "/api/imports/"+batch.ID, other, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImportTemplate(t *testing.T) {
	e, _ := setupTestEcho(t)
	token := login(t, e)

	rec := doJSON(t, e, http.MethodGet, "/api/imports/template", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), templateFilename)
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestOrderTransitions(t *testing.T) {
	e, backend := setupTestEcho(t)
	token := login(t, e)

	rec := doJSON(t, e, http.MethodGet, "/api/orders/o1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "pending", view["status"])
	assert.Equal(t, "confirmed", view["next_status"])
	assert.Equal(t, true, view["can_cancel"])
	assert.Equal(t, float64(0), view["progress"])

	rec = doJSON(t, e, http.MethodPost, "/api/orders/o1/advance", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "confirmed", view["status"])
	assert.Equal(t, float64(25), view["progress"])

	rec = doJSON(t, e, http.MethodPost, "/api/orders/o1/cancel", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	backend.mu.Lock()
	assert.Equal(t, entity.OrderCancelled, backend.statuses["o1"])
	backend.mu.Unlock()

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"advance cancelled", "/api/orders/o1/advance", http.StatusConflict},
		{"cancel cancelled", "/api/orders/o1/cancel", http.StatusConflict},
		{"advance delivered", "/api/orders/o2/advance", http.StatusConflict},
		{"cancel delivered", "/api/orders/o2/cancel", http.StatusConflict},
		{"unknown order", "/api/orders/o9/advance", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, doJSON(t, e, http.MethodPost, tt.path, token, nil).Code)
		})
	}
}

func TestProductsAndDashboard(t *testing.T) {
	e, _ := setupTestEcho(t)
	token := login(t, e)

	rec := doJSON(t, e, http.MethodGet, "/api/products?limit=10", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusNoContent, doJSON(t, e, http.MethodDelete, "/api/products/p1", token, nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, e, http.MethodDelete, "/api/products/p9", token, nil).Code)

	rec = doJSON(t, e, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats entity.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.Orders)
	assert.Equal(t, int64(2000), stats.RevenueCents)
	assert.Equal(t, 1, stats.ActiveProducts)
	assert.Equal(t, 1, stats.LowStock)
	assert.Len(t, stats.SalesByDay, 7)
}
