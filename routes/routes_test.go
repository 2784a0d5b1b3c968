package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pos-backend/configs"
	"pos-backend/entity"
	"pos-backend/middlewares"
	"pos-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:routes_%s?mode=memory&cache=shared", uuid.NewString()[:8])
	db, err := configs.OpenDB(dsn, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, configs.SetupDatabase(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := &configs.Config{
		JWTSecret:       "test-secret",
		JWTTTL:          time.Hour,
		TaxRate:         decimal.RequireFromString("0.10"),
		PackagingFee:    2000,
		PackagingPolicy: "takeaway",
		LoginRatePerMin: 1000,
		AdminEmail:      "admin@example.com",
		AdminUsername:   "admin",
		AdminPassword:   "admin123",
		ShopName:        "Test Shop",
	}
	require.NoError(t, configs.SeedAdmin(db, cfg))

	deps, err := NewDeps(db, cfg, services.NoopRevoker{}, nil, nil)
	require.NoError(t, err)

	r := gin.New()
	r.Use(middlewares.RequestID())
	RegisterRoutes(r, deps)
	return &testServer{t: t, db: db, router: r}
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func (s *testServer) do(method, path string, body any, token string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middlewares.AuthCookie, Value: token})
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (s *testServer) login(username, password string) string {
	s.t.Helper()
	w, _ := s.do(http.MethodPost, "/auth/login", gin.H{"username": username, "password": password}, "")
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	for _, c := range w.Result().Cookies() {
		if c.Name == middlewares.AuthCookie {
			return c.Value
		}
	}
	s.t.Fatal("no auth cookie")
	return ""
}

func (s *testServer) register(username string) {
	s.t.Helper()
	w, _ := s.do(http.MethodPost, "/auth/register", gin.H{
		"username": username, "email": username + "@example.com", "password": "secret1",
	}, "")
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
}

func (s *testServer) count(model any) int64 {
	var n int64
	require.NoError(s.t, s.db.Model(model).Count(&n).Error)
	return n
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	s.register("kasir1")
	before := s.count(&entity.User{})

	w, env := s.do(http.MethodPost, "/auth/register", gin.H{
		"username": "kasir2", "email": "KASIR1@example.com", "password": "secret1",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.OK)

	w, _ = s.do(http.MethodPost, "/auth/register", gin.H{
		"username": "kasir3", "email": "Someone <kasir1@example.com>", "password": "secret1",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, before, s.count(&entity.User{}))
}

func TestLoginSetsCookies(t *testing.T) {
	s := newTestServer(t)
	s.register("kasir1")

	w, env := s.do(http.MethodPost, "/auth/login", gin.H{"username": "kasir1", "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		User struct {
			ID       uint        `json:"id"`
			Username string      `json:"username"`
			Role     entity.Role `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "kasir1", data.User.Username)
	assert.Equal(t, entity.RoleCashier, data.User.Role)

	cookies := map[string]*http.Cookie{}
	for _, c := range w.Result().Cookies() {
		cookies[c.Name] = c
	}
	require.Contains(t, cookies, middlewares.AuthCookie)
	require.Contains(t, cookies, middlewares.RoleCookie)
	assert.True(t, cookies[middlewares.AuthCookie].HttpOnly)
	assert.False(t, cookies[middlewares.RoleCookie].HttpOnly)
	assert.Equal(t, "CASHIER", cookies[middlewares.RoleCookie].Value)
	assert.Greater(t, cookies[middlewares.AuthCookie].MaxAge, 0)
}

func TestLoginWrongPasswordSetsNoCookie(t *testing.T) {
	s := newTestServer(t)
	s.register("kasir1")

	w, env := s.do(http.MethodPost, "/auth/login", gin.H{"username": "kasir1", "password": "wrong-pass"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.OK)
	assert.Empty(t, w.Header().Values("Set-Cookie"))
}

func TestBearerTokenAndLogout(t *testing.T) {
	s := newTestServer(t)
	s.register("kasir1")
	token := s.login("kasir1", "secret1")

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, "/users/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodPost, "/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		assert.Empty(t, c.Value)
		assert.Less(t, c.MaxAge, 0)
	}
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	s := newTestServer(t)
	s.register("kasir1")
	cashier := s.login("kasir1", "secret1")
	admin := s.login("admin", "admin123")

	w, _ := s.do(http.MethodGet, "/admin/users", nil, cashier)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := s.do(http.MethodGet, "/admin/users", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	var users []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &users))
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.NotContains(t, u, "passwordHash")
	}

	w, _ = s.do(http.MethodPost, "/products", gin.H{"name": "Kopi", "price": 10000}, cashier)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateProductWithoutPrice(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin", "admin123")

	w, _ := s.do(http.MethodPost, "/products", gin.H{"name": "Kopi"}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = s.do(http.MethodPost, "/products", gin.H{"price": 10000}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, s.count(&entity.Product{}))

	w, env := s.do(http.MethodPost, "/products", gin.H{"name": "Kopi", "price": 10000, "stock": 5}, admin)
	require.Equal(t, http.StatusCreated, w.Code)
	var p entity.Product
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, entity.CategoryFood, p.Category)
	assert.True(t, p.IsActive)

	w, _ = s.do(http.MethodGet, fmt.Sprintf("/products/%d", p.ID), nil, admin)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(http.MethodGet, "/products/999", nil, admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoleChangeThroughProfileIgnoredForCashier(t *testing.T) {
	s := newTestServer(t)
	s.register("kasir1")
	cashier := s.login("kasir1", "secret1")

	w, env := s.do(http.MethodPut, "/users/me", gin.H{"role": "ADMIN", "theme": "dark"}, cashier)
	require.Equal(t, http.StatusOK, w.Code)
	var u entity.User
	require.NoError(t, json.Unmarshal(env.Data, &u))
	assert.Equal(t, entity.RoleCashier, u.Role)

	w, _ = s.do(http.MethodGet, "/admin/users", nil, cashier)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOrderFlow(t *testing.T) {
	s := newTestServer(t)
	s.register("kasir1")
	cashier := s.login("kasir1", "secret1")
	admin := s.login("admin", "admin123")

	mk := func(name string, price int64) uint {
		w, env := s.do(http.MethodPost, "/products", gin.H{"name": name, "price": price, "stock": 20}, admin)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var p entity.Product
		require.NoError(t, json.Unmarshal(env.Data, &p))
		return p.ID
	}
	a, b := mk("Ayam Bakar", 20000), mk("Es Campur", 15000)

	w, _ := s.do(http.MethodPost, "/orders", gin.H{"items": []any{}, "diningMode": "TAKE_AWAY"}, cashier)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = s.do(http.MethodPost, "/orders", gin.H{
		"items": []gin.H{{"productId": 9999, "quantity": 1}}, "diningMode": "TAKE_AWAY",
	}, cashier)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, s.count(&entity.Order{}))
	assert.Zero(t, s.count(&entity.OrderItem{}))

	w, env := s.do(http.MethodPost, "/orders", gin.H{
		"items": []gin.H{
			{"productId": a, "quantity": 2, "price": 20000},
			{"productId": b, "quantity": 1, "price": 15000},
		},
		"diningMode":    "DINE_IN",
		"tableNo":       "12",
		"paymentMethod": "CASH",
	}, cashier)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order entity.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, int64(55000), order.Subtotal)
	assert.Equal(t, int64(5500), order.Tax)
	assert.Equal(t, int64(0), order.Packaging)
	assert.Equal(t, int64(60500), order.Total)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, int64(1), s.count(&entity.Order{}))

	w, _ = s.do(http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), nil, cashier)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, fmt.Sprintf("/orders/%d/receipt", order.ID), nil, cashier)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w, _ = s.do(http.MethodPatch, fmt.Sprintf("/orders/%d/status", order.ID), gin.H{"status": "CANCELLED"}, cashier)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = s.do(http.MethodPatch, fmt.Sprintf("/orders/%d/status", order.ID), gin.H{"status": "CANCELLED"}, admin)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(http.MethodPatch, fmt.Sprintf("/orders/%d/status", order.ID), gin.H{"status": "COMPLETED"}, admin)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = s.do(http.MethodGet, "/dashboard/stats", nil, cashier)
	require.Equal(t, http.StatusOK, w.Code)
	var stats services.DashboardStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(1), stats.TotalOrders)
	assert.Equal(t, int64(0), stats.TotalRevenue)
}
