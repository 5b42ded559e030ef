package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"foodloss-backend/internal/testutil"
	"foodloss-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type client struct {
	t        *testing.T
	app      *fiber.App
	services Services
}

func newClient(t *testing.T) *client {
	t.Helper()
	app := fiber.New()
	services := Mount(app, Dependencies{
		DB:         testutil.NewTestDB(t),
		S3:         testutil.NewFakeS3(),
		Mailer:     &testutil.FakeMailer{},
		JWTService: jwt.NewJWTServiceWithSecret("http-test-secret", time.Hour),
		BcryptCost: bcrypt.MinCost,
	})
	return &client{t: t, app: app, services: services}
}

func (c *client) do(method, path, token string, body any) (int, map[string]any) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp.StatusCode, out
}

func (c *client) register(email, role string) string {
	c.t.Helper()
	code, body := c.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": email, "password": "secret1", "name": "Taro", "role": role,
	})
	require.Equal(c.t, http.StatusOK, code, body)
	token, _ := body["token"].(string)
	require.NotEmpty(c.t, token)
	return token
}

func TestAuthFlow(t *testing.T) {
	c := newClient(t)
	token := c.register("taro@example.com", "USER")

	code, body := c.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "TARO@example.com", "password": "secret1", "name": "Taro", "role": "USER",
	})
	assert.Equal(t, http.StatusConflict, code, body)

	code, _ = c.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "taro@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = c.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "taro@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, code, body)
	user := body["user"].(map[string]any)
	assert.NotContains(t, user, "password")
	assert.NotNil(t, user["lastLogin"])

	code, body = c.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "taro@example.com", body["email"])

	code, body = c.do(http.MethodPut, "/api/auth/profile", token, map[string]any{"name": "Jiro"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Jiro", body["name"])
	assert.Equal(t, "taro@example.com", body["email"])

	code, _ = c.do(http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = c.do(http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRegisterValidationMessages(t *testing.T) {
	c := newClient(t)

	code, body := c.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"password": "123", "name": "Taro", "role": "USER",
	})
	require.Equal(t, http.StatusBadRequest, code)
	fields := body["error"].(map[string]any)
	assert.Equal(t, "メールアドレスは必須です", fields["email"])
	assert.Equal(t, "パスワードは6文字以上で入力してください", fields["password"])

	code, _ = c.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "admin@example.com", "password": "secret1", "name": "Root", "role": "ADMIN",
	})
	assert.Equal(t, http.StatusForbidden, code)
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	c := newClient(t)

	code, body := c.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "taro@example.com", "password": strings.Repeat("p", 80), "name": "Taro", "role": "USER",
	})
	require.Equal(t, http.StatusBadRequest, code, body)
	assert.Equal(t, "パスワードは72バイト以内で入力してください", body["error"].(map[string]any)["password"])

	code, body = c.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "taro@example.com", "password": strings.Repeat("あ", 25), "name": "Taro", "role": "USER",
	})
	assert.Equal(t, http.StatusBadRequest, code, body)
}

func TestDeactivatedStoreLosesAccess(t *testing.T) {
	c := newClient(t)
	storeToken := c.register("shop@example.com", "STORE")

	code, body := c.do(http.MethodGet, "/api/auth/me", storeToken, nil)
	require.Equal(t, http.StatusOK, code, body)
	storeUserID := body["id"].(string)

	_, err := c.services.User.RegisterAdmin(context.Background(), "root@example.com", "secret1", "Root")
	require.NoError(t, err)
	code, body = c.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "root@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, code, body)
	adminToken := body["token"].(string)

	code, body = c.do(http.MethodPatch, "/api/admin/users/"+storeUserID+"/active", adminToken, map[string]any{"is_active": false})
	require.Equal(t, http.StatusOK, code, body)

	code, _ = c.do(http.MethodPost, "/api/stores", storeToken, map[string]any{"name": "Corner Bakery"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = c.do(http.MethodPatch, "/api/admin/users/"+storeUserID+"/active", adminToken, map[string]any{"is_active": true})
	require.Equal(t, http.StatusOK, code, body)

	code, body = c.do(http.MethodPost, "/api/stores", storeToken, map[string]any{"name": "Corner Bakery"})
	assert.Equal(t, http.StatusCreated, code, body)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	c := newClient(t)

	code, _ := c.do(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = c.do(http.MethodGet, "/api/auth/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = c.do(http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestFoodListingFlow(t *testing.T) {
	c := newClient(t)
	storeToken := c.register("shop@example.com", "STORE")
	userToken := c.register("taro@example.com", "USER")

	code, body := c.do(http.MethodPost, "/api/stores", storeToken, map[string]any{"name": "Corner Bakery"})
	require.Equal(t, http.StatusCreated, code, body)
	storeID := body["data"].(map[string]any)["id"].(string)

	listing := map[string]any{
		"name":           "Day-old bread",
		"original_price": "10.00",
		"current_price":  "4.50",
		"quantity":       3,
		"expiry_date":    time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		"tags":           []string{"bakery"},
	}

	code, _ = c.do(http.MethodPost, "/api/foods", userToken, listing)
	assert.Equal(t, http.StatusForbidden, code)

	code, body = c.do(http.MethodPost, "/api/foods", storeToken, listing)
	require.Equal(t, http.StatusCreated, code, body)
	food := body["data"].(map[string]any)
	foodID := food["id"].(string)
	assert.Equal(t, "AVAILABLE", food["status"])
	assert.Equal(t, "4.50", food["current_price"])

	code, body = c.do(http.MethodGet, "/api/foods?store_id="+storeID, "", nil)
	require.Equal(t, http.StatusOK, code, body)
	items := body["data"].(map[string]any)["items"].([]any)
	assert.Len(t, items, 1)

	code, body = c.do(http.MethodGet, "/api/foods?min_price=4&max_price=5&tag=bakery", "", nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Len(t, body["data"].(map[string]any)["items"].([]any), 1)

	code, _ = c.do(http.MethodGet, "/api/foods?min_price=4", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = c.do(http.MethodGet, "/api/foods/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = c.do(http.MethodPatch, "/api/foods/"+foodID+"/status", storeToken, map[string]any{"status": "SOLD_OUT"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "SOLD_OUT", body["data"].(map[string]any)["status"])

	code, _ = c.do(http.MethodPatch, "/api/foods/"+foodID+"/status", userToken, map[string]any{"status": "AVAILABLE"})
	assert.Equal(t, http.StatusForbidden, code)

	code, body = c.do(http.MethodGet, "/api/stores/"+storeID+"/foods/count", "", nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.EqualValues(t, 1, body["data"].(map[string]any)["count"])

	code, _ = c.do(http.MethodDelete, "/api/foods/"+foodID, storeToken, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = c.do(http.MethodGet, "/api/foods/"+foodID, "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHealthRoutes(t *testing.T) {
	c := newClient(t)

	code, body := c.do(http.MethodGet, "/api/ping", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pong", body["message"])

	code, body = c.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "up", body["data"].(map[string]any)["database"])
}
