package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"minishop/internal/web"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// fakeAPI stands in for the API service. Credentials alice/pw1 log in as
// user 1; registering username "taken" conflicts.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		w.Header().Set("Content-Type", "application/json")
		if creds["username"] == "alice" && creds["password"] == "pw1" {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true, "message": "Login successful", "user_id": 1,
			})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false, "message": "Login failed",
		})
	})
	mux.HandleFunc("/api/register", func(w http.ResponseWriter, r *http.Request) {
		var fields map[string]string
		_ = json.NewDecoder(r.Body).Decode(&fields)
		w.Header().Set("Content-Type", "application/json")
		if fields["username"] == "taken" {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false, "message": "username already taken",
			})
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true, "message": "Registration successful", "user_id": 2,
		})
	})
	mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Laptop","price":1200}]`))
	})
	mux.HandleFunc("/api/cart", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"product_id":1,"quantity":2}]`))
	})
	mux.HandleFunc("/api/order", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"user_id":1,"product_id":1,"quantity":2,"status":"pending","product":{"id":1,"name":"Laptop","price":1200}}]`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func setupGateway(t *testing.T) *fiber.App {
	t.Helper()
	api := web.NewAPIClient(fakeAPI(t).URL)
	sessions := web.NewSessionManager("test-secret", time.Hour)
	return web.NewApp(api, sessions)
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == web.SessionCookie {
			return c
		}
	}
	return nil
}

func TestGatedRoutesRedirectToLogin(t *testing.T) {
	app := setupGateway(t)

	for _, path := range []string{"/products", "/cart", "/orders"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/login?next="+url.QueryEscape(path), resp.Header.Get("Location"))
		resp.Body.Close()
	}
}

func TestLoginJSONFlow(t *testing.T) {
	app := setupGateway(t)

	// Successful JSON login sets the session cookie and reports the redirect
	body, _ := json.Marshal(map[string]string{
		"username": "alice", "password": "pw1", "next": "/products",
	})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	resp.Body.Close()
	assert.Equal(t, true, loginResp["success"])
	assert.Equal(t, "/products", loginResp["redirect"])

	cookie := sessionCookie(t, resp)
	assert.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)

	// The cookie grants access to the gated catalog page
	req = httptest.NewRequest(http.MethodGet, "/products", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	page, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(page), "Laptop")

	// Wrong credentials get a JSON error and no cookie
	body, _ = json.Marshal(map[string]string{"username": "alice", "password": "wrong"})
	req = httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, sessionCookie(t, resp))
	resp.Body.Close()
}

func TestLoginFormFlow(t *testing.T) {
	app := setupGateway(t)

	// Form login redirects to the preserved destination
	form := url.Values{"username": {"alice"}, "password": {"pw1"}, "next": {"/cart"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/cart", resp.Header.Get("Location"))
	assert.NotNil(t, sessionCookie(t, resp))
	resp.Body.Close()

	// Bad credentials re-render the login view with an inline error
	form = url.Values{"username": {"alice"}, "password": {"wrong"}}
	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	page, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(page), "Invalid username or password")
}

func TestRegisterFlow(t *testing.T) {
	app := setupGateway(t)

	// Success redirects to the login page
	form := url.Values{"username": {"bob"}, "email": {"b@x.com"}, "password": {"pw2"}}
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	resp.Body.Close()

	// The API's conflict message shows up inline
	form = url.Values{"username": {"taken"}, "email": {"t@x.com"}, "password": {"pw2"}}
	req = httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	page, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(page), "username already taken")
}

func TestLogoutClearsSession(t *testing.T) {
	app := setupGateway(t)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	cookie := sessionCookie(t, resp)
	assert.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.Expires.Before(time.Now()))
	resp.Body.Close()
}

func TestOrdersPageRendersProductName(t *testing.T) {
	app := setupGateway(t)

	sessions := web.NewSessionManager("test-secret", time.Hour)
	token, err := sessions.Issue(1, "alice")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.AddCookie(&http.Cookie{Name: web.SessionCookie, Value: token})
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	page, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(page), "Laptop")
	assert.Contains(t, string(page), "pending")
}

func TestHomePageIsPublic(t *testing.T) {
	app := setupGateway(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
