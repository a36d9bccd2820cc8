package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/PressureTank/authdemo/backend/database/memory"
	"github.com/PressureTank/authdemo/backend/user"
)

func newTestRouter() http.Handler {
	logger := zap.NewNop()
	return NewRouter(user.NewUserHandler(memory.NewMemoryDB(logger), logger), logger)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestScenario(t *testing.T) {
	h := newTestRouter()

	steps := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "register alice",
			method:     http.MethodPost,
			path:       "/register",
			body:       `{"username":"alice","password":"pw1"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"User registered","user_id":1}`,
		},
		{
			name:       "register alice again",
			method:     http.MethodPost,
			path:       "/register",
			body:       `{"username":"alice","password":"pw2"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"detail":"USERNAME already exists!!"}`,
		},
		{
			name:       "register bob",
			method:     http.MethodPost,
			path:       "/register",
			body:       `{"username":"bob","password":"pw3"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"User registered","user_id":2}`,
		},
		{
			name:       "login alice",
			method:     http.MethodPost,
			path:       "/login",
			body:       `{"username":"alice","password":"pw1"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"Login successful!!","user_id":1}`,
		},
		{
			name:       "login alice with wrong password",
			method:     http.MethodPost,
			path:       "/login",
			body:       `{"username":"alice","password":"pw2"}`,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"detail":"Invalid credentials"}`,
		},
		{
			name:       "list users",
			method:     http.MethodGet,
			path:       "/users",
			wantStatus: http.StatusOK,
			wantBody:   `[{"id":1,"username":"alice"},{"id":2,"username":"bob"}]`,
		},
	}

	for _, step := range steps {
		w := do(t, h, step.method, step.path, step.body)
		assert.Equal(t, step.wantStatus, w.Code, step.name)
		assert.JSONEq(t, step.wantBody, w.Body.String(), step.name)
	}
}

func TestListNeverIncludesPassword(t *testing.T) {
	h := newTestRouter()

	w := do(t, h, http.MethodPost, "/register", `{"username":"alice","password":"hunter2"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "hunter2")

	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Len(t, items[0], 2)
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestRouter()

	w := do(t, h, http.MethodGet, "/register", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = do(t, h, http.MethodPost, "/users", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestPreflight(t *testing.T) {
	h := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Less(t, w.Code, 300)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
