package controller

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/todoapp/todo-api/database"
	"github.com/todoapp/todo-api/database/model"
	"github.com/todoapp/todo-api/web/entity"
	"github.com/todoapp/todo-api/web/middleware"
	"github.com/todoapp/todo-api/web/service"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	t      *testing.T
	engine *gin.Engine
	auth   *service.AuthService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	require.NoError(t, database.InitDB(filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() { _ = database.CloseDB() })

	gin.SetMode(gin.TestMode)
	db := database.GetDB()
	auth := service.NewAuthService(db, []byte("controller-test"), time.Hour)

	engine := gin.New()
	NewUserController(engine.Group("/users"), auth)
	protected := engine.Group("/", middleware.TokenAuth(auth))
	NewTodoController(protected, service.NewTodoService(db))
	NewCategoryController(protected.Group("/category"), service.NewCategoryService(db))

	return &testApp{t: t, engine: engine, auth: auth}
}

func (a *testApp) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// login signs a fresh user up and returns its token.
func (a *testApp) login(email string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/users/signup", "", gin.H{"username": "u", "email": email, "password": "pw"})
	require.Equal(a.t, http.StatusCreated, w.Code)
	w = a.do(http.MethodPost, "/users/login", "", gin.H{"email": email, "password": "pw"})
	require.Equal(a.t, http.StatusOK, w.Code)
	var tok entity.TokenMsg
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &tok))
	return tok.Token
}

func decodeMsg(t *testing.T, w *httptest.ResponseRecorder) entity.Msg {
	t.Helper()
	var m entity.Msg
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func TestSignupStatuses(t *testing.T) {
	app := newTestApp(t)
	body := gin.H{"username": "testuser", "email": "testuser@test.com", "password": "password"}

	w := app.do(http.MethodPost, "/users/signup", "", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Created", w.Body.String())

	w = app.do(http.MethodPost, "/users/signup", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, entity.Msg{Status: "fail", Message: "Username already taken"}, decodeMsg(t, w))

	w = app.do(http.MethodPost, "/users/signup", "", gin.H{"username": "testuser", "email": "invalidemail", "password": "password"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, entity.Msg{Status: "fail", Message: "Email Not Valid"}, decodeMsg(t, w))
}

func TestSignupMalformedBody(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/users/signup", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, entity.Msg{Status: "error", Message: "Internal server error"}, decodeMsg(t, w))
}

func TestLoginStatuses(t *testing.T) {
	app := newTestApp(t)
	app.login("testuser@test.com")

	tests := []struct {
		name    string
		body    gin.H
		code    int
		message string
	}{
		{"wrong email", gin.H{"email": "wrong@test.com", "password": "pw"}, http.StatusUnauthorized, "Invalid username"},
		{"wrong password", gin.H{"email": "testuser@test.com", "password": "wrong_pass"}, http.StatusUnauthorized, "Invalid password"},
		{"invalid email", gin.H{"email": "invalidemail", "password": "pw"}, http.StatusInternalServerError, "Email Not Valid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(http.MethodPost, "/users/login", "", tt.body)
			assert.Equal(t, tt.code, w.Code)
			m := decodeMsg(t, w)
			assert.Equal(t, "fail", m.Status)
			assert.Equal(t, tt.message, m.Message)
		})
	}
}

func TestLoginSetsCookies(t *testing.T) {
	app := newTestApp(t)
	app.login("a@b.com")

	w := app.do(http.MethodPost, "/users/login", "", gin.H{"email": "a@b.com", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code)

	cookies := map[string]string{}
	for _, c := range w.Result().Cookies() {
		cookies[c.Name] = c.Value
	}
	var tok entity.TokenMsg
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))
	assert.Equal(t, tok.Token, cookies["token"])

	userId, err := app.auth.VerifyToken(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "1", cookies["userId"])
	assert.Equal(t, 1, userId)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/"},
		{http.MethodPost, "/create"},
		{http.MethodPut, "/edit"},
		{http.MethodDelete, "/delete"},
		{http.MethodGet, "/category"},
		{http.MethodPost, "/category/create"},
		{http.MethodPut, "/category/edit"},
		{http.MethodDelete, "/category/delete"},
	}
	for _, r := range routes {
		for _, token := range []string{"", "garbage"} {
			w := app.do(r.method, r.path, token, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", r.method, r.path)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
		}
	}
}

func TestCategoryRoutes(t *testing.T) {
	app := newTestApp(t)
	token := app.login("a@b.com")

	w := app.do(http.MethodPost, "/category/create", token, gin.H{"name": "Work"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, entity.Msg{Status: "success", Message: "Category created successfully"}, decodeMsg(t, w))

	w = app.do(http.MethodPost, "/category/create", token, gin.H{"name": "Work"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, entity.Msg{Status: "fail", Message: "Category already existed!"}, decodeMsg(t, w))

	w = app.do(http.MethodPost, "/category/create", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	m := decodeMsg(t, w)
	assert.Equal(t, "error", m.Status)
	assert.Equal(t, "Error creating category", m.Message)
	assert.NotEmpty(t, m.Error)

	w = app.do(http.MethodGet, "/category", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Status string              `json:"status"`
		Data   entity.CategoryList `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, "success", list.Status)
	require.Len(t, list.Data.Categories, 1)
	assert.Equal(t, "Work", list.Data.Categories[0].Name)

	w = app.do(http.MethodPut, "/category/edit", token, gin.H{"name": "Office", "categoryName": "Work"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Category updated successfully", decodeMsg(t, w).Message)

	w = app.do(http.MethodPut, "/category/edit", token, gin.H{"name": "Office", "categoryName": "Work"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, entity.Msg{Status: "fail", Message: "Category not found or user does not have permission"}, decodeMsg(t, w))

	w = app.do(http.MethodPost, "/category/create", token, gin.H{"name": "Home"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = app.do(http.MethodPut, "/category/edit", token, gin.H{"name": "Home", "categoryName": "Office"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	m = decodeMsg(t, w)
	assert.Equal(t, "error", m.Status)
	assert.Equal(t, "Error updating Category", m.Message)

	w = app.do(http.MethodDelete, "/category/delete", token, gin.H{"categoryName": "Office"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entity.Msg{Status: "success", Message: "Category deleted successfully"}, decodeMsg(t, w))

	w = app.do(http.MethodDelete, "/category/delete", token, gin.H{"categoryName": "Office"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(http.MethodDelete, "/category/delete", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Error deleting Category", decodeMsg(t, w).Message)
}

func TestTodoRoutes(t *testing.T) {
	app := newTestApp(t)
	token := app.login("a@b.com")
	other := app.login("b@c.com")

	w := app.do(http.MethodPost, "/category/create", token, gin.H{"name": "Work"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(http.MethodPost, "/create", token, gin.H{"name": "T", "category": "Missing"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	m := decodeMsg(t, w)
	assert.Equal(t, entity.Msg{Status: "error", Message: "Error creating todo", Error: m.Error}, m)
	assert.NotEmpty(t, m.Error)

	w = app.do(http.MethodPost, "/create", token, gin.H{"name": "T", "category": "Work"})
	require.Equal(t, http.StatusCreated, w.Code)
	var todo model.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &todo))
	assert.Equal(t, "T", todo.Name)
	assert.Equal(t, 1, todo.CategoryId)
	assert.Equal(t, 1, todo.UserId)
	assert.Contains(t, w.Body.String(), `"CategoryId":1`)
	assert.Contains(t, w.Body.String(), `"UserId":1`)

	// other users do not see it
	w = app.do(http.MethodGet, "/", other, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","data":{"todos":[]}}`, w.Body.String())

	// but may rename it, matching is by name only
	w = app.do(http.MethodPut, "/edit", other, gin.H{"name": "T2", "todoName": "T"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entity.Msg{Status: "success", Message: "Todo updated successfully"}, decodeMsg(t, w))

	w = app.do(http.MethodPut, "/edit", token, gin.H{"name": "T3", "todoName": "T"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, entity.Msg{Status: "fail", Message: "Todo not found or user does not have permission"}, decodeMsg(t, w))

	w = app.do(http.MethodDelete, "/delete", token, gin.H{"todoName": "T2"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entity.Msg{Status: "success", Message: "Todo deleted successfully"}, decodeMsg(t, w))

	w = app.do(http.MethodDelete, "/delete", token, gin.H{"todoName": "T2"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusOf(service.KindInvalidInput))
	assert.Equal(t, http.StatusBadRequest, statusOf(service.KindConflict))
	assert.Equal(t, http.StatusUnauthorized, statusOf(service.KindUnauthenticated))
	assert.Equal(t, http.StatusUnauthorized, statusOf(service.KindUnauthorized))
	assert.Equal(t, http.StatusNotFound, statusOf(service.KindNotFound))
	assert.Equal(t, http.StatusBadRequest, statusOf(service.KindBadRequest))
	assert.Equal(t, http.StatusInternalServerError, statusOf(service.KindInternal))
}
