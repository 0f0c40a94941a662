package endpoint

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gatortrader/gatortrader-api/config"
	"github.com/gatortrader/gatortrader-api/db"
	"github.com/gatortrader/gatortrader-api/models"
)

type testEnv struct {
	router  *httprouter.Router
	session *db.SessionMock
}

func newTestEnv(ops config.Operations) *testEnv {
	sessionMock := db.NewSessionMock()
	cfg := config.NewConfigMock().Default()
	cfg.ExpectedCalls = removeCall(cfg.ExpectedCalls, "SupportedOperations")
	cfg.On("SupportedOperations").Return(ops)

	router := httprouter.New()
	repos := models.NewRepositories(db.NewDbWithSession(sessionMock, nil))
	for _, route := range Routes("/api", cfg, repos) {
		router.Handler(route.Method, route.Pattern, route.Handler)
	}
	return &testEnv{router: router, session: sessionMock}
}

func removeCall(calls []*mock.Call, method string) []*mock.Call {
	result := make([]*mock.Call, 0, len(calls))
	for _, call := range calls {
		if call.Method != method {
			result = append(result, call)
		}
	}
	return result
}

func (env *testEnv) do(method string, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestSearchPosts(t *testing.T) {
	env := newTestEnv(config.AllOperations)
	env.session.On("ExecuteIter", mock.Anything, mock.Anything).Return(db.NewResultMock(
		map[string]interface{}{"posts.id": int64(1), "posts.title": []byte("Road bike"), "posts.price": []byte("120.00")},
	), nil)

	recorder := env.do(http.MethodGet, "/api/post/search?name=bike&category=3&page=2&sort=price_asc", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	env.session.AssertCalled(t, "ExecuteIter",
		"SELECT * FROM posts WHERE title LIKE ? AND category_id = ? ORDER BY price ASC LIMIT 25,25",
		[]interface{}{"%bike%", 3})

	data := decodeBody(t, recorder)["data"].([]interface{})
	assert.Len(t, data, 1)
	post := data[0].(map[string]interface{})
	assert.Equal(t, "Road bike", post["title"])
	assert.Equal(t, "120.00", post["price"])
}

func TestSearchPostsDefaults(t *testing.T) {
	env := newTestEnv(config.AllOperations)
	env.session.On("ExecuteIter", mock.Anything, mock.Anything).Return(db.NewResultMock(), nil)

	recorder := env.do(http.MethodGet, "/api/post/search?category=0&page=1&sort=default", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	env.session.AssertCalled(t, "ExecuteIter", "SELECT * FROM posts LIMIT 0,25", []interface{}{})
	assert.Equal(t, []interface{}{}, decodeBody(t, recorder)["data"])
}

func TestSearchPostsInvalidSort(t *testing.T) {
	env := newTestEnv(config.AllOperations)

	recorder := env.do(http.MethodGet, "/api/post/search?sort=cheapest", "")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	env.session.AssertNotCalled(t, "ExecuteIter", mock.Anything, mock.Anything)
}

func TestRecentPosts(t *testing.T) {
	env := newTestEnv(config.AllOperations)
	env.session.On("ExecuteIter", mock.Anything, mock.Anything).Return(db.NewResultMock(), nil)

	recorder := env.do(http.MethodGet, "/api/post/recent", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	env.session.AssertCalled(t, "ExecuteIter", "SELECT * FROM posts ORDER BY created_at DESC LIMIT 0,10", []interface{}{})
}

func TestGetPost(t *testing.T) {
	env := newTestEnv(config.AllOperations)
	env.session.On("ExecuteIter", mock.Anything, mock.Anything).Return(db.NewResultMock(
		map[string]interface{}{
			"posts.id":          int64(4),
			"posts.title":       []byte("Desk"),
			"posts.category_id": int64(2),
			"categories.id":     int64(2),
			"categories.name":   []byte("Furniture"),
		},
	), nil)

	recorder := env.do(http.MethodGet, "/api/post/4", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	env.session.AssertCalled(t, "ExecuteIter",
		"SELECT * FROM posts LEFT JOIN categories ON posts.category_id = categories.id WHERE posts.id = ?",
		[]interface{}{int64(4)})
	post := decodeBody(t, recorder)["data"].(map[string]interface{})
	assert.Equal(t, "Desk", post["title"])
	assert.Equal(t, map[string]interface{}{"id": float64(2), "name": "Furniture"}, post["category"])
}

func TestGetPostNotFound(t *testing.T) {
	env := newTestEnv(config.AllOperations)
	env.session.On("ExecuteIter", mock.Anything, mock.Anything).Return(db.NewResultMock(), nil)

	recorder := env.do(http.MethodGet, "/api/post/404", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "post 404 not found", decodeBody(t, recorder)["description"])
}

func TestGetPostInvalidID(t *testing.T) {
	env := newTestEnv(config.AllOperations)

	recorder := env.do(http.MethodGet, "/api/post/abc", "")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	env.session.AssertNotCalled(t, "ExecuteIter", mock.Anything, mock.Anything)
}

func TestGetPostQueryFailure(t *testing.T) {
	env := newTestEnv(config.AllOperations)
	env.session.On("ExecuteIter", mock.Anything, mock.Anything).Return(nil, mysql.ErrInvalidConn)

	recorder := env.do(http.MethodGet, "/api/post/4", "")

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "unable to retrieve post", decodeBody(t, recorder)["description"])
}

func TestGetCategories(t *testing.T) {
	env := newTestEnv(config.AllOperations)
	env.session.On("ExecuteIter", mock.Anything, mock.Anything).Return(db.NewResultMock(
		map[string]interface{}{"categories.id": int64(1), "categories.name": []byte("Books")},
		map[string]interface{}{"categories.id": int64(2), "categories.name": []byte("Furniture")},
	), nil)

	recorder := env.do(http.MethodGet, "/api/category", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	env.session.AssertCalled(t, "ExecuteIter", "SELECT * FROM categories ORDER BY name ASC", []interface{}(nil))
	assert.Equal(t, []interface{}{
		map[string]interface{}{"id": float64(1), "name": "Books"},
		map[string]interface{}{"id": float64(2), "name": "Furniture"},
	}, decodeBody(t, recorder)["data"])
}

func TestGetCategoryPosts(t *testing.T) {
	env := newTestEnv(config.AllOperations)
	env.session.On("ExecuteIter", mock.Anything, mock.Anything).Return(db.NewResultMock(), nil)

	recorder := env.do(http.MethodGet, "/api/category/3?page=2", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	env.session.AssertCalled(t, "ExecuteIter", "SELECT * FROM posts WHERE category_id = ? LIMIT 25,25", []interface{}{int64(3)})
}

func TestAddUser(t *testing.T) {
	env := newTestEnv(config.AllOperations)
	env.session.On("Execute", mock.Anything, mock.Anything).Return(db.WriteResultMock{InsertID: 8, AffectedRows: 1}, nil)

	recorder := env.do(http.MethodPost, "/api/user", `{"email":"al@ufl.edu","name":"Al"}`)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	env.session.AssertCalled(t, "Execute", "INSERT INTO users SET email = ?, name = ?", []interface{}{"al@ufl.edu", "Al"})
	assert.Equal(t, map[string]interface{}{
		"status":  true,
		"message": "Record inserted successfully",
		"data":    map[string]interface{}{"insertId": float64(8), "affectedRows": float64(1)},
	}, decodeBody(t, recorder)["data"])
}

func TestAddUserDuplicate(t *testing.T) {
	env := newTestEnv(config.AllOperations)
	env.session.On("Execute", mock.Anything, mock.Anything).Return(nil, &mysql.MySQLError{Number: 1062})

	recorder := env.do(http.MethodPost, "/api/user", `{"email":"al@ufl.edu","name":"Al"}`)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Equal(t, "Error: could not create new record.", decodeBody(t, recorder)["description"])
}

func TestAddUserInvalidPayload(t *testing.T) {
	env := newTestEnv(config.AllOperations)

	recorder := env.do(http.MethodPost, "/api/user", `{"name":"Al"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "unable to parse payload: email is a required field", decodeBody(t, recorder)["description"])
	env.session.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(config.AllOperations)
	env.session.On("Execute", mock.Anything, mock.Anything).Return(db.WriteResultMock{AffectedRows: 1}, nil)

	recorder := env.do(http.MethodPatch, "/api/user/5", `{"field":"name","value":"Bo"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	env.session.AssertCalled(t, "Execute", "UPDATE users SET name = ? WHERE id = ?", []interface{}{"Bo", int64(5)})
	data := decodeBody(t, recorder)["data"].(map[string]interface{})
	assert.Equal(t, "Updated record id: 5, attribute: name, to new value: Bo", data["message"])
}

func TestUpdateUserNotUpdatableField(t *testing.T) {
	env := newTestEnv(config.AllOperations)

	recorder := env.do(http.MethodPatch, "/api/user/5", `{"field":"id","value":1}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	env.session.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestUpdateUserFailure(t *testing.T) {
	env := newTestEnv(config.AllOperations)
	env.session.On("Execute", mock.Anything, mock.Anything).Return(nil, &mysql.MySQLError{Number: 1062})

	recorder := env.do(http.MethodPatch, "/api/user/5", `{"field":"email","value":"taken@ufl.edu"}`)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "unable to update user", decodeBody(t, recorder)["description"])
}

func TestWriteRoutesRequireOperations(t *testing.T) {
	env := newTestEnv(config.Update)

	recorder := env.do(http.MethodPost, "/api/user", `{"email":"al@ufl.edu","name":"Al"}`)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	env = newTestEnv(0)
	recorder = env.do(http.MethodPatch, "/api/user/5", `{"field":"name","value":"Bo"}`)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
