package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"taskkeeper/internal/app"
	"taskkeeper/internal/model"
	"taskkeeper/internal/transport/http/middleware"
)

const testSecret = "handler-test-secret"

// memUserStore / memTodoStore back the services during transport tests,
// standing in for the gorm repositories.
type memUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[uint]*model.User)}
}

func (s *memUserStore) Create(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	user.ID = s.nextID
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *memUserStore) GetByUsername(username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) GetByEmail(email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) GetByID(id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (s *memUserStore) UpdatePasswordHash(id uint, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.PasswordHash = hash
	}
	return nil
}

type memTodoStore struct {
	mu     sync.Mutex
	nextID uint
	todos  map[uint]*model.Todo
}

func newMemTodoStore() *memTodoStore {
	return &memTodoStore{todos: make(map[uint]*model.Todo)}
}

func (s *memTodoStore) Create(todo *model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	todo.ID = s.nextID
	clone := *todo
	s.todos[todo.ID] = &clone
	return nil
}

func (s *memTodoStore) GetByID(id uint) (*model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.todos[id]
	if !ok {
		return nil, nil
	}
	clone := *t
	return &clone, nil
}

func (s *memTodoStore) ListByOwnerID(ownerID uint) ([]model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Todo
	for id := uint(1); id <= s.nextID; id++ {
		if t, ok := s.todos[id]; ok && t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *memTodoStore) ListAll() ([]model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Todo
	for id := uint(1); id <= s.nextID; id++ {
		if t, ok := s.todos[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *memTodoStore) Update(todo *model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *todo
	s.todos[todo.ID] = &clone
	return nil
}

func (s *memTodoStore) DeleteByID(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.todos, id)
	return nil
}

// newTestRouter wires the real handlers and middleware over in-memory
// stores, mirroring the route layout of NewRouter.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService := app.NewAuthService(newMemUserStore(), testSecret, 20*time.Minute)
	todoService := app.NewTodoService(newMemTodoStore(), nil, nil)

	authHandler := NewAuthHandler(authService)
	todoHandler := NewTodoHandler(todoService)
	adminHandler := NewAdminHandler(todoService)
	userHandler := NewUserHandler(authService)

	authJWT := middleware.AuthJWT(testSecret)

	router := gin.New()
	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	todoGroup := v1.Group("/todos")
	todoGroup.Use(authJWT)
	todoGroup.GET("", todoHandler.List)
	todoGroup.GET("/:id", todoHandler.Get)
	todoGroup.POST("", todoHandler.Create)
	todoGroup.PUT("/:id", todoHandler.Update)
	todoGroup.DELETE("/:id", todoHandler.Delete)

	adminGroup := v1.Group("/admin")
	adminGroup.Use(authJWT, middleware.RequireRole(model.RoleAdmin))
	adminGroup.GET("/todos", adminHandler.ListAll)
	adminGroup.DELETE("/todos/:id", adminHandler.Delete)

	userGroup := v1.Group("/users")
	userGroup.Use(authJWT)
	userGroup.GET("/me", userHandler.Me)
	userGroup.PUT("/password", userHandler.ChangePassword)

	return router
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func doRequestWithHeader(t *testing.T, router *gin.Engine, method, path, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", authHeader)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func registerAndLogin(t *testing.T, router *gin.Engine, username, password, role string) (uint, string) {
	t.Helper()

	rec := doRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": password,
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created model.User
	decodeData(t, rec, &created)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var loginData struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decodeData(t, rec, &loginData)
	require.Equal(t, "bearer", loginData.TokenType)
	require.NotEmpty(t, loginData.AccessToken)

	return created.ID, loginData.AccessToken
}
