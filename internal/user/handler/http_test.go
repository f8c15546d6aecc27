package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"bikemarket/backend/internal/security"
	"bikemarket/backend/internal/server/middleware"
	"bikemarket/backend/internal/user/domain"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func newRig(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := &memUserRepo{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Name: "Ana", Email: "ana@x.com", PasswordHash: "$2a$10$hash"},
	}}
	tokens := security.NewTokenProvider([]byte("test-secret"), "bikemarket-auth", time.Hour)
	token, _, err := tokens.Issue("user-1", "ana@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	r := gin.New()
	NewUserHandler(repo).Register(r, middleware.RequireAuth(tokens))
	return r, token
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetUser(t *testing.T) {
	r, token := newRig(t)
	w := get(r, "/users/user-1", token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["id"] != "user-1" || body["name"] != "Ana" || body["email"] != "ana@x.com" {
		t.Errorf("body = %v", body)
	}
	// The password hash never reaches the wire.
	if strings.Contains(strings.ToLower(w.Body.String()), "hash") {
		t.Errorf("hash leaked: %s", w.Body.String())
	}
}

func TestGetUser_NotFound(t *testing.T) {
	r, token := newRig(t)
	w := get(r, "/users/nobody", token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "User not found") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestGetUser_RequiresAuth(t *testing.T) {
	r, _ := newRig(t)
	w := get(r, "/users/user-1", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}
