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

	"bikemarket/backend/internal/auth/service"
	"bikemarket/backend/internal/security"
	userdomain "bikemarket/backend/internal/user/domain"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*userdomain.User
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[strings.ToLower(email)], nil
}

func (r *memUserRepo) Create(ctx context.Context, u *userdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[strings.ToLower(u.Email)] = u
	return nil
}

func newRig(t *testing.T) (*gin.Engine, *security.TokenProvider) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := security.NewTokenProvider([]byte("test-secret"), "bikemarket-auth", time.Hour)
	svc := service.NewAuthService(&memUserRepo{users: map[string]*userdomain.User{}},
		security.NewHasher(4), tokens, nil)
	r := gin.New()
	NewAuthHandler(svc).Register(r)
	return r, tokens
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLoginOverHTTP(t *testing.T) {
	r, tokens := newRig(t)

	w := post(r, "/auth/register", `{"name":"Ana","email":"Ana@X.com","password":"secret123"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status = %d, body = %s", w.Code, w.Body.String())
	}
	var summary struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.Email != "ana@x.com" || summary.ID == "" {
		t.Errorf("summary = %+v", summary)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Errorf("register response leaks password material: %s", w.Body.String())
	}

	// Login with differently-cased email finds the same account.
	w = post(r, "/auth/login", `{"email":"ANA@x.com","password":"secret123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: status = %d, body = %s", w.Code, w.Body.String())
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode: %v", err)
	}
	claims, err := tokens.Verify(login.Token)
	if err != nil {
		t.Fatalf("issued token should verify: %v", err)
	}
	if claims.Subject != summary.ID {
		t.Errorf("token subject = %q, want %q", claims.Subject, summary.ID)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	r, _ := newRig(t)
	post(r, "/auth/register", `{"name":"Ana","email":"ana@x.com","password":"secret123"}`)

	w := post(r, "/auth/register", `{"name":"Imposter","email":"ANA@X.COM","password":"other"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "User already exists") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRegister_MissingFields(t *testing.T) {
	r, _ := newRig(t)
	for _, body := range []string{
		`{"email":"a@x.com","password":"p"}`,
		`{"name":"Ana","password":"p"}`,
		`{"name":"Ana","email":"a@x.com"}`,
		`not json`,
	} {
		w := post(r, "/auth/register", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d", body, w.Code)
		}
		if !strings.Contains(w.Body.String(), "name, email and password are required") {
			t.Errorf("body %s: response = %s", body, w.Body.String())
		}
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	r, _ := newRig(t)
	post(r, "/auth/register", `{"name":"Ana","email":"ana@x.com","password":"secret123"}`)

	wrongPass := post(r, "/auth/login", `{"email":"ana@x.com","password":"nope"}`)
	unknown := post(r, "/auth/login", `{"email":"ghost@x.com","password":"secret123"}`)

	for _, w := range []*httptest.ResponseRecorder{wrongPass, unknown} {
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
	}
	// Identical bodies keep registered emails unguessable.
	if wrongPass.Body.String() != unknown.Body.String() {
		t.Errorf("responses differ: %s vs %s", wrongPass.Body.String(), unknown.Body.String())
	}
	if !strings.Contains(wrongPass.Body.String(), "Invalid credentials") {
		t.Errorf("body = %s", wrongPass.Body.String())
	}
}

func TestLogin_MissingFields(t *testing.T) {
	r, _ := newRig(t)
	w := post(r, "/auth/login", `{"email":"a@x.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "email and password are required") {
		t.Errorf("body = %s", w.Body.String())
	}
}
