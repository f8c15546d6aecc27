package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"bikemarket/backend/internal/security"
)

func newAuthRig(t *testing.T, ttl time.Duration) (*gin.Engine, *security.TokenProvider) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := security.NewTokenProvider([]byte("test-secret"), "bikemarket-auth", ttl)
	r := gin.New()
	r.GET("/protected", RequireAuth(tokens), func(c *gin.Context) {
		userID, _ := GetUserID(c.Request.Context())
		email, _ := GetEmail(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"userId": userID, "email": email})
	})
	return r, tokens
}

func doGet(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body.Message
}

func TestRequireAuth_NoHeader(t *testing.T) {
	r, _ := newAuthRig(t, time.Hour)
	w := doGet(r, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if got := messageOf(t, w); got != "No token provided" {
		t.Errorf("message = %q", got)
	}
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	r, _ := newAuthRig(t, time.Hour)
	w := doGet(r, "Bearer not-a-jwt")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if got := messageOf(t, w); got != "Invalid token" {
		t.Errorf("message = %q", got)
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	r, tokens := newAuthRig(t, -time.Minute)
	token, _, err := tokens.Issue("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	w := doGet(r, "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if got := messageOf(t, w); got != "Invalid token" {
		t.Errorf("message = %q", got)
	}
}

func TestRequireAuth_ValidTokenSetsIdentity(t *testing.T) {
	r, tokens := newAuthRig(t, time.Hour)
	token, _, err := tokens.Issue("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	w := doGet(r, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var body struct {
		UserID string `json:"userId"`
		Email  string `json:"email"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.UserID != "user-1" || body.Email != "a@x.com" {
		t.Errorf("identity = %+v", body)
	}
}

func TestRequireAuth_MissingBearerPrefixTolerated(t *testing.T) {
	r, tokens := newAuthRig(t, time.Hour)
	token, _, err := tokens.Issue("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	// Raw token without the "Bearer " prefix still verifies.
	w := doGet(r, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestExtractBearer(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"   ", ""},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"BEARER abc", "abc"},
		{"Bearer   abc  ", "abc"},
		{"abc", "abc"},
	}
	for _, tc := range cases {
		if got := extractBearer(tc.in); got != tc.want {
			t.Errorf("extractBearer(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
