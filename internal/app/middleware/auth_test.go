package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"arka/internal/app/config"
	"arka/internal/app/ds"
	"arka/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

type fakeBlacklist struct {
	blacklisted bool
	err         error
}

func (f *fakeBlacklist) CheckJWTInBlacklist(ctx context.Context, jwtStr string) (bool, error) {
	return f.blacklisted, f.err
}

const testSecret = "test-secret"

func testJWTConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Token:         testSecret,
			ExpiresIn:     time.Hour,
			SigningMethod: jwt.SigningMethodHS256,
		},
	}
}

func signTestToken(t *testing.T, userRole role.Role) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
		UserID: 42,
		Role:   userRole,
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func authTestRouter(bl *fakeBlacklist) *gin.Engine {
	gin.SetMode(gin.TestMode)
	am := NewAuthMiddleware(bl, testJWTConfig())

	router := gin.New()
	router.GET("/protected", am.WithAuthCheck(role.Client, role.Admin), func(c *gin.Context) {
		id, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	router.GET("/admin-only", am.WithAuthCheck(role.Admin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/open", am.WithOptionalAuth(), func(c *gin.Context) {
		_, authed := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"authenticated": authed})
	})
	return router
}

func getWithToken(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWithAuthCheck(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		token    string
		bl       *fakeBlacklist
		wantCode int
	}{
		{"missing header", "/protected", "", &fakeBlacklist{}, http.StatusUnauthorized},
		{"garbage token", "/protected", "not-a-jwt", &fakeBlacklist{}, http.StatusUnauthorized},
		{"valid client token", "/protected", "", &fakeBlacklist{}, http.StatusOK},
		{"blacklisted token", "/protected", "", &fakeBlacklist{blacklisted: true}, http.StatusUnauthorized},
		// Сбой Redis не пропускает токен: отказ закрытый
		{"redis outage rejects", "/protected", "", &fakeBlacklist{err: errors.New("redis down")}, http.StatusUnauthorized},
		{"client on admin route", "/admin-only", "", &fakeBlacklist{}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := authTestRouter(tt.bl)
			token := tt.token
			if token == "" && tt.name != "missing header" {
				token = signTestToken(t, role.Client)
			}

			w := getWithToken(router, tt.path, token)
			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
		})
	}
}

func TestWithOptionalAuth(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		bl        *fakeBlacklist
		wantAuthn string
	}{
		{"anonymous passes", "", &fakeBlacklist{}, `"authenticated":false`},
		{"valid token attaches user", "valid", &fakeBlacklist{}, `"authenticated":true`},
		{"blacklisted token treated as anonymous", "valid", &fakeBlacklist{blacklisted: true}, `"authenticated":false`},
		{"redis outage treated as anonymous", "valid", &fakeBlacklist{err: errors.New("redis down")}, `"authenticated":false`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := authTestRouter(tt.bl)
			token := ""
			if tt.token == "valid" {
				token = signTestToken(t, role.Client)
			}

			w := getWithToken(router, "/open", token)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.wantAuthn) {
				t.Errorf("body = %s, want %s", w.Body.String(), tt.wantAuthn)
			}
		})
	}
}
