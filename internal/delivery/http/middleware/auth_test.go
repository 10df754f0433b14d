package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newAuthEngine(am *AuthMiddleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(am.RequireAuth())
	r.GET("/me", func(c *gin.Context) {
		operator, _ := OperatorFrom(c)
		c.JSON(http.StatusOK, gin.H{"userId": operator.UserID, "role": operator.Role})
	})
	r.GET("/admin", am.RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func serve(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	am := NewAuthMiddleware(logger.NewNop(), "secret")
	r := newAuthEngine(am)

	admin, err := IssueToken("secret", "u1", domain.RoleAdmin, time.Hour)
	require.NoError(t, err)
	rec := serve(r, "/me", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"userId":"u1","role":"ADMIN"}`, rec.Body.String())

	tests := []struct {
		name  string
		token func() string
	}{
		{"missing", func() string { return "" }},
		{"wrong secret", func() string {
			tok, _ := IssueToken("other", "u1", domain.RoleAdmin, time.Hour)
			return tok
		}},
		{"expired", func() string {
			tok, _ := IssueToken("secret", "u1", domain.RoleAdmin, -time.Minute)
			return tok
		}},
		{"no subject", func() string {
			tok, _ := IssueToken("secret", "", domain.RoleAdmin, time.Hour)
			return tok
		}},
		{"wrong method", func() string {
			tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
				Role:             "ADMIN",
				RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
			}).SignedString([]byte("secret"))
			return tok
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(r, "/me", tt.token())
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	am := NewAuthMiddleware(logger.NewNop(), "secret")
	r := newAuthEngine(am)

	sales, err := IssueToken("secret", "u2", domain.RoleSales, time.Hour)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, serve(r, "/admin", sales).Code)

	// role claims are case insensitive
	lower, err := IssueToken("secret", "u3", "admin", time.Hour)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, serve(r, "/admin", lower).Code)
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000"}))
	r.OPTIONS("/api/phone-numbers/save", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodOptions, "/api/phone-numbers/save", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
