package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/matchsage/booking-api/internal/config"
	"github.com/matchsage/booking-api/internal/models"
)

const secret = "test-secret"

func sign(t *testing.T, claims jwt.MapClaims, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), AuthMiddleware(&config.Config{JWTSecret: secret}))
	r.GET("/whoami", func(c *gin.Context) {
		a := Actor(c)
		c.JSON(http.StatusOK, gin.H{"id": a.ID, "role": a.Role})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := newAuthRouter()
	exp := time.Now().Add(time.Hour).Unix()

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"wrong key", "Bearer " + sign(t, jwt.MapClaims{"sub": 1, "exp": exp}, "other"), http.StatusUnauthorized},
		{"expired", "Bearer " + sign(t, jwt.MapClaims{"sub": 1, "exp": time.Now().Add(-time.Hour).Unix()}, secret), http.StatusUnauthorized},
		{"unknown role", "Bearer " + sign(t, jwt.MapClaims{"sub": 1, "role": "root", "exp": exp}, secret), http.StatusUnauthorized},
		{"zero subject", "Bearer " + sign(t, jwt.MapClaims{"sub": 0, "exp": exp}, secret), http.StatusUnauthorized},
		{"numeric subject", "Bearer " + sign(t, jwt.MapClaims{"sub": 7, "role": models.RoleOwner, "exp": exp}, secret), http.StatusOK},
		{"string subject", "Bearer " + sign(t, jwt.MapClaims{"sub": "7", "exp": exp}, secret), http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("status %d, want %d: %s", rec.Code, tc.want, rec.Body.String())
			}
			if rec.Header().Get(HeaderRequestID) == "" {
				t.Fatalf("missing request id header")
			}
		})
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Header().Get(HeaderRequestID) != "abc-123" || rec.Body.String() != "abc-123" {
		t.Fatalf("request id not propagated: %q %q", rec.Header().Get(HeaderRequestID), rec.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware())
	r.OPTIONS("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://app.example.com" {
		t.Fatalf("origin not reflected")
	}
}
