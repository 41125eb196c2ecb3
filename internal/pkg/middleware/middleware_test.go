package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fekuna/florist-marketplace-service/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var secret = []byte("test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

func token(t *testing.T, u *auth.User) string {
	t.Helper()
	tok, err := auth.SignToken(secret, u, time.Hour)
	require.NoError(t, err)
	return tok
}

func captureUser(ctx context.Context, _ interface{}) (interface{}, error) {
	u, _ := auth.UserFromContext(ctx)
	return u, nil
}

func TestContextInterceptor(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: "/florist.v1.AlertService/ListVendorAlerts"}
	vendor := &auth.User{UserID: "vendor-1", Role: auth.RoleVendor, Name: "Flora Express"}

	t.Run("bearer token", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(),
			metadata.Pairs("authorization", "Bearer "+token(t, vendor)))
		got, err := ContextInterceptor(secret, false)(ctx, nil, info, captureUser)
		require.NoError(t, err)
		assert.Equal(t, vendor, got)
	})

	t.Run("bad token", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(),
			metadata.Pairs("authorization", "Bearer nope"))
		_, err := ContextInterceptor(secret, false)(ctx, nil, info, captureUser)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("metadata identity", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-vendor-id", "vendor-2"))

		got, err := ContextInterceptor(secret, true)(ctx, nil, info, captureUser)
		require.NoError(t, err)
		assert.Equal(t, &auth.User{UserID: "vendor-2", Role: auth.RoleVendor}, got)

		got, err = ContextInterceptor(secret, false)(ctx, nil, info, captureUser)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": CurrentUser(c)})
	})
	return r
}

func TestAuthenticateAndRoles(t *testing.T) {
	r := newEngine(Authenticate(secret), RequireVendor())

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"invalid", "Bearer junk", http.StatusUnauthorized},
		{"buyer", "Bearer " + token(t, &auth.User{UserID: "buyer-1", Role: auth.RoleBuyer}), http.StatusForbidden},
		{"vendor", "Bearer " + token(t, &auth.User{UserID: "vendor-1", Role: auth.RoleVendor}), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRateLimit(t *testing.T) {
	r := newEngine(RateLimit(0.001, 2))

	got := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		got = append(got, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, got)
}

func TestCORSPreflight(t *testing.T) {
	r := newEngine(CORS("*"))
	r.OPTIONS("/ping", func(c *gin.Context) {})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
