package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authUC "github.com/vuhoang/dev-connector/internal/application/usecase/auth"
	"github.com/vuhoang/dev-connector/internal/domain/user"
	"github.com/vuhoang/dev-connector/pkg/auth"
	"github.com/vuhoang/dev-connector/pkg/logger"
)

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		headers   map[string]string
		wantToken string
		wantOK    bool
	}{
		{
			"bearer scheme",
			map[string]string{"Authorization": "Bearer abc123"},
			"abc123", true,
		},
		{
			"bearer scheme lowercase",
			map[string]string{"Authorization": "bearer abc123"},
			"abc123", true,
		},
		{
			"bare token with no scheme",
			map[string]string{"Authorization": "abc123"},
			"abc123", true,
		},
		{
			"unknown scheme still yields token",
			map[string]string{"Authorization": "Token abc123"},
			"abc123", true,
		},
		{
			"legacy x-auth-token",
			map[string]string{"x-auth-token": "abc123"},
			"abc123", true,
		},
		{
			"authorization wins over x-auth-token",
			map[string]string{"Authorization": "Bearer abc123", "x-auth-token": "other"},
			"abc123", true,
		},
		{
			"three tokens falls back to x-auth-token",
			map[string]string{"Authorization": "Bearer abc 123", "x-auth-token": "other"},
			"other", true,
		},
		{
			"no credential",
			map[string]string{},
			"", false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			token, ok := TokenFromRequest(req)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func newAuthTestRouter(t *testing.T, jwtSvc *auth.JWTService, userRepo user.Repository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authenticate := authUC.NewAuthenticateUseCase(userRepo, jwtSvc, logger.NewNop())

	router := gin.New()
	router.Use(ErrorMiddleware(logger.NewNop()))
	router.GET("/private", AuthMiddleware(authenticate, logger.NewNop()), func(c *gin.Context) {
		principal, ok := PrincipalFromGinContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": principal.ID.String()})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	userRepo := newFakeUserRepo()

	u := &user.User{ID: uuid.New(), Name: "Neo", Email: "neo@example.com"}
	require.NoError(t, userRepo.Create(t.Context(), u))

	token, err := jwtSvc.GenerateToken(u.ID)
	require.NoError(t, err)

	router := newAuthTestRouter(t, jwtSvc, userRepo)

	do := func(headers map[string]string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	t.Run("bearer header accepted", func(t *testing.T) {
		rr := do(map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("bare token treated identically to bearer", func(t *testing.T) {
		rr := do(map[string]string{"Authorization": token})
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("x-auth-token accepted", func(t *testing.T) {
		rr := do(map[string]string{"x-auth-token": token})
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing credential rejected", func(t *testing.T) {
		rr := do(nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("tampered token rejected as unauthenticated", func(t *testing.T) {
		rr := do(map[string]string{"Authorization": "Bearer " + token[:len(token)-4] + "AAAA"})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("expired token rejected as unauthenticated", func(t *testing.T) {
		expiredSvc := auth.NewJWTService("test-secret", -time.Hour)
		expired, err := expiredSvc.GenerateToken(u.ID)
		require.NoError(t, err)

		rr := do(map[string]string{"Authorization": "Bearer " + expired})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("token for deleted user rejected", func(t *testing.T) {
		ghost, err := jwtSvc.GenerateToken(uuid.New())
		require.NoError(t, err)

		rr := do(map[string]string{"Authorization": "Bearer " + ghost})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
