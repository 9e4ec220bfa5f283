package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authUC "github.com/vuhoang/dev-connector/internal/application/usecase/auth"
	"github.com/vuhoang/dev-connector/internal/domain/user"
	"github.com/vuhoang/dev-connector/pkg/apperror"
	"github.com/vuhoang/dev-connector/pkg/logger"
)

const (
	GinContextKeyPrincipal = "principal"

	headerAuthorization = "Authorization"
	headerXAuthToken    = "x-auth-token"
)

// TokenFromRequest extracts a bearer credential, tolerating the header
// conventions historical clients have used:
//
//	Authorization: Bearer <token>   (preferred, scheme case-insensitive)
//	Authorization: <token>          (bare token, no scheme)
//	Authorization: <scheme> <token> (unknown scheme, token still taken;
//	                                 permissive legacy behavior, kept
//	                                 for compatibility)
//	x-auth-token: <token>           (legacy header)
func TokenFromRequest(r *http.Request) (string, bool) {
	if auth := r.Header.Get(headerAuthorization); auth != "" {
		parts := strings.Fields(auth)
		switch len(parts) {
		case 1:
			return parts[0], true
		case 2:
			// Covers both "Bearer x" and malformed "<scheme> x".
			return parts[1], true
		}
	}

	if token := r.Header.Get(headerXAuthToken); token != "" {
		return token, true
	}

	return "", false
}

func AuthMiddleware(authenticate *authUC.AuthenticateUseCase, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {

		token, ok := TokenFromRequest(c.Request)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		principal, err := authenticate.Execute(c.Request.Context(), token)
		if err != nil {
			if apperror.ToHTTPStatus(err) == http.StatusInternalServerError {
				log.Error("Authentication lookup failed", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(GinContextKeyPrincipal, principal)

		c.Next()
	}
}

func PrincipalFromGinContext(c *gin.Context) (*user.User, bool) {
	v, ok := c.Get(GinContextKeyPrincipal)
	if !ok {
		return nil, false
	}
	principal, ok := v.(*user.User)
	return principal, ok
}
