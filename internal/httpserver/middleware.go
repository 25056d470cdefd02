package httpserver

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"storefront/internal/domain"
	"storefront/internal/service/access"
)

const identityKey = "identity"

type tokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (domain.Identity, error)
}

// requireAuth resolves the bearer token into an identity stored on the gin context.
func requireAuth(verifier tokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortWithError(c, logger, domain.ErrUnauthenticated)
			return
		}
		id, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, logger, err)
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// requireRoles must run after requireAuth.
func requireRoles(roles access.RoleSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identityFrom(c)
		if !ok {
			abortWithError(c, nil, domain.ErrUnauthenticated)
			return
		}
		if !access.Allow(id, roles) {
			abortWithError(c, nil, domain.ErrForbidden)
			return
		}
		c.Next()
	}
}

func identityFrom(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	id, ok := v.(domain.Identity)
	return id, ok
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
