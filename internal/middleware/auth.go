package middleware

import (
	"net/http"
	"strings"

	"shoestore/internal/dto"
	"shoestore/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthOptional parses a Bearer token when present and injects the user
// id and role into the request context. An absent or invalid token is
// not an error here: the request continues as anonymous.
func AuthOptional(tokens service.TokenProvider, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := ExtractBearerToken(c.GetHeader("Authorization"))
		if !ok || token == "" {
			c.Next()
			return
		}
		claims, err := tokens.ParseAndValidateAccess(c.Request.Context(), token)
		if err != nil {
			log.Debug("token rejected", zap.Error(err))
			c.Next()
			return
		}
		ctx := service.WithUserID(c.Request.Context(), claims.UserID)
		ctx = service.WithRole(ctx, claims.Role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AuthRequired rejects requests without a valid Bearer token.
func AuthRequired(tokens service.TokenProvider, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := ExtractBearerToken(c.GetHeader("Authorization"))
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("missing bearer token"))
			return
		}
		claims, err := tokens.ParseAndValidateAccess(c.Request.Context(), token)
		if err != nil {
			log.Warn("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid token"))
			return
		}
		ctx := service.WithUserID(c.Request.Context(), claims.UserID)
		ctx = service.WithRole(ctx, claims.Role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// ExtractBearerToken pulls the token out of an Authorization header,
// tolerating stray quotes and trailing junk.
func ExtractBearerToken(authz string) (string, bool) {
	if authz == "" {
		return "", false
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	t := strings.Trim(strings.TrimSpace(parts[1]), " \"'")
	if i := strings.IndexRune(t, ','); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	if i := strings.IndexByte(t, ' '); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return strings.Trim(t, " \"'"), true
}
