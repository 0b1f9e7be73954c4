package middleware

import (
	"net/http"

	"shoestore/internal/service"
	"shoestore/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// GuestCookie is the primary carrier of the guest session token;
	// the session store only mirrors it with a TTL.
	GuestCookie = "guest_session"

	cookieMaxAge = 30 * 24 * 3600
)

// GuestSession ensures anonymous requests carry a guest session token
// and puts it into the request context. Authenticated requests skip
// token minting but still expose an existing cookie so login can merge
// the guest cart.
func GuestSession(store session.Store, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(GuestCookie)

		if _, authed := service.UserIDFromContext(c.Request.Context()); authed {
			if token != "" {
				ctx := service.WithGuestSessionID(c.Request.Context(), token)
				c.Request = c.Request.WithContext(ctx)
			}
			c.Next()
			return
		}

		if token == "" {
			minted, err := store.NewToken(c.Request.Context())
			if err != nil {
				log.Warn("guest session mint failed", zap.Error(err))
				c.Next()
				return
			}
			token = minted
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(GuestCookie, token, cookieMaxAge, "/", "", false, true)
		} else if err := store.Touch(c.Request.Context(), token); err != nil {
			log.Warn("guest session touch failed", zap.Error(err))
		}

		ctx := service.WithGuestSessionID(c.Request.Context(), token)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
