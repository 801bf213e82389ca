package auth

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"charactervault/web/internal/cache"
	"charactervault/web/internal/config"
	"charactervault/web/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the name of the cookie holding the signed session token.
const SessionCookie = "session"

const sessionIDKey = "sessionID"

// SetSession issues a fresh token for userID and stores it in the session
// cookie, replacing any previous session.
func SetSession(c *gin.Context, userID uint) error {
	endSession(c)

	token, claims, err := startSession(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	maxAge := int(config.AppConfig.SessionTTL.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", config.AppConfig.CookieSecure, true)
	c.Set("userID", userID)
	c.Set(sessionIDKey, claims.ID)
	return nil
}

// ClearSession ends the server-side session and expires the cookie.
func ClearSession(c *gin.Context) {
	endSession(c)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", config.AppConfig.CookieSecure, true)
	c.Set("userID", nil)
}

// SessionMiddleware inspects the session cookie and sets the userID if it is
// present, valid and still live in the session store, but does not fail if
// it is not.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
			if claims, err := jwt.ParseToken(token); err == nil && sessionLive(c.Request.Context(), claims) {
				c.Set("userID", claims.UserID)
				c.Set(sessionIDKey, claims.ID)
			}
		}
		c.Next()
	}
}

// CurrentUserID returns the id set by SessionMiddleware, if any.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// startSession signs a token for userID and records its id in the cache
// store until the token expires.
func startSession(ctx context.Context, userID uint) (string, *jwt.Claims, error) {
	token, claims, err := jwt.GenerateToken(userID)
	if err != nil {
		return "", nil, err
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := cache.GetStore().Set(ctx, cache.SessionKey(claims.ID), []byte(strconv.FormatUint(uint64(userID), 10)), ttl); err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

func sessionLive(ctx context.Context, claims *jwt.Claims) bool {
	b, ok, err := cache.GetStore().Get(ctx, cache.SessionKey(claims.ID))
	if err != nil {
		log.Printf("session lookup %s: %v", claims.ID, err)
		return false
	}
	return ok && string(b) == strconv.FormatUint(uint64(claims.UserID), 10)
}

func endSession(c *gin.Context) {
	id := c.GetString(sessionIDKey)
	if id == "" {
		return
	}
	if err := cache.GetStore().Delete(c.Request.Context(), cache.SessionKey(id)); err != nil {
		log.Printf("end session %s: %v", id, err)
	}
	c.Set(sessionIDKey, "")
}
