package auth

import (
	"net/http"

	"charactervault/web/internal/cache"
	"charactervault/web/internal/database"
	"charactervault/web/internal/flash"
	"charactervault/web/internal/models"

	"github.com/gin-gonic/gin"
)

// LoginPath is where pages that need a user send anonymous visitors.
const LoginPath = "/auth/login"

// RequireUser guards HTML pages. It must be used AFTER SessionMiddleware.
// Anonymous visitors are redirected to the login page; a session naming a
// user that no longer exists is cleared with a notice.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			HandleNotLoggedIn(c)
			c.Abort()
			return
		}

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			ClearSession(c)
			cache.Forget(c.Request.Context(), cache.UserPrefix(userID))
			flash.Add(c, flash.Error, "Invalid user. Please log in again.")
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		c.Set("user", &user)
		c.Next()
	}
}

// RequireUserJSON is RequireUser for API routes.
func RequireUserJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Authenticated user not found"})
			return
		}

		c.Set("user", &user)
		c.Next()
	}
}

// HandleNotLoggedIn drops whatever session the request carried, along with
// that user's cached data, and redirects to the login page.
func HandleNotLoggedIn(c *gin.Context) {
	if _, err := c.Cookie(SessionCookie); err == nil {
		if id, ok := CurrentUserID(c); ok {
			cache.Forget(c.Request.Context(), cache.UserPrefix(id))
		}
		ClearSession(c)
	}
	c.Redirect(http.StatusFound, LoginPath)
}

// CurrentUser returns the user loaded by RequireUser.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get("user"); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
