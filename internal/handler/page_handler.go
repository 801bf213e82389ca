package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Index renders the landing page. It is served at both / and /home.
func Index(c *gin.Context) {
	render(c, http.StatusOK, "index.html", nil)
}

// Ping is the health check.
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}
