// Package flash carries one-shot notifications across a redirect in a
// short-lived cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Categories used by the templates for styling.
const (
	Success = "success"
	Info    = "info"
	Warning = "warning"
	Danger  = "danger"
	Error   = "error"
)

const (
	cookieName = "flash"
	contextKey = "flashes"
)

// Message is a single notification.
type Message struct {
	Category string `json:"c"`
	Text     string `json:"m"`
}

// Add queues a notification for the next rendered page.
func Add(c *gin.Context, category, text string) {
	msgs := append(pending(c), Message{Category: category, Text: text})
	c.Set(contextKey, msgs)
	write(c, msgs)
}

// Pop returns and clears every queued notification.
func Pop(c *gin.Context) []Message {
	msgs := pending(c)
	c.Set(contextKey, []Message{})
	if _, err := c.Cookie(cookieName); err == nil || len(msgs) > 0 {
		setCookie(c, "", -1)
	}
	return msgs
}

func pending(c *gin.Context) []Message {
	if v, ok := c.Get(contextKey); ok {
		if msgs, ok := v.([]Message); ok {
			return msgs
		}
	}

	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return nil
	}
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var msgs []Message
	if err := json.Unmarshal(b, &msgs); err != nil {
		return nil
	}
	return msgs
}

func write(c *gin.Context, msgs []Message) {
	b, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	setCookie(c, base64.RawURLEncoding.EncodeToString(b), 0)
}

func setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, value, maxAge, "/", "", false, true)
}
