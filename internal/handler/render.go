package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"charactervault/web/internal/auth"
	"charactervault/web/internal/flash"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// validate checks single values outside of request binding.
var validate = validator.New()

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// render executes an HTML template with the flashes and user every page
// layout expects.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["flashes"] = flash.Pop(c)
	if _, ok := data["user"]; !ok {
		data["user"] = auth.CurrentUser(c)
	}
	_, loggedIn := auth.CurrentUserID(c)
	data["loggedIn"] = loggedIn
	c.HTML(status, name, data)
}

// redirect queues a notification and sends the browser to location.
func redirect(c *gin.Context, location, category, text string) {
	flash.Add(c, category, text)
	c.Redirect(http.StatusFound, location)
}

// NotFound renders the 404 page.
func NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "404.html", nil)
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// validationMessages turns binding errors into sentences for flash
// notifications. Field names come from the form tag when the caller passes
// a label map.
func validationMessages(err error, labels map[string]string) []string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []string{"Invalid form submission."}
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		label := labels[fe.Field()]
		if label == "" {
			label = fe.Field()
		}
		msgs = append(msgs, fieldMessage(label, fe))
	}
	return msgs
}

func fieldMessage(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "email":
		return label + " must be a valid e-mail address."
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return label + " is invalid."
}
