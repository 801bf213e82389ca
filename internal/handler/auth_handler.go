package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"charactervault/web/internal/auth"
	"charactervault/web/internal/cache"
	"charactervault/web/internal/config"
	"charactervault/web/internal/database"
	"charactervault/web/internal/flash"
	"charactervault/web/internal/models"
	"charactervault/web/internal/upload"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// region --- Forms ---

// LoginInput is the login form.
type LoginInput struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// SignupInput is the registration form. The profile picture travels in the
// same multipart body and is handled separately.
type SignupInput struct {
	Username string `form:"username" binding:"required,max=150"`
	Email    string `form:"email" binding:"required,email,max=150"`
	DOB      string `form:"dob"`
	Password string `form:"password" binding:"required,min=8"`
	Gender   string `form:"gender" binding:"omitempty,oneof=Male Female Other"`
}

var signupLabels = map[string]string{
	"Username": "Username",
	"Email":    "E-mail",
	"Password": "Password",
	"Gender":   "Gender",
}

// ContactInput is the contact form.
type ContactInput struct {
	Name    string `form:"name" binding:"required,max=100"`
	Email   string `form:"email" binding:"required,email,max=100"`
	Message string `form:"message" binding:"required"`
}

var contactLabels = map[string]string{
	"Name":    "Name",
	"Email":   "E-mail",
	"Message": "Message",
}

// endregion

// region --- Auth Handlers ---

// ShowLogin renders the login form.
func ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", nil)
}

// Login authenticates by exact e-mail and password. Every failure past the
// empty-password check gets the same message.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBind(&input); err != nil {
		flash.Add(c, flash.Danger, "Both fields are required!")
		render(c, http.StatusBadRequest, "login.html", nil)
		return
	}
	input.Email = strings.TrimSpace(input.Email)

	if input.Email == "" || input.Password == "" {
		flash.Add(c, flash.Danger, "Both fields are required!")
		render(c, http.StatusOK, "login.html", gin.H{"email": input.Email})
		return
	}

	var user models.User
	err := database.DB.Where("email = ?", input.Email).First(&user).Error
	if err == nil {
		err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("login lookup failed: %v", err)
	}
	if err != nil {
		flash.Add(c, flash.Danger, "Invalid email/username or password")
		render(c, http.StatusOK, "login.html", gin.H{"email": input.Email})
		return
	}

	if err := auth.SetSession(c, user.ID); err != nil {
		log.Printf("could not issue session for user %d: %v", user.ID, err)
		flash.Add(c, flash.Danger, "Could not log you in. Please try again.")
		render(c, http.StatusInternalServerError, "login.html", nil)
		return
	}
	redirect(c, "/user/dashboard", flash.Success, "Login successful!")
}

// Logout ends the session and drops the user's cached data.
func Logout(c *gin.Context) {
	if id, ok := auth.CurrentUserID(c); ok {
		cache.Forget(c.Request.Context(), cache.UserPrefix(id))
	}
	auth.ClearSession(c)

	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, post-check=0, pre-check=0, max-age=0")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	redirect(c, auth.LoginPath, flash.Success, "You have been logged out successfully.")
}

// ShowSignup renders the registration form.
func ShowSignup(c *gin.Context) {
	render(c, http.StatusOK, "signup.html", nil)
}

// SignupUser registers a new account. The e-mail must be unused; the
// password is stored as a bcrypt hash.
func SignupUser(c *gin.Context) {
	const back = "/auth/signup_user"

	var input SignupInput
	if err := c.ShouldBind(&input); err != nil {
		if strings.TrimSpace(c.PostForm("email")) == "" {
			redirect(c, back, flash.Error, "E-mail is required to create a user.")
			return
		}
		for _, msg := range validationMessages(err, signupLabels) {
			flash.Add(c, flash.Error, msg)
		}
		c.Redirect(http.StatusFound, back)
		return
	}
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	var dob *datatypes.Date
	if input.DOB != "" {
		t, err := time.Parse("2006-01-02", input.DOB)
		if err != nil {
			redirect(c, back, flash.Error, "Date of birth must be a valid date.")
			return
		}
		d := datatypes.Date(t)
		dob = &d
	}

	var existing models.User
	if err := database.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		redirect(c, back, flash.Error, "User already exists with this E-mail. Please use a different email.")
		return
	}
	if err := database.DB.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		redirect(c, back, flash.Error, "This username is already taken.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash password: %v", err)
		redirect(c, back, flash.Danger, "Could not create your account. Please try again.")
		return
	}

	picture, err := upload.Save(c, upload.ProfilePictureField, config.AppConfig.UploadFolder)
	if err != nil {
		log.Printf("profile picture upload failed: %v", err)
	}

	user := models.User{
		Username:       input.Username,
		Email:          input.Email,
		PasswordHash:   string(hashedPassword),
		DateOfBirth:    dob,
		Gender:         input.Gender,
		ProfilePicture: picture,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		log.Printf("failed to create user %q: %v", input.Email, err)
		flash.Add(c, flash.Danger, "User with this email already exists.")
		render(c, http.StatusConflict, "signup.html", nil)
		return
	}

	redirect(c, auth.LoginPath, flash.Success, "User registration successful!")
}

// endregion

// region --- Contact ---

// ShowContact renders the contact form.
func ShowContact(c *gin.Context) {
	render(c, http.StatusOK, "contact.html", nil)
}

// Contact stores a message from the contact form.
func Contact(c *gin.Context) {
	var input ContactInput
	if err := c.ShouldBind(&input); err != nil {
		for _, msg := range validationMessages(err, contactLabels) {
			flash.Add(c, flash.Danger, msg)
		}
		render(c, http.StatusBadRequest, "contact.html", gin.H{"form": input})
		return
	}

	msg := models.Contact{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Message: input.Message,
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		log.Printf("failed to save contact message: %v", err)
		flash.Add(c, flash.Danger, "There was an issue saving your message. Please try again.")
		render(c, http.StatusInternalServerError, "contact.html", gin.H{"form": input})
		return
	}

	redirect(c, "/auth/contact", flash.Success, "Your message has been sent!")
}

// endregion
