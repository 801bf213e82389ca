package handler

import (
	"fmt"
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
)

const profilePath = "/user/user_profile"

// ProfileInput is the edit-profile form. Empty fields keep the stored value.
type ProfileInput struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	DOB      string `form:"dob"`
	Gender   string `form:"gender"`
	Password string `form:"password"`
}

// UserProfile shows the logged-in user's profile.
func UserProfile(c *gin.Context) {
	render(c, http.StatusOK, "user_profile.html", nil)
}

// ShowEditUserProfile renders the profile form. Users may only open their own.
func ShowEditUserProfile(c *gin.Context) {
	if _, ok := ownProfile(c); !ok {
		return
	}
	render(c, http.StatusOK, "edit_user_profile.html", nil)
}

// EditUserProfile applies the changed profile fields.
func EditUserProfile(c *gin.Context) {
	user, ok := ownProfile(c)
	if !ok {
		return
	}
	back := fmt.Sprintf("/user/edit_user_profile/%d", user.ID)

	var input ProfileInput
	if err := c.ShouldBind(&input); err != nil {
		redirect(c, back, flash.Danger, "Invalid form submission.")
		return
	}

	updates := map[string]any{}
	if name := strings.TrimSpace(input.Name); name != "" && name != user.Username {
		var n int64
		if err := database.DB.Model(&models.User{}).Where("username = ? AND id <> ?", name, user.ID).Count(&n).Error; err != nil {
			log.Printf("username check for user %d: %v", user.ID, err)
			redirect(c, back, flash.Danger, "Database error occurred.")
			return
		}
		if n > 0 {
			redirect(c, back, flash.Danger, "This username is already taken.")
			return
		}
		updates["username"] = name
	}
	if email := strings.TrimSpace(input.Email); email != "" && email != user.Email {
		if err := validate.Var(email, "email"); err != nil {
			redirect(c, back, flash.Danger, "E-mail must be a valid e-mail address.")
			return
		}
		var n int64
		if err := database.DB.Model(&models.User{}).Where("email = ? AND id <> ?", email, user.ID).Count(&n).Error; err != nil {
			log.Printf("e-mail check for user %d: %v", user.ID, err)
			redirect(c, back, flash.Danger, "Database error occurred.")
			return
		}
		if n > 0 {
			redirect(c, back, flash.Danger, "User already exists with this E-mail. Please use a different email.")
			return
		}
		updates["email"] = email
	}
	if input.DOB != "" {
		t, err := time.Parse("2006-01-02", input.DOB)
		if err != nil {
			redirect(c, back, flash.Danger, "Date of birth must be a valid date.")
			return
		}
		updates["date_of_birth"] = datatypes.Date(t)
	}
	if input.Gender != "" && input.Gender != user.Gender {
		if err := validate.Var(input.Gender, "oneof=Male Female Other"); err != nil {
			redirect(c, back, flash.Danger, "Gender must be one of: Male, Female, Other.")
			return
		}
		updates["gender"] = input.Gender
	}
	if strings.TrimSpace(input.Password) != "" {
		if err := validate.Var(input.Password, "min=8"); err != nil {
			redirect(c, back, flash.Danger, "Password must be at least 8 characters.")
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("failed to hash password: %v", err)
			redirect(c, back, flash.Danger, "Could not update your password. Please try again.")
			return
		}
		updates["password"] = string(hashed)
	}

	picture, err := upload.Save(c, upload.ProfilePictureField, config.AppConfig.UploadFolder)
	if err != nil {
		log.Printf("profile picture upload failed for user %d: %v", user.ID, err)
	}
	if picture != "" {
		updates["profile_picture"] = picture
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
			log.Printf("failed to update user %d: %v", user.ID, err)
			redirect(c, back, flash.Danger, "Error updating profile: Database error occurred.")
			return
		}
		cache.Forget(c.Request.Context(), cache.UserPrefix(user.ID))
	}

	redirect(c, profilePath, flash.Success, "Your profile updated successfully!")
}

// ownProfile returns the logged-in user when the :id in the path is theirs,
// and otherwise responds itself.
func ownProfile(c *gin.Context) (*models.User, bool) {
	user := auth.CurrentUser(c)
	id, ok := idParam(c, "id")
	if !ok {
		NotFound(c)
		return nil, false
	}
	if id != user.ID {
		redirect(c, profilePath, flash.Warning, "You can only edit your own profile.")
		return nil, false
	}
	return user, true
}
