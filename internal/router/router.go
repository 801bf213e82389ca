package router

import (
	"fmt"

	"charactervault/web/internal/auth"
	"charactervault/web/internal/config"
	"charactervault/web/internal/handler"
	"charactervault/web/internal/web"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "charactervault/web/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// New builds the engine with templates, middleware and every route.
func New() (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.Default()
	router.SetHTMLTemplate(tmpl)
	router.MaxMultipartMemory = 8 << 20
	router.Use(auth.SessionMiddleware())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", handler.Ping)

	// Uploaded profile pictures
	router.Static(web.UploadURL, config.AppConfig.UploadFolder)

	router.GET("/", handler.Index)
	router.GET("/home", handler.Index)

	// Auth routes
	authRoutes := router.Group("/auth")
	{
		authRoutes.GET("/login", handler.ShowLogin)
		authRoutes.POST("/login", handler.Login)
		authRoutes.GET("/logout", handler.Logout)
		authRoutes.GET("/signup_user", handler.ShowSignup)
		authRoutes.POST("/signup_user", handler.SignupUser)
		authRoutes.GET("/contact", handler.ShowContact)
		authRoutes.POST("/contact", handler.Contact)
	}

	// User routes (protected)
	userRoutes := router.Group("/user")
	userRoutes.Use(auth.RequireUser())
	{
		userRoutes.GET("/dashboard", handler.Dashboard)
		userRoutes.GET("/character_list", handler.CharacterList)
		userRoutes.GET("/add_character", handler.ShowAddCharacter)
		userRoutes.POST("/add_character", handler.AddCharacter)
		userRoutes.GET("/edit_character/:id", handler.ShowEditCharacter)
		userRoutes.POST("/edit_character/:id", handler.EditCharacter)
		userRoutes.POST("/delete_character/:id", handler.DeleteCharacter)
		userRoutes.GET("/user_profile", handler.UserProfile)
		userRoutes.GET("/edit_user_profile/:id", handler.ShowEditUserProfile)
		userRoutes.POST("/edit_user_profile/:id", handler.EditUserProfile)
	}

	// API v1 routes (protected)
	apiV1 := router.Group("/api/v1")
	apiV1.Use(auth.RequireUserJSON())
	{
		apiV1.GET("/characters", handler.ListCharacters)
		apiV1.GET("/taxonomies/:kind", handler.ListTaxonomy)
	}

	router.NoRoute(handler.NotFound)

	return router, nil
}
