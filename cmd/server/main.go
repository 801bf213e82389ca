package main

import (
	"fmt"
	"log"
	"os"

	"charactervault/web/internal/cache"
	"charactervault/web/internal/chardata"
	"charactervault/web/internal/config"
	"charactervault/web/internal/database"
	"charactervault/web/internal/router"
)

func init() {
	config.LoadConfig()
}

// @title           Character Vault API
// @version         1.0
// @description     Read access to the logged-in user's characters and the house, role and strength lists.
// @host            localhost:8080
// @BasePath        /api/v1
func main() {
	cfg := config.AppConfig

	// Connect to the database
	database.Connect(cfg)

	store, err := cache.New(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to cache: %v", err)
	}
	cache.Init(store, cfg.CacheTTL)

	chardata.SetSource(chardata.FileSource{Path: cfg.CharactersJSONPath})

	if err := os.MkdirAll(cfg.UploadFolder, 0o755); err != nil {
		log.Fatalf("Failed to create upload folder %s: %v", cfg.UploadFolder, err)
	}

	r, err := router.New()
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	addr := ":" + cfg.Port
	fmt.Println("Server is running on", addr)
	fmt.Printf("Swagger UI is available at http://localhost%s/swagger/index.html\n", addr)
	log.Fatal(r.Run(addr))
}
