package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseDriver     string        `mapstructure:"DATABASE_DRIVER"`
	DatabaseURL        string        `mapstructure:"DATABASE_URL"`
	SecretKey          string        `mapstructure:"SECRET_KEY"`
	Port               string        `mapstructure:"PORT"`
	UploadFolder       string        `mapstructure:"UPLOAD_FOLDER"`
	CharactersJSONPath string        `mapstructure:"CHARACTERS_JSON_PATH"`
	RedisURL           string        `mapstructure:"REDIS_URL"`
	CookieSecure       bool          `mapstructure:"COOKIE_SECURE"`
	SessionTTL         time.Duration `mapstructure:"SESSION_TTL"`
	CacheTTL           time.Duration `mapstructure:"CACHE_TTL"`
	PageSize           int           `mapstructure:"PAGE_SIZE"`
}

const defaultSecretKey = "default_secret_key"

var defaults = map[string]any{
	"DATABASE_DRIVER":      "postgres",
	"DATABASE_URL":         "",
	"SECRET_KEY":           defaultSecretKey,
	"PORT":                 "8080",
	"UPLOAD_FOLDER":        "./static/img/upload/profile_image",
	"CHARACTERS_JSON_PATH": "",
	"REDIS_URL":            "",
	"COOKIE_SECURE":        false,
	"SESSION_TTL":          "168h",
	"CACHE_TTL":            "10m",
	"PAGE_SIZE":            5,
}

var AppConfig *Config

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	loadDotenv()

	cfg, err := Load(viper.New())
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
	if cfg.SecretKey == defaultSecretKey {
		log.Println("Warning: SECRET_KEY not set, using the built-in default")
	}
	AppConfig = cfg
}

// Load reads every known key from the environment into a Config, falling
// back to defaults. Keys are bound one by one because viper's AutomaticEnv
// does not reach Unmarshal for keys it has never seen.
func Load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = 5
	}
	return &cfg, nil
}

func loadDotenv() {
	for _, p := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err != nil {
				log.Printf("Warning: could not read %s: %v", p, err)
				return
			}
			log.Println("Loaded environment from", p)
			return
		}
	}
	log.Println("Warning: .env file not found, loading from environment variables")
}
