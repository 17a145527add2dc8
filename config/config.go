package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	AllowedOrigin string
	JWTSecret     string

	// Upstream services
	StorefrontAPIURL string
	ProductsAPIKey   string
	EnviaAPIURL      string
	EnviaToken       string
	GeocodesAPIURL   string
	HTTPTimeout      time.Duration

	// Store origin identity (sender block on every carrier payload)
	StoreName       string
	StoreCompany    string
	StoreEmail      string
	StorePhone      string
	StoreStreet     string
	StoreNumber     string
	StoreCity       string
	StoreState      string
	StorePostalCode string

	// Session & cache
	SessionTTL      time.Duration
	CacheProductTTL time.Duration

	// Business rules
	MaxCartQuantity int
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: Try loading .env (standard local dev)
		// In docker/prod envs .env might not exist; system env vars take over.
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		JWTSecret:     getEnv("JWT_SECRET", "default_secret_CHANGE_ME"),

		StorefrontAPIURL: getEnv("STOREFRONT_API_URL", "http://localhost:4000/api"),
		ProductsAPIKey:   getEnv("PRODUCTS_API_KEY", ""),
		EnviaAPIURL:      getEnv("ENVIA_API_URL", "https://api.envia.com"),
		EnviaToken:       getEnv("ENVIA_TOKEN", ""),
		GeocodesAPIURL:   getEnv("GEOCODES_API_URL", "https://geocodes.envia.com"),
		HTTPTimeout:      getDurationEnv("HTTP_CLIENT_TIMEOUT", 15*time.Second),

		// Fallbacks mirror the storefront's legacy sender identity
		StoreName:       getEnv("STORE_NAME", "Mi Tienda"),
		StoreCompany:    getEnv("STORE_COMPANY", "Mi Empresa"),
		StoreEmail:      getEnv("STORE_EMAIL", "contacto@mitienda.com"),
		StorePhone:      getEnv("STORE_PHONE", "8180000000"),
		StoreStreet:     getEnv("STORE_STREET", "Av. Principal"),
		StoreNumber:     getEnv("STORE_NUMBER", "123"),
		StoreCity:       getEnv("STORE_CITY", "Monterrey"),
		StoreState:      getEnv("STORE_STATE", "NL"),
		StorePostalCode: getEnv("STORE_POSTAL_CODE", "64000"),

		SessionTTL:      getDurationEnv("SESSION_TTL", 24*time.Hour),
		CacheProductTTL: getDurationEnv("CACHE_PRODUCT_TTL", 10*time.Minute),

		MaxCartQuantity: getIntEnv("MAX_CART_QUANTITY", 1000),
	}

	cfg.Validate()
	return cfg
}

func (c *Config) Validate() {
	if c.EnviaToken == "" {
		log.Println("WARNING: ENVIA_TOKEN is empty; carrier API calls will be rejected upstream")
	}
	if c.JWTSecret == "default_secret_CHANGE_ME" {
		log.Println("WARNING: Using default JWT secret. Setting up for failure in production.")
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}
