package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	JWTKey string

	// Payment gateways
	StripeSecretKey     string
	StripeWebhookSecret string
	RazorpayKeyID       string
	RazorpayKeySecret   string

	// Identity provider webhook (svix scheme)
	ClerkWebhookSecret string

	// Thumbnail storage
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// Transactional email
	SendGridAPIKey string
	SenderEmail    string

	CurrencyAPIURL string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "8080"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		RazorpayKeyID:       getEnv("RZP_KEY_ID", ""),
		RazorpayKeySecret:   getEnv("RZP_KEY_SECRET", ""),

		ClerkWebhookSecret: getEnv("CLERK_WEBHOOK_SECRET", ""),

		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),

		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		SenderEmail:    getEnv("SENDER_EMAIL", "noreply@ascend-lms.com"),

		CurrencyAPIURL: getEnv("CURRENCY_API_URL", "https://open.er-api.com/v6/latest/USD"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.StripeSecretKey == "" {
		log.Println("Warning: STRIPE_SECRET_KEY is not set. Stripe checkout will fail.")
	}
	if AppConfig.RazorpayKeySecret == "" {
		log.Println("Warning: RZP_KEY_SECRET is not set. Razorpay checkout will fail.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
