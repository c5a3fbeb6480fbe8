package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

var (
	Port           string
	StoreName      string
	WhatsAppNumber string
	SessionSecret  []byte
	SessionTTL     time.Duration
	ImageBaseURL   string
	AWSRegion      string
	AWSBucketName  string
	SendGridAPIKey string
	ContactEmail   string
	LogLevel       string
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	Port = getenv("PORT", "8080")
	StoreName = getenv("STORE_NAME", "Nyakazi Organics")
	WhatsAppNumber = getenv("WHATSAPP_NUMBER", "+254712345678")

	SessionSecret = []byte(os.Getenv("SESSION_SECRET"))
	if len(SessionSecret) == 0 {
		// Carts still work, but sessions won't survive a restart.
		log.Println("SESSION_SECRET is not set, generating a per-process secret")
		SessionSecret = randomSecret()
	}

	SessionTTL = 24 * time.Hour
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			SessionTTL = d
		} else {
			log.Printf("Invalid SESSION_TTL %q, using %s", v, SessionTTL)
		}
	}

	ImageBaseURL = os.Getenv("IMAGE_BASE_URL")
	AWSRegion = getenv("AWS_REGION", "af-south-1")
	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")

	SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	ContactEmail = getenv("CONTACT_EMAIL", "hello@nyakaziorganics.co.ke")

	LogLevel = getenv("LOG_LEVEL", "info")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func randomSecret() []byte {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("Failed to generate session secret: %v", err)
	}
	return []byte(hex.EncodeToString(buf))
}
