package utils

import (
	"log"
	"os"
)

var JWT_SECRET = ""
var GOOGLE_API_KEY = ""
var OCR_LANGUAGE = "eng"
var AWS_REGION = ""
var AWS_BUCKET_NAME = ""
var UPLOAD_DIR = "uploads"
var SMTP_EMAIL = ""
var SMTP_PASSWORD = ""
var SMTP_SERVER = ""
var SMTP_PORT = ""

// LoadEnvs loads configuration from environment variables. Only JWT_SECRET is
// required at startup; generation, S3 and mail credentials are checked by the
// features that use them.
func LoadEnvs() {
	JWT_SECRET = os.Getenv("JWT_SECRET")
	if JWT_SECRET == "" {
		log.Fatal("JWT_SECRET not found in environment")
	}

	GOOGLE_API_KEY = os.Getenv("GOOGLE_API_KEY")
	if GOOGLE_API_KEY == "" {
		log.Println("GOOGLE_API_KEY not set, quiz generation will be unavailable")
	}

	if lang := os.Getenv("OCR_LANGUAGE"); lang != "" {
		OCR_LANGUAGE = lang
	}

	AWS_REGION = os.Getenv("AWS_REGION")
	AWS_BUCKET_NAME = os.Getenv("AWS_BUCKET_NAME")

	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		UPLOAD_DIR = dir
	}

	SMTP_EMAIL = os.Getenv("SMTP_EMAIL")
	SMTP_PASSWORD = os.Getenv("SMTP_PASSWORD")
	SMTP_SERVER = os.Getenv("SMTP_SERVER")
	SMTP_PORT = os.Getenv("SMTP_PORT")
	if SMTP_EMAIL == "" || SMTP_PASSWORD == "" {
		log.Println("SMTP credentials not set, password reset emails will be unavailable")
	}
}
