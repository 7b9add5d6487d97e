package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first if present; real environment
// variables win over the file. Unset variables leave the current value
// untouched.
//
// Recognized variables:
//
//	HTTP_ADDR               bind address
//	DATABASE_DSN            PostgreSQL DSN
//	JWT_SECRET              HMAC signing secret
//	JWT_EXPIRATION_MINUTES  access token lifetime, minutes
//	AWS_ACCESS_KEY_ID       S3 access key
//	AWS_SECRET_ACCESS_KEY   S3 secret key
//	AWS_S3_BUCKET_NAME      S3 bucket
//	AWS_REGION              S3 region
//	S3_BASE_ENDPOINT        S3 endpoint override (MinIO etc.)
//	CORS_ALLOWED_ORIGINS    comma-separated origin list
//	LOG_FORMAT              "json" or "text"
func parseEnv(config *Config) {
	_ = godotenv.Load()

	setString := func(dst *string, name string) {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	setString(&config.EndpointAddrHTTP, "HTTP_ADDR")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setString(&config.SecretKey, "JWT_SECRET")
	setString(&config.S3AccessKeyID, "AWS_ACCESS_KEY_ID")
	setString(&config.S3SecretAccessKey, "AWS_SECRET_ACCESS_KEY")
	setString(&config.S3Bucket, "AWS_S3_BUCKET_NAME")
	setString(&config.S3Region, "AWS_REGION")
	setString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	setString(&config.LogFormat, "LOG_FORMAT")

	if v, ok := os.LookupEnv("JWT_EXPIRATION_MINUTES"); ok {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.AccessTokenValidityDuration = time.Duration(minutes) * time.Minute
		}
	}

	if v, ok := os.LookupEnv("CORS_ALLOWED_ORIGINS"); ok {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		if len(origins) > 0 {
			config.CORSAllowedOrigins = origins
		}
	}
}
