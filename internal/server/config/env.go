package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from the process environment. A .env file in the
// working directory is loaded first if present; it never overrides variables
// that are already set. A numeric or duration variable that does not parse
// is an error rather than a silent fallback.
func parseEnv(cfg *Config) error {
	_ = godotenv.Load()

	var err error
	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"JWT_EXPIRES_IN", &cfg.TokenValidity},
		{"RESET_TOKEN_EXPIRES_IN", &cfg.ResetTokenValidity},
		{"REQUEST_TIMEOUT", &cfg.RequestTimeout},
	}
	for _, d := range durations {
		if *d.dst, err = getDurationEnv(d.key, *d.dst); err != nil {
			return err
		}
	}
	if cfg.PasswordMinLen, err = getIntEnv("PASSWORD_MIN_LEN", cfg.PasswordMinLen); err != nil {
		return err
	}
	if cfg.RateLimitPerMinute, err = getIntEnv("RATE_LIMIT_PER_MIN", cfg.RateLimitPerMinute); err != nil {
		return err
	}

	cfg.Env = getEnv("ENV", cfg.Env)
	if port := getEnv("PORT", ""); port != "" {
		cfg.HTTPAddr = ":" + port
	}
	cfg.HTTPAddr = getEnv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.DatabaseDSN = getEnv("DATABASE_URL", cfg.DatabaseDSN)
	cfg.SecretKey = getEnv("JWT_SECRET", cfg.SecretKey)

	// FRONTEND_ORIGIN is a comma list: every entry is allowed by CORS and the
	// first one is used for email links.
	if origins := splitCSV(getEnv("FRONTEND_ORIGIN", "")); len(origins) > 0 {
		cfg.AllowedOrigins = origins
		cfg.FrontendOrigin = origins[0]
	}
	if proxies := splitCSV(getEnv("TRUSTED_PROXIES", "")); len(proxies) > 0 {
		cfg.TrustedProxies = proxies
	}

	cfg.MailProvider = getEnv("MAIL_PROVIDER", cfg.MailProvider)
	cfg.MailFrom = getEnv("MAIL_FROM", cfg.MailFrom)
	cfg.SESRegion = getEnv("SES_REGION", cfg.SESRegion)
	cfg.SESAccessKeyID = getEnv("SES_ACCESS_KEY_ID", cfg.SESAccessKeyID)
	cfg.SESSecretAccessKey = getEnv("SES_SECRET_ACCESS_KEY", cfg.SESSecretAccessKey)
	cfg.SESEndpoint = getEnv("SES_ENDPOINT", cfg.SESEndpoint)
	return nil
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getIntEnv(key string, fallback int) (int, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback, fmt.Errorf("env %s: %q is not an integer", key, val)
	}
	return parsed, nil
}

func getDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback, fmt.Errorf("env %s: %q is not a duration (use e.g. 168h or 15m)", key, val)
	}
	return parsed, nil
}

func splitCSV(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
