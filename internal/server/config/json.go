package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/finplanner/internal/flagx"
	"github.com/dmitrijs2005/finplanner/internal/timex"
)

// JsonConfig mirrors Config for decoding the JSON file. Durations accept
// "15m" style strings or integer nanoseconds. Zero values leave the current
// setting untouched.
type JsonConfig struct {
	Env                string         `json:"env"`
	HTTPAddr           string         `json:"http_addr"`
	DatabaseDSN        string         `json:"database_dsn"`
	SecretKey          string         `json:"secret_key"`
	TokenValidity      timex.Duration `json:"token_validity"`
	ResetTokenValidity timex.Duration `json:"reset_token_validity"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	PasswordMinLen     int            `json:"password_min_len"`
	AllowedOrigins     []string       `json:"allowed_origins"`
	RateLimitPerMinute int            `json:"rate_limit_per_minute"`
	TrustedProxies     []string       `json:"trusted_proxies"`
	FrontendOrigin     string         `json:"frontend_origin"`
	MailProvider       string         `json:"mail_provider"`
	MailFrom           string         `json:"mail_from"`
	SESRegion          string         `json:"ses_region"`
	SESAccessKeyID     string         `json:"ses_access_key_id"`
	SESSecretAccessKey string         `json:"ses_secret_access_key"`
	SESEndpoint        string         `json:"ses_endpoint"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(raw, &jc); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	setString(&cfg.Env, jc.Env)
	setString(&cfg.HTTPAddr, jc.HTTPAddr)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.SecretKey, jc.SecretKey)
	if jc.TokenValidity.Duration > 0 {
		cfg.TokenValidity = jc.TokenValidity.Duration
	}
	if jc.ResetTokenValidity.Duration > 0 {
		cfg.ResetTokenValidity = jc.ResetTokenValidity.Duration
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.PasswordMinLen > 0 {
		cfg.PasswordMinLen = jc.PasswordMinLen
	}
	if len(jc.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = jc.AllowedOrigins
	}
	if jc.RateLimitPerMinute > 0 {
		cfg.RateLimitPerMinute = jc.RateLimitPerMinute
	}
	if len(jc.TrustedProxies) > 0 {
		cfg.TrustedProxies = jc.TrustedProxies
	}
	setString(&cfg.FrontendOrigin, jc.FrontendOrigin)
	setString(&cfg.MailProvider, jc.MailProvider)
	setString(&cfg.MailFrom, jc.MailFrom)
	setString(&cfg.SESRegion, jc.SESRegion)
	setString(&cfg.SESAccessKeyID, jc.SESAccessKeyID)
	setString(&cfg.SESSecretAccessKey, jc.SESSecretAccessKey)
	setString(&cfg.SESEndpoint, jc.SESEndpoint)

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
