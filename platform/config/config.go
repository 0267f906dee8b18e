// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"telinput/platform/phone"
)

// =============================================================================
// Consumer-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	GetShutdownTimeout() time.Duration
}

// RateLimitConfig provides settings for the per-IP rate limiter.
type RateLimitConfig interface {
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// PhoneConfig provides the defaults of the telephone field.
type PhoneConfig interface {
	GetDefaultLocale() string
	GetDefaultFormatStrategy() phone.FormatStrategy
	GetRegionCodes() []phone.RegionCode
	GetPreferredRegions() []phone.RegionCode
	GetValidateTimeout() time.Duration
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                   string
	HTTPAddr              string
	CORSAllowAll          bool
	CORSOrigins           []string
	CORSAllowCreds        bool
	ShutdownTimeout       time.Duration
	RateLimitRPS          float64
	RateLimitBurst        int
	RegionProfilePath     string
	DefaultLocale         string
	DefaultFormatStrategy phone.FormatStrategy
	RegionCodes           []phone.RegionCode
	PreferredRegions      []phone.RegionCode
	ValidateTimeout       time.Duration
}

// RegionProfile is the optional YAML file describing the region dropdown.
//
//	locale: nl-NL
//	formatStrategy: international
//	regionCodes: [NL, BE, DE]
//	preferredRegions: [NL]
type RegionProfile struct {
	Locale           string   `yaml:"locale"`
	FormatStrategy   string   `yaml:"formatStrategy"`
	RegionCodes      []string `yaml:"regionCodes"`
	PreferredRegions []string `yaml:"preferredRegions"`
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string               { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool             { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string          { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool           { return c.CORSAllowCreds }
func (c *Config) GetShutdownTimeout() time.Duration { return c.ShutdownTimeout }

// RateLimitConfig implementation
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// PhoneConfig implementation
func (c *Config) GetDefaultLocale() string                       { return c.DefaultLocale }
func (c *Config) GetDefaultFormatStrategy() phone.FormatStrategy { return c.DefaultFormatStrategy }
func (c *Config) GetRegionCodes() []phone.RegionCode             { return c.RegionCodes }
func (c *Config) GetPreferredRegions() []phone.RegionCode        { return c.PreferredRegions }
func (c *Config) GetValidateTimeout() time.Duration              { return c.ValidateTimeout }

// Load reads configuration from environment variables, a .env file when
// present, and the region profile named by REGION_PROFILE.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:               getEnv("APP_ENV", "development"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:      corsAllowAll,
		CORSOrigins:       corsOrigins,
		CORSAllowCreds:    strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		ShutdownTimeout:   mustDuration(getEnv("SHUTDOWN_TIMEOUT", "10s")),
		RateLimitRPS:      mustFloat(getEnv("RATE_LIMIT_RPS", "20")),
		RateLimitBurst:    mustInt(getEnv("RATE_LIMIT_BURST", "40")),
		RegionProfilePath: getEnv("REGION_PROFILE", ""),
		ValidateTimeout:   mustDuration(getEnv("VALIDATE_TIMEOUT", "5s")),
	}

	profile := RegionProfile{}
	if cfg.RegionProfilePath != "" {
		loaded, err := LoadRegionProfile(cfg.RegionProfilePath)
		if err != nil {
			return nil, err
		}
		profile = *loaded
	}

	cfg.DefaultLocale = getEnv("DEFAULT_LOCALE", firstNonEmpty(profile.Locale, "en-GB"))

	strategy, err := phone.ParseFormatStrategy(getEnv("FORMAT_STRATEGY", profile.FormatStrategy))
	if err != nil {
		return nil, fmt.Errorf("FORMAT_STRATEGY: %w", err)
	}
	cfg.DefaultFormatStrategy = strategy

	if cfg.RegionCodes, err = regionList("REGION_CODES", profile.RegionCodes); err != nil {
		return nil, err
	}
	if cfg.PreferredRegions, err = regionList("PREFERRED_REGIONS", profile.PreferredRegions); err != nil {
		return nil, err
	}

	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return cfg, nil
}

// LoadRegionProfile reads and validates a YAML region profile.
func LoadRegionProfile(path string) (*RegionProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read region profile: %w", err)
	}
	var profile RegionProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse region profile %s: %w", path, err)
	}
	return &profile, nil
}

// regionList prefers the environment variable over the profile list.
func regionList(key string, fromProfile []string) ([]phone.RegionCode, error) {
	values := fromProfile
	if raw, ok := os.LookupEnv(key); ok {
		values = splitCSV(raw)
	}
	codes := make([]phone.RegionCode, 0, len(values))
	for _, value := range values {
		code := phone.NormalizeRegion(value)
		if !code.Valid() {
			return nil, fmt.Errorf("%s: invalid region code %q", key, value)
		}
		codes = append(codes, code)
	}
	return codes, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
