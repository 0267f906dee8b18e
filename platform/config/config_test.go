package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"telinput/platform/phone"
)

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "regions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "REGION_CODES", "PREFERRED_REGIONS", "FORMAT_STRATEGY", "DEFAULT_LOCALE", "REGION_PROFILE",
		"CORS_ORIGINS", "CORS_ALLOW_ALL", "CORS_ALLOW_CREDENTIALS", "HTTP_ADDR", "VALIDATE_TIMEOUT")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.GetHTTPAddr())
	require.Equal(t, "en-GB", cfg.GetDefaultLocale())
	require.Equal(t, phone.StrategyNational, cfg.GetDefaultFormatStrategy())
	require.Empty(t, cfg.GetRegionCodes())
	require.Equal(t, 5*time.Second, cfg.GetValidateTimeout())
	require.Equal(t, []string{"http://localhost:4200"}, cfg.GetCORSOrigins())
}

func TestLoad_RegionProfile(t *testing.T) {
	path := writeProfile(t, `
locale: nl-NL
formatStrategy: international
regionCodes: [nl, BE, DE]
preferredRegions: [NL]
`)
	t.Setenv("REGION_PROFILE", path)
	unsetEnv(t, "REGION_CODES", "DEFAULT_LOCALE", "FORMAT_STRATEGY")
	t.Setenv("PREFERRED_REGIONS", "BE,DE")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "nl-NL", cfg.GetDefaultLocale())
	require.Equal(t, phone.StrategyInternational, cfg.GetDefaultFormatStrategy())
	require.Equal(t, []phone.RegionCode{"NL", "BE", "DE"}, cfg.GetRegionCodes())
	require.Equal(t, []phone.RegionCode{"BE", "DE"}, cfg.GetPreferredRegions(), "environment overrides the profile")
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown strategy", env: map[string]string{"FORMAT_STRATEGY": "fancy"}},
		{name: "bad region", env: map[string]string{"REGION_CODES": "NL,NLD"}},
		{name: "wildcard with credentials", env: map[string]string{"CORS_ORIGINS": "*", "CORS_ALLOW_CREDENTIALS": "true"}},
		{name: "zero rate", env: map[string]string{"RATE_LIMIT_RPS": "0"}},
		{name: "missing profile", env: map[string]string{"REGION_PROFILE": "/does/not/exist.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoadRegionProfile_Malformed(t *testing.T) {
	path := writeProfile(t, "regionCodes: [NL\n")
	_, err := LoadRegionProfile(path)
	require.Error(t, err)
}
