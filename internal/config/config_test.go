package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("ENV", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 3, cfg.Booking.AdvanceNoticeDays)
	assert.Equal(t, 2, cfg.Booking.MaxAllocationAttempts)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTTL)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
http:
  addr: ":9000"
  cors_allowed_origins: ["https://a.example"]
database:
  url: "postgres://localhost/gutv"
booking:
  advance_notice_days: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("BOOKING_MAX_ATTEMPTS", "4")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://b.example, https://c.example")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, "postgres://localhost/gutv", cfg.Database.URL)
	assert.Equal(t, 5, cfg.Booking.AdvanceNoticeDays)
	assert.Equal(t, 4, cfg.Booking.MaxAllocationAttempts)
	assert.Equal(t, []string{"https://b.example", "https://c.example"}, cfg.HTTP.CORSAllowedOrigins)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "soon")

	_, err := Load("")
	assert.ErrorContains(t, err, "JWT_ACCESS_TTL")
}

func TestValidate_ProdRequiresSecret(t *testing.T) {
	cfg := defaults()
	cfg.AppEnv = "production"
	assert.Error(t, cfg.Validate())

	cfg.JWT.Secret = "a-real-secret"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Attempts(t *testing.T) {
	cfg := defaults()
	cfg.Booking.MaxAllocationAttempts = 0
	assert.ErrorContains(t, cfg.Validate(), "BOOKING_MAX_ATTEMPTS")
}
