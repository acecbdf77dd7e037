package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_KEY", "k")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "ChemSecureApi", cfg.JWT.Issuer)
	assert.Equal(t, "ChemSecureWeb", cfg.JWT.Audience)
	assert.Equal(t, 60, cfg.JWT.ExpirationMinutes)
	assert.Equal(t, 30.0, cfg.HTTP.AuthRateLimit)

	settings := cfg.JWT.Settings()
	assert.Equal(t, "k", settings.Key)
}

func TestLoadRequiresJWTKey(t *testing.T) {
	t.Setenv("JWT_KEY", "")
	os.Unsetenv("JWT_KEY")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoadReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_KEY=from-file\nDB_DRIVER=postgres\nJWT_EXPIRATION_MINUTES=15\n"), 0o600))
	t.Setenv("JWT_KEY", "")
	os.Unsetenv("JWT_KEY")
	t.Setenv("DB_DRIVER", "")
	os.Unsetenv("DB_DRIVER")
	t.Setenv("JWT_EXPIRATION_MINUTES", "")
	os.Unsetenv("JWT_EXPIRATION_MINUTES")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWT.Key)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 15, cfg.JWT.ExpirationMinutes)
}

func TestLoadWebRequiresSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	os.Unsetenv("SESSION_SECRET")
	_, err := LoadWeb(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)

	t.Setenv("SESSION_SECRET", "s3cret")
	web, err := LoadWeb(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "8081", web.Port)
	assert.Equal(t, "http://localhost:8080/", web.APIBaseURL)
}

func TestDialectorForUnknownDriver(t *testing.T) {
	_, err := dialectorFor(DB{Driver: "oracle"})
	assert.Error(t, err)

	d, err := dialectorFor(DB{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())
}

func TestSQLiteDSNEnablesForeignKeys(t *testing.T) {
	assert.Equal(t, "chemsecure.db?_foreign_keys=on", SQLiteDSN("chemsecure.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", SQLiteDSN("file:x?mode=memory"))
	assert.Equal(t, "file:x?_fk=off", SQLiteDSN("file:x?_fk=off"))
}
