package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inDir runs the test from dir so .env files there are picked up
func inDir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	inDir(t, t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "dev", cfg.Server.Env)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, "Current (A)", cfg.BLS.CurrentTag)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
}

func TestLoadEnvironment(t *testing.T) {
	inDir(t, t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("STORAGE_BACKEND", "S3")
	t.Setenv("S3_ENDPOINT", "localhost:9001")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("BLS_CURRENT_TAG", "Coil current")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "s3", cfg.Storage.Backend)
	assert.Equal(t, "localhost:9001", cfg.AWS.S3Endpoint)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "Coil current", cfg.BLS.CurrentTag)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	inDir(t, dir)
	t.Setenv("ENVIRONMENT", "lab")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.lab"), []byte("DATA_DIR=/srv/bls\nPORT=7000\n"), 0o644))
	t.Setenv("PORT", "7100")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "lab", cfg.Server.Env)
	assert.Equal(t, "/srv/bls", cfg.Storage.DataDir)
	assert.Equal(t, "7100", cfg.Server.Port, "environment overrides the .env file")
}

func TestLoadFlags(t *testing.T) {
	inDir(t, t.TempDir())
	t.Setenv("BLS_CURRENT_TAG", "from env")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("current-tag", "", "")
	fs.String("plot", "", "")
	require.NoError(t, fs.Parse([]string{"--current-tag", "from flag"}))

	cfg, err := Load(fs)
	require.NoError(t, err)

	assert.Equal(t, "from flag", cfg.BLS.CurrentTag)
	assert.Equal(t, "spectrum.png", cfg.BLS.PlotPath, "unset flags keep the default")
}

func TestLoadInvalid(t *testing.T) {
	inDir(t, t.TempDir())

	t.Run("storage backend", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "ftp")
		_, err := Load(nil)
		assert.ErrorContains(t, err, "STORAGE_BACKEND")
	})

	t.Run("log level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "loud")
		_, err := Load(nil)
		assert.ErrorContains(t, err, "LOG_LEVEL")
	})
}
