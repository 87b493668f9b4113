package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"FAKTULOVE_APP_NAME":          os.Getenv("FAKTULOVE_APP_NAME"),
		"FAKTULOVE_APP_ENV":           os.Getenv("FAKTULOVE_APP_ENV"),
		"FAKTULOVE_APP_PORT":          os.Getenv("FAKTULOVE_APP_PORT"),
		"FAKTULOVE_DATABASE_HOST":     os.Getenv("FAKTULOVE_DATABASE_HOST"),
		"FAKTULOVE_DATABASE_PORT":     os.Getenv("FAKTULOVE_DATABASE_PORT"),
		"FAKTULOVE_DATABASE_PASSWORD": os.Getenv("FAKTULOVE_DATABASE_PASSWORD"),
		"FAKTULOVE_DATABASE_SSLMODE":  os.Getenv("FAKTULOVE_DATABASE_SSLMODE"),
		"FAKTULOVE_JWT_SECRET":        os.Getenv("FAKTULOVE_JWT_SECRET"),
		"FAKTULOVE_STORAGE_DRIVER":    os.Getenv("FAKTULOVE_STORAGE_DRIVER"),
		"FAKTULOVE_STORAGE_BUCKET":    os.Getenv("FAKTULOVE_STORAGE_BUCKET"),
		"FAKTULOVE_OCR_ENGINE":        os.Getenv("FAKTULOVE_OCR_ENGINE"),
		"FAKTULOVE_OCR_PROJECT_ID":    os.Getenv("FAKTULOVE_OCR_PROJECT_ID"),
		"FAKTULOVE_OCR_PROCESSOR_ID":  os.Getenv("FAKTULOVE_OCR_PROCESSOR_ID"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "faktulove-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "faktulove", cfg.Database.DBName)
		assert.Equal(t, "local", cfg.Storage.Driver)
		assert.Equal(t, "stub", cfg.OCR.Engine)
		assert.Equal(t, 3, cfg.Auth.MaxLoginAttempts)
	})

	t.Run("loads values from environment variables with FAKTULOVE prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("FAKTULOVE_APP_NAME", "test-app")
		os.Setenv("FAKTULOVE_APP_PORT", "9000")
		os.Setenv("FAKTULOVE_DATABASE_HOST", "testdb.local")
		os.Setenv("FAKTULOVE_DATABASE_PORT", "5433")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
	})

	t.Run("rejects s3 storage without a bucket", func(t *testing.T) {
		clearEnv()
		os.Setenv("FAKTULOVE_STORAGE_DRIVER", "s3")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.bucket")
	})

	t.Run("rejects documentai engine without processor settings", func(t *testing.T) {
		clearEnv()
		os.Setenv("FAKTULOVE_OCR_ENGINE", "documentai")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ocr.project_id")
	})

	t.Run("accepts documentai engine with full settings", func(t *testing.T) {
		clearEnv()
		os.Setenv("FAKTULOVE_OCR_ENGINE", "documentai")
		os.Setenv("FAKTULOVE_OCR_PROJECT_ID", "proj-1")
		os.Setenv("FAKTULOVE_OCR_PROCESSOR_ID", "proc-1")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "documentai", cfg.OCR.Engine)
	})

	t.Run("requires a strong jwt secret in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("FAKTULOVE_APP_ENV", "production")
		os.Setenv("FAKTULOVE_JWT_SECRET", "short")
		os.Setenv("FAKTULOVE_DATABASE_PASSWORD", "secret")
		os.Setenv("FAKTULOVE_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.local",
		Port:     5432,
		User:     "faktura",
		Password: "p@ss/word",
		DBName:   "faktulove",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.local:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// special characters must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
