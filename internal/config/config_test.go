package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("SECRET_KEY", "  s3cret ")
		t.Setenv("DB_URI", "memory://")

		cfg, err := Load()
		require.NoError(t, err)

		require.Equal(t, "s3cret", cfg.SecretKey)
		require.Equal(t, "3000", cfg.ServerPort)
		require.Equal(t, 15*time.Minute, cfg.JWTAccessTTL)
		require.Equal(t, 7*24*time.Hour, cfg.JWTRefreshTTL)
		require.Equal(t, 10, cfg.BcryptCost)
		require.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
		require.False(t, cfg.CookieSecure)
		require.Equal(t, 30*time.Minute, cfg.DBMaxConnLifetime)
		require.Equal(t, 5*time.Minute, cfg.DBMaxConnIdleTime)
		require.Equal(t, 30*time.Second, cfg.DBHealthCheckPeriod)
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("SECRET_KEY", "k")
		t.Setenv("DB_URI", "postgres://u:p@localhost:5432/auth")
		t.Setenv("SERVER_PORT", "8081")
		t.Setenv("STORE_TIMEOUT", "2s")
		t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
		t.Setenv("COOKIE_SECURE", "true")
		t.Setenv("DB_MAX_CONN_LIFETIME", "1h")

		cfg, err := Load()
		require.NoError(t, err)

		require.Equal(t, "8081", cfg.ServerPort)
		require.Equal(t, 2*time.Second, cfg.StoreTimeout)
		require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
		require.True(t, cfg.CookieSecure)
		require.Equal(t, time.Hour, cfg.DBMaxConnLifetime)
	})

	t.Run("requires secret", func(t *testing.T) {
		t.Setenv("SECRET_KEY", "")
		t.Setenv("DB_URI", "memory://")

		_, err := Load()
		require.ErrorContains(t, err, "SECRET_KEY")
	})

	t.Run("rejects malformed duration", func(t *testing.T) {
		t.Setenv("SECRET_KEY", "k")
		t.Setenv("DB_URI", "memory://")
		t.Setenv("HASH_TIMEOUT", "soon")

		_, err := Load()
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		return Config{
			ServerPort:     "3000",
			RequestTimeout: time.Second,
			SecretKey:      "k",
			StoreURI:       "memory://",
			StoreTimeout:   time.Second,
			HashTimeout:    time.Second,
			JWTAccessTTL:   15 * time.Minute,
			JWTRefreshTTL:  7 * 24 * time.Hour,
			BcryptCost:     10,
			DBMaxConns:     4,
			DBMinConns:     1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing store", mutate: func(c *Config) { c.StoreURI = "" }, wantErr: "DB_URI is required"},
		{name: "unknown scheme", mutate: func(c *Config) { c.StoreURI = "redis://localhost" }, wantErr: "not supported"},
		{name: "access not shorter", mutate: func(c *Config) { c.JWTAccessTTL = c.JWTRefreshTTL }, wantErr: "shorter"},
		{name: "cost too low", mutate: func(c *Config) { c.BcryptCost = 2 }, wantErr: "BCRYPT_COST"},
		{name: "zero store timeout", mutate: func(c *Config) { c.StoreTimeout = 0 }, wantErr: "STORE_TIMEOUT"},
		{name: "pool bounds", mutate: func(c *Config) { c.DBMaxConns = 0 }, wantErr: "DB_MAX_CONNS"},
		{name: "negative conn lifetime", mutate: func(c *Config) { c.DBMaxConnLifetime = -time.Minute }, wantErr: "DB_MAX_CONN_LIFETIME"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStoreScheme(t *testing.T) {
	t.Parallel()

	for uri, want := range map[string]string{
		"postgres://localhost/auth":          "postgres",
		"postgresql://localhost/auth":        "postgres",
		"mongodb://localhost:27017":          "mongodb",
		"mongodb+srv://cluster.example/auth": "mongodb",
		"memory://":                          "memory",
	} {
		cfg := Config{StoreURI: uri}
		got, err := cfg.StoreScheme()
		require.NoError(t, err, uri)
		require.Equal(t, want, got, uri)
	}
}
