package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-kv/pkg/config"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(newViper(map[string]any{"JWT_SECRET": "s"}))
	require.NoError(t, err)

	assert.Equal(t, config.StoreMemory, cfg.Store.Driver)
	assert.Equal(t, config.IdentityLocal, cfg.Identity.Driver)
	assert.Equal(t, "/api", cfg.HTTP.Prefix)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "kv_store", cfg.DB.KVTable)
	assert.Equal(t, 1500*time.Millisecond, cfg.Client.ReportDelay)
	assert.Equal(t, "inventory", cfg.Metrics.Prefix)
}

func TestFromViper_ValoresComoString(t *testing.T) {
	cfg, err := config.FromViper(newViper(map[string]any{
		"JWT_SECRET":      "s",
		"HTTP_PORT":       "9090",
		"HTTP_PREFIX":     "inventario/",
		"STORE_DRIVER":    "REDIS",
		"REDIS_DB":        "3",
		"REPORT_DELAY_MS": "0",
	}))
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "/inventario", cfg.HTTP.Prefix)
	assert.Equal(t, config.StoreRedis, cfg.Store.Driver)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Zero(t, cfg.Client.ReportDelay)
}

func TestFromViper_Validate(t *testing.T) {
	_, err := config.FromViper(newViper(nil))
	assert.Error(t, err, "local sin JWT_SECRET")

	_, err = config.FromViper(newViper(map[string]any{"IDENTITY_DRIVER": "supabase", "SUPABASE_URL": "https://x.supabase.co"}))
	assert.Error(t, err, "supabase sin service role key")

	cfg, err := config.FromViper(newViper(map[string]any{
		"IDENTITY_DRIVER":           "supabase",
		"SUPABASE_URL":              "https://x.supabase.co/",
		"SUPABASE_SERVICE_ROLE_KEY": "k",
	}))
	require.NoError(t, err)
	assert.Equal(t, "https://x.supabase.co", cfg.Identity.SupabaseURL)

	_, err = config.FromViper(newViper(map[string]any{"JWT_SECRET": "s", "STORE_DRIVER": "mongo"}))
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/inv?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
