package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento y de identidad soportados.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"

	IdentitySupabase = "supabase"
	IdentityLocal    = "local"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Store    StoreConfig
	DB       DBConfig
	Redis    RedisConfig
	Identity IdentityConfig
	JWT      JWTConfig
	Metrics  MetricsConfig
	Client   ClientConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host   string
	Port   int
	Prefix string // prefijo común de la API, ej. /api
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig selecciona el backend clave-valor.
type StoreConfig struct {
	Driver string // memory, postgres, redis
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo (ej. DATABASE_URL de Supabase).
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	KVTable     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// RedisConfig configuración de Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// IdentityConfig proveedor de identidad.
type IdentityConfig struct {
	Driver         string // supabase, local
	SupabaseURL    string
	AnonKey        string
	ServiceRoleKey string
	Timeout        time.Duration
}

// JWTConfig firma de tokens del proveedor local.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// MetricsConfig prefijo de las métricas Prometheus.
type MetricsConfig struct {
	Prefix string
}

// ClientConfig configuración de inventoryctl.
type ClientConfig struct {
	APIURL      string
	AuthURL     string
	ReportDelay time.Duration
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, STORE_DRIVER, JWT_SECRET, etc.
func Load() (*Config, error) {
	return FromViper(newViper())
}

// LoadClient igual que Load pero sin validar los drivers del servidor; lo usa inventoryctl.
func LoadClient() (*Config, error) {
	return build(newViper()), nil
}

func newViper() *viper.Viper {
	v := viper.New()

	// Opcional: archivo .env o config.env
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// FromViper construye y valida la configuración desde una instancia de Viper ya poblada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := build(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func build(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventario-kv"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:   getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:   getInt(v, "HTTP_PORT", 8080),
			Prefix: normalizePrefix(getString(v, "HTTP_PREFIX", "/api")),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getString(v, "STORE_DRIVER", StoreMemory)),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "inventario"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			KVTable:     getString(v, "KV_TABLE", "kv_store"),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Identity: IdentityConfig{
			Driver:         strings.ToLower(getString(v, "IDENTITY_DRIVER", IdentityLocal)),
			SupabaseURL:    strings.TrimRight(getString(v, "SUPABASE_URL", ""), "/"),
			AnonKey:        getString(v, "SUPABASE_ANON_KEY", ""),
			ServiceRoleKey: getString(v, "SUPABASE_SERVICE_ROLE_KEY", ""),
			Timeout:        time.Duration(getInt(v, "IDENTITY_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "inventario-kv"),
		},
		Metrics: MetricsConfig{
			Prefix: getString(v, "METRICS_PREFIX", "inventory"),
		},
		Client: ClientConfig{
			APIURL:      strings.TrimRight(getString(v, "API_BASE_URL", "http://localhost:8080/api"), "/"),
			AuthURL:     strings.TrimRight(getString(v, "AUTH_BASE_URL", "http://localhost:8080"), "/"),
			ReportDelay: time.Duration(getInt(v, "REPORT_DELAY_MS", 1500)) * time.Millisecond,
		},
	}
}

// Validate rechaza combinaciones de drivers incompletas.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreMemory, StorePostgres, StoreRedis:
	default:
		return fmt.Errorf("config: STORE_DRIVER desconocido %q", c.Store.Driver)
	}
	switch c.Identity.Driver {
	case IdentitySupabase:
		if c.Identity.SupabaseURL == "" || c.Identity.ServiceRoleKey == "" {
			return fmt.Errorf("config: IDENTITY_DRIVER=supabase requiere SUPABASE_URL y SUPABASE_SERVICE_ROLE_KEY")
		}
	case IdentityLocal:
		if c.JWT.Secret == "" {
			return fmt.Errorf("config: IDENTITY_DRIVER=local requiere JWT_SECRET")
		}
	default:
		return fmt.Errorf("config: IDENTITY_DRIVER desconocido %q", c.Identity.Driver)
	}
	return nil
}

func normalizePrefix(p string) string {
	p = strings.TrimRight(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
