package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Bloque app (opcional en YAML). Si no está, queda vacío.
	App struct {
		// dev | staging | prod
		Env string `yaml:"app_env"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	} `yaml:"server"`

	// Tenancy: resolución por subdominio + archivos JSON por tenant.
	Tenancy struct {
		RootDomain   string `yaml:"root_domain"`   // ej: "mystorefront.app"
		Dir          string `yaml:"dir"`           // directorio con tenants.json y tenants/<file>.json
		RegistryFile string `yaml:"registry_file"` // default: tenants.json
		ConfigTTL    string `yaml:"config_ttl"`    // TTL del cache de configs parseadas
	} `yaml:"tenancy"`

	Cache struct {
		Kind  string `yaml:"kind"` // memory | redis
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	// Catalog: servicio externo de productos (passthrough).
	Catalog struct {
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"catalog"`

	// Cart: sesiones de carrito (cookie + cache backend).
	Cart struct {
		CookieName string `yaml:"cookie_name"`
		TTL        string `yaml:"ttl"`
	} `yaml:"cart"`

	// Revalidation: secreto compartido para POST /api/revalidate.
	Revalidation struct {
		Secret string `yaml:"secret"`
	} `yaml:"revalidation"`

	JWT struct {
		Issuer    string `yaml:"issuer"`
		Secret    string `yaml:"secret"` // HS256
		AccessTTL string `yaml:"access_ttl"`
	} `yaml:"jwt"`

	OTP struct {
		TTL    string `yaml:"ttl"`
		Digits int    `yaml:"digits"`
	} `yaml:"otp"`

	Storage struct {
		Driver   string `yaml:"driver"` // memory | pg
		Postgres struct {
			DSN             string `yaml:"dsn"`
			MaxOpenConns    int    `yaml:"max_open_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
		TLS      string `yaml:"tls"` // auto | always | never
	} `yaml:"smtp"`

	Security struct {
		SecretBoxMasterKey string `yaml:"secretbox_master_key"` // base64(32 bytes) para secretos en archivos de tenant
	} `yaml:"security"`

	Rate struct {
		Enabled     bool   `yaml:"enabled"`
		Window      string `yaml:"window"`
		MaxRequests int    `yaml:"max_requests"`
	} `yaml:"rate"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	// sane defaults
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Tenancy.Dir == "" {
		c.Tenancy.Dir = "./config"
	}
	if c.Tenancy.RegistryFile == "" {
		c.Tenancy.RegistryFile = "tenants.json"
	}
	if c.Tenancy.ConfigTTL == "" {
		c.Tenancy.ConfigTTL = "30s"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "2m"
	}
	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = "https://dummyjson.com"
	}
	if c.Catalog.Timeout == "" {
		c.Catalog.Timeout = "10s"
	}
	if c.Cart.CookieName == "" {
		c.Cart.CookieName = "sf_session"
	}
	if c.Cart.TTL == "" {
		c.Cart.TTL = "720h" // 30d
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "storefront"
	}
	if c.JWT.AccessTTL == "" {
		c.JWT.AccessTTL = "12h"
	}
	if c.OTP.TTL == "" {
		c.OTP.TTL = "5m"
	}
	if c.OTP.Digits == 0 {
		c.OTP.Digits = 6
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Storage.Postgres.ConnMaxLifetime == "" {
		c.Storage.Postgres.ConnMaxLifetime = "30m"
	}
	if c.SMTP.TLS == "" {
		c.SMTP.TLS = "auto"
	}
	if c.Rate.Window == "" {
		c.Rate.Window = "1m"
	}
	if c.Rate.MaxRequests == 0 {
		c.Rate.MaxRequests = 120
	}

	// validate string durations
	for _, d := range []string{
		c.Tenancy.ConfigTTL,
		c.Cache.Memory.DefaultTTL,
		c.Catalog.Timeout,
		c.Cart.TTL,
		c.JWT.AccessTTL,
		c.OTP.TTL,
		c.Rate.Window,
		c.Storage.Postgres.ConnMaxLifetime,
	} {
		if _, err := time.ParseDuration(d); err != nil {
			return nil, fmt.Errorf("config: invalid duration %q: %w", d, err)
		}
	}

	// Overrides por env + salvaguarda prod
	c.applyEnvOverrides()

	if err := c.Validate(); err != nil {
		return nil, err
	}

	// Normalizar dir de tenants (si relativa) respecto al directorio del YAML
	if !filepath.IsAbs(c.Tenancy.Dir) {
		base := filepath.Dir(path)
		c.Tenancy.Dir = filepath.Clean(filepath.Join(base, c.Tenancy.Dir))
	}

	return &c, nil
}

// Validate aplica las reglas que no pueden degradarse en runtime.
func (c *Config) Validate() error {
	if strings.EqualFold(c.App.Env, "prod") {
		if strings.TrimSpace(c.Revalidation.Secret) == "" {
			return fmt.Errorf("config: revalidation.secret (REVALIDATION_SECRET) is required in prod")
		}
		if strings.TrimSpace(c.JWT.Secret) == "" {
			return fmt.Errorf("config: jwt.secret (JWT_SECRET) is required in prod")
		}
	}
	switch c.Storage.Driver {
	case "memory", "pg":
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "pg" && strings.TrimSpace(c.Storage.Postgres.DSN) == "" {
		return fmt.Errorf("config: storage.postgres.dsn required for pg driver")
	}
	return nil
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}
func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}
func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		if strings.TrimSpace(s) == "" {
			return []string{}, true
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

// applyEnvOverrides: pisa config.yaml con variables de entorno.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvCSV("SERVER_CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}

	// TENANCY
	if v, ok := getEnvStr("ROOT_DOMAIN"); ok {
		c.Tenancy.RootDomain = v
	}
	if v, ok := getEnvStr("TENANTS_DIR"); ok {
		c.Tenancy.Dir = v
	}

	// CACHE
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = v
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvStr("REDIS_PASSWORD"); ok {
		c.Cache.Redis.Password = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}

	// CATALOG
	if v, ok := getEnvStr("CATALOG_BASE_URL"); ok {
		c.Catalog.BaseURL = v
	}

	// REVALIDATION
	if v, ok := getEnvStr("REVALIDATION_SECRET"); ok {
		c.Revalidation.Secret = v
	}

	// JWT
	if v, ok := getEnvStr("JWT_SECRET"); ok {
		c.JWT.Secret = v
	}
	if v, ok := getEnvStr("JWT_ISSUER"); ok {
		c.JWT.Issuer = v
	}

	// STORAGE
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.Postgres.DSN = v
	}

	// SMTP
	if v, ok := getEnvStr("SMTP_HOST"); ok {
		c.SMTP.Host = v
	}
	if v, ok := getEnvInt("SMTP_PORT"); ok {
		c.SMTP.Port = v
	}
	if v, ok := getEnvStr("SMTP_USERNAME"); ok {
		c.SMTP.Username = v
	}
	if v, ok := getEnvStr("SMTP_PASSWORD"); ok {
		c.SMTP.Password = v
	}
	if v, ok := getEnvStr("SMTP_FROM"); ok {
		c.SMTP.From = v
	}

	// SECURITY
	if v, ok := getEnvStr("SECRETBOX_MASTER_KEY"); ok {
		c.Security.SecretBoxMasterKey = v
	}

	// RATE
	if v, ok := getEnvBool("RATE_ENABLED"); ok {
		c.Rate.Enabled = v
	}
	if v, ok := getEnvInt("RATE_MAX_REQUESTS"); ok {
		c.Rate.MaxRequests = v
	}
	if v, ok := getEnvStr("RATE_WINDOW"); ok {
		c.Rate.Window = v
	}
}

// Dur parsea una duración ya validada en Load. Panic sólo ante bug de validación.
func Dur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(fmt.Sprintf("config: duration %q not validated: %v", s, err))
	}
	return d
}
