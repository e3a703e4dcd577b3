// Package fsload carga el registro y las configs de tenant desde disco,
// con cache TTL, deduplicación de cargas concurrentes y la cadena de
// fallback de dos niveles (default del registro -> config hardcodeada).
//
// Contrato: el loader NUNCA devuelve error al caller. Toda falla (archivo
// faltante, JSON malformado, validación) degrada al siguiente nivel y se
// loguea; el render siempre recibe una config estructuralmente válida.
package fsload

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dropDatabas3/storefront/internal/metrics"
	"github.com/dropDatabas3/storefront/internal/observability/logger"
	"github.com/dropDatabas3/storefront/internal/tenant"
	"github.com/dropDatabas3/storefront/internal/theme"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

const (
	// sentinelDefault se usa cuando ni el registro carga: apunta al archivo
	// de config default convencional.
	sentinelDefault = "default.json"

	defaultKey = "__default"
)

// Loader resuelve configs de tenant desde el layout:
//
//	<dir>/tenants.json            (registro)
//	<dir>/tenants/<file>.json     (config por tenant)
type Loader struct {
	dir          string
	registryFile string
	ttl          time.Duration

	cache *gocache.Cache
	sf    singleflight.Group
}

// Option configura el Loader.
type Option func(*Loader)

// WithTTL cambia el TTL del cache de configs parseadas.
func WithTTL(ttl time.Duration) Option {
	return func(l *Loader) { l.ttl = ttl }
}

// WithRegistryFile cambia el nombre del archivo de registro.
func WithRegistryFile(name string) Option {
	return func(l *Loader) { l.registryFile = name }
}

// New crea un Loader sobre el directorio de configuración dado.
func New(dir string, opts ...Option) *Loader {
	l := &Loader{
		dir:          filepath.Clean(dir),
		registryFile: "tenants.json",
		ttl:          30 * time.Second,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.cache = gocache.New(l.ttl, 2*l.ttl)
	return l
}

// Registry carga el índice de tenants. Si el archivo no existe o no parsea,
// devuelve un registro vacío con el default centinela, nunca un error.
func (l *Loader) Registry(ctx context.Context) tenant.Registry {
	log := logger.From(ctx).With(logger.Layer("loader"), logger.Op("Registry"))

	var reg tenant.Registry
	if err := readJSON(filepath.Join(l.dir, l.registryFile), &reg); err != nil {
		log.Info("registry unavailable, using empty registry", logger.Err(err))
		return tenant.Registry{Tenants: map[string]tenant.RegistryEntry{}, Default: sentinelDefault}
	}
	if err := tenant.ValidateRegistry(&reg); err != nil {
		log.Error("registry failed validation, using empty registry", logger.Err(err))
		return tenant.Registry{Tenants: map[string]tenant.RegistryEntry{}, Default: sentinelDefault}
	}
	if reg.Tenants == nil {
		reg.Tenants = map[string]tenant.RegistryEntry{}
	}
	return reg
}

// Config resuelve la configuración para un tenant ID ya saneado.
// id == "" significa "tenant default". Nunca devuelve error.
func (l *Loader) Config(ctx context.Context, id string) *tenant.Config {
	key := cacheKey(id)
	if v, ok := l.cache.Get(key); ok {
		metrics.ConfigCacheHitsTotal.WithLabelValues("hit").Inc()
		return v.(*tenant.Config)
	}
	metrics.ConfigCacheHitsTotal.WithLabelValues("miss").Inc()

	// singleflight: N requests concurrentes del mismo tenant => una carga.
	v, _, _ := l.sf.Do(key, func() (any, error) {
		cfg := l.load(ctx, id)
		l.cache.Set(key, cfg, l.ttl)
		return cfg, nil
	})
	return v.(*tenant.Config)
}

// Invalidate elimina la config cacheada de un tenant (y la default si id == "").
func (l *Loader) Invalidate(id string) {
	l.cache.Delete(cacheKey(id))
}

// InvalidateAll vacía el cache completo de configs.
func (l *Loader) InvalidateAll() {
	l.cache.Flush()
}

// load implementa la cadena: registro -> entrada activa -> archivo ->
// validación -> default del registro -> hardcoded.
func (l *Loader) load(ctx context.Context, id string) *tenant.Config {
	log := logger.From(ctx).With(logger.Layer("loader"), logger.TenantID(id))

	reg := l.Registry(ctx)

	if id == "" {
		return l.loadDefault(ctx, reg)
	}

	entry, ok := reg.Tenants[id]
	if !ok {
		// Miss de resolución: downgrade silencioso a default, info level.
		log.Info("tenant not in registry, using default")
		metrics.TenantResolutionsTotal.WithLabelValues("not_found").Inc()
		return l.loadDefault(ctx, reg)
	}
	if entry.Status != tenant.StatusActive {
		log.Info("tenant inactive, using default")
		metrics.TenantResolutionsTotal.WithLabelValues("inactive").Inc()
		return l.loadDefault(ctx, reg)
	}

	cfg, err := l.readConfig(entry.ConfigFile)
	if err != nil {
		// Error de configuración: downgrade con log a error level.
		log.Error("tenant config failed to load, using default", logger.Err(err))
		metrics.TenantResolutionsTotal.WithLabelValues("invalid").Inc()
		return l.loadDefault(ctx, reg)
	}

	metrics.TenantResolutionsTotal.WithLabelValues("hit").Inc()
	return cfg
}

// loadDefault carga la config default del registro; si también falla,
// entrega la config hardcodeada final.
func (l *Loader) loadDefault(ctx context.Context, reg tenant.Registry) *tenant.Config {
	log := logger.From(ctx).With(logger.Layer("loader"), logger.Op("loadDefault"))

	cfg, err := l.readConfig(reg.Default)
	if err != nil {
		log.Error("default config failed to load, using hardcoded fallback", logger.Err(err))
		metrics.ConfigFallbacksTotal.WithLabelValues("hardcoded").Inc()
		return FallbackConfig()
	}
	metrics.ConfigFallbacksTotal.WithLabelValues("tenant_default").Inc()
	return cfg
}

// readConfig lee y valida un archivo de config de tenant.
func (l *Loader) readConfig(file string) (*tenant.Config, error) {
	var cfg tenant.Config
	if err := readJSON(filepath.Join(l.dir, "tenants", file), &cfg); err != nil {
		return nil, err
	}
	if err := tenant.ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readJSON[T any](path string, out *T) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

func cacheKey(id string) string {
	if id == "" {
		return "cfg:" + defaultKey
	}
	return "cfg:" + id
}

// FallbackConfig devuelve una copia de la config literal de último recurso
// (strings fijos, theme ocean). Se usa sólo cuando el default del registro
// tampoco carga.
func FallbackConfig() *tenant.Config {
	return &tenant.Config{
		ID:    "default",
		Name:  "Storefront",
		Theme: theme.RefFromID(theme.Ocean),
		Content: tenant.Content{
			Hero: tenant.Hero{
				Title:    "Welcome to our store",
				Subtitle: "Quality products, delivered to your door",
				CTALabel: "Browse products",
			},
			About:   "We are a multi-brand storefront platform.",
			Contact: tenant.Contact{Email: "hello@example.com"},
		},
		Metadata: tenant.Metadata{
			Title:       "Storefront",
			Description: "A multi-tenant storefront",
		},
	}
}
