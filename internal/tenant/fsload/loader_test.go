package fsload

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/storefront/internal/tenant"
	"github.com/dropDatabas3/storefront/internal/theme"
)

// writeFixtures arma un directorio de configs de tenant para tests.
func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tenants"), 0o755))

	reg := tenant.Registry{
		Default: "default.json",
		Tenants: map[string]tenant.RegistryEntry{
			"default":    {ID: "default", Name: "Storefront", Status: tenant.StatusActive, ConfigFile: "default.json"},
			"abc-rental": {ID: "abc-rental", Name: "ABC Rental", Status: tenant.StatusActive, ConfigFile: "abc-rental.json"},
			"old-shop":   {ID: "old-shop", Name: "Old Shop", Status: tenant.StatusInactive, ConfigFile: "old-shop.json"},
			"broken":     {ID: "broken", Name: "Broken", Status: tenant.StatusActive, ConfigFile: "broken.json"},
		},
	}
	writeJSONFile(t, filepath.Join(dir, "tenants.json"), reg)

	writeJSONFile(t, filepath.Join(dir, "tenants", "default.json"), testConfig("default", theme.Ocean))
	writeJSONFile(t, filepath.Join(dir, "tenants", "abc-rental.json"), testConfig("abc-rental", theme.Fire))
	writeJSONFile(t, filepath.Join(dir, "tenants", "old-shop.json"), testConfig("old-shop", theme.Ocean))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tenants", "broken.json"), []byte("{not json"), 0o644))

	return dir
}

func testConfig(id string, th theme.ID) tenant.Config {
	return tenant.Config{
		ID:    id,
		Name:  id,
		Theme: theme.RefFromID(th),
		Content: tenant.Content{
			Hero:    tenant.Hero{Title: "t", Subtitle: "s"},
			About:   "a",
			Contact: tenant.Contact{Email: "x@example.com"},
		},
		Metadata: tenant.Metadata{Title: id, Description: "d"},
	}
}

func writeJSONFile(t *testing.T, path string, v any) {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o644))
}

func TestLoader_ConfigActivo(t *testing.T) {
	l := New(writeFixtures(t))
	cfg := l.Config(context.Background(), "abc-rental")
	require.Equal(t, "abc-rental", cfg.ID)
	require.Equal(t, theme.Fire, theme.Resolve(cfg.Theme))
}

func TestLoader_NoRegistradoCaeADefault(t *testing.T) {
	l := New(writeFixtures(t))
	cfg := l.Config(context.Background(), "nadie")
	require.Equal(t, "default", cfg.ID)
}

func TestLoader_InactivoCaeADefault(t *testing.T) {
	l := New(writeFixtures(t))
	cfg := l.Config(context.Background(), "old-shop")
	require.Equal(t, "default", cfg.ID)
}

func TestLoader_JSONRotoCaeADefault(t *testing.T) {
	l := New(writeFixtures(t))
	cfg := l.Config(context.Background(), "broken")
	require.Equal(t, "default", cfg.ID)
}

func TestLoader_IDVacioEsDefault(t *testing.T) {
	l := New(writeFixtures(t))
	cfg := l.Config(context.Background(), "")
	require.Equal(t, "default", cfg.ID)
}

func TestLoader_SinRegistroUsaHardcoded(t *testing.T) {
	l := New(t.TempDir()) // ni tenants.json existe
	cfg := l.Config(context.Background(), "abc-rental")
	require.NotNil(t, cfg)
	require.Equal(t, FallbackConfig().ID, cfg.ID)
	require.Equal(t, theme.Ocean, theme.Resolve(cfg.Theme))
}

func TestLoader_DefaultRotoUsaHardcoded(t *testing.T) {
	dir := writeFixtures(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tenants", "default.json"), []byte("nope"), 0o644))

	l := New(dir)
	cfg := l.Config(context.Background(), "nadie")
	require.Equal(t, FallbackConfig().Name, cfg.Name)
}

func TestLoader_CacheEInvalidate(t *testing.T) {
	dir := writeFixtures(t)
	l := New(dir, WithTTL(time.Hour))
	ctx := context.Background()

	first := l.Config(ctx, "abc-rental")
	require.Equal(t, "abc-rental", first.ID)

	// Mutar el archivo: el cache sigue sirviendo la versión vieja.
	mutated := testConfig("abc-rental", theme.Forest)
	writeJSONFile(t, filepath.Join(dir, "tenants", "abc-rental.json"), mutated)

	cached := l.Config(ctx, "abc-rental")
	require.Equal(t, theme.Fire, theme.Resolve(cached.Theme))

	// Tras invalidar se ve el cambio.
	l.Invalidate("abc-rental")
	fresh := l.Config(ctx, "abc-rental")
	require.Equal(t, theme.Forest, theme.Resolve(fresh.Theme))
}

func TestLoader_InvalidateAll(t *testing.T) {
	dir := writeFixtures(t)
	l := New(dir, WithTTL(time.Hour))
	ctx := context.Background()

	_ = l.Config(ctx, "abc-rental")
	_ = l.Config(ctx, "")

	writeJSONFile(t, filepath.Join(dir, "tenants", "default.json"), testConfig("default-v2", theme.Forest))
	l.InvalidateAll()

	require.Equal(t, "default-v2", l.Config(ctx, "").ID)
}

func TestLoader_RegistroNuncaFalla(t *testing.T) {
	l := New(t.TempDir())
	reg := l.Registry(context.Background())
	require.NotNil(t, reg.Tenants)
	require.NotEmpty(t, reg.Default)
}
