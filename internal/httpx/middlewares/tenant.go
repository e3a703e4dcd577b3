package middlewares

import (
	"net/http"
	"strings"

	"github.com/dropDatabas3/storefront/internal/observability/logger"
	"github.com/dropDatabas3/storefront/internal/tenant"
	"github.com/dropDatabas3/storefront/internal/tenant/fsload"
)

// =================================================================================
// RESOLUCIÓN DE TENANT
// =================================================================================

// WithTenant resuelve el tenant del request y lo inyecta en el contexto.
//
// Cadena de resolución (primer match gana):
//  1. Header X-Tenant-ID  (tooling interno, tests)
//  2. Query ?tenant=      (previews, links de soporte)
//  3. Hostname            (subdominios: abc.localhost, abc.midominio.com)
//
// El candidato pasa por tenant.Sanitize antes de consultar el loader; un
// candidato vacío o inválido cae al default del registry. La resolución nunca
// corta el request: siempre hay una config (registry default o hardcodeada).
func WithTenant(loader *fsload.Loader, rootDomain string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, env := resolveTenantID(r, rootDomain)

			cfg := loader.Config(r.Context(), id)

			res := &tenant.Resolved{
				ID:          cfg.ID,
				Host:        r.Host,
				Environment: env,
				Config:      cfg,
			}

			// Exponer el tenant efectivo; puede diferir del pedido si hubo fallback.
			w.Header().Set("X-Tenant-ID", cfg.ID)

			logger.From(r.Context()).Debug("tenant resolved",
				logger.TenantID(cfg.ID),
				logger.Host(r.Host),
				logger.String("environment", string(env)),
			)

			next.ServeHTTP(w, r.WithContext(setTenant(r.Context(), res)))
		})
	}
}

// resolveTenantID aplica la cadena header -> query -> hostname y devuelve
// el candidato saneado (posiblemente "") y el entorno detectado.
func resolveTenantID(r *http.Request, rootDomain string) (string, tenant.Environment) {
	if h := strings.TrimSpace(r.Header.Get("X-Tenant-ID")); h != "" {
		return tenant.Sanitize(h), tenant.EnvUnknown
	}
	if q := strings.TrimSpace(r.URL.Query().Get("tenant")); q != "" {
		return tenant.Sanitize(q), tenant.EnvUnknown
	}
	id, env := tenant.ParseHost(r.Host, r.URL.String(), rootDomain)
	return tenant.Sanitize(id), env
}
