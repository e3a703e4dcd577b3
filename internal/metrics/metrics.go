package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Storefront Prometheus metrics. Defined in a standalone package to avoid
// import cycles between the tenant loader and HTTP packages.

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_http_requests_total",
		Help: "Requests HTTP por método y status",
	}, []string{"method", "status"})

	HTTPRequestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_http_request_duration_ms",
		Help:    "Latencia de requests HTTP en milisegundos",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})

	TenantResolutionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_tenant_resolutions_total",
		Help: "Resoluciones de tenant por resultado (hit|default|invalid|inactive|not_found)",
	}, []string{"outcome"})

	ConfigFallbacksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_config_fallbacks_total",
		Help: "Caídas a un nivel de fallback de config (tenant_default|hardcoded)",
	}, []string{"tier"})

	ConfigCacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_config_cache_total",
		Help: "Accesos al cache de configs de tenant (hit|miss)",
	}, []string{"result"})

	CartOpsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_ops_total",
		Help: "Operaciones de carrito (add|remove|update|clear)",
	}, []string{"op"})

	CatalogRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_catalog_requests_total",
		Help: "Requests al servicio de catálogo externo por resultado (ok|error)",
	}, []string{"result"})

	RevalidationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_revalidations_total",
		Help: "Llamadas a /api/revalidate por resultado (ok|unauthorized)",
	}, []string{"result"})
)

// Register registers the storefront metrics on the given registry (or default if nil).
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	collectors := []prometheus.Collector{
		HTTPRequestsTotal,
		HTTPRequestDuration,
		TenantResolutionsTotal,
		ConfigFallbacksTotal,
		ConfigCacheHitsTotal,
		CartOpsTotal,
		CatalogRequestsTotal,
		RevalidationsTotal,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
