// Package router define las rutas HTTP del storefront.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dropDatabas3/storefront/internal/auth"
	admctrl "github.com/dropDatabas3/storefront/internal/httpx/controllers/admin"
	cartctrl "github.com/dropDatabas3/storefront/internal/httpx/controllers/cart"
	catctrl "github.com/dropDatabas3/storefront/internal/httpx/controllers/catalog"
	contactctrl "github.com/dropDatabas3/storefront/internal/httpx/controllers/contact"
	healthctrl "github.com/dropDatabas3/storefront/internal/httpx/controllers/health"
	onbctrl "github.com/dropDatabas3/storefront/internal/httpx/controllers/onboarding"
	pagesctrl "github.com/dropDatabas3/storefront/internal/httpx/controllers/pages"
	httperrors "github.com/dropDatabas3/storefront/internal/httpx/errors"
	mw "github.com/dropDatabas3/storefront/internal/httpx/middlewares"
	"github.com/dropDatabas3/storefront/internal/rate"
	"github.com/dropDatabas3/storefront/internal/tenant/fsload"
)

// Deps contiene todo lo que las rutas necesitan ya construido.
type Deps struct {
	Loader     *fsload.Loader
	RootDomain string
	Issuer     *auth.TokenIssuer

	Pages      *pagesctrl.Controller
	Catalog    *catctrl.Controller
	Cart       *cartctrl.Controller
	OTP        *onbctrl.OTPController
	Profile    *onbctrl.ProfileController
	Contact    *contactctrl.Controller
	Revalidate *admctrl.RevalidateController
	Health     *healthctrl.Controller

	CORSAllowedOrigins []string
	RateLimiter        rate.Limiter // opcional
}

// New arma el router completo con sus middleware stacks.
//
// Capas (de afuera hacia adentro): recover -> request id -> logging ->
// security headers -> cors -> [rate]. La resolución de tenant aplica a las
// páginas y al API; /healthz, /readyz y /metrics quedan fuera de ella.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		mw.WithRecover(),
		mw.WithRequestID(),
		mw.WithLogging(),
		mw.WithSecurityHeaders(),
		mw.WithCORS(deps.CORSAllowedOrigins),
	)
	if deps.RateLimiter != nil {
		r.Use(mw.WithRateLimit(deps.RateLimiter))
	}

	r.NotFound(deps.Pages.NotFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	// ─── Infraestructura (sin tenant) ───
	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// ─── Páginas y API (tenant-scoped) ───
	r.Group(func(g chi.Router) {
		g.Use(mw.WithTenant(deps.Loader, deps.RootDomain))

		g.Get("/", deps.Pages.Home)
		g.Get("/theme.css", deps.Pages.ThemeCSS)
		g.Get("/robots.txt", deps.Pages.Robots)

		g.Route("/api", func(api chi.Router) {
			// Catálogo (passthrough)
			api.Get("/products", deps.Catalog.List)
			api.Post("/products", deps.Catalog.Create)
			api.Get("/products/search", deps.Catalog.Search)
			api.Get("/products/categories", deps.Catalog.Categories)
			api.Get("/products/category/{slug}", deps.Catalog.ByCategory)
			api.Get("/products/{id}", deps.Catalog.Get)
			api.Put("/products/{id}", deps.Catalog.Update)
			api.Delete("/products/{id}", deps.Catalog.Delete)

			// Carrito por sesión
			api.Get("/cart", deps.Cart.Get)
			api.Delete("/cart", deps.Cart.Clear)
			api.Post("/cart/items", deps.Cart.AddItem)
			api.Put("/cart/items/{id}", deps.Cart.UpdateItem)
			api.Delete("/cart/items/{id}", deps.Cart.RemoveItem)

			// Onboarding: OTP público, el resto con bearer token
			api.Post("/onboarding/otp/request", deps.OTP.Request)
			api.Post("/onboarding/otp/verify", deps.OTP.Verify)
			api.Group(func(priv chi.Router) {
				priv.Use(mw.WithAuth(deps.Issuer))
				priv.Get("/onboarding/step", deps.Profile.Step)
				priv.Post("/onboarding/step", deps.Profile.MoveStep)
				priv.Put("/onboarding/profile", deps.Profile.UpdateProfile)
				priv.Post("/onboarding/documents/{kind}", deps.Profile.SubmitDocument)
			})

			// Contacto
			api.Post("/contact", deps.Contact.Send)

			// Operación: purga de cache de configs
			api.Post("/revalidate", deps.Revalidate.Revalidate)
		})
	})

	return r
}
