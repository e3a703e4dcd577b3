package middlewares

import "net/http"

// Middleware decora un http.Handler. Todas las capas del storefront
// (recover, request id, logging, tenant, auth, rate) tienen esta forma,
// que además es asignable a lo que espera chi.Router.Use.
type Middleware func(http.Handler) http.Handler

// Chain envuelve h con los middlewares dados, de afuera hacia adentro:
// Chain(h, A, B) ejecuta A -> B -> h. Útil para componer un stack sobre
// un handler suelto, fuera del router.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
