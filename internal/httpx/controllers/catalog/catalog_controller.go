// Package catalog expone el passthrough hacia el servicio de productos.
// El storefront no interpreta los shapes del upstream: releva status y body.
package catalog

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/storefront/internal/catalog"
	httperrors "github.com/dropDatabas3/storefront/internal/httpx/errors"
	"github.com/dropDatabas3/storefront/internal/observability/logger"
)

const maxProductBodySize = 256 * 1024 // 256KB

// Controller maneja los endpoints de catálogo.
type Controller struct {
	client *catalog.Client
}

// NewController crea el controller de catálogo.
func NewController(client *catalog.Client) *Controller {
	return &Controller{client: client}
}

// List maneja GET /api/products?limit=&skip=
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", 0)
	skip := intQuery(r, "skip", 0)
	c.relay(w, r, func() (*catalog.Response, error) {
		return c.client.List(r.Context(), limit, skip)
	})
}

// Get maneja GET /api/products/{id}
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c.relay(w, r, func() (*catalog.Response, error) {
		return c.client.Get(r.Context(), id)
	})
}

// Search maneja GET /api/products/search?q=
func (c *Controller) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	c.relay(w, r, func() (*catalog.Response, error) {
		return c.client.Search(r.Context(), q)
	})
}

// Categories maneja GET /api/products/categories
func (c *Controller) Categories(w http.ResponseWriter, r *http.Request) {
	c.relay(w, r, func() (*catalog.Response, error) {
		return c.client.Categories(r.Context())
	})
}

// ByCategory maneja GET /api/products/category/{slug}
func (c *Controller) ByCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	c.relay(w, r, func() (*catalog.Response, error) {
		return c.client.ByCategory(r.Context(), slug)
	})
}

// Create maneja POST /api/products
func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	c.relay(w, r, func() (*catalog.Response, error) {
		return c.client.Create(r.Context(), body)
	})
}

// Update maneja PUT /api/products/{id}
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	c.relay(w, r, func() (*catalog.Response, error) {
		return c.client.Update(r.Context(), id, body)
	})
}

// Delete maneja DELETE /api/products/{id}
func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c.relay(w, r, func() (*catalog.Response, error) {
		return c.client.Delete(r.Context(), id)
	})
}

// ─── Helpers ───

// relay ejecuta la llamada al upstream y copia status + body tal cual.
func (c *Controller) relay(w http.ResponseWriter, r *http.Request, call func() (*catalog.Response, error)) {
	resp, err := call()
	if err != nil {
		logger.From(r.Context()).Warn("catalog upstream failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrUpstreamUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxProductBodySize)
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("body ilegible"))
		return nil, false
	}
	return body, true
}

func intQuery(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
