// Package cart contiene el controller del carrito por sesión.
package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	domain "github.com/dropDatabas3/storefront/internal/cart"
	dto "github.com/dropDatabas3/storefront/internal/httpx/dto/cart"
	httperrors "github.com/dropDatabas3/storefront/internal/httpx/errors"
	svc "github.com/dropDatabas3/storefront/internal/httpx/services/cart"
	"github.com/dropDatabas3/storefront/internal/observability/logger"
)

const (
	maxCartBodySize = 64 * 1024 // 64KB
	contentTypeJSON = "application/json; charset=utf-8"
)

// Controller maneja los endpoints del carrito.
// La sesión viaja en una cookie opaca; sin cookie se crea sesión nueva.
type Controller struct {
	service    svc.Service
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewController crea el controller del carrito.
func NewController(service svc.Service, cookieName string, ttl time.Duration, secure bool) *Controller {
	return &Controller{service: service, cookieName: cookieName, ttl: ttl, secure: secure}
}

// Get maneja GET /api/cart
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := c.session(w, r)

	crt, err := c.service.Get(ctx, sid)
	if err != nil {
		c.writeCartError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromCart(crt))
}

// AddItem maneja POST /api/cart/items
func (c *Controller) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := c.session(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, maxCartBodySize)
	defer r.Body.Close()

	var req dto.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}
	if req.ID <= 0 || req.Title == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("id y title son obligatorios"))
		return
	}

	p := domain.Product{
		ID:                 req.ID,
		Title:              req.Title,
		Price:              req.Price,
		Thumbnail:          req.Thumbnail,
		DiscountPercentage: req.DiscountPercentage,
		Brand:              req.Brand,
		Category:           req.Category,
	}

	crt, err := c.service.AddItem(ctx, sid, p, req.Quantity)
	if err != nil {
		c.writeCartError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromCart(crt))
}

// UpdateItem maneja PUT /api/cart/items/{id}
func (c *Controller) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := c.session(w, r)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("id inválido"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxCartBodySize)
	defer r.Body.Close()

	var req dto.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	crt, err := c.service.UpdateQuantity(ctx, sid, id, req.Quantity)
	if err != nil {
		c.writeCartError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromCart(crt))
}

// RemoveItem maneja DELETE /api/cart/items/{id}
func (c *Controller) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := c.session(w, r)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("id inválido"))
		return
	}

	crt, err := c.service.RemoveItem(ctx, sid, id)
	if err != nil {
		c.writeCartError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromCart(crt))
}

// Clear maneja DELETE /api/cart
func (c *Controller) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := c.session(w, r)

	crt, err := c.service.Clear(ctx, sid)
	if err != nil {
		c.writeCartError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromCart(crt))
}

// ─── Helpers ───

// session lee la cookie de sesión o crea una nueva (set-cookie incluido).
func (c *Controller) session(w http.ResponseWriter, r *http.Request) string {
	if ck, err := r.Cookie(c.cookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	sid := domain.NewSessionID()
	http.SetCookie(w, &http.Cookie{
		Name:     c.cookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sid
}

func (c *Controller) writeCartError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		httperrors.WriteError(w, httperrors.ErrCartItemNotFound)
	default:
		logger.From(r.Context()).Error("cart operation failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
