// Package pages renderiza las páginas server-side del storefront.
// El <head> se arma por tenant: metadata, theme CSS inline y JSON-LD.
package pages

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	httperrors "github.com/dropDatabas3/storefront/internal/httpx/errors"
	"github.com/dropDatabas3/storefront/internal/httpx/middlewares"
	"github.com/dropDatabas3/storefront/internal/observability/logger"
	"github.com/dropDatabas3/storefront/internal/tenant"
	"github.com/dropDatabas3/storefront/internal/theme"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Controller maneja las páginas HTML y archivos derivados (robots.txt, theme.css).
type Controller struct {
	home *template.Template
}

// NewController parsea los templates embebidos. Panics si no parsean:
// un template roto es un error de build, no de runtime.
func NewController() *Controller {
	return &Controller{
		home: template.Must(template.ParseFS(templatesFS, "templates/home.html")),
	}
}

// homeData es el modelo del template de la home.
type homeData struct {
	Title       string
	Description string
	Keywords    string
	Favicon     string
	OGImage     string
	NoIndex     bool
	Canonical   string
	ThemeCSS    template.CSS
	ThemeID     string
	JSONLD      template.JS
	TenantID    string
	Name        string
	Hero        tenant.Hero
	About       string
	Contact     tenant.Contact
}

// Home maneja GET /
func (c *Controller) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res := middlewares.MustGetTenant(ctx)
	cfg := res.Config

	id := theme.Resolve(cfg.Theme)

	data := homeData{
		Title:       pageTitle(cfg),
		Description: cfg.Metadata.Description,
		Favicon:     cfg.Metadata.Favicon,
		ThemeCSS:    template.CSS(theme.GenerateCSS(id)),
		ThemeID:     string(id),
		JSONLD:      jsonLD(cfg),
		TenantID:    cfg.ID,
		Name:        cfg.Name,
		Hero:        cfg.Content.Hero,
		About:       cfg.Content.About,
		Contact:     cfg.Content.Contact,
	}
	if seo := cfg.Metadata.SEO; seo != nil {
		data.Keywords = strings.Join(seo.Keywords, ", ")
		data.OGImage = seo.OGImage
		data.NoIndex = seo.NoIndex
		data.Canonical = seo.Canonical
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.home.Execute(w, data); err != nil {
		// El template ya pudo haber escrito parte del body; sólo loggear.
		logger.From(ctx).Error("home render failed",
			logger.Err(err),
			logger.TenantID(cfg.ID),
			logger.Theme(string(id)),
		)
	}
}

// ThemeCSS maneja GET /theme.css: el mismo CSS del <head>, cacheable,
// para clientes que lo linkean por separado.
func (c *Controller) ThemeCSS(w http.ResponseWriter, r *http.Request) {
	cfg := middlewares.MustGetTenant(r.Context()).Config
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = fmt.Fprint(w, theme.GenerateCSSForRef(cfg.Theme))
}

// Robots maneja GET /robots.txt
func (c *Controller) Robots(w http.ResponseWriter, r *http.Request) {
	cfg := middlewares.MustGetTenant(r.Context()).Config

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if cfg.Metadata.SEO != nil && cfg.Metadata.SEO.NoIndex {
		fmt.Fprint(w, "User-agent: *\nDisallow: /\n")
		return
	}
	fmt.Fprint(w, "User-agent: *\nAllow: /\nDisallow: /api/\n")
}

// NotFound responde 404 en JSON para rutas de API desconocidas.
func (c *Controller) NotFound(w http.ResponseWriter, r *http.Request) {
	httperrors.WriteError(w, httperrors.ErrNotFound)
}

// ─── Helpers ───

func pageTitle(cfg *tenant.Config) string {
	if cfg.Metadata.Title != "" {
		return cfg.Metadata.Title
	}
	return cfg.Name
}

// jsonLD arma el bloque schema.org/Organization del tenant.
func jsonLD(cfg *tenant.Config) template.JS {
	org := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     cfg.Name,
	}
	if cfg.Content.Contact.Email != "" {
		org["email"] = cfg.Content.Contact.Email
	}
	if cfg.Content.Contact.Phone != "" {
		org["telephone"] = cfg.Content.Contact.Phone
	}
	if cfg.Content.Contact.Address != "" {
		org["address"] = cfg.Content.Contact.Address
	}
	b, err := json.Marshal(org)
	if err != nil {
		return "{}"
	}
	return template.JS(b)
}
