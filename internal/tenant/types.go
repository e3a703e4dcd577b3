// Package tenant define el modelo de tenants del storefront: registro,
// configuración por tenant, parsing de hostnames y saneamiento de IDs.
package tenant

import (
	"github.com/dropDatabas3/storefront/internal/theme"
)

// Status de un tenant dentro del registro.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// RegistryEntry es una entrada del índice de tenants (config/tenants.json).
// Estática: se carga de disco y nunca se muta en runtime.
type RegistryEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Status     Status `json:"status"`
	ConfigFile string `json:"configFile"`
}

// Registry es el índice completo: tenants por ID + archivo de config default.
// Invariante: Default referencia un archivo existente; si el registro mismo
// no carga, se sustituye por un registro vacío con el default centinela.
type Registry struct {
	Tenants map[string]RegistryEntry `json:"tenants"`
	Default string                   `json:"default"`
}

// Content es el copy de la página por tenant.
type Content struct {
	Hero    Hero    `json:"hero"`
	About   string  `json:"about"`
	Contact Contact `json:"contact"`
}

type Hero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	CTALabel string `json:"ctaLabel,omitempty"`
}

type Contact struct {
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// SEO es el bloque opcional dentro de metadata.
type SEO struct {
	Keywords  []string `json:"keywords,omitempty"`
	OGImage   string   `json:"ogImage,omitempty"`
	NoIndex   bool     `json:"noIndex,omitempty"`
	Canonical string   `json:"canonical,omitempty"`
}

// Metadata del <head> por tenant.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Favicon     string `json:"favicon,omitempty"`
	SEO         *SEO   `json:"seo,omitempty"`
}

// SMTPSettings: credenciales SMTP por tenant para el relay de contacto/OTP.
// La password se guarda cifrada con secretbox (passwordEnc).
type SMTPSettings struct {
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Username    string `json:"username,omitempty"`
	PasswordEnc string `json:"passwordEnc,omitempty"`
	FromEmail   string `json:"fromEmail,omitempty"`
	UseTLS      bool   `json:"useTLS,omitempty"`
}

// Config es la configuración completa de un tenant (config/tenants/<file>.json).
//
// Invariante: o la config valida completa, o no se aplica nada; la cadena de
// fallback entrega siempre una config estructuralmente válida.
type Config struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Theme    theme.Ref     `json:"theme"`
	Content  Content       `json:"content"`
	Metadata Metadata      `json:"metadata"`
	SMTP     *SMTPSettings `json:"smtp,omitempty"`
}

// Environment clasifica el origen del request según el hostname.
type Environment string

const (
	EnvLocal      Environment = "local"
	EnvProduction Environment = "production"
	EnvPreview    Environment = "preview"
	EnvUnknown    Environment = "unknown"
)

// Resolved es el resultado de la resolución por request: lo que el
// middleware deja en el context (nunca en estado global del proceso).
type Resolved struct {
	ID          string      // "" => tenant default
	Host        string      // host header original
	Environment Environment // local | production | preview | unknown
	Config      *Config     // siempre no-nil tras pasar por el loader
}
