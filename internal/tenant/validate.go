package tenant

import (
	"fmt"
	"strings"
)

// ValidateConfig hace la validación estructural completa de una config de
// tenant: presencia y tipo de cada campo requerido, enum-check del theme y
// validación recursiva de content/metadata/seo.
//
// Cualquier error fuerza el fallback al siguiente nivel: una config jamás
// se aplica parcialmente.
func ValidateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("tenant: nil config")
	}
	if err := requireStr("id", c.ID); err != nil {
		return err
	}
	if err := requireStr("name", c.Name); err != nil {
		return err
	}
	if err := c.Theme.Validate(); err != nil {
		return fmt.Errorf("tenant %q: %w", c.ID, err)
	}
	if err := validateContent(&c.Content); err != nil {
		return fmt.Errorf("tenant %q: %w", c.ID, err)
	}
	if err := validateMetadata(&c.Metadata); err != nil {
		return fmt.Errorf("tenant %q: %w", c.ID, err)
	}
	if c.SMTP != nil {
		if err := validateSMTP(c.SMTP); err != nil {
			return fmt.Errorf("tenant %q: %w", c.ID, err)
		}
	}
	return nil
}

func validateContent(ct *Content) error {
	if err := requireStr("content.hero.title", ct.Hero.Title); err != nil {
		return err
	}
	if err := requireStr("content.hero.subtitle", ct.Hero.Subtitle); err != nil {
		return err
	}
	if err := requireStr("content.about", ct.About); err != nil {
		return err
	}
	if err := requireStr("content.contact.email", ct.Contact.Email); err != nil {
		return err
	}
	if !strings.Contains(ct.Contact.Email, "@") {
		return fmt.Errorf("content.contact.email: %q is not an email", ct.Contact.Email)
	}
	return nil
}

func validateMetadata(md *Metadata) error {
	if err := requireStr("metadata.title", md.Title); err != nil {
		return err
	}
	if err := requireStr("metadata.description", md.Description); err != nil {
		return err
	}
	if md.SEO != nil {
		for i, kw := range md.SEO.Keywords {
			if strings.TrimSpace(kw) == "" {
				return fmt.Errorf("metadata.seo.keywords[%d]: empty keyword", i)
			}
		}
	}
	return nil
}

func validateSMTP(s *SMTPSettings) error {
	if err := requireStr("smtp.host", s.Host); err != nil {
		return err
	}
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("smtp.port: %d out of range", s.Port)
	}
	return nil
}

func requireStr(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%s: required non-empty string", field)
	}
	return nil
}

// ValidateRegistry chequea la forma mínima del registro.
func ValidateRegistry(r *Registry) error {
	if r == nil {
		return fmt.Errorf("tenant: nil registry")
	}
	if strings.TrimSpace(r.Default) == "" {
		return fmt.Errorf("tenant: registry default file required")
	}
	for id, e := range r.Tenants {
		if e.ID != "" && e.ID != id {
			return fmt.Errorf("tenant: registry entry %q has mismatched id %q", id, e.ID)
		}
		if strings.TrimSpace(e.ConfigFile) == "" {
			return fmt.Errorf("tenant: registry entry %q missing configFile", id)
		}
		switch e.Status {
		case StatusActive, StatusInactive:
		default:
			return fmt.Errorf("tenant: registry entry %q has unknown status %q", id, e.Status)
		}
	}
	return nil
}
