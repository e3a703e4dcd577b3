package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/dropDatabas3/storefront/internal/email"
	"github.com/dropDatabas3/storefront/internal/observability/logger"
	"github.com/dropDatabas3/storefront/internal/tenant"
)

// Service relays contact form messages to the tenant's contact inbox.
type Service interface {
	Send(ctx context.Context, cfg *tenant.Config, name, fromEmail, message string) error
}

// Deps contains dependencies for the contact service.
type Deps struct {
	Mailer *email.Mailer
}

type service struct {
	deps Deps
}

// NewService creates a new contact Service.
func NewService(deps Deps) Service {
	return &service{deps: deps}
}

// Send errors
var (
	ErrInvalidEmail   = fmt.Errorf("invalid sender email")
	ErrEmptyMessage   = fmt.Errorf("message is empty")
	ErrNoContactInbox = fmt.Errorf("tenant has no contact email configured")
)

func (s *service) Send(ctx context.Context, cfg *tenant.Config, name, fromEmail, message string) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("contact"),
		logger.Op("Send"),
		logger.TenantID(cfg.ID),
	)

	fromEmail = strings.TrimSpace(fromEmail)
	message = strings.TrimSpace(message)

	if fromEmail == "" || !strings.Contains(fromEmail, "@") {
		return ErrInvalidEmail
	}
	if message == "" {
		return ErrEmptyMessage
	}
	if cfg.Content.Contact.Email == "" {
		return ErrNoContactInbox
	}

	body := message
	if name = strings.TrimSpace(name); name != "" {
		body = fmt.Sprintf("Name: %s\n\n%s", name, message)
	}

	if err := s.deps.Mailer.SendContact(cfg, fromEmail, body); err != nil {
		log.Error("contact relay failed", logger.Err(err))
		return err
	}

	log.Info("contact message relayed", logger.Email(fromEmail))
	return nil
}
