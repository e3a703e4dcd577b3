package email

import (
	"fmt"

	"github.com/dropDatabas3/storefront/internal/observability/logger"
	"github.com/dropDatabas3/storefront/internal/security/secretbox"
	"github.com/dropDatabas3/storefront/internal/tenant"
)

// Mailer resuelve el sender por tenant: SMTP del tenant si está configurado
// (password descifrada con secretbox), sino el SMTP global del deploy.
type Mailer struct {
	global  *SMTPConfig // nil => sin fallback global
	newSend func(SMTPConfig) Sender
}

// NewMailer crea el Mailer. global puede ser nil.
func NewMailer(global *SMTPConfig) *Mailer {
	return &Mailer{
		global:  global,
		newSend: func(cfg SMTPConfig) Sender { return NewSMTPSender(cfg) },
	}
}

// senderFor resuelve el Sender para la config de tenant dada.
func (m *Mailer) senderFor(cfg *tenant.Config) (Sender, error) {
	if cfg != nil && cfg.SMTP != nil {
		pass := ""
		if cfg.SMTP.PasswordEnc != "" {
			p, err := secretbox.Decrypt(cfg.SMTP.PasswordEnc)
			if err != nil {
				return nil, fmt.Errorf("email: decrypt tenant smtp password: %w", err)
			}
			pass = p
		}
		tlsMode := "auto"
		if cfg.SMTP.UseTLS {
			tlsMode = "starttls"
		}
		return m.newSend(SMTPConfig{
			Host:      cfg.SMTP.Host,
			Port:      cfg.SMTP.Port,
			Username:  cfg.SMTP.Username,
			Password:  pass,
			FromEmail: cfg.SMTP.FromEmail,
			TLSMode:   tlsMode,
		}), nil
	}
	if m.global != nil && m.global.Host != "" {
		return m.newSend(*m.global), nil
	}
	return nil, fmt.Errorf("email: no smtp configured for tenant")
}

// SendContact releva el formulario de contacto a la casilla del tenant.
func (m *Mailer) SendContact(cfg *tenant.Config, fromEmail, message string) error {
	s, err := m.senderFor(cfg)
	if err != nil {
		return err
	}
	to := cfg.Content.Contact.Email
	subject := fmt.Sprintf("[%s] Contact form message", cfg.Name)
	text := fmt.Sprintf("From: %s\n\n%s", fromEmail, message)
	return s.Send(to, subject, "", text)
}

// SendOTP envía un código de verificación. Si el tenant no tiene SMTP
// (ni hay global), el código sólo queda logueado a debug; el vendor de
// SMS es un colaborador externo.
func (m *Mailer) SendOTP(cfg *tenant.Config, to, code string) error {
	s, err := m.senderFor(cfg)
	if err != nil {
		logger.L().Debug("otp not mailed, no smtp configured", logger.Err(err))
		return nil
	}
	subject := fmt.Sprintf("[%s] Your verification code", cfg.Name)
	text := fmt.Sprintf("Your verification code is: %s", code)
	return s.Send(to, subject, "", text)
}
