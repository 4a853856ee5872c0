package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"
)

type smtpSender struct {
	cfg Config
}

// NewSMTPSender creates a plain SMTP email sender.
func NewSMTPSender(cfg Config) (Sender, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("%w: SMTPHost is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" || !emailRegex.MatchString(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	return &smtpSender{cfg: cfg}, nil
}

// Send implements Sender over SMTP.
func (s *smtpSender) Send(ctx context.Context, params SendParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	m := mail.NewMsg()
	if err := m.From(s.cfg.SenderEmail); err != nil {
		return errors.Join(ErrFailedToSend, err)
	}
	if err := m.To(params.To); err != nil {
		return errors.Join(ErrFailedToSend, err)
	}
	m.Subject(params.Subject)
	m.SetBodyString(mail.TypeTextPlain, params.Body)

	opts := []mail.Option{
		mail.WithPort(s.cfg.SMTPPort),
		mail.WithTLSPolicy(tlsPolicy(s.cfg.SMTPEncryption)),
	}
	if s.cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.SMTPUsername),
			mail.WithPassword(s.cfg.SMTPPassword),
		)
	}

	c, err := mail.NewClient(s.cfg.SMTPHost, opts...)
	if err != nil {
		return errors.Join(ErrFailedToSend, err)
	}

	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return errors.Join(ErrFailedToSend, err)
	}
	return nil
}

func tlsPolicy(encryption string) mail.TLSPolicy {
	switch encryption {
	case "ssl_tls":
		return mail.TLSMandatory
	case "starttls":
		return mail.TLSOpportunistic
	default:
		return mail.NoTLS
	}
}
