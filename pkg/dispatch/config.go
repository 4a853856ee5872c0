package dispatch

// Driver selects the sender implementation.
type Driver string

const (
	DriverPostmark Driver = "postmark"
	DriverSMTP     Driver = "smtp"
	DriverDev      Driver = "dev"
	DriverDisabled Driver = "disabled"
)

// Config holds delivery channel configuration.
// The zero driver is "disabled" so a misconfigured deployment skips
// delivery and records failures instead of sending garbage.
type Config struct {
	Driver  Driver `env:"DELIVERY_DRIVER" envDefault:"disabled"`
	Enabled bool   `env:"DELIVERY_ENABLED" envDefault:"true"`

	// SenderEmail is the from-address for all outbound notifications.
	SenderEmail string `env:"SENDER_EMAIL"`
	// ReplyToEmail receives user responses; falls back to SenderEmail.
	ReplyToEmail string `env:"REPLY_TO_EMAIL"`

	// Postmark credentials (driver=postmark).
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	// SMTP connection parameters (driver=smtp).
	SMTPHost       string `env:"SMTP_HOST"`
	SMTPPort       int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername   string `env:"SMTP_USERNAME"`
	SMTPPassword   string `env:"SMTP_PASSWORD"`
	SMTPEncryption string `env:"SMTP_ENCRYPTION" envDefault:"starttls"` // none, starttls, ssl_tls

	// DevOutputDir is where the dev sender writes rendered notifications
	// (driver=dev).
	DevOutputDir string `env:"DEV_EMAIL_DIR" envDefault:"./email-output"`
}

// NewSender constructs the sender named by cfg.Driver.
func NewSender(cfg Config) (Sender, error) {
	switch cfg.Driver {
	case DriverPostmark:
		return NewPostmarkSender(cfg)
	case DriverSMTP:
		return NewSMTPSender(cfg)
	case DriverDev:
		return NewDevSender(cfg.DevOutputDir), nil
	case DriverDisabled, "":
		return DisabledSender{}, nil
	default:
		return nil, ErrUnknownDriver
	}
}
