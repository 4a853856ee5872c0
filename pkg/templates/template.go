package templates

// Channel is the notification delivery medium.
type Channel string

const (
	ChannelEmail   Channel = "email"
	ChannelSMS     Channel = "sms"
	ChannelPush    Channel = "push"
	ChannelWebhook Channel = "webhook"
)

// Valid reports whether the channel is one of the known delivery media.
func (c Channel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelPush, ChannelWebhook:
		return true
	}
	return false
}

// Template is a static, versionless notification definition keyed by
// (event type, channel).
type Template struct {
	EventType string  `json:"event_type" yaml:"event_type"`
	Channel   Channel `json:"channel" yaml:"channel"`
	Name      string  `json:"name" yaml:"name"`
	Subject   string  `json:"subject,omitempty" yaml:"subject,omitempty"`
	Body      string  `json:"body" yaml:"body"`
	Active    bool    `json:"active" yaml:"active"`
}

// Rendered is the output of template rendering: final subject and body
// with all known placeholders substituted.
type Rendered struct {
	Subject string
	Body    string
}
