package dispatch

import (
	"context"
	"fmt"
	"regexp"
)

// Sender delivers one rendered notification over a concrete channel
// transport. Implementations are thin I/O wrappers; transient transport
// failures surface as errors and are converted to failed outcomes by the
// pipeline, never propagated further.
type Sender interface {
	Send(ctx context.Context, params SendParams) error
}

// SendParams carries the rendered content and recipient for one delivery.
type SendParams struct {
	To       string            `json:"to"`
	Subject  string            `json:"subject"`
	Body     string            `json:"body"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// emailRegex is a pragmatic address check; full RFC 5322 validation is the
// provider's job.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Validate checks that the parameters are sufficient to attempt delivery.
func (p SendParams) Validate() error {
	if p.To == "" {
		return fmt.Errorf("%w: recipient is required", ErrInvalidParams)
	}
	if !emailRegex.MatchString(p.To) {
		return fmt.Errorf("%w: recipient must be a valid email address", ErrInvalidParams)
	}
	if p.Subject == "" && p.Body == "" {
		return fmt.Errorf("%w: subject or body is required", ErrInvalidParams)
	}
	return nil
}
