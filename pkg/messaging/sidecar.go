package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/notifykit/notifier/pkg/logger"
)

// SidecarProvider publishes through a local sidecar's HTTP pub/sub facade.
// The sidecar translates the outbound envelope to the underlying bus
// wire format, so this provider forwards the envelope as-is. It does not
// implement Subscribe: in sidecar mode inbound events arrive as HTTP push
// to the service's event endpoint.
type SidecarProvider struct {
	baseURL    string
	pubsubName string
	source     string
	client     *http.Client
	log        *slog.Logger
}

// NewSidecarProvider creates a sidecar-backed provider.
func NewSidecarProvider(cfg Config, log *slog.Logger) (*SidecarProvider, error) {
	if cfg.SidecarBaseURL == "" {
		return nil, fmt.Errorf("%w: SidecarBaseURL is required", ErrInvalidConfig)
	}
	if cfg.SidecarPubsubName == "" {
		return nil, fmt.Errorf("%w: SidecarPubsubName is required", ErrInvalidConfig)
	}
	if log == nil {
		log = slog.Default()
	}

	return &SidecarProvider{
		baseURL:    strings.TrimRight(cfg.SidecarBaseURL, "/"),
		pubsubName: cfg.SidecarPubsubName,
		source:     cfg.ServiceName,
		client: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		log: log,
	}, nil
}

// Name implements Provider.
func (p *SidecarProvider) Name() string { return string(KindSidecar) }

// Publish wraps data in the outbound envelope and forwards it to the
// sidecar's publish endpoint.
func (p *SidecarProvider) Publish(ctx context.Context, topic string, data any, opts ...PublishOption) error {
	env := NewEnvelope(topic, p.source, data, applyPublishOptions(opts))

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("%w: marshal envelope: %w", ErrPublishFailed, err)
	}

	url := fmt.Sprintf("%s/v1.0/publish/%s/%s", p.baseURL, p.pubsubName, topic)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %w", ErrPublishFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.LogAttrs(ctx, slog.LevelError, "sidecar publish failed",
			logger.Topic(topic),
			logger.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p.log.LogAttrs(ctx, slog.LevelError, "sidecar rejected publish",
			logger.Topic(topic),
			slog.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: sidecar returned status %d", ErrPublishFailed, resp.StatusCode)
	}

	return nil
}

// Close implements Provider. The sidecar connection is stateless HTTP, so
// there is nothing to release.
func (p *SidecarProvider) Close(ctx context.Context) error {
	p.client.CloseIdleConnections()
	return nil
}
