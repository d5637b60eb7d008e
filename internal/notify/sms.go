package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pharmacart/pharmacart-backend/pkg/config"
)

// SMSSender delivers a short message to a phone number.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

// GatewaySMS calls an HTTP SMS gateway. The configured URL is a template
// with {phone} and {message} placeholders, e.g.
// https://gateway.example/send?to={phone}&text={message}&key=...
type GatewaySMS struct {
	urlTemplate string
	method      string
	client      *http.Client
}

// NewGatewaySMS builds a sender from config. Returns nil when no gateway
// URL is configured.
func NewGatewaySMS(cfg config.NotifyConfig) *GatewaySMS {
	if cfg.SMSGatewayURL == "" {
		return nil
	}
	method := strings.ToUpper(strings.TrimSpace(cfg.SMSGatewayMethod))
	if method == "" {
		method = http.MethodGet
	}
	return &GatewaySMS{
		urlTemplate: cfg.SMSGatewayURL,
		method:      method,
		client:      &http.Client{Timeout: cfg.SMSTimeout},
	}
}

// Send substitutes the placeholders and fires the request. Any non-2xx
// response is an error.
func (g *GatewaySMS) Send(ctx context.Context, phone, message string) error {
	if g == nil {
		return nil
	}
	if strings.TrimSpace(phone) == "" {
		return fmt.Errorf("phone is required")
	}

	target := strings.NewReplacer(
		"{phone}", url.QueryEscape(phone),
		"{message}", url.QueryEscape(message),
	).Replace(g.urlTemplate)

	req, err := http.NewRequestWithContext(ctx, g.method, target, nil)
	if err != nil {
		return fmt.Errorf("building sms request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling sms gateway: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sms gateway returned %d", resp.StatusCode)
	}
	return nil
}
