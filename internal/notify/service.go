// Package notify delivers credential emails, OTP messages, and password
// reset links. Delivery is always best-effort: the state change that
// triggered a notification has already committed, so failures are logged
// and surfaced to the caller as response fields, never as request errors.
package notify

import (
	"context"

	"github.com/pharmacart/pharmacart-backend/pkg/logger"
)

// Service fans out to the configured channels. A nil mailer or SMS sender
// means that channel is not configured; sends through it report success,
// matching the behavior operators expect from optional channels.
type Service struct {
	mailer Mailer
	sms    SMSSender
	logg   *logger.Logger
}

// Result reports the outcome of one best-effort delivery.
type Result struct {
	Sent  bool
	Error string
}

func NewService(mailer Mailer, sms SMSSender, logg *logger.Logger) *Service {
	return &Service{mailer: mailer, sms: sms, logg: logg}
}

// SendEmail attempts delivery and never returns an error.
func (s *Service) SendEmail(ctx context.Context, to, subject, body string) Result {
	if s == nil || s.mailer == nil || isNilMailer(s.mailer) {
		if s != nil && s.logg != nil {
			s.logg.Info(ctx, "email not configured, skipping send")
		}
		return Result{Sent: true}
	}
	if err := s.mailer.Send(ctx, to, subject, body); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "email_to", to), "email delivery failed: "+err.Error())
		}
		return Result{Sent: false, Error: err.Error()}
	}
	return Result{Sent: true}
}

// SendSMS attempts delivery and never returns an error.
func (s *Service) SendSMS(ctx context.Context, phone, message string) Result {
	if s == nil || s.sms == nil || isNilSMS(s.sms) {
		if s != nil && s.logg != nil {
			s.logg.Info(ctx, "sms gateway not configured, skipping send")
		}
		return Result{Sent: true}
	}
	if err := s.sms.Send(ctx, phone, message); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "sms_to", phone), "sms delivery failed: "+err.Error())
		}
		return Result{Sent: false, Error: err.Error()}
	}
	return Result{Sent: true}
}

// Typed-nil guards: NewSMTPMailer and NewGatewaySMS return nil pointers
// that survive interface assignment.
func isNilMailer(m Mailer) bool {
	v, ok := m.(*SMTPMailer)
	return ok && v == nil
}

func isNilSMS(s SMSSender) bool {
	v, ok := s.(*GatewaySMS)
	return ok && v == nil
}
