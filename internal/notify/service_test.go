package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pharmacart/pharmacart-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMailer struct {
	err  error
	sent int
}

func (m *stubMailer) Send(context.Context, string, string, string) error {
	m.sent++
	return m.err
}

func TestSendEmailSuccess(t *testing.T) {
	mailer := &stubMailer{}
	svc := NewService(mailer, nil, nil)

	res := svc.SendEmail(context.Background(), "a@b.c", "hi", "body")
	assert.True(t, res.Sent)
	assert.Empty(t, res.Error)
	assert.Equal(t, 1, mailer.sent)
}

func TestSendEmailFailureIsCaptured(t *testing.T) {
	mailer := &stubMailer{err: fmt.Errorf("relay refused")}
	svc := NewService(mailer, nil, nil)

	res := svc.SendEmail(context.Background(), "a@b.c", "hi", "body")
	assert.False(t, res.Sent)
	assert.Contains(t, res.Error, "relay refused")
}

func TestUnconfiguredChannelsReportSuccess(t *testing.T) {
	svc := NewService(NewSMTPMailer(config.NotifyConfig{}), NewGatewaySMS(config.NotifyConfig{}), nil)

	assert.True(t, svc.SendEmail(context.Background(), "a@b.c", "hi", "body").Sent)
	assert.True(t, svc.SendSMS(context.Background(), "9876543210", "hi").Sent)
}

func TestGatewaySMSSubstitutesTemplate(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sms := NewGatewaySMS(config.NotifyConfig{
		SMSGatewayURL: srv.URL + "/send?to={phone}&text={message}",
	})
	require.NotNil(t, sms)

	err := sms.Send(context.Background(), "9876543210", "your code is 123456")
	require.NoError(t, err)
	assert.Contains(t, gotPath, "to=9876543210")
	assert.Contains(t, gotPath, "text=your+code+is+123456")
}

func TestGatewaySMSRejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sms := NewGatewaySMS(config.NotifyConfig{SMSGatewayURL: srv.URL + "/send?to={phone}&text={message}"})
	err := sms.Send(context.Background(), "9876543210", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
