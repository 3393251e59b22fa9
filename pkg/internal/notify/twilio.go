package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/grupovilla/gestprocesos/pkg/configs"
)

// TwilioSender sends WhatsApp messages through the Twilio content API.
type TwilioSender struct {
	client *twilio.RestClient
	cfg    configs.NotifyConfig
}

// NewTwilioSender builds a sender from the notify config.
func NewTwilioSender(cfg configs.NotifyConfig) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &TwilioSender{client: client, cfg: cfg}
}

// SendWhatsApp delivers one content-template message.
func (t *TwilioSender) SendWhatsApp(ctx context.Context, to string, variables map[string]string) error {
	vars, err := sonic.Marshal(variables)
	if err != nil {
		return fmt.Errorf("encode content variables: %w", err)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetContentSid(t.cfg.TemplateContentSID)
	params.SetContentVariables(string(vars))

	if t.cfg.MessagingServiceSID != "" {
		params.SetMessagingServiceSid(t.cfg.MessagingServiceSID)
	} else {
		params.SetFrom(t.cfg.From)
	}

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio create message: %w", err)
	}

	return nil
}

// FormatWhatsappNumber normalizes a stored telefono into a whatsapp
// address. Local numbers get the country prefix prepended; numbers already
// carrying it are kept as is.
func FormatWhatsappNumber(telefono, countryPrefix string) (string, error) {
	var b strings.Builder

	for _, r := range telefono {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if digits == "" {
		return "", fmt.Errorf("telefono %q has no digits", telefono)
	}

	if countryPrefix != "" && !strings.HasPrefix(digits, countryPrefix) {
		digits = countryPrefix + digits
	}

	return "whatsapp:+" + digits, nil
}
