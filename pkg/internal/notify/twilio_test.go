package notify_test

import (
	"testing"

	"github.com/grupovilla/gestprocesos/pkg/internal/notify"
)

func TestFormatWhatsappNumber(t *testing.T) {
	cases := []struct {
		telefono string
		prefix   string
		want     string
	}{
		{"9999-8888", "504", "whatsapp:+50499998888"},
		{"+504 9999 8888", "504", "whatsapp:+50499998888"},
		{"50499998888", "504", "whatsapp:+50499998888"},
		{"9999-8888", "", "whatsapp:+99998888"},
	}

	for _, c := range cases {
		got, err := notify.FormatWhatsappNumber(c.telefono, c.prefix)
		if err != nil {
			t.Errorf("FormatWhatsappNumber(%q, %q) returned %v", c.telefono, c.prefix, err)
			continue
		}

		if got != c.want {
			t.Errorf("FormatWhatsappNumber(%q, %q) = %q, want %q", c.telefono, c.prefix, got, c.want)
		}
	}
}

func TestFormatWhatsappNumberRejectsEmpty(t *testing.T) {
	for _, telefono := range []string{"", "sin numero", "---"} {
		if _, err := notify.FormatWhatsappNumber(telefono, "504"); err == nil {
			t.Errorf("expected error for %q, got nil", telefono)
		}
	}
}
