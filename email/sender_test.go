package email

import (
	"strings"
	"testing"

	"Handwerk/Models"
)

func TestComposeMessageHTML(t *testing.T) {
	config := Models.EmailConfig{FromName: "Handwerk GmbH", FromEmail: "office@handwerk.example"}
	message := Models.EmailMessage{
		To:      []string{"verkauf@lieferant.example"},
		CC:      []string{"buero@handwerk.example"},
		Subject: "Bestellung zu Angebot AN-2026_111",
		Body:    "<p>Hallo</p>",
		IsHTML:  true,
	}

	got := string(composeMessage(config, message))

	wantHeader := "From: Handwerk GmbH <office@handwerk.example>\r\n" +
		"To: verkauf@lieferant.example\r\n" +
		"Cc: buero@handwerk.example\r\n" +
		"Subject: Bestellung zu Angebot AN-2026_111\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"\r\n"
	if !strings.HasPrefix(got, wantHeader) {
		t.Errorf("headers = %q, want prefix %q", got, wantHeader)
	}
	if !strings.HasSuffix(got, "<p>Hallo</p>") {
		t.Errorf("body missing from message: %q", got)
	}
}

func TestComposeMessagePlain(t *testing.T) {
	config := Models.EmailConfig{FromName: "Handwerk GmbH", FromEmail: "office@handwerk.example"}
	message := Models.EmailMessage{
		To:      []string{"a@example.com", "b@example.com"},
		BCC:     []string{"archiv@handwerk.example"},
		Subject: "Test",
		Body:    "Hallo",
	}

	got := string(composeMessage(config, message))

	if !strings.Contains(got, "To: a@example.com, b@example.com\r\n") {
		t.Errorf("recipient list not joined: %q", got)
	}
	if !strings.Contains(got, "Content-Type: text/plain; charset=UTF-8\r\n") {
		t.Errorf("plain message got wrong content type: %q", got)
	}
	if strings.Contains(got, "MIME-Version") {
		t.Errorf("plain message must not carry a MIME header: %q", got)
	}
	if strings.Contains(got, "Cc:") {
		t.Errorf("empty CC must not produce a header: %q", got)
	}
	if strings.Contains(got, "archiv@handwerk.example") {
		t.Errorf("BCC recipient leaked into the headers: %q", got)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SMTP_SERVER", "mail.handwerk.example")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_USER", "office")
	t.Setenv("SMTP_TLS", "false")

	config := ConfigFromEnv()
	if config.SMTPServer != "mail.handwerk.example" {
		t.Errorf("SMTPServer = %q", config.SMTPServer)
	}
	if config.SMTPPort != 465 {
		t.Errorf("SMTPPort = %d, want 465", config.SMTPPort)
	}
	if config.TLSEnabled {
		t.Error("SMTP_TLS=false must disable TLS")
	}

	t.Setenv("SMTP_PORT", "")
	t.Setenv("SMTP_TLS", "")
	config = ConfigFromEnv()
	if config.SMTPPort != 587 {
		t.Errorf("default SMTPPort = %d, want 587", config.SMTPPort)
	}
	if !config.TLSEnabled {
		t.Error("TLS must default to enabled")
	}
}
