package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"os"
	"strconv"
	"strings"

	"Handwerk/Models"
)

// ConfigFromEnv reads the SMTP settings. Sending is optional; purchase
// drafts work without any SMTP configuration at all.
func ConfigFromEnv() Models.EmailConfig {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return Models.EmailConfig{
		SMTPServer: os.Getenv("SMTP_SERVER"),
		SMTPPort:   port,
		Username:   os.Getenv("SMTP_USER"),
		Password:   os.Getenv("SMTP_PASSWORD"),
		FromName:   os.Getenv("SMTP_FROM_NAME"),
		FromEmail:  os.Getenv("SMTP_FROM"),
		TLSEnabled: os.Getenv("SMTP_TLS") != "false",
	}
}

// composeMessage renders the wire form of a message. Headers come out in a
// fixed order so the output is stable across runs.
func composeMessage(config Models.EmailConfig, message Models.EmailMessage) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", config.FromName, config.FromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(message.To, ", "))
	if len(message.CC) > 0 {
		fmt.Fprintf(&b, "Cc: %s\r\n", strings.Join(message.CC, ", "))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", message.Subject)

	contentType := "text/plain"
	if message.IsHTML {
		b.WriteString("MIME-Version: 1.0\r\n")
		contentType = "text/html"
	}
	fmt.Fprintf(&b, "Content-Type: %s; charset=UTF-8\r\n", contentType)

	b.WriteString("\r\n")
	b.WriteString(message.Body)
	return []byte(b.String())
}

// SendEmail delivers a message through the configured SMTP server. BCC
// recipients are included in the envelope but never appear in the headers.
func SendEmail(config Models.EmailConfig, message Models.EmailMessage) error {
	var envelope []string
	envelope = append(envelope, message.To...)
	envelope = append(envelope, message.CC...)
	envelope = append(envelope, message.BCC...)

	addr := fmt.Sprintf("%s:%d", config.SMTPServer, config.SMTPPort)
	auth := smtp.PlainAuth("", config.Username, config.Password, config.SMTPServer)
	body := composeMessage(config, message)

	if !config.TLSEnabled {
		return smtp.SendMail(addr, auth, config.FromEmail, envelope, body)
	}
	return sendOverTLS(config, addr, auth, envelope, body)
}

// sendOverTLS speaks SMTP over an implicit TLS connection, for servers that
// expect TLS from the first byte instead of STARTTLS.
func sendOverTLS(config Models.EmailConfig, addr string, auth smtp.Auth, envelope []string, body []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{
		ServerName:         config.SMTPServer,
		InsecureSkipVerify: config.SkipTLSCheck,
	})
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, config.SMTPServer)
	if err != nil {
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(config.FromEmail); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, rcpt := range envelope {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp data close: %w", err)
	}
	return client.Quit()
}
