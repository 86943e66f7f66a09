package Models

// EmailConfig holds SMTP connection details, read from the environment.
type EmailConfig struct {
	SMTPServer   string
	SMTPPort     int
	Username     string
	Password     string
	FromName     string
	FromEmail    string
	TLSEnabled   bool
	SkipTLSCheck bool
}

// EmailMessage is one outgoing message. Purchase request drafts are built
// into this shape and handed to the operator, never sent automatically.
type EmailMessage struct {
	To      []string `json:"to"`
	CC      []string `json:"cc"`
	BCC     []string `json:"bcc"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
	IsHTML  bool     `json:"is_html"`
}
