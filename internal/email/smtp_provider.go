package email

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

func (c *SMTPConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("smtp host is required")
	}
	if c.Port == 0 {
		return fmt.Errorf("smtp port is required")
	}
	if c.From == "" {
		return fmt.Errorf("from address is required")
	}
	return nil
}

var verificationTemplate = template.Must(template.New("verification").Parse(`
<html>
<body style="font-family: sans-serif;">
  <h2>Welcome to Matchboxd, {{.Username}}!</h2>
  <p>Please confirm your email address to activate your account:</p>
  <p><a href="{{.Link}}">Verify my email</a></p>
  <p>The link is valid for 24 hours. If you did not register, ignore this message.</p>
</body>
</html>
`))

// SMTPProvider implements Provider over SMTP via gomail.
type SMTPProvider struct {
	config *SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPProvider(config *SMTPConfig) (*SMTPProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}

	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}, nil
}

func (p *SMTPProvider) SendVerification(to, username, link string) error {
	var body bytes.Buffer
	data := struct {
		Username string
		Link     string
	}{Username: username, Link: link}

	if err := verificationTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render verification template: %w", err)
	}

	m := gomail.NewMessage()
	if p.config.FromName != "" {
		m.SetAddressHeader("From", p.config.From, p.config.FromName)
	} else {
		m.SetHeader("From", p.config.From)
	}
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Verify your Matchboxd account")
	m.SetBody("text/html", body.String())

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}
