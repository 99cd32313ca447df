package infra

import (
	"errors"
	"fmt"
	"net/smtp"

	"crkitchen/internal/config"

	"github.com/jordan-wright/email"
)

var ErrMailerNoConfigurado = errors.New("mailer: SMTP_HOST no configurado")

// Mailer sends proposals by e-mail with the rendered PDF attached.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
	from     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		from:     fmt.Sprintf("%s <%s>", cfg.CompanyName, cfg.SMTPUser),
	}
}

// Mensaje builds the e-mail without sending it.
func (m *Mailer) Mensaje(to, subject, body, pdfPath string) (*email.Email, error) {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if pdfPath != "" {
		if _, err := e.AttachFile(pdfPath); err != nil {
			return nil, fmt.Errorf("mailer: attach PDF: %w", err)
		}
	}
	return e, nil
}

// EnviarPropuesta sends the proposal PDF to the client.
func (m *Mailer) EnviarPropuesta(to, subject, body, pdfPath string) error {
	if m.host == "" {
		return ErrMailerNoConfigurado
	}
	e, err := m.Mensaje(to, subject, body, pdfPath)
	if err != nil {
		return err
	}
	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
