// Package mailer delivers the scheduled monthly report over SMTP.
package mailer

import (
	"io"

	"gopkg.in/gomail.v2"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *Mailer) compose(to, subject, body string, attachment []byte, filename string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if len(attachment) > 0 {
		msg.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment)
			return err
		}))
	}

	return msg
}

// SendReport emails the rendered PDF summary. The caller decides what
// to do with a failure; delivery is attempted exactly once.
func (m *Mailer) SendReport(to, subject, body string, pdf []byte, filename string) error {
	return m.dialer.DialAndSend(m.compose(to, subject, body, pdf, filename))
}
