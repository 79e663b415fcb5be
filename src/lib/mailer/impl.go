package mailer

import (
	"log"
	"os"

	"cfms/src/lib"

	"github.com/wneessen/go-mail"
)

type SendMailInput struct {
	To      string
	Subject string
	Body    string
	Html    bool
}

// Send delivers a message over SMTP. Callers treat delivery as
// best-effort and usually invoke this from a goroutine.
func Send(input *SendMailInput) error {
	c, err := lib.GetSMTPClient()
	if err != nil {
		return err
	}
	from := os.Getenv("SMTP_FROM")
	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return err
	}
	if err := m.To(input.To); err != nil {
		return err
	}
	m.Subject(input.Subject)
	if input.Html {
		m.SetBodyString(mail.TypeTextHTML, input.Body)
	} else {
		m.SetBodyString(mail.TypeTextPlain, input.Body)
	}
	if err := c.DialAndSend(m); err != nil {
		log.Printf("Error sending mail to %s: %s\n", input.To, err.Error())
		return err
	}
	return nil
}
