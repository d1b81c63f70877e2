// Package mailer composes and dispatches the notification side effects fired
// after record creation. Dispatch is synchronous fire-and-forget: delivery
// failure is logged and never rolls back the write that triggered it.
package mailer

import (
	"fmt"
	"log"

	"eventhub/data/models"

	"gopkg.in/gomail.v2"
)

// Mailer delivers a single message.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers mail over SMTP via gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("error sending mail to %s: %v", to, err)
	}
	return nil
}

// Notifier is the post-commit hook set invoked by handlers after a
// successful write.
type Notifier struct {
	Mailer      Mailer
	FrontendURL string
}

// UserCreated sends the activation mail for a freshly created inactive
// account. Failures are logged only.
func (n *Notifier) UserCreated(u models.User, token string) {
	if u.IsActive {
		return
	}

	activationURL := fmt.Sprintf("%s/activate/%d/%s/", n.FrontendURL, u.ID, token)
	subject := "Activate Your Account"
	body := fmt.Sprintf(`Hi %s,

Please activate your account by clicking the link below:
%s

Thank you!
`, u.Username, activationURL)

	if err := n.Mailer.Send(u.Email, subject, body); err != nil {
		log.Printf("Failed to send activation email to %s: %v", u.Email, err)
		return
	}
	log.Printf("Activation email sent to %s", u.Email)
}

// RSVPCreated sends the confirmation mail for a first-time RSVP. Failures
// are logged only.
func (n *Notifier) RSVPCreated(u models.User, e models.Event) {
	subject := fmt.Sprintf("RSVP Confirmation for %s", e.Name)
	body := fmt.Sprintf(`Hi %s,

You have successfully RSVPed to the event: %s.
Event Details:
- Date: %s
- Time: %s
- Location: %s

Thank you!
`, u.Username, e.Name, e.Date.Format("2006-01-02"), e.Time, e.Location)

	if err := n.Mailer.Send(u.Email, subject, body); err != nil {
		log.Printf("Failed to send RSVP email to %s: %v", u.Email, err)
		return
	}
	log.Printf("RSVP confirmation email sent to %s", u.Email)
}
