package service

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/launchhub/portal_end/config"
	"github.com/launchhub/portal_end/utils"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail over SMTP. A Mailer with an empty host is
// a no-op, so local setups work without an SMTP server.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewMailer builds a Mailer from the configuration.
func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.MailFrom,
	}
}

// Enabled reports whether SMTP is configured.
func (m *Mailer) Enabled() bool {
	return m != nil && m.host != ""
}

// Send delivers one HTML mail.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	if !m.Enabled() {
		utils.Logger.Debug().Str("to", to).Str("subject", subject).Msg("mailer disabled, skipping send")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	return d.DialAndSend(msg)
}

// VerificationCodeHTML renders the registration-code mail body.
func VerificationCodeHTML(webinarTitle, code string, ttl time.Duration) string {
	return fmt.Sprintf(
		`<p>Hello,</p><p>Your confirmation code for <b>%s</b> is <b style="font-size:18px;">%s</b>.</p><p>The code expires in %d minutes.</p>`,
		webinarTitle, code, int(ttl.Minutes()),
	)
}

// RegistrationConfirmedHTML renders the seat-confirmed mail body.
func RegistrationConfirmedHTML(webinarTitle string, startsAt time.Time, meetingURL string) string {
	body := fmt.Sprintf(
		`<p>Hello,</p><p>Your seat for <b>%s</b> on %s is confirmed.</p>`,
		webinarTitle, startsAt.Format("Mon, 02 Jan 2006 15:04 MST"),
	)
	if meetingURL != "" {
		body += fmt.Sprintf(`<p>Join link: <a href="%s">%s</a></p>`, meetingURL, meetingURL)
	}
	return body
}

// ReminderHTML renders the day-before reminder mail body.
func ReminderHTML(webinarTitle string, startsAt time.Time, meetingURL string) string {
	body := fmt.Sprintf(
		`<p>Hello,</p><p>A reminder that <b>%s</b> starts at %s.</p>`,
		webinarTitle, startsAt.Format("Mon, 02 Jan 2006 15:04 MST"),
	)
	if meetingURL != "" {
		body += fmt.Sprintf(`<p>Join link: <a href="%s">%s</a></p>`, meetingURL, meetingURL)
	}
	return body
}
