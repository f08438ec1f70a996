package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"clubfund_backend/internals/configs"

	"gopkg.in/gomail.v2"
)

var ErrMailerDisabled = errors.New("pengirim email tidak dikonfigurasi")

type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

/* =========================================================
   SMTP (gomail)
========================================================= */

type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

// NewMailerFromEnv: SMTP_HOST kosong → DisabledMailer
func NewMailerFromEnv() Mailer {
	host := strings.TrimSpace(configs.GetEnv("SMTP_HOST"))
	if host == "" {
		log.Println("[MAIL] SMTP_HOST kosong, email dinonaktifkan")
		return DisabledMailer{}
	}
	port := configs.GetEnvInt("SMTP_PORT", 587)
	user := configs.GetEnv("SMTP_USER")
	pass := configs.GetEnv("SMTP_PASS")

	from := configs.GetEnv("MAIL_FROM", user)
	return &SMTPMailer{
		dialer:   gomail.NewDialer(host, port, user, pass),
		from:     from,
		fromName: configs.GetEnv("MAIL_FROM_NAME", "Club Fund"),
	}
}

func (m *SMTPMailer) Send(_ context.Context, msg Message) error {
	gm := gomail.NewMessage()
	gm.SetAddressHeader("From", m.from, m.fromName)
	gm.SetAddressHeader("To", msg.To, msg.ToName)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)
	return m.dialer.DialAndSend(gm)
}

/* =========================================================
   Disabled
========================================================= */

type DisabledMailer struct{}

func (DisabledMailer) Send(_ context.Context, msg Message) error {
	log.Printf("[MAIL] dilewati (nonaktif) to=%s subject=%q", msg.To, msg.Subject)
	return ErrMailerDisabled
}
