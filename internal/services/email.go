package services

import (
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/remotehire/remotehire-backend/internal/config"
)

// EmailService delivers one-time codes over SMTP. The auth core only hands
// it (email, code); transport is this service's concern.
type EmailService struct {
	host string
	port int
	user string
	pass string
}

func NewEmailService(cfg *config.Config) (*EmailService, error) {
	if cfg.SMTPHost == "" || cfg.SMTPUser == "" {
		return nil, fmt.Errorf("SMTP environment variables not fully configured")
	}
	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		port = 587
	}
	return &EmailService{
		host: cfg.SMTPHost,
		port: port,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
	}, nil
}

// SendOTP emails a verification code. subject distinguishes the flow
// (password reset vs email verification).
func (s *EmailService) SendOTP(to, subject, code string) error {
	body := fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif">
	   <h2>Hello,</h2>
	   <p>Your verification code is:</p>
	   <h1 style="letter-spacing: 4px">%s</h1>
	   <p>The code is valid for 5 minutes.</p>
	   <p>— RemoteHire</p>
	</div>`, code)

	m := gomail.NewMessage()
	m.SetHeader("From", s.user)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	return d.DialAndSend(m)
}
