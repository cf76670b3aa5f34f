package mailer

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	Send(ctx context.Context, to, subject, body string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: username,
		senderName:  senderName,
	}
}

// Send dispatches one message. Bodies that look like HTML are sent as text/html.
func (s *emailService) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)

	contentType := "text/plain"
	if strings.Contains(body, "</") {
		contentType = "text/html"
	}
	m.SetBody(contentType, body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send mail to %s: %v\n", to, err)
		return err
	}

	fmt.Printf("[MAILER] Mail sent to %s\n", to)
	return nil
}
