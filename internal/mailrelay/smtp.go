package mailrelay

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/Zachkp/showcase/internal/config"
	"github.com/Zachkp/showcase/internal/contact"
)

// SMTP sends messages straight to the owner's inbox.
type SMTP struct {
	cfg      config.SMTPConfig
	timeout  time.Duration
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTP requires credentials and a recipient. A positive timeout bounds
// every send.
func NewSMTP(cfg config.SMTPConfig, timeout time.Duration) (*SMTP, error) {
	if cfg.User == "" || cfg.Pass == "" {
		return nil, fmt.Errorf("mailrelay: SMTP credentials not configured")
	}
	if cfg.To == "" {
		return nil, fmt.Errorf("mailrelay: SMTP recipient not configured")
	}
	return &SMTP{cfg: cfg, timeout: timeout, sendMail: smtp.SendMail}, nil
}

// Send delivers msg with Reply-To set to the visitor. net/smtp does not take
// a context, so a cancelled or timed out ctx returns early while the dial
// finishes in the background.
func (s *SMTP) Send(ctx context.Context, msg contact.Message) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return traced(ctx, "smtp", func(ctx context.Context) error {
		auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
		addr := s.cfg.Host + ":" + s.cfg.Port
		done := make(chan error, 1)
		go func() {
			done <- s.sendMail(addr, auth, s.cfg.User, []string{s.cfg.To}, s.compose(msg))
		}()
		select {
		case err := <-done:
			if err != nil {
				return fmt.Errorf("smtp: %w", err)
			}
			return nil
		case <-ctx.Done():
			return fmt.Errorf("smtp: %w", ctx.Err())
		}
	})
}

func (s *SMTP) compose(msg contact.Message) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", headerValue(msg.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Message)

	return []byte("To: " + s.cfg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + s.cfg.User + "\r\n" +
		"Reply-To: " + headerValue(msg.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// headerValue keeps visitor input on a single header line.
func headerValue(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
