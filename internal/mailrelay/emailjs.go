package mailrelay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Zachkp/showcase/internal/config"
	"github.com/Zachkp/showcase/internal/contact"
)

const emailJSSendPath = "/api/v1.0/email/send"

// EmailJS sends messages through an EmailJS service and template. The
// template receives your_name, your_email and message.
type EmailJS struct {
	cfg    config.EmailJSConfig
	client *http.Client
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// NewEmailJS checks that the service, template and public key are set.
func NewEmailJS(cfg config.EmailJSConfig, client *http.Client) (*EmailJS, error) {
	var missing []string
	if cfg.ServiceID == "" {
		missing = append(missing, "service_id")
	}
	if cfg.TemplateID == "" {
		missing = append(missing, "template_id")
	}
	if cfg.PublicKey == "" {
		missing = append(missing, "public_key")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("mailrelay: emailjs not configured: missing %s", strings.Join(missing, ", "))
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://api.emailjs.com"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &EmailJS{cfg: cfg, client: client}, nil
}

// Send posts msg to the EmailJS send endpoint. Any non-2xx answer is an
// error carrying the status and the response text.
func (e *EmailJS) Send(ctx context.Context, msg contact.Message) error {
	return traced(ctx, "emailjs", func(ctx context.Context) error {
		return e.send(ctx, msg)
	})
}

func (e *EmailJS) send(ctx context.Context, msg contact.Message) error {
	body, err := json.Marshal(emailJSRequest{
		ServiceID:   e.cfg.ServiceID,
		TemplateID:  e.cfg.TemplateID,
		UserID:      e.cfg.PublicKey,
		AccessToken: e.cfg.PrivateKey,
		TemplateParams: map[string]string{
			"your_name":  msg.Name,
			"your_email": msg.Email,
			"message":    msg.Message,
		},
	})
	if err != nil {
		return fmt.Errorf("emailjs: encode request: %w", err)
	}

	url := strings.TrimRight(e.cfg.Endpoint, "/") + emailJSSendPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("emailjs: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs: %w", err)
	}
	defer resp.Body.Close()

	text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode/100 != 2 {
		reason := strings.TrimSpace(string(text))
		if reason == "" {
			reason = http.StatusText(resp.StatusCode)
		}
		return &StatusError{Code: resp.StatusCode, Text: reason}
	}
	return nil
}

// StatusError is a rejection from the relay API.
type StatusError struct {
	Code int
	Text string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("emailjs: status %d: %s", e.Code, e.Text)
}

// IsRejected reports whether err is a rejection by the remote relay rather
// than a network failure.
func IsRejected(err error) bool {
	var serr *StatusError
	return errors.As(err, &serr)
}
