// Package mailrelay delivers contact form messages, either through the
// EmailJS REST API or directly over SMTP.
package mailrelay

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Zachkp/showcase/internal/config"
	"github.com/Zachkp/showcase/internal/contact"
)

const tracerName = "github.com/Zachkp/showcase/internal/mailrelay"

// New builds the transport selected by cfg.Provider.
func New(cfg config.RelayConfig) (contact.Transport, error) {
	switch cfg.Provider {
	case "emailjs":
		return NewEmailJS(cfg.EmailJS, &http.Client{Timeout: cfg.Timeout})
	case "smtp":
		return NewSMTP(cfg.SMTP, cfg.Timeout)
	default:
		return nil, fmt.Errorf("mailrelay: unknown provider %q", cfg.Provider)
	}
}

// traced wraps a send in a span named mailrelay.send.
func traced(ctx context.Context, provider string, send func(context.Context) error) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "mailrelay.send", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("mailrelay.provider", provider))

	if err := send(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
