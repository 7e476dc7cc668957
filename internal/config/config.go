// Package config loads runtime settings from defaults, an optional config
// file, SHOWCASE_* environment variables and the plain variable names the
// site has always used (PORT, SMTP_USER, ...).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every config key when read from the environment.
const EnvPrefix = "SHOWCASE"

// Config holds all runtime configuration.
type Config struct {
	Port         string          `mapstructure:"port"`
	Mode         string          `mapstructure:"mode"`
	ProjectsFile string          `mapstructure:"projects_file"`
	WatchFile    bool            `mapstructure:"watch_projects"`
	Carousel     CarouselConfig  `mapstructure:"carousel"`
	Contact      ContactConfig   `mapstructure:"contact"`
	Relay        RelayConfig     `mapstructure:"relay"`
	Database     DatabaseConfig  `mapstructure:"database"`
	Admin        AdminConfig     `mapstructure:"admin"`
	Telemetry    TelemetryConfig `mapstructure:"telemetry"`
}

type CarouselConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type ContactConfig struct {
	ValidationNotice time.Duration `mapstructure:"validation_notice"`
	ResultNotice     time.Duration `mapstructure:"result_notice"`
	SessionTTL       time.Duration `mapstructure:"session_ttl"`
}

// RelayConfig selects and configures the mail transport.
type RelayConfig struct {
	Provider string        `mapstructure:"provider"` // "emailjs" or "smtp"
	Timeout  time.Duration `mapstructure:"timeout"`
	EmailJS  EmailJSConfig `mapstructure:"emailjs"`
	SMTP     SMTPConfig    `mapstructure:"smtp"`
}

type EmailJSConfig struct {
	Endpoint   string `mapstructure:"endpoint"`
	ServiceID  string `mapstructure:"service_id"`
	TemplateID string `mapstructure:"template_id"`
	PublicKey  string `mapstructure:"public_key"`
	PrivateKey string `mapstructure:"private_key"`
}

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
	To   string `mapstructure:"to"`
}

type DatabaseConfig struct {
	Path      string        `mapstructure:"path"`
	Retention time.Duration `mapstructure:"retention"`
}

type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	ServiceName  string `mapstructure:"service_name"`
	Insecure     bool   `mapstructure:"insecure"`
}

// legacyEnv maps config keys to the environment variable names used before
// the SHOWCASE_ prefix existed. Both spellings work.
var legacyEnv = map[string]string{
	"port":                    "PORT",
	"mode":                    "GIN_MODE",
	"admin.username":          "ADMIN_USERNAME",
	"admin.password":          "ADMIN_PASSWORD",
	"relay.smtp.host":         "SMTP_HOST",
	"relay.smtp.port":         "SMTP_PORT",
	"relay.smtp.user":         "SMTP_USER",
	"relay.smtp.pass":         "SMTP_PASS",
	"relay.smtp.to":           "TO_EMAIL",
	"telemetry.otlp_endpoint": "OTEL_EXPORTER_OTLP_ENDPOINT",
	"telemetry.service_name":  "OTEL_SERVICE_NAME",
}

// SetDefaults registers built-in defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("mode", "debug")
	v.SetDefault("projects_file", "")
	v.SetDefault("watch_projects", false)

	v.SetDefault("carousel.interval", "5s")

	v.SetDefault("contact.validation_notice", "4s")
	v.SetDefault("contact.result_notice", "5s")
	v.SetDefault("contact.session_ttl", "30m")

	v.SetDefault("relay.provider", "emailjs")
	v.SetDefault("relay.timeout", "10s")
	v.SetDefault("relay.emailjs.endpoint", "https://api.emailjs.com")
	v.SetDefault("relay.emailjs.service_id", "")
	v.SetDefault("relay.emailjs.template_id", "")
	v.SetDefault("relay.emailjs.public_key", "")
	v.SetDefault("relay.emailjs.private_key", "")
	v.SetDefault("relay.smtp.host", "smtp.gmail.com")
	v.SetDefault("relay.smtp.port", "587")
	v.SetDefault("relay.smtp.user", "")
	v.SetDefault("relay.smtp.pass", "")
	v.SetDefault("relay.smtp.to", "")

	v.SetDefault("database.path", "showcase.db")
	v.SetDefault("database.retention", "8760h")

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "")

	v.SetDefault("telemetry.otlp_endpoint", "")
	v.SetDefault("telemetry.service_name", "showcase")
	v.SetDefault("telemetry.insecure", true)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		_ = v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.NewReplacer(".", "_").Replace(key)), env)
	}
}

// Load decodes v into a Config and checks it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if c.Carousel.Interval <= 0 {
		return fmt.Errorf("config: carousel.interval must be positive, got %s", c.Carousel.Interval)
	}
	if c.Contact.ValidationNotice <= 0 || c.Contact.ResultNotice <= 0 {
		return fmt.Errorf("config: contact notice durations must be positive")
	}
	switch c.Relay.Provider {
	case "emailjs", "smtp":
	default:
		return fmt.Errorf("config: unknown relay.provider %q", c.Relay.Provider)
	}
	return nil
}
