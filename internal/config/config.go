package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/rqsn/donasi/internal/auth"
	"github.com/rqsn/donasi/internal/document"
)

type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendMemory   Backend = "memory"
)

type Config struct {
	App struct {
		Name     string  `envconfig:"APP_NAME" default:"Donasi"`
		Port     int     `envconfig:"PORT" default:"8080"`
		LogLevel string  `envconfig:"LOG_LEVEL" default:"info"`
		Backend  Backend `envconfig:"DATA_BACKEND" default:"postgres"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"donasi"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	}

	Server struct {
		Timeout         time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
		MaxUploadBytes  int64         `envconfig:"SERVER_MAX_UPLOAD_BYTES" default:"5242880"`
	}

	Auth struct {
		Secret            string        `envconfig:"AUTH_SECRET"`
		AdminEmail        string        `envconfig:"ADMIN_EMAIL"`
		AdminPasswordHash string        `envconfig:"ADMIN_PASSWORD_HASH"`
		TokenTTL          time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"12h"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Org struct {
		Name            string `envconfig:"ORG_NAME" default:"RUMAH QUR'AN"`
		Subtitle        string `envconfig:"ORG_SUBTITLE" default:"SAYYIDAH NAFISAH"`
		Tagline         string `envconfig:"ORG_TAGLINE" default:"TERUNTUK ANAK YATIM & DHU'AFA"`
		Email           string `envconfig:"ORG_EMAIL" default:"rqs-office@gmail.com"`
		City            string `envconfig:"ORG_CITY" default:"Serang"`
		Signatory       string `envconfig:"ORG_SIGNATORY" default:"Ahmad Sarmadi, S.E., M.Si"`
		Contact         string `envconfig:"ORG_CONTACT" default:"+62 812-9633-7953"`
		Website         string `envconfig:"ORG_WEBSITE" default:"rqsn.org"`
		Timezone        string `envconfig:"ORG_TIMEZONE" default:"Asia/Jakarta"`
		LogoPath        string `envconfig:"ORG_LOGO_PATH"`
		SignaturePath   string `envconfig:"ORG_SIGNATURE_PATH"`
		CertificatePath string `envconfig:"ORG_CERTIFICATE_PATH" default:"assets/certificate.jpg"`
	}

	Messaging struct {
		// WhatsApp number receiving proofs of payment, without the plus.
		Recipient string `envconfig:"WHATSAPP_RECIPIENT" default:"6281296337953"`
		AMQPURL   string `envconfig:"AMQP_URL"`
		Exchange  string `envconfig:"AMQP_EXCHANGE" default:"donasi"`
		Queue     string `envconfig:"AMQP_QUEUE" default:"donation.created"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.App.Backend {
	case BackendPostgres, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown DATA_BACKEND %q", cfg.App.Backend)
	}

	return &cfg, nil
}

func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.App.LogLevel))); err != nil {
		return slog.LevelInfo
	}

	return level
}

func (c *Config) AuthOptions() auth.Options {
	return auth.Options{
		Secret:            c.Auth.Secret,
		AdminEmail:        c.Auth.AdminEmail,
		AdminPasswordHash: c.Auth.AdminPasswordHash,
		TokenTTL:          c.Auth.TokenTTL,
	}
}

// Organization builds the document letterhead. Optional images that cannot
// be read are skipped with a warning.
func (c *Config) Organization() document.Organization {
	org := document.DefaultOrganization()

	org.Name = c.Org.Name
	org.Subtitle = c.Org.Subtitle
	org.Tagline = c.Org.Tagline
	org.Email = c.Org.Email
	org.City = c.Org.City
	org.Signatory = c.Org.Signatory
	org.Contact = c.Org.Contact
	org.Website = c.Org.Website

	if loc, err := time.LoadLocation(c.Org.Timezone); err == nil {
		org.Location = loc
	} else {
		slog.Warn("unknown timezone, using WIB", "timezone", c.Org.Timezone, "error", err)
	}

	org.Logo = readOptional(c.Org.LogoPath)
	org.Signature = readOptional(c.Org.SignaturePath)

	return org
}

func readOptional(path string) []byte {
	if path == "" {
		return nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("failed to read image", "path", path, "error", err)
		return nil
	}

	return b
}
