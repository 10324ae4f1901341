package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Ledger and directory backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendKafka    = "kafka"
)

// Server captures process-wide configuration.
type Server struct {
	Addr           string
	Environment    string
	LogLevel       string
	RequestTimeout time.Duration
	MaxUploadBytes int64
	TrustedProxies string

	DatabaseURL string
	RedisURL    string

	Directory Directory
	Issuance  Issuance
	Audit     Audit
	Card      Card
	Mail      Mail
}

// Directory configures where student records come from.
type Directory struct {
	Backend  string
	SeedPath string
	CacheTTL time.Duration
}

// Issuance configures the re-issuance guard.
type Issuance struct {
	Ledger             string
	ReservationTTL     time.Duration
	OverrideSecret     string
	OverrideSecretHash string
}

// Audit configures where audit events go.
type Audit struct {
	Sink         string
	KafkaBrokers string
	Topic        string
	BufferSize   int
}

// Card holds the fixed texts and assets printed on every credential.
type Card struct {
	EmblemPath    string
	IssuerName    string
	IssuerState   string
	DocumentTitle string
	QRNamespace   string
}

// Mail configures e-mail delivery. An empty Sender keeps the default address.
type Mail struct {
	Sender string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:           getEnv("CARTEIRA_ADDR", ":8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 30*time.Second),
		MaxUploadBytes: getInt64("MAX_UPLOAD_BYTES", 8<<20),
		TrustedProxies: os.Getenv("TRUSTED_PROXIES"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		Directory: Directory{
			Backend:  getEnv("DIRECTORY_BACKEND", BackendMemory),
			SeedPath: os.Getenv("DIRECTORY_SEED_PATH"),
			CacheTTL: getDuration("DIRECTORY_CACHE_TTL", 0),
		},
		Issuance: Issuance{
			Ledger:             getEnv("ISSUANCE_LEDGER", BackendMemory),
			ReservationTTL:     getDuration("ISSUANCE_RESERVATION_TTL", 2*time.Minute),
			OverrideSecret:     os.Getenv("OVERRIDE_SECRET"),
			OverrideSecretHash: os.Getenv("OVERRIDE_SECRET_HASH"),
		},
		Audit: Audit{
			Sink:         getEnv("AUDIT_SINK", BackendMemory),
			KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
			Topic:        getEnv("AUDIT_TOPIC", "carteira.audit"),
			BufferSize:   int(getInt64("AUDIT_BUFFER_SIZE", 256)),
		},
		Card: Card{
			EmblemPath:    os.Getenv("EMBLEM_PATH"),
			IssuerName:    getEnv("ISSUER_NAME", "PREFEITURA MUNICIPAL DE NOVA PONTE"),
			IssuerState:   getEnv("ISSUER_STATE", "MINAS GERAIS"),
			DocumentTitle: getEnv("DOCUMENT_TITLE", "CARTEIRA DE ESTUDANTE"),
			QRNamespace:   getEnv("QR_NAMESPACE", "NOVA_PONTE_STUDENT_ID"),
		},
		Mail: Mail{
			Sender: os.Getenv("MAIL_SENDER"),
		},
	}
	return cfg, cfg.Validate()
}

// Validate reports the first inconsistent setting.
func (c Server) Validate() error {
	switch c.Directory.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DIRECTORY_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown DIRECTORY_BACKEND %q", c.Directory.Backend)
	}
	if c.Directory.CacheTTL > 0 && c.RedisURL == "" {
		return fmt.Errorf("DIRECTORY_CACHE_TTL requires REDIS_URL")
	}

	switch c.Issuance.Ledger {
	case BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("ISSUANCE_LEDGER=redis requires REDIS_URL")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("ISSUANCE_LEDGER=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown ISSUANCE_LEDGER %q", c.Issuance.Ledger)
	}
	if c.Issuance.ReservationTTL <= 0 {
		return fmt.Errorf("ISSUANCE_RESERVATION_TTL must be positive")
	}

	switch c.Audit.Sink {
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("AUDIT_SINK=postgres requires DATABASE_URL")
		}
	case BackendKafka:
		if c.Audit.KafkaBrokers == "" {
			return fmt.Errorf("AUDIT_SINK=kafka requires KAFKA_BROKERS")
		}
	default:
		return fmt.Errorf("unknown AUDIT_SINK %q", c.Audit.Sink)
	}

	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

// IsProduction reports whether the service runs with production defaults.
func (c Server) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
