package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"

	LockModeNone  = "none"
	LockModeMutex = "mutex"
	LockModeRow   = "row"
)

type Config struct {
	AppEnv   string
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
	Upload   UploadConfig
	Ledger   LedgerConfig
	Mail     MailConfig
	CORS     CORSConfig
	Rate     RateLimitConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	MaxRetries int
}

// DSN renders the driver-specific connection string.
func (d DatabaseConfig) DSN() string {
	if d.Driver == DriverMySQL {
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.User, d.Password, d.Host, d.Port, d.Name)
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

// MigrateURL renders the URL form golang-migrate expects.
func (d DatabaseConfig) MigrateURL() string {
	if d.Driver == DriverMySQL {
		return fmt.Sprintf("mysql://%s:%s@tcp(%s:%s)/%s?multiStatements=true",
			d.User, d.Password, d.Host, d.Port, d.Name)
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr       string
	MaxRetries int
}

type KafkaConfig struct {
	Brokers      []string
	LeaveTopic   string
	GroupID      string
	PollInterval time.Duration
	MaxRetries   int
}

type AuthConfig struct {
	JWTSecret            string
	TokenTTL             time.Duration
	EmployeeTokenEnabled bool
}

type UploadConfig struct {
	Dir       string
	MaxSizeMB int
}

type LedgerConfig struct {
	LockMode   string
	PolicyPath string
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// RateLimitConfig throttles the login and leave application endpoints per
// client IP, and the authenticated admin endpoints per user. A burst of zero
// disables the matching limiter.
type RateLimitConfig struct {
	PerMinute     int
	Burst         int
	UserPerMinute int
	UserBurst     int
}

type CORSConfig struct {
	AllowOrigins []string
}

// Load reads .env when present and builds the typed configuration.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv: GetEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:         GetEnv("PORT", "3000"),
			ReadTimeout:  GetEnvAsDuration("HTTP_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: GetEnvAsDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  GetEnvAsDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(GetEnv("DB_DRIVER", DriverPostgres)),
			Host:       GetEnv("DB_HOST", "localhost"),
			Port:       GetEnv("DB_PORT", "5432"),
			User:       GetEnv("DB_USER", "postgres"),
			Password:   GetEnv("DB_PASSWORD", ""),
			Name:       GetEnv("DB_NAME", "hr_management"),
			SSLMode:    GetEnv("DB_SSLMODE", "disable"),
			MaxRetries: GetEnvAsInt("DB_MAX_RETRIES", 5),
		},
		Redis: RedisConfig{
			Addr:       GetEnv("REDIS_ADDR", ""),
			MaxRetries: GetEnvAsInt("REDIS_MAX_RETRIES", 5),
		},
		Kafka: KafkaConfig{
			Brokers:      GetEnvAsSlice("KAFKA_BROKER", nil),
			LeaveTopic:   GetEnv("KAFKA_LEAVE_TOPIC", "hr.leave.lifecycle.v1"),
			GroupID:      GetEnv("KAFKA_GROUP_ID", "hr-management-leave-notifier"),
			PollInterval: GetEnvAsDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
			MaxRetries:   GetEnvAsInt("KAFKA_MAX_RETRIES", 5),
		},
		Auth: AuthConfig{
			JWTSecret:            GetEnv("JWT_SECRET", ""),
			TokenTTL:             GetEnvAsDuration("JWT_TTL", time.Hour),
			EmployeeTokenEnabled: GetEnvAsBool("EMPLOYEE_TOKEN_ENABLED", false),
		},
		Upload: UploadConfig{
			Dir:       GetEnv("UPLOAD_DIR", "uploads"),
			MaxSizeMB: GetEnvAsInt("UPLOAD_MAX_SIZE_MB", 5),
		},
		Ledger: LedgerConfig{
			LockMode:   strings.ToLower(GetEnv("LEDGER_LOCK_MODE", LockModeNone)),
			PolicyPath: GetEnv("LEAVE_POLICY_PATH", "configs/leave_policy.yaml"),
		},
		Mail: MailConfig{
			Host:     GetEnv("SMTP_HOST", ""),
			Port:     GetEnvAsInt("SMTP_PORT", 587),
			Username: GetEnv("SMTP_USER", ""),
			Password: GetEnv("SMTP_PASSWORD", ""),
			From:     GetEnv("SMTP_FROM", "hr@example.com"),
		},
		CORS: CORSConfig{
			AllowOrigins: GetEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"*"}),
		},
		Rate: RateLimitConfig{
			PerMinute:     GetEnvAsInt("RATE_LIMIT_PER_MINUTE", 30),
			Burst:         GetEnvAsInt("RATE_LIMIT_BURST", 10),
			UserPerMinute: GetEnvAsInt("RATE_LIMIT_USER_PER_MINUTE", 300),
			UserBurst:     GetEnvAsInt("RATE_LIMIT_USER_BURST", 60),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.Database.Driver)
	}

	switch c.Ledger.LockMode {
	case LockModeNone, LockModeMutex, LockModeRow:
	default:
		return fmt.Errorf("config: unsupported LEDGER_LOCK_MODE %q", c.Ledger.LockMode)
	}

	if c.IsProduction() && c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required in production")
	}
	return nil
}
