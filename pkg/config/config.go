package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the envconfig namespace for every PharmaCart variable.
const EnvPrefix = "pharmacart"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "PHARMACART_DB_DSN"
	EnvDBHost = "PHARMACART_DB_HOST"
	EnvDBUser = "PHARMACART_DB_USER"
	EnvDBName = "PHARMACART_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	OTP           OTPConfig
	Notify        NotifyConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PHARMACART_APP_ENV" required:"true"`
	Port         string `envconfig:"PHARMACART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PHARMACART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PHARMACART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PHARMACART_DB_DSN"`
	Driver string `envconfig:"PHARMACART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PHARMACART_DB_HOST"`
	LegacyPort     int    `envconfig:"PHARMACART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PHARMACART_DB_USER"`
	LegacyPassword string `envconfig:"PHARMACART_DB_PASSWORD"`
	LegacyName     string `envconfig:"PHARMACART_DB_NAME"`
	LegacySSLMode  string `envconfig:"PHARMACART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PHARMACART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PHARMACART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PHARMACART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PHARMACART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PHARMACART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PHARMACART_REDIS_ADDR"`
	Password     string        `envconfig:"PHARMACART_REDIS_PASSWORD"`
	DB           int           `envconfig:"PHARMACART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PHARMACART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PHARMACART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PHARMACART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PHARMACART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PHARMACART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"PHARMACART_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"PHARMACART_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"PHARMACART_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"PHARMACART_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PHARMACART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PHARMACART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PHARMACART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PHARMACART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PHARMACART_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"PHARMACART_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"PHARMACART_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"PHARMACART_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"PHARMACART_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"PHARMACART_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"PHARMACART_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type OTPConfig struct {
	TTL          time.Duration `envconfig:"PHARMACART_OTP_TTL" default:"5m"`
	ResendWindow time.Duration `envconfig:"PHARMACART_OTP_RESEND_WINDOW" default:"1m"`
	ResetTTL     time.Duration `envconfig:"PHARMACART_PASSWORD_RESET_TTL" default:"1h"`
}

type NotifyConfig struct {
	SMTPHost     string `envconfig:"PHARMACART_SMTP_HOST"`
	SMTPPort     int    `envconfig:"PHARMACART_SMTP_PORT" default:"587"`
	SMTPUser     string `envconfig:"PHARMACART_SMTP_USER"`
	SMTPPassword string `envconfig:"PHARMACART_SMTP_PASSWORD"`
	FromEmail    string `envconfig:"PHARMACART_FROM_EMAIL"`

	// SMSGatewayURL is a template with {phone} and {message} placeholders.
	SMSGatewayURL    string        `envconfig:"PHARMACART_SMS_GATEWAY_URL"`
	SMSGatewayMethod string        `envconfig:"PHARMACART_SMS_GATEWAY_METHOD" default:"GET"`
	SMSTimeout       time.Duration `envconfig:"PHARMACART_SMS_TIMEOUT" default:"10s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PHARMACART_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
