package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server-side settings
	ProjectName     string   `env:"PROJECT_NAME"`
	APIPrefix       string   `env:"API_V1_STR"`
	DatabaseDSN     string   `env:"DATABASE_URL"`
	AuthSecret      string   `env:"SECRET_KEY"`
	TokenTTLMinutes int      `env:"ACCESS_TOKEN_EXPIRE_MINUTES"`
	BcryptCost      int      `env:"BCRYPT_COST"`
	CORSOrigins     []string `env:"CORS_ORIGINS" envSeparator:","`
	LogFormat       string   `env:"LOG_FORMAT"`
	OTelEndpoint    string   `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL string `env:"-"`
	TokenFile string `env:"TOKEN_FILE"`
	Version   bool   `env:"-"` // show client version and exit (flag only)
}

const (
	defaultProjectName = "GroceryWise API"
	defaultAPIPrefix   = "/api/v1"
	defaultDatabaseDSN = "grocerywise.db"
	defaultAuthSecret  = "dev-secret-key"
	defaultTokenTTL    = 30
	defaultBcryptCost  = 10
	defaultBaseURL     = "localhost:8081"
)

var defaultCORSOrigins = []string{"http://localhost", "http://localhost:9002"}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// флаги перекрывают значения из env
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres:// или путь к SQLite)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.IntVar(&cfg.TokenTTLMinutes, "token-ttl", cfg.TokenTTLMinutes, "время жизни access token, минуты")
	flag.StringVar(&cfg.APIPrefix, "api-prefix", cfg.APIPrefix, "префикс версии API")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "address of the GroceryWise server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to auth token file (client)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.ProjectName == "" {
		c.ProjectName = defaultProjectName
	}
	if c.APIPrefix == "" {
		c.APIPrefix = defaultAPIPrefix
	}
	c.APIPrefix = "/" + strings.Trim(c.APIPrefix, "/")
	if c.APIPrefix == "/" {
		c.APIPrefix = ""
	}
	if c.DatabaseDSN == "" {
		c.DatabaseDSN = defaultDatabaseDSN
	}
	if c.AuthSecret == "" {
		c.AuthSecret = defaultAuthSecret
	}
	if c.TokenTTLMinutes <= 0 {
		c.TokenTTLMinutes = defaultTokenTTL
	}
	// bcrypt допускает cost в диапазоне 4..31
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		c.BcryptCost = defaultBcryptCost
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = append([]string(nil), defaultCORSOrigins...)
	}

	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	if !hostPortRe.MatchString(c.BaseURL) {
		c.BaseURL = defaultBaseURL
	}
	if c.EnableHTTPS {
		c.ServerURL = "https://" + c.BaseURL
	} else {
		c.ServerURL = "http://" + c.BaseURL
	}

	if c.TokenFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir, _ = os.UserHomeDir()
		}
		c.TokenFile = filepath.Join(dir, "GroceryWise", "auth_token")
	}
}
