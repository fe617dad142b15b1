package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"medprep/internal/backend"
	"medprep/internal/booking"
)

// BackendConfig locates the tutoring platform API
type BackendConfig struct {
	BaseURL string        `json:"baseUrl"`
	Version string        `json:"version"`
	Timeout time.Duration `json:"timeout"`
}

// AuthConfig holds dashboard credentials. Passwords are bcrypt hashes.
type AuthConfig struct {
	JWTSecret         string        `json:"-"` // Never serialize
	AdminUsername     string        `json:"adminUsername"`
	AdminPasswordHash string        `json:"-"`
	TutorUsername     string        `json:"tutorUsername"`
	TutorPasswordHash string        `json:"-"`
	TokenTTL          time.Duration `json:"tokenTtl"`
}

// Config is the server configuration
type Config struct {
	Port               string        `json:"port"`
	MongoURI           string        `json:"-"`
	MongoDB            string        `json:"mongoDb"`
	RedisURI           string        `json:"-"`
	Backend            BackendConfig `json:"backend"`
	Auth               AuthConfig    `json:"auth"`
	CORSAllowedOrigins []string      `json:"corsAllowedOrigins"`
	PaymentURL         string        `json:"paymentUrl"`
	PackagesFile       string        `json:"packagesFile"`
	SimilarityDebounce time.Duration `json:"similarityDebounce"`
	Timezone           string        `json:"timezone"`
	LogLevel           string        `json:"logLevel"`
	LogPretty          bool          `json:"logPretty"`
}

// Load reads the configuration from the environment
func Load() *Config {
	return &Config{
		Port:     getEnvOrDefault("PORT", "8080"),
		MongoURI: getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnvOrDefault("MONGO_DB", "medprep"),
		RedisURI: getEnvOrDefault("REDIS_URI", "localhost:6379"),
		Backend: BackendConfig{
			BaseURL: getEnvOrDefault("NEXT_PUBLIC_API_URL", os.Getenv("NEXT_PUBLIC_BACKEND_URL")),
			Version: getEnvOrDefault("NEXT_PUBLIC_API_VERSION", backend.DefaultVersion),
			Timeout: getDurationOrDefault("BACKEND_TIMEOUT", backend.DefaultTimeout),
		},
		Auth: AuthConfig{
			JWTSecret:         os.Getenv("JWT_SECRET"),
			AdminUsername:     getEnvOrDefault("ADMIN_USERNAME", "admin"),
			AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
			TutorUsername:     getEnvOrDefault("TUTOR_USERNAME", "tutor"),
			TutorPasswordHash: os.Getenv("TUTOR_PASSWORD_HASH"),
			TokenTTL:          12 * time.Hour,
		},
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		PaymentURL:         getEnvOrDefault("PAYMENT_URL", "http://localhost:3000/payment"),
		PackagesFile:       os.Getenv("PACKAGES_FILE"),
		SimilarityDebounce: getMillisOrDefault("SIMILARITY_DEBOUNCE_MS", 500*time.Millisecond),
		Timezone:           getEnvOrDefault("TIMEZONE", "Europe/London"),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		LogPretty:          getEnvOrDefault("LOG_PRETTY", "false") == "true",
	}
}

// RegisterFlags binds command-line overrides for the most commonly changed
// settings. Defaults are the values already loaded from the environment.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Port, "port", c.Port, "HTTP listen port")
	fs.StringVar(&c.PackagesFile, "packages", c.PackagesFile, "YAML package catalogue")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
}

// Validate reports settings the server cannot start without
func (c *Config) Validate() error {
	var errs []error
	if c.Backend.BaseURL == "" {
		errs = append(errs, errors.New("NEXT_PUBLIC_API_URL or NEXT_PUBLIC_BACKEND_URL is required"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}
	return errors.Join(errs...)
}

// RedisAddr strips the redis:// scheme the deployment URIs carry
func (c *Config) RedisAddr() string {
	return strings.TrimPrefix(c.RedisURI, "redis://")
}

// Location is the site's local time zone, used to decide what "today" is
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Catalogue loads the package catalogue, falling back to the built-in prices
func (c *Config) Catalogue() (booking.Catalogue, error) {
	if c.PackagesFile == "" {
		return booking.DefaultCatalogue(), nil
	}
	return booking.LoadCatalogue(c.PackagesFile)
}

// BackendClientConfig adapts the settings for backend.New
func (c *Config) BackendClientConfig() backend.Config {
	return backend.Config{
		BaseURL: c.Backend.BaseURL,
		Version: c.Backend.Version,
		Timeout: c.Backend.Timeout,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// getDurationOrDefault accepts Go durations ("15s") or plain seconds ("15")
func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return defaultValue
}

func getMillisOrDefault(key string, defaultValue time.Duration) time.Duration {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return time.Duration(n) * time.Millisecond
	}
	return defaultValue
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
