package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// durationSeconds parses env as time.Duration: "10s", "5m" or bare number = seconds (e.g. "10" -> 10s).
// It implements cleanenv.Setter.
type durationSeconds time.Duration

func (d *durationSeconds) SetValue(data string) error {
	v, err := parseDuration(data)
	if err != nil {
		return err
	}
	*d = durationSeconds(v)
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	// Strip optional surrounding quotes: "10s" or '10s'
	if len(s) >= 2 && ((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')) {
		s = s[1 : len(s)-1]
	}

	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("duration must be like 10s, 5m or a number of seconds: %w", err)
	}
	return d, nil
}

func (d durationSeconds) Duration() time.Duration { return time.Duration(d) }

type Config struct {
	App   AppConfig
	HTTP  HTTPConfig
	Store StoreConfig
	Mongo MongoConfig
	PG    PGConfig
	Log   LogConfig
}

type AppConfig struct {
	Env     string `env:"APP_ENV" env-default:"dev"`
	Version string `env:"VERSION" env-default:"dev"`
}

type HTTPConfig struct {
	Port string `env:"PORT" env-default:"5002"`

	// "10s", "5m" or a bare number of seconds.
	ReadTimeout  durationSeconds `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout durationSeconds `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  durationSeconds `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`

	// Comma separated; "*" allows any origin.
	AllowOrigins string `env:"CORS_ALLOW_ORIGINS" env-default:"*"`
}

type StoreConfig struct {
	Driver         string          `env:"STORE_DRIVER" env-default:"mongo"`
	ConnectTimeout durationSeconds `env:"STORE_CONNECT_TIMEOUT" env-default:"10s"`
}

type MongoConfig struct {
	URI        string `env:"MONGO_URI"`
	Database   string `env:"DB_NAME"`
	Collection string `env:"MONGO_COLLECTION" env-default:"clientes"`
}

type PGConfig struct {
	DSN string `env:"PG_DSN"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Pretty bool   `env:"LOG_PRETTY" env-default:"false"`
}

// Origins splits AllowOrigins.
func (h HTTPConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(h.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads the process environment only.
func FromEnv() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	switch cfg.Store.Driver {
	case DriverMongo:
		if cfg.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required for STORE_DRIVER=mongo")
		}
		if cfg.Mongo.Database == "" {
			return fmt.Errorf("DB_NAME is required for STORE_DRIVER=mongo")
		}
		if err := checkMongoURI(cfg.Mongo.URI); err != nil {
			return fmt.Errorf("MONGO_URI: %w", err)
		}
	case DriverPostgres:
		if cfg.PG.DSN == "" {
			return fmt.Errorf("PG_DSN is required for STORE_DRIVER=postgres")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be mongo, postgres or memory, got %q", cfg.Store.Driver)
	}
	return nil
}

// checkMongoURI accepts mongodb:// and mongodb+srv:// URIs with a host.
func checkMongoURI(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
		return fmt.Errorf("scheme must be mongodb or mongodb+srv, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in Mongo URI")
	}
	return nil
}
