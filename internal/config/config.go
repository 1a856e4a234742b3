package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	CacheDriverNone   = "none"
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

type Config struct {
	Env        string `yaml:"env"`
	BaseURL    string `yaml:"base_url"`
	ShortCode  `yaml:"short_code"`
	Quota      `yaml:"quota"`
	HTTPServer `yaml:"http_server"`
	Postgres   `yaml:"postgres"`
	Cache      `yaml:"cache"`
	AccessLog  `yaml:"access_log"`
	Retry      `yaml:"retry"`
}

type ShortCode struct {
	Length      int `yaml:"length"`
	MaxAttempts int `yaml:"max_attempts"`
}

var defaultShortCode = ShortCode{
	Length:      6,
	MaxAttempts: 10,
}

type Quota struct {
	DefaultDailyLimit int `yaml:"default_daily_limit"`
}

var defaultQuota = Quota{
	DefaultDailyLimit: 50,
}

type HTTPServer struct {
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	MaxHeaderBytes int           `yaml:"max_header_bytes"`
	CertFile       string        `yaml:"cert_file"`
	KeyFile        string        `yaml:"key_file"`
	// ShutdownTimeout bounds how long in-flight requests may run after a stop signal.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

var defaultHTTPServer = HTTPServer{
	Port:            8080,
	ReadTimeout:     5 * time.Second,
	WriteTimeout:    10 * time.Second,
	IdleTimeout:     time.Minute,
	MaxHeaderBytes:  1 << 20,
	ShutdownTimeout: 10 * time.Second,
}

func (s *HTTPServer) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// TLS reports whether the server should serve HTTPS.
func (s *HTTPServer) TLS() bool {
	return s.CertFile != "" && s.KeyFile != ""
}

type Postgres struct {
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	DB              string        `yaml:"db"`
	SSLMode         string        `yaml:"sslmode"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	QueryTimeout    time.Duration `yaml:"query_timeout"`
	MigrationsPath  string        `yaml:"migrations_path"`
}

var defaultPostgres = Postgres{
	Host:            "localhost",
	Port:            5432,
	SSLMode:         "disable",
	ConnMaxIdleTime: 5 * time.Minute,
	ConnMaxLifetime: 30 * time.Minute,
	MaxIdleConns:    5,
	MaxOpenConns:    25,
	QueryTimeout:    3 * time.Second,
	MigrationsPath:  "file://migrations",
}

func (p *Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DB, p.SSLMode)
}

type Cache struct {
	Driver string        `yaml:"driver"`
	TTL    time.Duration `yaml:"ttl"`
	Redis  Redis         `yaml:"redis"`
}

type Redis struct {
	Addr         string        `yaml:"addr"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	PoolSize     int           `yaml:"pool_size"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

var defaultCache = Cache{
	Driver: CacheDriverMemory,
	TTL:    10 * time.Minute,
	Redis: Redis{
		Addr:         "localhost:6379",
		PoolSize:     10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	},
}

// AccessLog configures how redirects are recorded. Zero workers record
// every access before the redirect response is sent.
type AccessLog struct {
	Workers      int           `yaml:"workers"`
	Buffer       int           `yaml:"buffer"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

var defaultAccessLog = AccessLog{
	Workers:      4,
	Buffer:       1024,
	WriteTimeout: 3 * time.Second,
}

// Retry configures the backoff applied to requests that hit a transient
// storage failure.
type Retry struct {
	InitialInterval time.Duration `yaml:"initial_interval"`
	MaxInterval     time.Duration `yaml:"max_interval"`
	MaxElapsedTime  time.Duration `yaml:"max_elapsed_time"`
}

var defaultRetry = Retry{
	InitialInterval: 50 * time.Millisecond,
	MaxInterval:     500 * time.Millisecond,
	MaxElapsedTime:  2 * time.Second,
}

func Load(path string) (*Config, error) {
	const op = "config.Load"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open config file: %w", op, err)
	}
	defer f.Close()

	var cfg Config
	setDefaults(&cfg)

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to decode config file: %w", op, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

func (cfg *Config) validate() error {
	switch cfg.Env {
	case EnvDev, EnvStage, EnvProd:
	default:
		return fmt.Errorf("unknown env %q", cfg.Env)
	}

	switch cfg.Cache.Driver {
	case CacheDriverNone, CacheDriverMemory, CacheDriverRedis:
	default:
		return fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}

	if cfg.Cache.Driver != CacheDriverNone && cfg.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive for driver %q", cfg.Cache.Driver)
	}

	if cfg.Quota.DefaultDailyLimit < 0 {
		return fmt.Errorf("negative default daily limit")
	}

	if cfg.ShortCode.Length <= 0 || cfg.ShortCode.Length > 16 {
		return fmt.Errorf("short code length must be between 1 and 16")
	}

	return nil
}

func setDefaults(cfg *Config) {
	cfg.Env = EnvDev
	cfg.BaseURL = "http://localhost:8080"
	cfg.ShortCode = defaultShortCode
	cfg.Quota = defaultQuota
	cfg.HTTPServer = defaultHTTPServer
	cfg.Postgres = defaultPostgres
	cfg.Cache = defaultCache
	cfg.AccessLog = defaultAccessLog
	cfg.Retry = defaultRetry
}
