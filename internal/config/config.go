package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/fachrinfl/ts-project-management-api/internal/logger"
)

type Config struct {
	Server struct {
		Host        string   `yaml:"host"`
		Port        int      `yaml:"port"`
		Env         string   `yaml:"env"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`

	Database struct {
		Driver       string `yaml:"driver"` // postgres, mysql
		DSN          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
		AutoMigrate  bool   `yaml:"auto_migrate"`
	} `yaml:"database"`

	JWT struct {
		AccessSecret  string   `yaml:"access_secret"`
		AccessTTL     Duration `yaml:"access_ttl"`
		RefreshSecret string   `yaml:"refresh_secret"`
		RefreshTTL    Duration `yaml:"refresh_ttl"`
		Issuer        string   `yaml:"issuer"`
	} `yaml:"jwt"`

	Storage struct {
		Type       string `yaml:"type"`        // local, s3, cloudflare_r2
		BasePath   string `yaml:"base_path"`   // For local storage
		BaseURL    string `yaml:"base_url"`    // Public URL base
		Bucket     string `yaml:"bucket"`      // For S3/R2
		Region     string `yaml:"region"`      // For S3
		AccessKey  string `yaml:"access_key"`  // For S3/R2
		SecretKey  string `yaml:"secret_key"`  // For S3/R2
		Endpoint   string `yaml:"endpoint"`    // For R2 or custom S3
		PublicRead bool   `yaml:"public_read"` // Make files public
	} `yaml:"storage"`

	Upload struct {
		MaxSize       int64    `yaml:"max_size"`
		AllowedTypes  []string `yaml:"allowed_types"`
		TempDir       string   `yaml:"temp_dir"`
		DefaultFolder string   `yaml:"default_folder"`
	} `yaml:"upload"`

	RateLimit struct {
		RPS   float64 `yaml:"rps"`
		Burst int     `yaml:"burst"`
	} `yaml:"rate_limit"`

	Workers struct {
		SessionSweepInterval Duration `yaml:"session_sweep_interval"` // 0 - выключено
	} `yaml:"workers"`
}

// Duration понимает "15m", "1h30m" и дни: "7d"
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := ParseDuration(raw)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// ParseDuration - time.ParseDuration плюс суффикс "d"
func ParseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasSuffix(raw, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(raw, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", raw)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	return time.ParseDuration(raw)
}

var AppConfig *Config

// LoadConfig - точка входа процесса: .env -> yaml -> env, при ошибке завершает процесс
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using environment variables")
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	cfg, err := Load(path)
	if err != nil {
		logger.Fatal("Failed to load configuration", "path", path, "error", err)
	}

	AppConfig = cfg
	return cfg
}

// Load читает yaml (если файл есть) и накладывает переменные окружения поверх.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// Файл необязателен: в контейнерах всё приходит через env
		default:
			return nil, fmt.Errorf("open config file %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func defaults() *Config {
	var cfg Config
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 4000
	cfg.Server.Env = "development"
	cfg.Server.CORSOrigins = []string{"*"}

	cfg.Database.Driver = "postgres"
	cfg.Database.MaxOpenConns = 20
	cfg.Database.MaxIdleConns = 5
	cfg.Database.AutoMigrate = true

	cfg.JWT.AccessTTL = Duration(15 * time.Minute)
	cfg.JWT.RefreshTTL = Duration(7 * 24 * time.Hour)
	cfg.JWT.Issuer = "project-management-api"

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/files"

	cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	cfg.Upload.TempDir = os.TempDir()
	cfg.Upload.DefaultFolder = "general"

	cfg.RateLimit.RPS = 5
	cfg.RateLimit.Burst = 10

	// воркер по умолчанию выключен: истекшие сессии чистятся при входе
	cfg.Workers.SessionSweepInterval = 0
	return &cfg
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Host, "SERVER_HOST")
	setString(&cfg.Server.Env, "SERVER_ENV")
	if err := setInt(&cfg.Server.Port, "SERVER_PORT"); err != nil {
		return err
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = splitList(v)
	}

	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.DSN, "DATABASE_URL")

	setString(&cfg.JWT.AccessSecret, "JWT_SECRET")
	setString(&cfg.JWT.RefreshSecret, "JWT_REFRESH_SECRET")
	setString(&cfg.JWT.Issuer, "JWT_ISSUER")
	if err := setDuration(&cfg.JWT.AccessTTL, "JWT_EXPIRES_IN"); err != nil {
		return err
	}
	if err := setDuration(&cfg.JWT.RefreshTTL, "JWT_REFRESH_EXPIRES_IN"); err != nil {
		return err
	}

	setString(&cfg.Storage.Type, "STORAGE_TYPE")
	setString(&cfg.Storage.BasePath, "STORAGE_BASE_PATH")
	setString(&cfg.Storage.BaseURL, "STORAGE_BASE_URL")
	setString(&cfg.Storage.Bucket, "STORAGE_BUCKET")
	setString(&cfg.Storage.Region, "STORAGE_REGION")
	setString(&cfg.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "STORAGE_SECRET_KEY")
	setString(&cfg.Storage.Endpoint, "STORAGE_ENDPOINT")

	if v := os.Getenv("UPLOAD_MAX_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("UPLOAD_MAX_SIZE: %w", err)
		}
		cfg.Upload.MaxSize = n
	}
	setString(&cfg.Upload.TempDir, "UPLOAD_TEMP_DIR")

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
		cfg.RateLimit.RPS = f
	}
	if err := setInt(&cfg.RateLimit.Burst, "RATE_LIMIT_BURST"); err != nil {
		return err
	}
	return setDuration(&cfg.Workers.SessionSweepInterval, "SESSION_SWEEP_INTERVAL")
}

// Validate проверяет то, без чего сервер не должен стартовать
func (c *Config) Validate() error {
	var problems []string

	if c.Database.DSN == "" {
		problems = append(problems, "database.url (DATABASE_URL) is required")
	}
	if c.Database.Driver != "postgres" && c.Database.Driver != "mysql" {
		problems = append(problems, fmt.Sprintf("unsupported database.driver %q", c.Database.Driver))
	}
	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		problems = append(problems, "jwt.access_secret and jwt.refresh_secret are required")
	} else if c.JWT.AccessSecret == c.JWT.RefreshSecret {
		problems = append(problems, "jwt.access_secret and jwt.refresh_secret must differ")
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		problems = append(problems, "jwt ttl values must be positive")
	}
	if c.Upload.MaxSize <= 0 {
		problems = append(problems, "upload.max_size must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = Duration(d)
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
