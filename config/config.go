package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Storage   StorageConfig   `yaml:"storage"`
	MinIO     MinIOConfig     `yaml:"minio"`
	S3        S3Config        `yaml:"s3"`
	JWT       JWTConfig       `yaml:"jwt"`
	Thumbnail ThumbnailConfig `yaml:"thumbnail"`
	Share     ShareConfig     `yaml:"share"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Port int    `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
	Host string `yaml:"host" env:"SERVER_HOST" env-default:"0.0.0.0"`
	Mode string `yaml:"mode" env:"GIN_MODE" env-default:"release"`
}

type DatabaseConfig struct {
	Driver       string `yaml:"driver" env:"DB_DRIVER" env-default:"mysql"`
	Host         string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port         int    `yaml:"port" env:"DB_PORT" env-default:"3306"`
	Username     string `yaml:"username" env:"DB_USER"`
	Password     string `yaml:"password" env:"DB_PASSWORD"`
	Database     string `yaml:"database" env:"DB_NAME" env-default:"photovault"`
	Charset      string `yaml:"charset" env:"DB_CHARSET" env-default:"utf8mb4"`
	SSLMode      string `yaml:"ssl_mode" env:"DB_SSLMODE" env-default:"disable"`
	Path         string `yaml:"path" env:"DB_PATH" env-default:"photovault.db"`
	MaxIdleConns int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	MaxOpenConns int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"25"`
}

type RedisConfig struct {
	Enabled         bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host            string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port            int    `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password        string `yaml:"password" env:"REDIS_PASSWORD"`
	DB              int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	AccessLogSize   int    `yaml:"access_log_size" env:"REDIS_ACCESS_LOG_SIZE" env-default:"50"`
	AccessLogExpire int    `yaml:"access_log_expire" env:"REDIS_ACCESS_LOG_EXPIRE" env-default:"2592000"`
}

// StorageConfig mirrors the file.upload.* options: root directory, size limit in
// bytes and a comma-separated extension allow-list.
type StorageConfig struct {
	Backend           string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"local"`
	BasePath          string `yaml:"base_path" env:"FILE_UPLOAD_DIR" env-default:"./uploads"`
	MaxFileSize       int64  `yaml:"max_file_size" env:"FILE_UPLOAD_MAX_SIZE" env-default:"10485760"`
	AllowedExtensions string `yaml:"allowed_extensions" env:"FILE_UPLOAD_ALLOWED_EXTENSIONS" env-default:"jpg,jpeg,png,gif,webp,raw,pdf,zip"`
	ThumbnailDir      string `yaml:"thumbnail_dir" env:"FILE_THUMBNAIL_DIR" env-default:"thumbnails"`
}

type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT" env-default:"localhost:9000"`
	Bucket    string `yaml:"bucket" env:"MINIO_BUCKET_NAME" env-default:"photovault"`
	AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
	UseSSL    bool   `yaml:"use_ssl" env:"MINIO_USE_SSL" env-default:"false"`
}

type S3Config struct {
	Region       string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	Bucket       string `yaml:"bucket" env:"S3_BUCKET"`
	Endpoint     string `yaml:"endpoint" env:"S3_ENDPOINT"`
	AccessKey    string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey    string `yaml:"secret_key" env:"S3_SECRET_KEY"`
	UsePathStyle bool   `yaml:"use_path_style" env:"S3_USE_PATH_STYLE" env-default:"false"`
}

type JWTConfig struct {
	Secret      string `yaml:"secret" env:"JWT_SECRET"`
	Issuer      string `yaml:"issuer" env:"JWT_ISSUER" env-default:"photovault"`
	ExpireHours int    `yaml:"expire_hours" env:"JWT_EXPIRE_HOURS" env-default:"24"`
}

type ThumbnailConfig struct {
	Width   int `yaml:"width" env:"THUMBNAIL_WIDTH" env-default:"320"`
	Height  int `yaml:"height" env:"THUMBNAIL_HEIGHT" env-default:"320"`
	Quality int `yaml:"quality" env:"THUMBNAIL_QUALITY" env-default:"80"`
}

type ShareConfig struct {
	DefaultExpirationDays int    `yaml:"default_expiration_days" env:"SHARE_DEFAULT_EXPIRATION_DAYS" env-default:"7"`
	PublicBaseURL         string `yaml:"public_base_url" env:"SHARE_PUBLIC_BASE_URL"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

var AppConfig *Config

// ErrMissingJWTSecret is returned by LoadConfig when no signing secret is set.
var ErrMissingJWTSecret = errors.New("jwt secret is not configured (set jwt.secret or JWT_SECRET)")

// ConfigPath returns the config file location, honouring PHOTOVAULT_CONFIG.
func ConfigPath() string {
	if p := strings.TrimSpace(os.Getenv("PHOTOVAULT_CONFIG")); p != "" {
		return p
	}
	return "config.yaml"
}

// LoadConfig reads path when it exists and always applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if _, statErr := os.Stat(path); statErr == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if errors.Is(statErr, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read config from env: %w", err)
		}
	} else {
		return nil, fmt.Errorf("stat config %s: %w", path, statErr)
	}

	applyDefaults(&cfg)
	if cfg.JWT.Secret == "" {
		return nil, ErrMissingJWTSecret
	}

	AppConfig = &cfg
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	cfg.JWT.Secret = strings.TrimSpace(cfg.JWT.Secret)
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "local"
	}
	cfg.Storage.ThumbnailDir = strings.Trim(strings.TrimSpace(cfg.Storage.ThumbnailDir), "/")
	if cfg.Storage.ThumbnailDir == "" {
		cfg.Storage.ThumbnailDir = "thumbnails"
	}
	cfg.Share.PublicBaseURL = strings.TrimRight(strings.TrimSpace(cfg.Share.PublicBaseURL), "/")
	if cfg.Share.DefaultExpirationDays < 1 {
		cfg.Share.DefaultExpirationDays = 7
	}
	if cfg.Thumbnail.Quality <= 0 || cfg.Thumbnail.Quality > 100 {
		cfg.Thumbnail.Quality = 80
	}
	if cfg.Redis.AccessLogSize <= 0 {
		cfg.Redis.AccessLogSize = 50
	}
}

// AllowedExtensionList splits the configured allow-list, lower-cased and without dots.
func (c StorageConfig) AllowedExtensionList() []string {
	parts := strings.Split(c.AllowedExtensions, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(part), "."))
		if ext != "" {
			out = append(out, ext)
		}
	}
	return out
}
