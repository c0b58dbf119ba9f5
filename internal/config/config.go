package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/spf13/viper"
)

const envPrefix = "SHOWER"

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

type AppConfig struct {
	API       *APIConfig       `mapstructure:"api"`
	Gin       *GinConfig       `mapstructure:"gin"`
	Postgres  *PostgresConfig  `mapstructure:"postgres"`
	Storage   *StorageConfig   `mapstructure:"storage"`
	Events    *EventsConfig    `mapstructure:"events"`
	Bootstrap *BootstrapConfig `mapstructure:"bootstrap"`

	v *viper.Viper
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	JWTTTL             time.Duration `mapstructure:"jwt_ttl"`
	LogLevel           string        `mapstructure:"log_level"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

// StorageConfig points at an S3-compatible bucket for gallery uploads.
// Uploads are disabled when Endpoint is empty.
type StorageConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	ThumbnailSize uint   `mapstructure:"thumbnail_size"`
	MaxUploadMB   int64  `mapstructure:"max_upload_mb"`
}

func (c *StorageConfig) Enabled() bool {
	return c != nil && c.Endpoint != ""
}

type EventsConfig struct {
	BroadcastBuffer int           `mapstructure:"broadcast_buffer"`
	ClientBuffer    int           `mapstructure:"client_buffer"`
	PingInterval    time.Duration `mapstructure:"ping_interval"`
}

// BootstrapConfig names an identity that is created (if needed) and granted
// admin rights at startup.
type BootstrapConfig struct {
	AdminDisplayName string `mapstructure:"admin_display_name"`
	AdminFamilyName  string `mapstructure:"admin_family_name"`
	AdminPIN         string `mapstructure:"admin_pin"`
}

func (c *EventsConfig) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.BroadcastBuffer, validation.Min(0)),
		validation.Field(&c.ClientBuffer, validation.Min(0)),
		validation.Field(&c.PingInterval, validation.Required, validation.Min(time.Second)),
	)
}

// Validate only checks the PIN when an admin is configured; it must be a
// valid identity PIN.
func (c *BootstrapConfig) Validate() error {
	if !c.HasAdmin() {
		return nil
	}

	return validation.ValidateStruct(
		c,
		validation.Field(&c.AdminPIN, validation.Match(pinPattern).Error("must be exactly 4 digits")),
	)
}

func (c *BootstrapConfig) HasAdmin() bool {
	return c != nil && c.AdminDisplayName != "" && c.AdminFamilyName != "" && c.AdminPIN != ""
}

func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf, err := decode(v)
	if err != nil {
		return nil, err
	}
	conf.v = v

	return conf, nil
}

// OnChange re-decodes the file on every write and hands the fresh config to fn.
// Only settings that are safe to swap at runtime should be read from it.
func (c *AppConfig) OnChange(fn func(conf *AppConfig, err error)) {
	if c.v == nil {
		return
	}

	c.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		fn(decode(c.v))
	})
	c.v.WatchConfig()
}

func decode(v *viper.Viper) (*AppConfig, error) {
	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if conf.API == nil || conf.API.JWTSigningKey == "" {
		return nil, fmt.Errorf("api.jwt_signing_key is required")
	}
	if conf.Events != nil {
		if err := conf.Events.Validate(); err != nil {
			return nil, fmt.Errorf("events -> %w", err)
		}
	}
	if conf.Bootstrap != nil {
		if err := conf.Bootstrap.Validate(); err != nil {
			return nil, fmt.Errorf("bootstrap -> %w", err)
		}
	}

	return conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.jwt_ttl", "720h")
	v.SetDefault("api.log_level", "info")
	v.SetDefault("api.shutdown_timeout", "10s")
	v.SetDefault("gin.mode", "release")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.thumbnail_size", 300)
	v.SetDefault("storage.max_upload_mb", 10)
	v.SetDefault("events.broadcast_buffer", 256)
	v.SetDefault("events.client_buffer", 32)
	v.SetDefault("events.ping_interval", "30s")
}
