package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pavelc4/aether-gateway/pkg/logger"
)

const (
	DefaultPort                = "5000"
	DefaultPrimaryEndpoint     = "https://libretranslate.com/translate"
	DefaultFallbackEndpoint    = "https://api.mymemory.translated.net/get"
	DefaultRequestTimeout      = 8 * time.Second
	DefaultMetadataTimeout     = 20 * time.Second
	DefaultStreamHeaderTimeout = 30 * time.Second
	DefaultStreamChunkSize     = 256 * 1024
	DefaultShutdownTimeout     = 10 * time.Second
	DefaultLogLevel            = "info"
	configFileEnv              = "GATEWAY_CONFIG"
	minStreamChunkSize         = 4 * 1024
)

type Config struct {
	Port string `yaml:"port"`

	PrimaryEndpoint  string `yaml:"primary_endpoint"`
	PrimaryAPIKey    string `yaml:"primary_api_key"`
	FallbackEndpoint string `yaml:"fallback_endpoint"`
	FallbackEmail    string `yaml:"fallback_email"`

	RequestTimeoutMs      int `yaml:"request_timeout_ms"`
	MetadataTimeoutMs     int `yaml:"metadata_timeout_ms"`
	StreamHeaderTimeoutMs int `yaml:"stream_header_timeout_ms"`
	ShutdownTimeoutMs     int `yaml:"shutdown_timeout_ms"`

	StreamChunkSize int `yaml:"stream_chunk_size"`

	AllowOrigins []string `yaml:"allow_origins"`
	LogLevel     string   `yaml:"log_level"`
}

// LoadConfig reads .env, then the optional YAML file named by GATEWAY_CONFIG,
// then environment overrides. Missing values fall back to the Default* constants.
func LoadConfig() (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg := &Config{}
	if path := os.Getenv(configFileEnv); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "decode config %s", path)
	}
	return nil
}

func (c *Config) applyEnv() {
	setStr(&c.Port, "PORT")
	setStr(&c.PrimaryEndpoint, "PRIMARY_ENDPOINT")
	setStr(&c.PrimaryAPIKey, "PRIMARY_API_KEY")
	setStr(&c.FallbackEndpoint, "FALLBACK_ENDPOINT")
	setStr(&c.FallbackEmail, "FALLBACK_EMAIL")
	setStr(&c.LogLevel, "LOG_LEVEL")

	setInt(&c.RequestTimeoutMs, "REQUEST_TIMEOUT_MS")
	setInt(&c.MetadataTimeoutMs, "METADATA_TIMEOUT_MS")
	setInt(&c.StreamHeaderTimeoutMs, "STREAM_HEADER_TIMEOUT_MS")
	setInt(&c.ShutdownTimeoutMs, "SHUTDOWN_TIMEOUT_MS")
	setInt(&c.StreamChunkSize, "STREAM_CHUNK_SIZE")

	if v := os.Getenv("ALLOW_ORIGINS"); v != "" {
		c.AllowOrigins = splitList(v)
	}
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = DefaultPort
	}
	if c.PrimaryEndpoint == "" {
		c.PrimaryEndpoint = DefaultPrimaryEndpoint
	}
	if c.FallbackEndpoint == "" {
		c.FallbackEndpoint = DefaultFallbackEndpoint
	}
	if c.RequestTimeoutMs <= 0 {
		c.RequestTimeoutMs = int(DefaultRequestTimeout / time.Millisecond)
	}
	if c.MetadataTimeoutMs <= 0 {
		c.MetadataTimeoutMs = int(DefaultMetadataTimeout / time.Millisecond)
	}
	if c.StreamHeaderTimeoutMs <= 0 {
		c.StreamHeaderTimeoutMs = int(DefaultStreamHeaderTimeout / time.Millisecond)
	}
	if c.ShutdownTimeoutMs <= 0 {
		c.ShutdownTimeoutMs = int(DefaultShutdownTimeout / time.Millisecond)
	}
	if c.StreamChunkSize <= 0 {
		c.StreamChunkSize = DefaultStreamChunkSize
	}
	if len(c.AllowOrigins) == 0 {
		c.AllowOrigins = []string{"*"}
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return errors.Errorf("invalid port %q", c.Port)
	}
	if !strings.HasPrefix(c.PrimaryEndpoint, "http") {
		return errors.Errorf("invalid primary endpoint %q", c.PrimaryEndpoint)
	}
	if !strings.HasPrefix(c.FallbackEndpoint, "http") {
		return errors.Errorf("invalid fallback endpoint %q", c.FallbackEndpoint)
	}
	if c.StreamChunkSize < minStreamChunkSize {
		return errors.Errorf("stream chunk size %d below minimum %d", c.StreamChunkSize, minStreamChunkSize)
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

func (c *Config) MetadataTimeout() time.Duration {
	return time.Duration(c.MetadataTimeoutMs) * time.Millisecond
}

func (c *Config) StreamHeaderTimeout() time.Duration {
	return time.Duration(c.StreamHeaderTimeoutMs) * time.Millisecond
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMs) * time.Millisecond
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warn("Ignoring malformed integer env value", "key", key, "value", v)
		return
	}
	*dst = n
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
