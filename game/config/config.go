package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type LogConfig struct {
	Level  string `yaml:"level" toml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `yaml:"format" toml:"format" validate:"omitempty,oneof=console json"`
	File   string `yaml:"file" toml:"file"`
	Caller bool   `yaml:"caller" toml:"caller"`
}

type WebSocketConfig struct {
	ReadBufferSize  int      `yaml:"read_buffer_size" toml:"read_buffer_size" validate:"gte=0"`
	WriteBufferSize int      `yaml:"write_buffer_size" toml:"write_buffer_size" validate:"gte=0"`
	AllowedOrigins  []string `yaml:"allowed_origins" toml:"allowed_origins"`
}

type Config struct {
	Addr      string          `yaml:"addr" toml:"addr" validate:"required"`
	BlackName string          `yaml:"black_name" toml:"black_name" validate:"required"`
	WhiteName string          `yaml:"white_name" toml:"white_name" validate:"required,nefield=BlackName"`
	Metrics   bool            `yaml:"metrics" toml:"metrics"`
	Log       LogConfig       `yaml:"log" toml:"log"`
	WebSocket WebSocketConfig `yaml:"websocket" toml:"websocket"`
}

func Default() *Config {
	return &Config{
		Addr:      ":8080",
		BlackName: "black",
		WhiteName: "white",
		Metrics:   true,
		Log:       LogConfig{Level: "info", Format: "console"},
		WebSocket: WebSocketConfig{ReadBufferSize: 1024, WriteBufferSize: 1024},
	}
}

var validate = validator.New()

// Load applies, in order: defaults, the file at path (if any), environment
// overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, c)
	case ".toml":
		err = toml.Unmarshal(raw, c)
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("DRAUGHTS_ADDR")); v != "" {
		c.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("DRAUGHTS_BLACK_NAME")); v != "" {
		c.BlackName = v
	}
	if v := strings.TrimSpace(os.Getenv("DRAUGHTS_WHITE_NAME")); v != "" {
		c.WhiteName = v
	}
	if v := strings.TrimSpace(os.Getenv("DRAUGHTS_METRICS")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Metrics = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("DRAUGHTS_ALLOWED_ORIGINS")); v != "" {
		c.WebSocket.AllowedOrigins = nil
		for _, p := range strings.Split(v, ",") {
			if s := strings.TrimSpace(p); s != "" {
				c.WebSocket.AllowedOrigins = append(c.WebSocket.AllowedOrigins, s)
			}
		}
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		c.Log.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FILE")); v != "" {
		c.Log.File = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_CALLER")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Log.Caller = b
		}
	}
}

// Validate checks struct tags and reports the first failing field by name.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("invalid config: %s failed %q", fe.Namespace(), fe.Tag())
	}
	return err
}
