package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "TASKMONITOR"

type Config struct {
	API    APIConfig    `mapstructure:"api"`
	CSRF   CSRFConfig   `mapstructure:"csrf"`
	Poller PollerConfig `mapstructure:"poller"`
	Labels LabelsConfig `mapstructure:"labels"`
	Render RenderConfig `mapstructure:"render"`
	Logger LoggerConfig `mapstructure:"logger"`
	Server ServerConfig `mapstructure:"server"`
}

// APIConfig points at the external task service. A zero Timeout means
// requests are never cut short.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// CSRFConfig controls the header injector. It stays off unless Enabled is set.
type CSRFConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	MetaName string `mapstructure:"meta_name"`
	Header   string `mapstructure:"header"`
	Token    string `mapstructure:"token"`
}

type PollerConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type LabelsConfig struct {
	Starting   string `mapstructure:"starting"`
	Started    string `mapstructure:"started"`
	ViewResult string `mapstructure:"view_result"`
}

type RenderConfig struct {
	ResultPathPrefix string `mapstructure:"result_path_prefix"`
}

type LoggerConfig struct {
	Level            string   `mapstructure:"level"`
	Encoding         string   `mapstructure:"encoding"`
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// ServerConfig is only used by the development server.
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	StaticDir      string        `mapstructure:"static_dir"`
	Upstream       string        `mapstructure:"upstream"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestLogging bool          `mapstructure:"request_logging"`
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:5000")
	v.SetDefault("api.timeout", time.Duration(0))
	v.SetDefault("api.user_agent", "TaskMonitor")

	v.SetDefault("csrf.enabled", false)
	v.SetDefault("csrf.meta_name", "csrf-token")
	v.SetDefault("csrf.header", "X-CSRFToken")
	v.SetDefault("csrf.token", "")

	v.SetDefault("poller.interval", 10*time.Second)

	v.SetDefault("labels.starting", "Starting...")
	v.SetDefault("labels.started", "Started")
	v.SetDefault("labels.view_result", "View result")

	v.SetDefault("render.result_path_prefix", "/results/")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.output_paths", []string{"stderr"})
	v.SetDefault("logger.error_output_paths", []string{"stderr"})

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.static_dir", "./web")
	v.SetDefault("server.upstream", "http://localhost:5000")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.request_logging", true)
}

// New returns a viper instance with defaults and environment overrides
// applied. Callers may bind flags to it before calling Decode.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return v, nil
}

func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load reads the optional config file at path. An empty path yields the
// defaults plus TASKMONITOR_* environment overrides.
func Load(path string) (*Config, error) {
	v, err := New(path)
	if err != nil {
		return nil, err
	}
	return Decode(v)
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.Poller.Interval <= 0 {
		return fmt.Errorf("poller.interval must be positive")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	return nil
}
