package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vango-dev/miniframe/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "miniframe.json"

	// DefaultRootID is the id of the mount point element.
	DefaultRootID = "root"

	// DefaultRoute is the route name used for an empty fragment.
	DefaultRoute = "home"

	// DefaultPort is the default preview server port.
	DefaultPort = 3000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultRegion is the default AWS region for publish.
	DefaultRegion = "us-east-1"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default log format.
	DefaultLogFormat = "text"
)

// Config represents the complete miniframe.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Mount configures the host page and mount point.
	Mount MountConfig `json:"mount,omitempty"`

	// Router configures hash routing.
	Router RouterConfig `json:"router,omitempty"`

	// Preview configures the preview server.
	Preview PreviewConfig `json:"preview,omitempty"`

	// Publish configures bundle uploads.
	Publish PublishConfig `json:"publish,omitempty"`

	// Log configures logging.
	Log LogConfig `json:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// MountConfig configures the host page.
type MountConfig struct {
	// RootID is the id of the mount point element (default: "root").
	RootID string `json:"rootId,omitempty"`

	// Title is the host page title.
	Title string `json:"title,omitempty"`
}

// RouterConfig configures the hash router.
type RouterConfig struct {
	// DefaultRoute is the route for an empty fragment (default: "home").
	DefaultRoute string `json:"defaultRoute,omitempty"`

	// InitialHash is the fragment the render command starts from.
	InitialHash string `json:"initialHash,omitempty"`
}

// PreviewConfig contains preview server settings.
type PreviewConfig struct {
	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Metrics enables the /metrics endpoint.
	Metrics *bool `json:"metrics,omitempty"`
}

// PublishConfig contains bundle upload settings.
type PublishConfig struct {
	// Bucket is the destination S3 bucket.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is prepended to every object key.
	Prefix string `json:"prefix,omitempty"`

	// Region is the bucket region.
	Region string `json:"region,omitempty"`

	// CacheControl is set on every uploaded object.
	CacheControl string `json:"cacheControl,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	enabled := true
	return &Config{
		Mount: MountConfig{
			RootID: DefaultRootID,
			Title:  "TodoMVC",
		},
		Router: RouterConfig{
			DefaultRoute: DefaultRoute,
		},
		Preview: PreviewConfig{
			Port:    DefaultPort,
			Host:    DefaultHost,
			Metrics: &enabled,
		},
		Publish: PublishConfig{
			Region: DefaultRegion,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for miniframe.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadOrDefault is Load, except that a directory without miniframe.json
// yields the defaults.
func LoadOrDefault(dir string) (*Config, error) {
	if !Exists(dir) {
		return New(), nil
	}
	return Load(dir)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigParse).
				WithDetail("No miniframe.json found in " + filepath.Dir(path)).
				WithSuggestion("Create miniframe.json or omit --config to use the defaults")
		}
		return nil, errors.New(errors.CodeConfigParse).Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(errors.CodeConfigParse).
			WithDetail("Failed to parse miniframe.json: " + err.Error()).
			WithSuggestion("Check that miniframe.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New(errors.CodeConfigParse).Wrap(err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.CodeConfigParse).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Mount.RootID == "" {
		c.Mount.RootID = DefaultRootID
	}
	if c.Router.DefaultRoute == "" {
		c.Router.DefaultRoute = DefaultRoute
	}
	if c.Preview.Port == 0 {
		c.Preview.Port = DefaultPort
	}
	if c.Preview.Host == "" {
		c.Preview.Host = DefaultHost
	}
	if c.Preview.Metrics == nil {
		enabled := true
		c.Preview.Metrics = &enabled
	}
	if c.Publish.Region == "" {
		c.Publish.Region = DefaultRegion
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("preview.port must be between 0 and 65535")
	}
	if strings.ContainsAny(c.Mount.RootID, " \t\n#") {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("mount.rootId must not contain whitespace or '#'")
	}
	if strings.Contains(c.Router.DefaultRoute, "/") {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("router.defaultRoute is a route name and must not contain '/'")
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("log.level must be one of debug, info, warn, error")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("log.format must be text or json")
	}
	return nil
}

// PreviewAddress returns the address string for the preview server.
func (c *Config) PreviewAddress() string {
	return c.Preview.Host + ":" + strconv.Itoa(c.Preview.Port)
}

// PreviewURL returns the full URL for the preview server.
func (c *Config) PreviewURL() string {
	return "http://" + c.PreviewAddress()
}

// MetricsEnabled reports whether the preview server exposes /metrics.
func (c *Config) MetricsEnabled() bool {
	return c.Preview.Metrics == nil || *c.Preview.Metrics
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}
