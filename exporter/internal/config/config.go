package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultHTTPPort     = 8000
	DefaultTimeout      = 10 * time.Second
	DefaultReplacements = "replacements.json"
)

// Config is the top-level exporter configuration.
type Config struct {
	Nextcloud NextcloudConfig `yaml:"nextcloud"`
	Exporter  ExporterConfig  `yaml:"exporter"`

	// path is the file the config was loaded from.
	path string
}

// NextcloudConfig describes the monitored instance's status page.
type NextcloudConfig struct {
	// URL is the full serverinfo endpoint, e.g.
	// https://cloud.example.com/ocs/v2.php/apps/serverinfo/api/v1/info
	URL string `yaml:"url"`

	// Username is the admin user used for basic auth.
	Username string `yaml:"username"`

	// PlainPassword is the literal basic-auth password. Prefer PasswordEnv.
	PlainPassword string `yaml:"password"`

	// PasswordEnv is the name of the environment variable that holds the
	// password. When set and non-empty it takes precedence over PlainPassword.
	PasswordEnv string `yaml:"password_env"`

	// Timeout bounds one status page request, connect through body.
	Timeout time.Duration `yaml:"timeout"`

	// TLS holds optional TLS dial options.
	TLS TLSConfig `yaml:"tls"`
}

// Password returns the basic-auth password, resolved from the environment
// when PasswordEnv names a set variable.
func (n NextcloudConfig) Password() string {
	if n.PasswordEnv != "" {
		if v := os.Getenv(n.PasswordEnv); v != "" {
			return v
		}
	}
	return n.PlainPassword
}

// TLSConfig holds TLS dial options for the status page.
type TLSConfig struct {
	// InsecureSkipVerify disables TLS certificate verification.
	// Only use this for internal CAs in development environments.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`
}

// ExporterConfig holds the exporter's own settings.
type ExporterConfig struct {
	// HTTPPort is the port the metrics endpoint listens on.
	HTTPPort int `yaml:"http_port"`

	// Replacements is the path of the JSON replacement table. Relative paths
	// are resolved against the config file's directory.
	Replacements string `yaml:"replacements"`

	// WatchReplacements reloads the replacement table when the file changes.
	WatchReplacements bool `yaml:"watch_replacements"`
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.path = path
	if cfg.Exporter.Replacements != "" && !filepath.IsAbs(cfg.Exporter.Replacements) {
		cfg.Exporter.Replacements = filepath.Join(filepath.Dir(path), cfg.Exporter.Replacements)
	}

	return cfg, nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string { return c.path }

// Warnings returns operator hints about settings that leave the exporter
// running but unable to produce metrics.
func (c *Config) Warnings() []string {
	var w []string
	if c.Nextcloud.Username == "" || c.Nextcloud.Password() == "" {
		w = append(w, "nextcloud user credentials are empty")
	}
	if c.Nextcloud.URL == "" {
		w = append(w, "nextcloud status page url is empty")
	}
	if c.Exporter.Replacements == "" {
		w = append(w, "no replacement file configured, non-numeric values will be dropped")
	}
	return w
}

// String renders the config for logs with the password masked.
func (c *Config) String() string {
	pw := ""
	if c.Nextcloud.Password() != "" {
		pw = "*****"
	}
	return fmt.Sprintf("url=%q user=%q password=%q replacements=%q http_port=%d",
		c.Nextcloud.URL, c.Nextcloud.Username, pw,
		c.Exporter.Replacements, c.Exporter.HTTPPort)
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Nextcloud: NextcloudConfig{
			Timeout: DefaultTimeout,
		},
		Exporter: ExporterConfig{
			HTTPPort:     DefaultHTTPPort,
			Replacements: DefaultReplacements,
		},
	}
}

// validate checks structural constraints. Empty credentials are reported by
// Warnings instead.
func validate(cfg *Config) error {
	if cfg.Exporter.HTTPPort <= 0 || cfg.Exporter.HTTPPort > 65535 {
		return fmt.Errorf("exporter.http_port %d is out of range [1, 65535]", cfg.Exporter.HTTPPort)
	}
	if cfg.Nextcloud.Timeout <= 0 {
		return fmt.Errorf("nextcloud.timeout must be positive")
	}
	if cfg.Nextcloud.URL != "" {
		u, err := url.Parse(cfg.Nextcloud.URL)
		if err != nil {
			return fmt.Errorf("nextcloud.url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("nextcloud.url %q: scheme must be http or https", cfg.Nextcloud.URL)
		}
	}
	return nil
}
