package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSourceURL is the ISBN International range message export.
const DefaultSourceURL = "https://www.isbn-international.org/export_rangemessage.xml"

const (
	defaultWorkers        = 4
	defaultTimeoutSeconds = 60
	maxWorkers            = 64
)

type Config struct {
	SourceURL      string `yaml:"source_url"`
	TablePath      string `yaml:"table_path"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Workers        int    `yaml:"workers"`
	Debug          bool   `yaml:"debug"`
	LogFormat      string `yaml:"log_format"`

	UserAgent        string `yaml:"user_agent"`
	Cookie           string `yaml:"cookie"`
	CookieFile       string `yaml:"cookie_file"`
	BypassCloudflare bool   `yaml:"bypass_cloudflare"`
}

// Options are CLI flag values; non-zero fields override the loaded config.
type Options struct {
	IgnoreConfig bool
	Debug        bool
	SourceURL    string
	TablePath    string
	Workers      int
	LogFormat    string
	UserAgent    string
	Cookie       string
	CookieFile   string
}

func DefaultConfig() *Config {
	return &Config{
		SourceURL:        DefaultSourceURL,
		TablePath:        "",
		TimeoutSeconds:   defaultTimeoutSeconds,
		Workers:          defaultWorkers,
		Debug:            false,
		LogFormat:        "console",
		UserAgent:        "",
		Cookie:           "",
		CookieFile:       "",
		BypassCloudflare: true,
	}
}

// Timeout is TimeoutSeconds as a duration; zero disables the client timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadMerged loads the active profile (or defaults), applies opts and
// validates the result. The second return value describes where the config
// came from.
func LoadMerged(opts Options) (*Config, string, error) {
	var (
		cfg  *Config
		used string
	)

	activePath, err := ActiveConfigPath()
	switch {
	case opts.IgnoreConfig:
		cfg, used = DefaultConfig(), "(ignored config)"
	case errors.Is(err, ErrNoConfig) || activePath == "":
		cfg, used = DefaultConfig(), "(default config in memory)\nRun `isbnrange config init` to create an actual config\n"
	case err != nil:
		return nil, "", err
	default:
		cfg, err = loadYAML(activePath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
		}
		used = activePath
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid config %s: %w", strings.TrimSpace(used), err)
	}

	return cfg, used, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Debug {
		c.Debug = true
	}
	if o.SourceURL != "" {
		c.SourceURL = o.SourceURL
	}
	if o.TablePath != "" {
		c.TablePath = o.TablePath
	}
	if o.Workers != 0 {
		c.Workers = o.Workers
	}
	if o.LogFormat != "" {
		c.LogFormat = o.LogFormat
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
}

func normalizeDefaults(c *Config) {
	if strings.TrimSpace(c.SourceURL) == "" {
		c.SourceURL = DefaultSourceURL
	}
	if strings.TrimSpace(c.TablePath) == "" {
		c.TablePath = DefaultTablePath()
	}
	c.TablePath = expandHome(c.TablePath)
	c.CookieFile = expandHome(c.CookieFile)
	if c.Workers == 0 {
		c.Workers = defaultWorkers
	}
	if c.LogFormat == "" {
		c.LogFormat = "console"
	}
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.SourceURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("source_url must be an absolute http(s) URL, got %q", c.SourceURL)
	}
	if c.Workers < 1 || c.Workers > maxWorkers {
		return fmt.Errorf("workers must be between 1 and %d, got %d", maxWorkers, c.Workers)
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative, got %d", c.TimeoutSeconds)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be console or json, got %q", c.LogFormat)
	}

	return nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}

	return p
}

func (c *Config) Print() {
	fmt.Printf(" -source_url: %s\n", c.SourceURL)
	fmt.Printf(" -table_path: %s\n", c.TablePath)
	fmt.Printf(" -timeout_seconds: %d\n", c.TimeoutSeconds)
	fmt.Printf(" -workers: %d\n", c.Workers)
	fmt.Printf(" -log_format: %s\n", c.LogFormat)
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
	if c.CookieFile != "" {
		fmt.Printf(" -cookie_file: %s\n", c.CookieFile)
	}
	fmt.Printf(" -bypass_cloudflare: %t\n", c.BypassCloudflare)
}
