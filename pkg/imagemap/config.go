package imagemap

import (
	"os"

	"github.com/BurntSushi/toml"

	"spellmap/pkg/errors"
)

// Config is an on-disk filter configuration:
//
//	base_url = "https://wiki.example.org/"
//	exclude = ['^Legend$', '●']
//
// An absent exclude list keeps the default patterns; an empty one disables
// filtering entirely.
type Config struct {
	Exclude []string `toml:"exclude"`
	BaseURL string   `toml:"base_url"`
}

// LoadConfig reads a TOML filter configuration from disk.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "filter file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read filter file %s", path)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFilter, err, "parse filter file %s", path)
	}
	return &cfg, nil
}

// Filter compiles the configured exclusion patterns. A nil config or absent
// exclude list falls back to DefaultFilter.
func (c *Config) Filter() (*Filter, error) {
	if c == nil || c.Exclude == nil {
		return DefaultFilter(), nil
	}
	return NewFilter(c.Exclude)
}

// ResolveBaseURL returns the configured base URL, or DefaultBaseURL when
// unset.
func (c *Config) ResolveBaseURL() string {
	if c == nil || c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}
