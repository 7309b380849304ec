package bot

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/backostech/postcardbot/bot/i18n"
	coreconfig "github.com/backostech/postcardbot/core/config"
	"github.com/backostech/postcardbot/core/database"
)

// Settings holds bot-specific configuration on top of the core sections.
type Settings struct {
	// Superusers are Telegram ids that are treated as superusers regardless
	// of the stored flag.
	Superusers    []int64         `yaml:"superusers" envconfig:"BOT_SUPERUSERS"`
	Languages     []i18n.Language `yaml:"languages"`
	DefaultLocale string          `yaml:"default_locale" envconfig:"BOT_DEFAULT_LOCALE"`
}

// IsSuperuser reports whether id is on the configured allow-list.
func (s Settings) IsSuperuser(id int64) bool {
	for _, su := range s.Superusers {
		if su == id {
			return true
		}
	}
	return false
}

// Config aggregates core, database, and bot configuration from one file.
type Config struct {
	Core     coreconfig.Config `yaml:",inline"`
	Database database.Config   `yaml:"database"`
	Bot      Settings          `yaml:"bot"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Core
}

// LoadConfig reads configuration from a YAML file and environment variables.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if err := normalizeSettings(&cfg.Bot); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalizeSettings(s *Settings) error {
	if len(s.Languages) == 0 {
		s.Languages = i18n.DefaultLanguages()
	}
	if strings.TrimSpace(s.DefaultLocale) == "" {
		s.DefaultLocale = i18n.DefaultLocale
	}
	s.DefaultLocale = strings.ToLower(strings.TrimSpace(s.DefaultLocale))

	for _, lang := range s.Languages {
		if lang.Code == s.DefaultLocale {
			return nil
		}
	}
	return fmt.Errorf("bot.default_locale %q is not among bot.languages", s.DefaultLocale)
}
