package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/edaexport/internal/utils"
)

// Global configuration structure.
type Global struct {
	OutputDir     string `mapstructure:"output_dir" yaml:"output_dir"`
	DefaultFormat string `mapstructure:"default_format" yaml:"default_format"`
	PageNumbers   bool   `mapstructure:"page_numbers" yaml:"page_numbers"`

	// Branding printed on the cover, footer and closing page.
	Title     string `mapstructure:"title" yaml:"title"`
	Subtitle  string `mapstructure:"subtitle" yaml:"subtitle"`
	Product   string `mapstructure:"product" yaml:"product"`
	Version   string `mapstructure:"version" yaml:"version"`
	Copyright string `mapstructure:"copyright" yaml:"copyright"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{
	"output_dir", "default_format", "page_numbers",
	"title", "subtitle", "product", "version", "copyright",
}

// DefaultPath returns ~/.edaexport/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".edaexport", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.edaexport/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("EDAEXPORT")
	v.AutomaticEnv()

	v.SetDefault("output_dir", ".")
	v.SetDefault("default_format", "all")
	v.SetDefault("page_numbers", true)
	v.SetDefault("title", "RAPPORT D'ANALYSE EDA")
	v.SetDefault("subtitle", "Analyse Exploratoire des Données")
	v.SetDefault("product", "EDA-Desk PRO")
	v.SetDefault("version", "Version 4.0 Professional Edition")
	v.SetDefault("copyright", "© 2024 EDA-Desk - Tous droits réservés")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(p))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.DefaultFormat = strings.ToLower(strings.TrimSpace(c.DefaultFormat))
	return &c, nil
}

// Set assigns value to key, parsing it for non-string fields.
func (c *Global) Set(key, value string) error {
	switch key {
	case "output_dir":
		c.OutputDir = value
	case "default_format":
		switch f := strings.ToLower(value); f {
		case "docx", "pdf", "all":
			c.DefaultFormat = f
		default:
			return fmt.Errorf("default_format must be docx, pdf or all, got %q", value)
		}
	case "page_numbers":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("page_numbers: %w", err)
		}
		c.PageNumbers = b
	case "title":
		c.Title = value
	case "subtitle":
		c.Subtitle = value
	case "product":
		c.Product = value
	case "version":
		c.Version = value
	case "copyright":
		c.Copyright = value
	default:
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}

// Get returns the display value of key.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "output_dir":
		return c.OutputDir, nil
	case "default_format":
		return c.DefaultFormat, nil
	case "page_numbers":
		return strconv.FormatBool(c.PageNumbers), nil
	case "title":
		return c.Title, nil
	case "subtitle":
		return c.Subtitle, nil
	case "product":
		return c.Product, nil
	case "version":
		return c.Version, nil
	case "copyright":
		return c.Copyright, nil
	}
	return "", fmt.Errorf("unknown config key %q", key)
}
