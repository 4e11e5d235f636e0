package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	MaxCategories   int       `mapstructure:"max_categories" yaml:"max_categories"`
	HistogramBins   int       `mapstructure:"histogram_bins" yaml:"histogram_bins"`
	SampleQuantiles []float64 `mapstructure:"sample_quantiles" yaml:"sample_quantiles"`
	ReportTitle     string    `mapstructure:"report_title" yaml:"report_title"`
	MaxRows         int       `mapstructure:"max_rows" yaml:"max_rows"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.datasight/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".datasight")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DATASIGHT")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("max_categories", 10)
	v.SetDefault("histogram_bins", 20)
	v.SetDefault("sample_quantiles", []float64{0.25, 0.5, 0.75})
	v.SetDefault("report_title", "Data Analysis Report")
	v.SetDefault("max_rows", 100000)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".datasight")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.MaxCategories < 1 {
		c.MaxCategories = 1
	}
	if c.HistogramBins < 1 {
		c.HistogramBins = 1
	}
	return &c, nil
}
