package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkarev/pdf2html/internal/region"
)

// Config holds everything a conversion run needs: detection parameters plus
// rendering, OCR and output settings.
type Config struct {
	Detection region.Params `yaml:"detection"`

	DPI         int    `yaml:"dpi"`
	ImageFormat string `yaml:"image_format"`
	OutputDir   string `yaml:"output_dir"`
	Lang        string `yaml:"lang"`
	Workers     int    `yaml:"workers"`
	Visualize   bool   `yaml:"visualize"`
}

// Default returns the standard configuration. Workers of 0 means "decide at
// runtime from CPU and memory".
func Default() *Config {
	return &Config{
		Detection:   region.DefaultParams(),
		DPI:         300,
		ImageFormat: "png",
		OutputDir:   "output",
		Lang:        "eng",
		Workers:     0,
		Visualize:   false,
	}
}

// Load reads a YAML config file over the defaults, so partial files only
// override what they mention.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config as YAML.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
