package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	Logger     Logger     `yaml:"logger"`
	Reports    Reports    `yaml:"reports"`
	Render     Render     `yaml:"render"`
	HTTPClient HTTPClient `yaml:"http_client"`
	Publish    Publish    `yaml:"publish"`
}

type Logger struct {
	Level string `yaml:"level"`
}

// Reports holds the folder layout and artifact options of the pipeline.
type Reports struct {
	WatchFolder     string   `yaml:"watch_folder"`
	OutputFolder    string   `yaml:"output_folder"`
	TemplatesFolder string   `yaml:"templates_folder"`
	TemplateURL     string   `yaml:"template_url"`
	Formats         []string `yaml:"formats"`
	BrandSuffix     string   `yaml:"brand_suffix"`
	Debounce        Duration `yaml:"debounce"`
}

// Render holds the readiness protocol knobs for the render engine.
type Render struct {
	PrimarySelector   string   `yaml:"primary_selector"`
	SecondarySelector string   `yaml:"secondary_selector"`
	PrimaryTimeout    Duration `yaml:"primary_timeout"`
	SecondaryTimeout  Duration `yaml:"secondary_timeout"`
	FallbackDelay     Duration `yaml:"fallback_delay"`
	SettleDelay       Duration `yaml:"settle_delay"`
	Page              Page     `yaml:"page"`
}

// Page describes the paginated capture geometry in inches.
type Page struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"`
}

type HTTPClient struct {
	Debug            bool            `yaml:"debug"`
	RetryCount       int             `yaml:"retry_count"`
	RetryWaitTime    Duration        `yaml:"retry_wait_time"`
	RetryMaxWaitTime Duration        `yaml:"retry_max_wait_time"`
	Timeout          Duration        `yaml:"timeout"`
	TLSClientConfig  TLSClientConfig `yaml:"tls_client_config"`
}

type TLSClientConfig struct {
	Verify bool `yaml:"verify"`
}

type Publish struct {
	S3 S3 `yaml:"s3"`
}

type S3 struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
	Region string `yaml:"region"`
}

// Duration wraps time.Duration so YAML values like "15s" decode directly.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// NewConfig loads the YAML config file at configPath. A missing file is not an
// error; the defaults applied by ValidateConfig describe a complete setup.
func NewConfig(configPath string) (*Config, error) {
	config := &Config{}

	if err := LoadYAML(configPath, config); err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	return config, nil
}
