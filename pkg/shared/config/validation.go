package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/optimald/webevo-report-gen/pkg/shared/files"
)

// Default readiness protocol values. The selectors point at the two
// script-populated regions of the report template.
const (
	DefaultPrimarySelector   = "#opportunities-list > div"
	DefaultSecondarySelector = "#warnings-list > div"
	DefaultBrandSuffix       = "webevo-ai"
)

// ValidateConfig checks the global configuration, applies defaults and makes
// sure the configured folders exist.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := validateReportsConfig(&cfg.Reports); err != nil {
		return fmt.Errorf("YAML global config: reports directive is invalid: %w", err)
	}
	if err := validateRenderConfig(&cfg.Render); err != nil {
		return fmt.Errorf("YAML global config: render directive is invalid: %w", err)
	}
	if err := validateHTTPConfig(&cfg.HTTPClient); err != nil {
		return fmt.Errorf("YAML global config: http_client directive is invalid: %w", err)
	}
	return nil
}

func validateReportsConfig(cfg *Reports) error {
	if err := updateFolder(&cfg.WatchFolder, "WEBEVO_WATCH_FOLDER", "reports-raw"); err != nil {
		return fmt.Errorf("failed to update watch folder: %w", err)
	}
	if err := updateFolder(&cfg.OutputFolder, "WEBEVO_OUTPUT_FOLDER", "reports-final"); err != nil {
		return fmt.Errorf("failed to update output folder: %w", err)
	}
	if cfg.TemplatesFolder == "" {
		cfg.TemplatesFolder = "templates"
	}
	expanded, err := files.ExpandPath(cfg.TemplatesFolder)
	if err != nil {
		return fmt.Errorf("failed to expand templates folder %q: %w", cfg.TemplatesFolder, err)
	}
	cfg.TemplatesFolder = expanded

	if cfg.TemplateURL != "" {
		u, err := url.Parse(cfg.TemplateURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("template_url must be an http(s) URL: %q", cfg.TemplateURL)
		}
	}

	if len(cfg.Formats) == 0 {
		cfg.Formats = []string{"png"}
	}
	for _, format := range cfg.Formats {
		if format != "png" && format != "pdf" {
			return fmt.Errorf("unsupported report format %q, expected png or pdf", format)
		}
	}

	if cfg.BrandSuffix == "" {
		cfg.BrandSuffix = DefaultBrandSuffix
	}
	if cfg.Debounce == 0 {
		cfg.Debounce = Duration(1 * time.Second)
	}
	return validateDuration(cfg.Debounce.Std(), "debounce", 1*time.Minute)
}

func validateRenderConfig(cfg *Render) error {
	if cfg.PrimarySelector == "" {
		cfg.PrimarySelector = DefaultPrimarySelector
	}
	if cfg.SecondarySelector == "" {
		cfg.SecondarySelector = DefaultSecondarySelector
	}
	if cfg.PrimaryTimeout == 0 {
		cfg.PrimaryTimeout = Duration(15 * time.Second)
	}
	if cfg.SecondaryTimeout == 0 {
		cfg.SecondaryTimeout = Duration(10 * time.Second)
	}
	if cfg.FallbackDelay == 0 {
		cfg.FallbackDelay = Duration(5 * time.Second)
	}
	if cfg.SettleDelay == 0 {
		cfg.SettleDelay = Duration(2 * time.Second)
	}

	durations := map[string]time.Duration{
		"primary_timeout":   cfg.PrimaryTimeout.Std(),
		"secondary_timeout": cfg.SecondaryTimeout.Std(),
		"fallback_delay":    cfg.FallbackDelay.Std(),
		"settle_delay":      cfg.SettleDelay.Std(),
	}
	for name, duration := range durations {
		if err := validateDuration(duration, name, 5*time.Minute); err != nil {
			return err
		}
	}

	// A4 portrait with a uniform margin on all sides.
	if cfg.Page.Width == 0 {
		cfg.Page.Width = 8.27
	}
	if cfg.Page.Height == 0 {
		cfg.Page.Height = 11.69
	}
	if cfg.Page.Margin == 0 {
		cfg.Page.Margin = 0.4
	}
	if cfg.Page.Width < 0 || cfg.Page.Height < 0 || cfg.Page.Margin < 0 {
		return fmt.Errorf("page geometry cannot be negative")
	}
	return nil
}

func validateHTTPConfig(httpConfig *HTTPClient) error {
	if httpConfig == nil {
		return fmt.Errorf("HTTP configuration is nil")
	}
	if httpConfig.RetryCount < 0 || httpConfig.RetryCount > 20 {
		return fmt.Errorf("retry_count must be between 0 and 20: %d", httpConfig.RetryCount)
	}

	durations := map[string]time.Duration{
		"RetryMaxWaitTime": httpConfig.RetryMaxWaitTime.Std(),
		"RetryWaitTime":    httpConfig.RetryWaitTime.Std(),
		"Timeout":          httpConfig.Timeout.Std(),
	}
	for name, duration := range durations {
		if err := validateDuration(duration, name, 100*time.Second); err != nil {
			return err
		}
	}

	return nil
}

// validateDuration checks that a time.Duration is valid and within a specified maximum duration.
func validateDuration(d time.Duration, name string, max time.Duration) error {
	if d < 0 {
		return fmt.Errorf("invalid duration for %q: %v cannot be negative", name, d)
	}
	if d > max {
		return fmt.Errorf("%q duration is too long: %v exceeds maximum of %v", name, d, max)
	}
	return nil
}

// updateFolder resolves a pipeline folder from the environment or a default,
// expands it and creates it when missing.
func updateFolder(folder *string, envVar, defaultFolder string) error {
	if envVarValue := strings.TrimSpace(os.Getenv(envVar)); envVarValue != "" {
		*folder = envVarValue
	} else if *folder == "" {
		*folder = defaultFolder
	}

	expandedPath, err := files.ExpandPath(*folder)
	if err != nil {
		return fmt.Errorf("failed to expand path %q: %w", *folder, err)
	}
	*folder = expandedPath

	if err := files.CreateFolderIfNotExists(expandedPath); err != nil {
		return fmt.Errorf("failed to create folder %q: %w", expandedPath, err)
	}
	return nil
}
