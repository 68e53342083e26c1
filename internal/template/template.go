package template

import (
	"bytes"
	"crypto/tls"
	_ "embed"
	"fmt"
	htmltemplate "html/template"
	"os"
	"path/filepath"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/optimald/webevo-report-gen/internal/report"
	"github.com/optimald/webevo-report-gen/pkg/shared/config"
)

//go:embed report.html
var builtinTemplate string

// Template is the rendering target: it consumes a ReportModel and produces
// the markup handed to the render engine. The markup exposes the two dynamic
// regions the readiness protocol polls.
type Template struct {
	tmpl *htmltemplate.Template
}

// pageData wraps the model with the payload the template's script consumes.
type pageData struct {
	*report.ReportModel
	Dynamic dynamicData
}

type dynamicData struct {
	Opportunities []string `json:"opportunities"`
	Warnings      []string `json:"warnings"`
}

// New resolves the template source in order: remote URL, templates folder,
// built-in fallback.
func New(cfg *config.Config, logger hclog.Logger) (*Template, error) {
	source := builtinTemplate

	switch {
	case cfg.Reports.TemplateURL != "":
		remote, err := fetchRemote(cfg.Reports.TemplateURL, cfg.HTTPClient)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch template from %q: %w", cfg.Reports.TemplateURL, err)
		}
		logger.Info("loaded report template", "source", cfg.Reports.TemplateURL)
		source = remote

	default:
		path := filepath.Join(cfg.Reports.TemplatesFolder, "report.html")
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			logger.Info("loaded report template", "source", path)
			source = string(data)
		case os.IsNotExist(err):
			logger.Debug("no template file found, using built-in template", "path", path)
		default:
			return nil, fmt.Errorf("failed to read template %q: %w", path, err)
		}
	}

	tmpl, err := htmltemplate.New("report.html").
		Funcs(htmltemplate.FuncMap{
			"moduleIcon": func(key string) htmltemplate.HTML {
				return htmltemplate.HTML(report.ModuleIcon(key))
			},
			"moduleDescription": report.ModuleDescription,
		}).
		Parse(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}
	return &Template{tmpl: tmpl}, nil
}

// Render produces the report markup for a model.
func (t *Template) Render(model *report.ReportModel) (string, error) {
	data := pageData{
		ReportModel: model,
		Dynamic: dynamicData{
			Opportunities: model.TopRecommendations,
		},
	}
	for _, module := range model.Modules {
		data.Dynamic.Warnings = append(data.Dynamic.Warnings, module.Issues...)
	}
	if len(data.Dynamic.Opportunities) == 0 {
		for _, module := range model.Modules {
			data.Dynamic.Opportunities = append(data.Dynamic.Opportunities, module.Recommendations...)
		}
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render report template: %w", err)
	}
	return buf.String(), nil
}

// fetchRemote downloads a template over HTTP with the shared client settings.
func fetchRemote(templateURL string, httpCfg config.HTTPClient) (string, error) {
	client := resty.New().
		SetDebug(httpCfg.Debug).
		SetRetryCount(httpCfg.RetryCount).
		SetRetryWaitTime(httpCfg.RetryWaitTime.Std()).
		SetRetryMaxWaitTime(httpCfg.RetryMaxWaitTime.Std()).
		SetTimeout(httpCfg.Timeout.Std()).
		SetTLSClientConfig(&tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: !httpCfg.TLSClientConfig.Verify,
		})

	resp, err := client.R().Get(templateURL)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("unexpected status %s", resp.Status())
	}
	return resp.String(), nil
}
