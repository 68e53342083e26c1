package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/optimald/webevo-report-gen/internal/artifact"
	"github.com/optimald/webevo-report-gen/internal/publish"
	"github.com/optimald/webevo-report-gen/internal/render"
	"github.com/optimald/webevo-report-gen/internal/report"
	"github.com/optimald/webevo-report-gen/internal/template"
	"github.com/optimald/webevo-report-gen/pkg/shared/config"
	"github.com/optimald/webevo-report-gen/pkg/shared/files"
)

// Generator turns one scan record file into its rendered artifacts. It owns
// the build and render stages the pipeline sequences per job.
type Generator struct {
	cfg        *config.Config
	logger     hclog.Logger
	builder    *report.Builder
	template   *template.Template
	controller *render.Controller
	namer      *artifact.Namer
	publisher  publish.Publisher
}

// NewGenerator wires the builder, template surface and readiness controller
// from the configuration. engine is the render engine to drive; publisher
// may be nil.
func NewGenerator(cfg *config.Config, engine render.Engine, publisher publish.Publisher, logger hclog.Logger) (*Generator, error) {
	tmpl, err := template.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	opts := render.Options{
		PrimarySelector:   cfg.Render.PrimarySelector,
		SecondarySelector: cfg.Render.SecondarySelector,
		PrimaryTimeout:    cfg.Render.PrimaryTimeout.Std(),
		SecondaryTimeout:  cfg.Render.SecondaryTimeout.Std(),
		FallbackDelay:     cfg.Render.FallbackDelay.Std(),
		SettleDelay:       cfg.Render.SettleDelay.Std(),
		PDF: render.PDFOptions{
			PaperWidth:        cfg.Render.Page.Width,
			PaperHeight:       cfg.Render.Page.Height,
			Margin:            cfg.Render.Page.Margin,
			PrintBackground:   true,
			PreferCSSPageSize: true,
		},
	}

	return &Generator{
		cfg:        cfg,
		logger:     logger,
		builder:    report.NewBuilder(logger),
		template:   tmpl,
		controller: render.NewController(engine, opts, logger),
		namer:      artifact.NewNamer(cfg.Reports.BrandSuffix),
		publisher:  publisher,
	}, nil
}

// Build parses and validates the scan record at path.
func (g *Generator) Build(path string) (*report.ReportModel, error) {
	return g.builder.BuildFile(path)
}

// Render drives the engine for a built model and writes one artifact per
// configured format into the output folder, returning the written paths.
func (g *Generator) Render(ctx context.Context, model *report.ReportModel) ([]string, error) {
	html, err := g.template.Render(model)
	if err != nil {
		return nil, err
	}

	formats := make([]render.Format, 0, len(g.cfg.Reports.Formats))
	for _, format := range g.cfg.Reports.Formats {
		formats = append(formats, render.Format(format))
	}

	captured, err := g.controller.Capture(ctx, html, formats)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, format := range formats {
		name := g.namer.Name(model.Domain, model.GeneratedAt, string(format))
		outputPath := filepath.Join(g.cfg.Reports.OutputFolder, name)
		if err := files.WriteFile(outputPath, captured[format]); err != nil {
			return nil, fmt.Errorf("failed to write artifact %q: %w", outputPath, err)
		}
		g.logger.Info("generated report artifact", "path", outputPath)
		written = append(written, outputPath)

		if g.publisher != nil {
			if err := g.publisher.Publish(ctx, name, captured[format]); err != nil {
				return nil, err
			}
		}
	}
	return written, nil
}

// Generate runs the build and render stages for one input file. Used by the
// one-shot mode that bypasses the watch loop.
func (g *Generator) Generate(ctx context.Context, inputPath string) ([]string, error) {
	model, err := g.Build(inputPath)
	if err != nil {
		return nil, err
	}
	return g.Render(ctx, model)
}
