package generate

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/optimald/webevo-report-gen/internal/pipeline"
	"github.com/optimald/webevo-report-gen/internal/publish"
	"github.com/optimald/webevo-report-gen/internal/render"
	"github.com/optimald/webevo-report-gen/pkg/shared/config"
	"github.com/optimald/webevo-report-gen/pkg/shared/files"
	"github.com/optimald/webevo-report-gen/pkg/shared/logger"
)

// GenerateOptions holds the arguments for the generate command.
type GenerateOptions struct {
	InputFile string
}

// AppConfig holds the global configuration, set by the root command.
var AppConfig *config.Config

var generateOptions GenerateOptions

var execExampleGenerate = `  # Render a report for a single scan record, bypassing the watch loop
  webevo-report-gen generate --input /path/to/scan.json

  # The record may also be given as a positional argument
  webevo-report-gen generate /path/to/scan.json`

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// GenerateCmd renders exactly one report from a scan record file.
var GenerateCmd = &cobra.Command{
	Use:                   "generate {--input/-i PATH | PATH}",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               execExampleGenerate,
	Short:                 "Render a report for a single scan record",
	RunE:                  runGenerateCommand,
}

func runGenerateCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core")
	logger.Info("generate called")

	inputFile := generateOptions.InputFile
	if inputFile == "" && len(args) > 0 {
		inputFile = args[0]
	}
	if inputFile == "" {
		return fmt.Errorf("an input scan record is required, pass --input or a positional path")
	}
	if err := files.ValidatePath(inputFile); err != nil {
		return fmt.Errorf("invalid input file: %w", err)
	}

	var publisher publish.Publisher
	if AppConfig.Publish.S3.Bucket != "" {
		s3Publisher, err := publish.NewS3Publisher(AppConfig.Publish.S3, logger)
		if err != nil {
			return err
		}
		publisher = s3Publisher
	}

	engine := render.NewChromeEngine(logger)
	generator, err := pipeline.NewGenerator(AppConfig, engine, publisher, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	artifacts, err := generator.Generate(ctx, inputFile)
	if err != nil {
		return err
	}
	for _, artifact := range artifacts {
		logger.Info("report generated successfully", "path", artifact)
	}
	return nil
}

func addFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&generateOptions.InputFile, "input", "i", "", "input file with a scan record")
}

func init() {
	addFlags(GenerateCmd.Flags())
}
