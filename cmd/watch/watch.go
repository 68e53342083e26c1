package watch

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/optimald/webevo-report-gen/internal/pipeline"
	"github.com/optimald/webevo-report-gen/internal/publish"
	"github.com/optimald/webevo-report-gen/internal/render"
	"github.com/optimald/webevo-report-gen/pkg/shared/config"
	"github.com/optimald/webevo-report-gen/pkg/shared/logger"
)

// AppConfig holds the global configuration, set by the root command.
var AppConfig *config.Config

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

var execExampleWatch = `  # Watch the configured folder for new scan records
  webevo-report-gen watch

  # Watch with a custom configuration
  webevo-report-gen watch --config /etc/webevo/config.yml`

// WatchCmd runs the long-lived ingestion pipeline.
var WatchCmd = &cobra.Command{
	Use:                   "watch",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               execExampleWatch,
	Short:                 "Watch the input folder and render a report for each new scan record",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logger.NewLogger(AppConfig, "core")
		logger.Info("watch called")

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

		// An interrupt stops dispatch of new jobs; in-flight renders finish.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return pipeline.New(AppConfig, generator, logger).Watch(ctx)
	},
}
