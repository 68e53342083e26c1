package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/optimald/webevo-report-gen/cmd/generate"
	"github.com/optimald/webevo-report-gen/cmd/version"
	"github.com/optimald/webevo-report-gen/cmd/watch"
	"github.com/optimald/webevo-report-gen/pkg/shared/config"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "webevo-report-gen [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "webevo-report-gen renders branded website-audit reports from scan records.",
		Long: `webevo-report-gen watches a folder for website-audit scan records and turns each
	one into a rendered, deterministically named report artifact (PNG and/or PDF),
	driving a headless browser until the report's dynamic content has materialized.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(watch.WatchCmd)
	rootCmd.AddCommand(generate.GenerateCmd)
}

func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	AppConfig, err = config.NewConfig(cfgFile)
	if err != nil {
		fmt.Printf("initializing config file failed - %v \n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	watch.Init(AppConfig)
	generate.Init(AppConfig)
}
