package commands

import (
  "context"
  "fmt"
  "os"

  "github.com/spf13/cobra"
  "github.com/ushakovn/shopscraper/internal/config"
  "github.com/ushakovn/shopscraper/pkg/logger"
)

var (
  verbose bool
  envFile string
  cfg     *config.Config
)

var rootCmd = &cobra.Command{
  Use:           "scraper",
  Short:         "scraper collects the product catalogue of a Tokopedia shop.",
  SilenceUsage:  true,
  SilenceErrors: true,
  PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
    logger.InitWithOptions(logger.Options{
      Fields:  map[string]any{"app": "scraper"},
      Verbose: verbose,
    })

    var filenames []string
    if envFile != "" {
      filenames = append(filenames, envFile)
    }

    loaded, err := config.Load(filenames...)
    if err != nil {
      return fmt.Errorf("config.Load: %w", err)
    }
    cfg = loaded

    return nil
  },
}

func init() {
  rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs.")
  rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "The .env file to load (default .env when present).")
}

func ExecuteContext(ctx context.Context) {
  if err := rootCmd.ExecuteContext(ctx); err != nil {
    fmt.Fprintln(os.Stderr, err)
    os.Exit(1)
  }
}
