package commands

import (
  "context"
  "errors"
  "fmt"

  log "github.com/sirupsen/logrus"
  "github.com/spf13/cobra"
  "github.com/ushakovn/shopscraper/internal/app/scraper"
  "github.com/ushakovn/shopscraper/internal/message"
)

var runFlags outputFlags

var runCmd = &cobra.Command{
  Use:   "run --sid <SID> [--out file.xlsx] [--csv file.csv] [--table]",
  Short: "Scrapes every product of the shop and exports the records.",
  RunE: func(cmd *cobra.Command, args []string) error {
    ctx := cmd.Context()

    s, closeFn, err := newScraper(ctx, cfg)
    if err != nil {
      return err
    }
    defer closeFn()

    result, err := s.Run(ctx, runFlags.sid)
    switch {
    case errors.Is(err, scraper.ErrNoListing):
      log.
        WithField("sid", runFlags.sid).
        Warnf("nothing to export: %v", err)
      return nil

    case errors.Is(err, context.Canceled) && result != nil && len(result.Records) > 0:
      log.
        WithField("records", len(result.Records)).
        Warn("scraping cancelled: exporting gathered records")

      // Exports run on a fresh context: the command one is already done.
      caption := message.Do().SetResult(result).BuildReportCaption()

      if err = writeOutputs(context.Background(), cmd, &runFlags, result.Records, caption); err != nil {
        return err
      }
      return context.Canceled

    case err != nil:
      return fmt.Errorf("s.Run: %w", err)
    }

    caption := message.Do().SetResult(result).BuildReportCaption()

    return writeOutputs(ctx, cmd, &runFlags, result.Records, caption)
  },
}

func init() {
  runFlags.register(runCmd)
  rootCmd.AddCommand(runCmd)
}
