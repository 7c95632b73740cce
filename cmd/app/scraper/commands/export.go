package commands

import (
  "fmt"

  "github.com/spf13/cobra"
  "github.com/ushakovn/shopscraper/internal/message"
)

var exportFlags outputFlags

var exportCmd = &cobra.Command{
  Use:   "export --sid <SID> [--out file.xlsx] [--csv file.csv] [--table]",
  Short: "Exports the records stored by previous runs without scraping.",
  RunE: func(cmd *cobra.Command, args []string) error {
    ctx := cmd.Context()

    if !cfg.Mongodb.Enabled() {
      return fmt.Errorf("export requires MONGODB_HOST to be set")
    }

    s, closeFn, err := newScraper(ctx, cfg)
    if err != nil {
      return err
    }
    defer closeFn()

    records, err := s.StoredRecords(ctx, exportFlags.sid)
    if err != nil {
      return fmt.Errorf("s.StoredRecords: %w", err)
    }

    caption := message.Do().
      SetSID(exportFlags.sid).
      SetRecords(records).
      BuildReportCaption()

    return writeOutputs(ctx, cmd, &exportFlags, records, caption)
  },
}

func init() {
  exportFlags.register(exportCmd)
  rootCmd.AddCommand(exportCmd)
}
