package commands

import (
  "context"
  "fmt"
  "os"
  "path/filepath"

  log "github.com/sirupsen/logrus"
  "github.com/spf13/cobra"
  "github.com/ushakovn/shopscraper/internal/deps/telegram"
  "github.com/ushakovn/shopscraper/internal/export"
  "github.com/ushakovn/shopscraper/internal/models"
  "github.com/ushakovn/shopscraper/pkg/money"
)

type outputFlags struct {
  sid   string
  out   string
  csv   string
  table bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
  cmd.Flags().StringVar(&f.sid, "sid", "", "The numeric shop id.")
  cmd.Flags().StringVar(&f.out, "out", "", "The workbook to write (default tokopedia_produk_sid_<sid>_final.xlsx).")
  cmd.Flags().StringVar(&f.csv, "csv", "", "An optional csv file to write.")
  cmd.Flags().BoolVar(&f.table, "table", false, "Print the records as a table.")

  _ = cmd.MarkFlagRequired("sid")
}

func (f *outputFlags) workbookName() string {
  if f.out != "" {
    return f.out
  }
  return export.FileName(f.sid)
}

func writeOutputs(ctx context.Context, cmd *cobra.Command, flags *outputFlags, records []models.Record, caption string) error {
  if len(records) == 0 {
    log.
      WithField("sid", flags.sid).
      Warn("no final product data: nothing to export")
    return nil
  }

  if flags.table {
    export.Table(cmd.OutOrStdout(), records)
  }

  workbook, err := export.XLSX(records)
  if err != nil {
    return fmt.Errorf("export.XLSX: %w", err)
  }
  filename := flags.workbookName()

  if err = os.WriteFile(filename, workbook, 0o644); err != nil {
    return fmt.Errorf("os.WriteFile: %w", err)
  }

  log.
    WithFields(log.Fields{
      "file.name":    filename,
      "file.records": money.Count(int64(len(records))),
    }).
    Info("workbook exported")

  if flags.csv != "" {
    if err = writeCSV(flags.csv, records); err != nil {
      return err
    }
  }

  sender, err := newTelegramSender(cfg)
  if err != nil {
    return err
  }
  if sender == nil {
    return nil
  }

  err = sender.SendDocument(ctx, makeDocument(filename, workbook, caption))
  if err != nil {
    return fmt.Errorf("sender.SendDocument: %w", err)
  }

  return nil
}

func makeDocument(filename string, workbook []byte, caption string) telegram.Document {
  return telegram.Document{
    Filename: filepath.Base(filename),
    Data:     workbook,
    Caption:  caption,
  }
}

func writeCSV(filename string, records []models.Record) (err error) {
  file, err := os.Create(filename)
  if err != nil {
    return fmt.Errorf("os.Create: %w", err)
  }
  defer func() {
    if closeErr := file.Close(); closeErr != nil && err == nil {
      err = fmt.Errorf("file.Close: %w", closeErr)
    }
  }()

  if err = export.CSV(file, records); err != nil {
    return fmt.Errorf("export.CSV: %w", err)
  }

  log.
    WithField("file.name", filename).
    Info("csv exported")

  return nil
}
