package export

import (
  "encoding/csv"
  "fmt"
  "io"

  "github.com/ushakovn/shopscraper/internal/models"
)

func CSV(w io.Writer, records []models.Record) error {
  projection := Project(records)

  writer := csv.NewWriter(w)

  if err := writer.Write(projection.Keys); err != nil {
    return fmt.Errorf("writer.Write: header: %w", err)
  }
  if err := writer.WriteAll(projection.Rows); err != nil {
    return fmt.Errorf("writer.WriteAll: %w", err)
  }

  return nil
}
