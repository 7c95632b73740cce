package export

import (
  "io"

  "github.com/jedib0t/go-pretty/v6/table"
  "github.com/ushakovn/shopscraper/internal/models"
  "github.com/ushakovn/shopscraper/pkg/money"
)

func newTable(w io.Writer) table.Writer {
  t := table.NewWriter()
  t.SetStyle(table.StyleRounded)
  t.SetOutputMirror(w)
  return t
}

// Table renders records with display column names.
func Table(w io.Writer, records []models.Record) {
  projection := Project(records)

  t := newTable(w)

  header := make(table.Row, 0, len(projection.Titles))
  for _, title := range projection.Titles {
    header = append(header, title)
  }
  t.AppendHeader(header)

  for index, values := range projection.Rows {
    row := make(table.Row, 0, len(values))

    for col, key := range projection.Keys {
      row = append(row, displayValue(&records[index], key, values[col]))
    }
    t.AppendRow(row)
  }

  t.AppendFooter(table.Row{"Total", len(records)})
  t.Render()
}

func displayValue(record *models.Record, key, fallback string) string {
  switch key {
  case models.ColumnCountSold:
    return money.Count(record.CountSold)
  case models.ColumnCountReview:
    return money.Count(record.CountReview)
  }
  return fallback
}
