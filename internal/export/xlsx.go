package export

import (
  "fmt"

  "github.com/ushakovn/shopscraper/internal/models"
  "github.com/xuri/excelize/v2"
)

const SheetName = "Produk"

// XLSX builds a workbook with one sheet. The header row holds column keys,
// numeric columns are written as numbers.
func XLSX(records []models.Record) (_ []byte, err error) {
  file := excelize.NewFile()

  defer func() {
    if closeErr := file.Close(); closeErr != nil && err == nil {
      err = fmt.Errorf("file.Close: %w", closeErr)
    }
  }()

  if err = file.SetSheetName(file.GetSheetName(0), SheetName); err != nil {
    return nil, fmt.Errorf("file.SetSheetName: %w", err)
  }

  keys := Keys(records)

  header := make([]any, 0, len(keys))
  for _, key := range keys {
    header = append(header, key)
  }
  if err = setRow(file, 1, header); err != nil {
    return nil, err
  }

  for index := range records {
    row := make([]any, 0, len(keys))

    for _, key := range keys {
      value, _ := records[index].Value(key)
      row = append(row, value)
    }
    if err = setRow(file, index+2, row); err != nil {
      return nil, err
    }
  }

  buf, err := file.WriteToBuffer()
  if err != nil {
    return nil, fmt.Errorf("file.WriteToBuffer: %w", err)
  }

  return buf.Bytes(), nil
}

func setRow(file *excelize.File, row int, values []any) error {
  cell, err := excelize.CoordinatesToCellName(1, row)
  if err != nil {
    return fmt.Errorf("excelize.CoordinatesToCellName: %w", err)
  }
  if err = file.SetSheetRow(SheetName, cell, &values); err != nil {
    return fmt.Errorf("file.SetSheetRow: %s: %w", cell, err)
  }
  return nil
}
