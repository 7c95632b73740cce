package export

import (
  "fmt"
  "sort"

  set "github.com/deckarep/golang-set/v2"
  "github.com/ushakovn/shopscraper/internal/models"
)

type Projection struct {
  Keys   []string
  Titles []string
  Rows   [][]string
}

// Project orders record fields by the canonical columns. Fields outside
// the canonical set are appended after it in key order.
func Project(records []models.Record) Projection {
  keys := Keys(records)

  projection := Projection{
    Keys:   keys,
    Titles: make([]string, 0, len(keys)),
    Rows:   make([][]string, 0, len(records)),
  }

  for _, key := range keys {
    projection.Titles = append(projection.Titles, models.ColumnTitle(key))
  }

  for index := range records {
    row := make([]string, 0, len(keys))

    for _, key := range keys {
      row = append(row, records[index].String(key))
    }
    projection.Rows = append(projection.Rows, row)
  }

  return projection
}

func Keys(records []models.Record) []string {
  canonical := models.CanonicalKeys()
  canonicalSet := set.NewSet(canonical...)

  extraSet := set.NewSet[string]()

  for _, record := range records {
    for key := range record.Extra {
      if !canonicalSet.ContainsOne(key) {
        extraSet.Add(key)
      }
    }
  }

  extra := extraSet.ToSlice()
  sort.Strings(extra)

  return append(canonical, extra...)
}

func FileName(sid string) string {
  return fmt.Sprintf("tokopedia_produk_sid_%s_final.xlsx", sid)
}
