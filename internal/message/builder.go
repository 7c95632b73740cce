package message

import (
  "fmt"
  "strings"

  "github.com/samber/lo"
  "github.com/ushakovn/shopscraper/internal/app/scraper"
  "github.com/ushakovn/shopscraper/internal/models"
  "github.com/ushakovn/shopscraper/pkg/duration"
  "github.com/ushakovn/shopscraper/pkg/money"
)

// Telegram limits document captions to 1024 characters.
const maxCaptionLen = 1024

type Builder struct {
  sid     string
  records []models.Record
  result  *scraper.Result
}

func Do() Builder {
  return Builder{}
}

func (b Builder) SetSID(sid string) Builder {
  b.sid = sid
  return b
}

func (b Builder) SetRecords(records []models.Record) Builder {
  b.records = records
  return b
}

func (b Builder) SetResult(result *scraper.Result) Builder {
  b.result = result
  b.records = result.Records
  b.sid = result.SID
  return b
}

// BuildReportCaption summarises exported records for the workbook caption.
//
// Пример:
// Toko Kaos Keren (SID 123)
// Products: 1.250
// Sold total: 48.211
func (b Builder) BuildReportCaption() string {
  lines := make([]string, 0, 6)

  shopName, _ := lo.Find(b.records, func(record models.Record) bool {
    return record.ShopName != ""
  })
  if shopName.ShopName != "" {
    lines = append(lines, fmt.Sprintf("Toko %s (SID %s)", shopName.ShopName, b.sid))
  } else {
    lines = append(lines, fmt.Sprintf("SID %s", b.sid))
  }

  lines = append(lines, fmt.Sprintf("Products: %s", money.Count(int64(len(b.records)))))

  sold := lo.SumBy(b.records, func(record models.Record) int64 {
    return record.CountSold
  })
  lines = append(lines, fmt.Sprintf("Sold total: %s", money.Count(sold)))

  if b.result != nil {
    if b.result.Dropped > 0 {
      lines = append(lines, fmt.Sprintf("Dropped: %d of %d", b.result.Dropped, b.result.Listed))
    }
    lines = append(lines, fmt.Sprintf("Elapsed: %s", duration.Format(b.result.ListingDuration+b.result.DetailDuration)))
  }

  caption := strings.Join(lines, "\n")

  if runes := []rune(caption); len(runes) > maxCaptionLen {
    caption = string(runes[:maxCaptionLen])
  }
  return caption
}
