package scraper

import (
  "context"
  "fmt"

  "github.com/samber/lo"
  log "github.com/sirupsen/logrus"
  "github.com/ushakovn/shopscraper/internal/deps/storage/mongodb"
  "github.com/ushakovn/shopscraper/internal/models"
)

func (s *Scraper) productsParams() mongodb.CommonParams {
  return mongodb.CommonParams{
    Database:   s.config.Database,
    Collection: productCollection,
    StructType: models.Record{},
  }
}

func (s *Scraper) prepareStorage(ctx context.Context) error {
  name, err := s.deps.Storage.EnsureIndex(ctx, mongodb.IndexParams{
    CommonParams: s.productsParams(),
    Keys:         []string{"shop_id", "product_url"},
    Unique:       true,
  })
  if err != nil {
    return fmt.Errorf("s.deps.Storage.EnsureIndex: %w", err)
  }

  log.
    WithField("index.name", name).
    Debug("products collection index ensured")

  return nil
}

func (s *Scraper) upsertRecord(ctx context.Context, record *models.Record) error {
  _, err := s.deps.Storage.Upsert(ctx, mongodb.UpsertParams{
    CommonParams: s.productsParams(),
    Filters: map[string]any{
      "shop_id":     record.ShopID,
      "product_url": record.ProductURL,
    },
    Document: record,
  })
  if err != nil {
    return fmt.Errorf("s.deps.Storage.Upsert: %w", err)
  }

  return nil
}

func (s *Scraper) scanRecords(ctx context.Context, shopID string) ([]models.Record, error) {
  var records []*models.Record

  err := s.deps.Storage.Scan(ctx, mongodb.ScanParams{
    CommonParams: s.productsParams(),
    Filters: map[string]any{
      "shop_id": shopID,
    },
    SortBy: "scraped_at",
    Callback: func(ctx context.Context, value any) error {
      record, ok := value.(*models.Record)
      if !ok {
        return fmt.Errorf("cast %v with type: %[1]T to: %T failed", value, new(models.Record))
      }
      records = append(records, record)

      return nil
    },
  })
  if err != nil {
    return nil, fmt.Errorf("s.deps.Storage.Scan: %w", err)
  }

  return lo.FromSlicePtr(records), nil
}
