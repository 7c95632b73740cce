package scraper

import (
  "context"
  "errors"
  "fmt"
  "strings"
  "time"

  log "github.com/sirupsen/logrus"
  "github.com/ushakovn/shopscraper/internal/models"
  "github.com/ushakovn/shopscraper/pkg/duration"
  "github.com/ushakovn/shopscraper/pkg/stringer"
  "github.com/ushakovn/shopscraper/pkg/throttle"
)

// Run paginates the shop listing, then fetches details item by item.
// Failed items are dropped; records gathered before a cancellation are returned with the error.
func (s *Scraper) Run(ctx context.Context, sid string) (*Result, error) {
  sid = strings.TrimSpace(sid)

  if !stringer.IsDigits(sid) {
    return nil, fmt.Errorf("%w: %q", ErrInvalidSID, sid)
  }
  result := &Result{SID: sid}

  if s.deps.Storage != nil {
    if err := s.prepareStorage(ctx); err != nil {
      log.
        WithField("sid", sid).
        Warnf("record storage unavailable: %v", err)
    }
  }

  refs, err := s.runListing(ctx, result)
  if err != nil {
    s.phase = PhaseDone
    return result, err
  }

  err = s.runDetails(ctx, result, refs)
  s.phase = PhaseDone

  if err != nil {
    return result, err
  }

  log.
    WithFields(log.Fields{
      "sid":            sid,
      "result.listed":  result.Listed,
      "result.records": len(result.Records),
      "result.dropped": result.Dropped,
      "listing.in":     duration.Format(result.ListingDuration),
      "details.in":     duration.Format(result.DetailDuration),
    }).
    Info("shop scraping completed")

  return result, nil
}

func (s *Scraper) runListing(ctx context.Context, result *Result) ([]models.ListingReference, error) {
  s.phase = PhasePaginating

  log.
    WithField("sid", result.SID).
    Info("shop listing fetching started")

  start := time.Now()
  refs, err := s.deps.Listing.FetchListing(ctx, result.SID)
  result.ListingDuration = time.Since(start)
  result.Listed = len(refs)

  if err != nil {
    if ctxErr := ctx.Err(); ctxErr != nil {
      return nil, fmt.Errorf("s.deps.Listing.FetchListing: %w", ctxErr)
    }
    log.
      WithFields(log.Fields{
        "sid":          result.SID,
        "listing.kept": len(refs),
      }).
      Warnf("shop listing interrupted: continue with gathered products: %v", err)
  }

  if len(refs) == 0 {
    if err != nil {
      return nil, fmt.Errorf("%w: %w", ErrNoListing, err)
    }
    return nil, ErrNoListing
  }

  log.
    WithFields(log.Fields{
      "sid":        result.SID,
      "listing.in": duration.Format(result.ListingDuration),
      "products":   len(refs),
    }).
    Info("shop listing fetched")

  return refs, nil
}

func (s *Scraper) runDetails(ctx context.Context, result *Result, refs []models.ListingReference) error {
  s.phase = PhaseEnriching

  start := time.Now()
  defer func() {
    result.DetailDuration = time.Since(start)
  }()

  total := len(refs)

  for index, ref := range refs {
    if index > 0 {
      if err := throttle.Sleep(ctx, s.config.ItemDelay); err != nil {
        return fmt.Errorf("throttle.Sleep: %w", err)
      }
    }

    record, err := s.handleReference(ctx, ref)
    if err != nil {
      if ctxErr := ctx.Err(); ctxErr != nil {
        return fmt.Errorf("s.handleReference: %w", ctxErr)
      }
      result.Dropped++

      log.
        WithFields(log.Fields{
          "sid":     result.SID,
          "ref.url": ref.URL,
        }).
        Warnf("product dropped: %v", err)
    } else {
      result.Records = append(result.Records, *record)
    }

    processed := index + 1
    elapsed := time.Since(start)

    log.
      WithFields(log.Fields{
        "sid":      result.SID,
        "progress": fmt.Sprintf("%d/%d", processed, total),
        "elapsed":  duration.Format(elapsed),
        "eta":      duration.Format(duration.ETA(elapsed, processed, total)),
      }).
      Info("products processing")
  }

  return nil
}

func (s *Scraper) handleReference(ctx context.Context, ref models.ListingReference) (*models.Record, error) {
  detail, err := s.deps.Detail.FetchDetail(ctx, ref)
  if err != nil {
    return nil, fmt.Errorf("s.deps.Detail.FetchDetail: %w", err)
  }
  record := models.NewRecord(ref, *detail)

  if s.deps.Storage == nil {
    return &record, nil
  }

  if err = s.upsertRecord(ctx, &record); err != nil {
    if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
      return nil, err
    }
    log.
      WithFields(log.Fields{
        "record.url":     record.ProductURL,
        "record.shop_id": record.ShopID,
      }).
      Errorf("record store failed: %v", err)
  }

  return &record, nil
}

// StoredRecords loads records of the shop persisted by previous runs.
func (s *Scraper) StoredRecords(ctx context.Context, shopID string) ([]models.Record, error) {
  if s.deps.Storage == nil {
    return nil, fmt.Errorf("storage is not configured")
  }

  records, err := s.scanRecords(ctx, shopID)
  if err != nil {
    return nil, fmt.Errorf("s.scanRecords: %w", err)
  }

  return records, nil
}
