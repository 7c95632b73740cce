package scraper

import (
  "context"
  "errors"
  "fmt"
  "time"

  "github.com/go-playground/validator/v10"
  "github.com/ushakovn/shopscraper/internal/deps/storage/mongodb"
  "github.com/ushakovn/shopscraper/internal/models"
)

var (
  ErrInvalidSID = errors.New("invalid shop id")
  ErrNoListing  = errors.New("no products found in shop listing")
)

const (
  DefaultDatabase   = "scraper"
  productCollection = "products"
)

type Phase string

const (
  PhasePaginating Phase = "paginating"
  PhaseEnriching  Phase = "enriching"
  PhaseDone       Phase = "done"
)

type Storage interface {
  EnsureIndex(ctx context.Context, params mongodb.IndexParams) (string, error)
  Upsert(ctx context.Context, params mongodb.UpsertParams) (any, error)
  Scan(ctx context.Context, params mongodb.ScanParams) error
}

type Scraper struct {
  config Config
  deps   Dependencies
  phase  Phase
}

type Config struct {
  ItemDelay time.Duration `validate:"gte=0"`
  Database  string
}

type Dependencies struct {
  Listing models.ListingFetcher `validate:"required"`
  Detail  models.DetailFetcher  `validate:"required"`
  Storage Storage
}

func (d *Dependencies) Validate() error {
  return validator.New().Struct(d)
}

func NewScraper(config Config, deps Dependencies) (*Scraper, error) {
  if err := deps.Validate(); err != nil {
    return nil, fmt.Errorf("invalid dependencies: %w", err)
  }
  if config.ItemDelay < 0 {
    return nil, fmt.Errorf("invalid config: negative item delay: %s", config.ItemDelay)
  }
  if config.Database == "" {
    config.Database = DefaultDatabase
  }

  return &Scraper{
    config: config,
    deps:   deps,
  }, nil
}

func (s *Scraper) Phase() Phase {
  return s.phase
}

type Result struct {
  SID             string
  Records         []models.Record
  Listed          int
  Dropped         int
  ListingDuration time.Duration
  DetailDuration  time.Duration
}
