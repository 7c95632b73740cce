package scraper

import (
  "context"
  "errors"
  "testing"
  "time"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
  "github.com/ushakovn/shopscraper/internal/deps/storage/mongodb"
  "github.com/ushakovn/shopscraper/internal/models"
)

var errTestDetail = errors.New("detail failed")

type fakeListing struct {
  refs []models.ListingReference
  err  error
}

func (f *fakeListing) FetchListing(_ context.Context, _ string) ([]models.ListingReference, error) {
  return f.refs, f.err
}

type fakeDetail struct {
  errs   map[string]error
  calls  []string
  onCall func(url string)
}

func (f *fakeDetail) FetchDetail(_ context.Context, ref models.ListingReference) (*models.DetailRecord, error) {
  f.calls = append(f.calls, ref.URL)

  if f.onCall != nil {
    f.onCall(ref.URL)
  }
  if err, ok := f.errs[ref.URL]; ok {
    return nil, err
  }

  return &models.DetailRecord{
    URL:         ref.URL,
    ProductID:   ref.ProductID,
    ShopID:      "123",
    ShopName:    "Toko",
    ProductName: "Detail " + ref.Name,
    CountSold:   5,
  }, nil
}

type fakeStorage struct {
  indexes   []mongodb.IndexParams
  upserts   []mongodb.UpsertParams
  upsertErr error
  stored    []*models.Record
  scan      mongodb.ScanParams
}

func (f *fakeStorage) EnsureIndex(_ context.Context, params mongodb.IndexParams) (string, error) {
  f.indexes = append(f.indexes, params)
  return "shop_id_1_product_url_1", nil
}

func (f *fakeStorage) Upsert(_ context.Context, params mongodb.UpsertParams) (any, error) {
  f.upserts = append(f.upserts, params)
  return nil, f.upsertErr
}

func (f *fakeStorage) Scan(ctx context.Context, params mongodb.ScanParams) error {
  f.scan = params

  for _, record := range f.stored {
    if err := params.Callback(ctx, record); err != nil {
      return err
    }
  }
  return nil
}

func makeRefs(urls ...string) []models.ListingReference {
  refs := make([]models.ListingReference, 0, len(urls))

  for _, url := range urls {
    refs = append(refs, models.ListingReference{
      URL:  url,
      Name: url,
    })
  }
  return refs
}

func newTestScraper(t *testing.T, listing *fakeListing, detail *fakeDetail, storage Storage) *Scraper {
  t.Helper()

  deps := Dependencies{
    Listing: listing,
    Detail:  detail,
  }
  if storage != nil {
    deps.Storage = storage
  }

  s, err := NewScraper(Config{}, deps)
  require.NoError(t, err)

  return s
}

func TestUnitNewScraperValidation(t *testing.T) {
  _, err := NewScraper(Config{}, Dependencies{})
  require.Error(t, err)

  _, err = NewScraper(Config{ItemDelay: -time.Second}, Dependencies{
    Listing: &fakeListing{},
    Detail:  &fakeDetail{},
  })
  require.Error(t, err)

  s, err := NewScraper(Config{}, Dependencies{
    Listing: &fakeListing{},
    Detail:  &fakeDetail{},
  })
  require.NoError(t, err)
  require.Equal(t, DefaultDatabase, s.config.Database)
}

func TestUnitRunInvalidSID(t *testing.T) {
  tests := map[string]string{
    "empty":   "",
    "letters": "abc",
    "mixed":   "12a3",
    "blank":   "   ",
  }

  for name, sid := range tests {
    t.Run(name, func(t *testing.T) {
      detail := &fakeDetail{}
      s := newTestScraper(t, &fakeListing{refs: makeRefs("https://a/b")}, detail, nil)

      _, err := s.Run(context.Background(), sid)
      require.ErrorIs(t, err, ErrInvalidSID)
      require.Empty(t, detail.calls)
    })
  }
}

func TestUnitRun(t *testing.T) {
  tests := map[string]struct {
    listing     *fakeListing
    detailErrs  map[string]error
    wantErr     error
    wantURLs    []string
    wantListed  int
    wantDropped int
  }{
    "all items enriched in order": {
      listing:    &fakeListing{refs: makeRefs("https://t/s/a", "https://t/s/b", "https://t/s/c")},
      wantURLs:   []string{"https://t/s/a", "https://t/s/b", "https://t/s/c"},
      wantListed: 3,
    },
    "failed detail does not affect siblings": {
      listing: &fakeListing{refs: makeRefs("https://t/s/a", "https://t/s/b", "https://t/s/c")},
      detailErrs: map[string]error{
        "https://t/s/b": errTestDetail,
      },
      wantURLs:    []string{"https://t/s/a", "https://t/s/c"},
      wantListed:  3,
      wantDropped: 1,
    },
    "every detail failed": {
      listing: &fakeListing{refs: makeRefs("https://t/s/a")},
      detailErrs: map[string]error{
        "https://t/s/a": errTestDetail,
      },
      wantListed:  1,
      wantDropped: 1,
    },
    "partial listing continues": {
      listing: &fakeListing{
        refs: makeRefs("https://t/s/a"),
        err:  errors.New("page 2 failed"),
      },
      wantURLs:   []string{"https://t/s/a"},
      wantListed: 1,
    },
    "first listing page failed": {
      listing: &fakeListing{err: errors.New("page 1 failed")},
      wantErr: ErrNoListing,
    },
    "empty listing": {
      listing: &fakeListing{},
      wantErr: ErrNoListing,
    },
  }

  for name, tc := range tests {
    t.Run(name, func(t *testing.T) {
      detail := &fakeDetail{errs: tc.detailErrs}
      s := newTestScraper(t, tc.listing, detail, nil)

      result, err := s.Run(context.Background(), "123")
      require.Equal(t, PhaseDone, s.Phase())

      if tc.wantErr != nil {
        require.ErrorIs(t, err, tc.wantErr)
        require.Empty(t, result.Records)
        require.Empty(t, detail.calls)
        return
      }
      require.NoError(t, err)

      urls := make([]string, 0, len(result.Records))
      for _, record := range result.Records {
        urls = append(urls, record.ProductURL)
      }
      assert.Equal(t, len(tc.wantURLs), len(urls))
      assert.ElementsMatch(t, tc.wantURLs, urls)
      if len(tc.wantURLs) > 0 {
        assert.Equal(t, tc.wantURLs, urls)
      }
      assert.Equal(t, tc.wantListed, result.Listed)
      assert.Equal(t, tc.wantDropped, result.Dropped)
      assert.Equal(t, "123", result.SID)
      assert.Len(t, detail.calls, tc.wantListed)
    })
  }
}

func TestUnitRunMergesListingAndDetail(t *testing.T) {
  listing := &fakeListing{refs: []models.ListingReference{{
    ProductID: "9",
    URL:       "https://t/s/a",
    Name:      "Listing name",
    PriceText: "Rp1.000",
  }}}
  s := newTestScraper(t, listing, &fakeDetail{}, nil)

  result, err := s.Run(context.Background(), "123")
  require.NoError(t, err)
  require.Len(t, result.Records, 1)

  record := result.Records[0]
  assert.Equal(t, "9", record.ProductID)
  assert.Equal(t, "Detail Listing name", record.ProductName)
  assert.Equal(t, "Rp1.000", record.PriceValue)
  assert.Equal(t, "123", record.ShopID)
  assert.Equal(t, int64(5), record.CountSold)
}

func TestUnitRunCancelledBetweenItems(t *testing.T) {
  ctx, cancel := context.WithCancel(context.Background())
  defer cancel()

  detail := &fakeDetail{
    onCall: func(string) { cancel() },
  }
  listing := &fakeListing{refs: makeRefs("https://t/s/a", "https://t/s/b")}

  s, err := NewScraper(Config{ItemDelay: time.Hour}, Dependencies{
    Listing: listing,
    Detail:  detail,
  })
  require.NoError(t, err)

  result, err := s.Run(ctx, "123")
  require.ErrorIs(t, err, context.Canceled)
  require.NotNil(t, result)
  require.Len(t, result.Records, 1)
  require.Equal(t, []string{"https://t/s/a"}, detail.calls)
}

func TestUnitRunCancelledListing(t *testing.T) {
  ctx, cancel := context.WithCancel(context.Background())
  cancel()

  listing := &fakeListing{err: context.Canceled}
  s := newTestScraper(t, listing, &fakeDetail{}, nil)

  _, err := s.Run(ctx, "123")
  require.ErrorIs(t, err, context.Canceled)
  require.NotErrorIs(t, err, ErrNoListing)
}

func TestUnitRunStoresRecords(t *testing.T) {
  storage := &fakeStorage{upsertErr: errors.New("mongo unavailable")}
  listing := &fakeListing{refs: makeRefs("https://t/s/a", "https://t/s/b")}
  s := newTestScraper(t, listing, &fakeDetail{}, storage)

  result, err := s.Run(context.Background(), "123")
  require.NoError(t, err)
  require.Len(t, result.Records, 2)
  require.Len(t, storage.upserts, 2)
  require.Len(t, storage.indexes, 1)
  assert.Equal(t, []string{"shop_id", "product_url"}, storage.indexes[0].Keys)
  assert.True(t, storage.indexes[0].Unique)

  params := storage.upserts[0]
  assert.Equal(t, DefaultDatabase, params.Database)
  assert.Equal(t, productCollection, params.Collection)
  assert.Equal(t, map[string]any{
    "shop_id":     "123",
    "product_url": "https://t/s/a",
  }, params.Filters)
}

func TestUnitStoredRecords(t *testing.T) {
  storage := &fakeStorage{stored: []*models.Record{
    {ShopID: "123", ProductURL: "https://t/s/a"},
    {ShopID: "123", ProductURL: "https://t/s/b"},
  }}
  s := newTestScraper(t, &fakeListing{}, &fakeDetail{}, storage)

  records, err := s.StoredRecords(context.Background(), "123")
  require.NoError(t, err)
  require.Len(t, records, 2)
  assert.Equal(t, "https://t/s/b", records[1].ProductURL)
  assert.Equal(t, map[string]any{"shop_id": "123"}, storage.scan.Filters)

  s = newTestScraper(t, &fakeListing{}, &fakeDetail{}, nil)
  _, err = s.StoredRecords(context.Background(), "123")
  require.Error(t, err)
}
