package models_test

import (
  "testing"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
  "github.com/ushakovn/shopscraper/internal/models"
)

func TestUnitNewRecord(t *testing.T) {
  ref := models.ListingReference{
    ProductID: "100",
    URL:       "/shop/item-a",
    Name:      "A",
    PriceText: "Rp10.000",
  }

  tests := map[string]struct {
    detail models.DetailRecord
    want   models.Record
  }{
    "listing values fill gaps": {
      detail: models.DetailRecord{
        ShopID:    "7",
        ShopName:  "Shop",
        CountSold: 3,
      },
      want: models.Record{
        ShopID:      "7",
        ShopName:    "Shop",
        ProductID:   "100",
        ProductName: "A",
        PriceValue:  "Rp10.000",
        CountSold:   3,
        ProductURL:  "/shop/item-a",
      },
    },
    "detail values win": {
      detail: models.DetailRecord{
        URL:         "/other/url",
        ProductID:   "200",
        ProductName: "B",
        PriceText:   "Rp20.000",
        Rating:      4.5,
      },
      want: models.Record{
        ProductID:   "200",
        ProductName: "B",
        PriceValue:  "Rp20.000",
        Rating:      4.5,
        ProductURL:  "/shop/item-a",
      },
    },
  }

  for name, tt := range tests {
    t.Run(name, func(t *testing.T) {
      got := models.NewRecord(ref, tt.detail)
      assert.False(t, got.ScrapedAt.IsZero(), "should stamp scrape time")

      got.ScrapedAt = tt.want.ScrapedAt
      assert.Equal(t, tt.want, got)
    })
  }
}

func TestUnitRecordValue(t *testing.T) {
  record := models.Record{
    CountSold: 12,
    Rating:    4.8,
    Extra:     map[string]string{"alias": "item-a"},
  }

  value, ok := record.Value(models.ColumnCountSold)
  require.True(t, ok)
  assert.Equal(t, int64(12), value)

  assert.Equal(t, "4.8", record.String(models.ColumnRating))
  assert.Equal(t, "item-a", record.String("alias"))
  assert.Equal(t, "", record.String("missing"))
}

func TestUnitCanonicalKeys(t *testing.T) {
  assert.Equal(t, []string{
    "ShopID", "ShopName", "ProductID", "ttsPID", "ProductName",
    "PriceValue", "CountSold", "CountReview", "Rating", "ProductURL", "createdAt",
  }, models.CanonicalKeys())

  assert.Equal(t, "SKU", models.ColumnTitle(models.ColumnSKU))
  assert.Equal(t, "alias", models.ColumnTitle("alias"))
}

func TestUnitListingReferenceValidate(t *testing.T) {
  valid := models.ListingReference{URL: "/shop/item-a"}
  assert.NoError(t, valid.Validate())

  missing := models.ListingReference{Name: "A"}
  assert.Error(t, missing.Validate())

  blank := models.ListingReference{URL: "   "}
  assert.Error(t, blank.Validate())
}
