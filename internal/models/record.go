package models

import (
  "strconv"
  "time"

  "github.com/samber/lo"
  "github.com/ushakovn/shopscraper/pkg/stringer"
)

const (
  ColumnShopID      = "ShopID"
  ColumnShopName    = "ShopName"
  ColumnProductID   = "ProductID"
  ColumnSKU         = "ttsPID"
  ColumnProductName = "ProductName"
  ColumnPriceValue  = "PriceValue"
  ColumnCountSold   = "CountSold"
  ColumnCountReview = "CountReview"
  ColumnRating      = "Rating"
  ColumnProductURL  = "ProductURL"
  ColumnCreatedAt   = "createdAt"
)

type Column struct {
  Key   string
  Title string
}

// CanonicalColumns задает порядок колонок в таблице и выгрузке.
var CanonicalColumns = []Column{
  {Key: ColumnShopID, Title: "Shop ID"},
  {Key: ColumnShopName, Title: "Shop Name"},
  {Key: ColumnProductID, Title: "Product ID"},
  {Key: ColumnSKU, Title: "SKU"},
  {Key: ColumnProductName, Title: "Product Name"},
  {Key: ColumnPriceValue, Title: "Price"},
  {Key: ColumnCountSold, Title: "Count Sold"},
  {Key: ColumnCountReview, Title: "Count Review"},
  {Key: ColumnRating, Title: "Rating"},
  {Key: ColumnProductURL, Title: "Product URL"},
  {Key: ColumnCreatedAt, Title: "createdAt"},
}

func CanonicalKeys() []string {
  return lo.Map(CanonicalColumns, func(column Column, _ int) string {
    return column.Key
  })
}

func ColumnTitle(key string) string {
  column, ok := lo.Find(CanonicalColumns, func(column Column) bool {
    return column.Key == key
  })
  if !ok {
    return key
  }
  return column.Title
}

type Record struct {
  ShopID      string            `bson:"shop_id" json:"ShopID"`
  ShopName    string            `bson:"shop_name" json:"ShopName"`
  ProductID   string            `bson:"product_id" json:"ProductID"`
  SKU         string            `bson:"sku" json:"ttsPID"`
  ProductName string            `bson:"product_name" json:"ProductName"`
  PriceValue  string            `bson:"price_value" json:"PriceValue"`
  CountSold   int64             `bson:"count_sold" json:"CountSold"`
  CountReview int64             `bson:"count_review" json:"CountReview"`
  Rating      float64           `bson:"rating" json:"Rating"`
  ProductURL  string            `bson:"product_url" json:"ProductURL"`
  CreatedAt   string            `bson:"created_at" json:"createdAt"`
  Extra       map[string]string `bson:"extra,omitempty" json:"-"`
  ScrapedAt   time.Time         `bson:"scraped_at" json:"-"`
}

// NewRecord merges a listing reference with its detail. Detail values win,
// listing values fill the gaps. The url always comes from the reference.
func NewRecord(ref ListingReference, detail DetailRecord) Record {
  return Record{
    ShopID:      detail.ShopID,
    ShopName:    detail.ShopName,
    ProductID:   stringer.FirstNonEmpty(detail.ProductID, ref.ProductID),
    SKU:         detail.SKU,
    ProductName: stringer.FirstNonEmpty(detail.ProductName, ref.Name),
    PriceValue:  stringer.FirstNonEmpty(detail.PriceText, ref.PriceText),
    CountSold:   detail.CountSold,
    CountReview: detail.CountReview,
    Rating:      detail.Rating,
    ProductURL:  ref.URL,
    CreatedAt:   detail.CreatedAt,
    Extra:       detail.Extra,
    ScrapedAt:   time.Now(),
  }
}

// Value returns the typed cell value stored under the column key.
func (r *Record) Value(key string) (any, bool) {
  switch key {
  case ColumnShopID:
    return r.ShopID, true
  case ColumnShopName:
    return r.ShopName, true
  case ColumnProductID:
    return r.ProductID, true
  case ColumnSKU:
    return r.SKU, true
  case ColumnProductName:
    return r.ProductName, true
  case ColumnPriceValue:
    return r.PriceValue, true
  case ColumnCountSold:
    return r.CountSold, true
  case ColumnCountReview:
    return r.CountReview, true
  case ColumnRating:
    return r.Rating, true
  case ColumnProductURL:
    return r.ProductURL, true
  case ColumnCreatedAt:
    return r.CreatedAt, true
  }
  value, ok := r.Extra[key]

  return value, ok
}

func (r *Record) String(key string) string {
  value, ok := r.Value(key)
  if !ok {
    return ""
  }
  switch typed := value.(type) {
  case string:
    return typed
  case int64:
    return strconv.FormatInt(typed, 10)
  case float64:
    return strconv.FormatFloat(typed, 'f', -1, 64)
  }
  return ""
}
