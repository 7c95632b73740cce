package tokopedia

import (
  "context"
  "encoding/json"
  "fmt"
  neturl "net/url"
  "strings"

  "github.com/google/uuid"
  log "github.com/sirupsen/logrus"
  "github.com/spf13/cast"
  "github.com/ushakovn/shopscraper/internal/models"
  "github.com/ushakovn/shopscraper/pkg/money"
  "github.com/ushakovn/shopscraper/pkg/stringer"
)

const pdpGetLayoutQuery = `query PDPGetLayoutQuery($shopDomain: String, $productKey: String, $layoutID: String, $apiVersion: Float, $userLocation: pdpUserLocation, $extParam: String, $tokonow: pdpTokoNow, $deviceID: String) {
  pdpGetLayout(shopDomain: $shopDomain, productKey: $productKey, layoutID: $layoutID, apiVersion: $apiVersion, userLocation: $userLocation, extParam: $extParam, tokonow: $tokonow, deviceID: $deviceID) {
    pdpSession
    basicInfo {
      id: productID
      shopID
      shopName
      txStats { countSold }
      stats { countReview rating }
      ttsPID
      createdAt
    }
  }
}`

var detailHeaders = map[string]string{
  "X-Tkpd-Akamai": "pdpGetLayout",
}

// Ключи basicInfo, которые разбираются явно. Остальные скалярные поля уходят в Extra.
var basicInfoKeys = map[string]struct{}{
  "id":        {},
  "productID": {},
  "shopID":    {},
  "shopName":  {},
  "txStats":   {},
  "stats":     {},
  "ttsPID":    {},
  "createdAt": {},
}

type pdpVariables struct {
  ShopDomain   string          `json:"shopDomain"`
  ProductKey   string          `json:"productKey"`
  LayoutID     string          `json:"layoutID"`
  APIVersion   int             `json:"apiVersion"`
  Tokonow      pdpTokonow      `json:"tokonow"`
  DeviceID     string          `json:"deviceID"`
  UserLocation pdpUserLocation `json:"userLocation"`
  ExtParam     string          `json:"extParam"`
}

type pdpTokonow struct {
  ShopID      string `json:"shopID"`
  WhID        string `json:"whID"`
  ServiceType string `json:"serviceType"`
}

type pdpUserLocation struct {
  CityID     string `json:"cityID"`
  AddressID  string `json:"addressID"`
  DistrictID string `json:"districtID"`
  PostalCode string `json:"postalCode"`
  Latlon     string `json:"latlon"`
}

type pdpResponse []struct {
  Data *struct {
    PdpGetLayout *pdpGetLayout `json:"pdpGetLayout"`
  } `json:"data"`
}

type pdpGetLayout struct {
  BasicInfo  map[string]any `json:"basicInfo"`
  PdpSession any            `json:"pdpSession"`
}

// pdpSession is a serialized JSON blob which duplicates some of the
// product fields. It is optional and may be malformed.
type pdpSession struct {
  ProductName string `json:"pn"`
  ShopName    string `json:"sn"`
  Price       any    `json:"pr"`
}

type productPath struct {
  ShopDomain string
  ProductKey string
  ExtParam   string
}

func parseProductPath(url string) (*productPath, error) {
  // Пример: https://www.tokopedia.com/shop/item-a?extParam=ivf%3Dfalse.
  // Домен магазина: shop, ключ товара: item-a.

  parsed, err := neturl.Parse(strings.TrimSpace(url))
  if err != nil {
    return nil, fmt.Errorf("%w: %s: %w", ErrInvalidProductURL, url, err)
  }

  parts := strings.FieldsFunc(parsed.Path, func(r rune) bool {
    return r == '/'
  })
  if len(parts) < 2 {
    return nil, fmt.Errorf("%w: %s: path has less than two segments", ErrInvalidProductURL, url)
  }

  return &productPath{
    ShopDomain: parts[0],
    ProductKey: parts[1],
    ExtParam:   parsed.Query().Get("extParam"),
  }, nil
}

func makePdpRequest(path *productPath) gqlRequest {
  return gqlRequest{
    OperationName: "PDPGetLayoutQuery",
    Variables: pdpVariables{
      ShopDomain: path.ShopDomain,
      ProductKey: path.ProductKey,
      LayoutID:   "",
      APIVersion: 1,
      Tokonow: pdpTokonow{
        WhID: "0",
      },
      DeviceID: uuid.NewString(),
      UserLocation: pdpUserLocation{
        CityID:     "176",
        DistrictID: "2274",
      },
      ExtParam: path.ExtParam,
    },
    Query: pdpGetLayoutQuery,
  }
}

// FetchDetail requests the product detail layout for the reference url.
// Every failure is returned as an error: the caller decides to drop the item.
func (c *Client) FetchDetail(ctx context.Context, ref models.ListingReference) (*models.DetailRecord, error) {
  log.
    WithField("ref.url", ref.URL).
    Debug("product detail fetching")

  path, err := parseProductPath(ref.URL)
  if err != nil {
    return nil, fmt.Errorf("parseProductPath: %w", err)
  }

  var resp pdpResponse

  if err = c.post(ctx, c.config.DetailURL, detailHeaders, makePdpRequest(path), &resp); err != nil {
    return nil, fmt.Errorf("c.post: %w", err)
  }

  if len(resp) == 0 || resp[0].Data == nil {
    return nil, fmt.Errorf("%w: pdp response has no data", ErrMalformedResponse)
  }
  layout := resp[0].Data.PdpGetLayout

  if layout == nil || len(layout.BasicInfo) == 0 {
    return nil, fmt.Errorf("%w: url: %s", ErrBasicInfoNotFound, ref.URL)
  }

  detail := makeDetailRecord(ref.URL, layout)

  log.
    WithFields(log.Fields{
      "ref.url":           ref.URL,
      "detail.product_id": detail.ProductID,
      "detail.shop_id":    detail.ShopID,
    }).
    Debug("product detail fetched")

  return detail, nil
}

func makeDetailRecord(url string, layout *pdpGetLayout) *models.DetailRecord {
  info := layout.BasicInfo

  detail := &models.DetailRecord{
    URL:         url,
    ProductID:   toString(lookup(info, "id")),
    ShopID:      toString(lookup(info, "shopID")),
    SKU:         toString(lookup(info, "ttsPID")),
    ShopName:    stringer.SanitizeString(toString(lookup(info, "shopName"))),
    CountSold:   toInt64(lookup(info, "txStats", "countSold")),
    CountReview: toInt64(lookup(info, "stats", "countReview")),
    Rating:      toFloat64(lookup(info, "stats", "rating")),
    CreatedAt:   toString(lookup(info, "createdAt")),
    Extra:       makeExtra(info),
  }
  if detail.ProductID == "" {
    detail.ProductID = toString(lookup(info, "productID"))
  }

  session, ok := parseSession(url, layout.PdpSession)
  if !ok {
    return detail
  }

  detail.ProductName = stringer.SanitizeString(session.ProductName)
  detail.ShopName = stringer.FirstNonEmpty(stringer.SanitizeString(session.ShopName), detail.ShopName)
  detail.PriceText = sessionPrice(session.Price)

  return detail
}

func parseSession(url string, raw any) (*pdpSession, bool) {
  var blob []byte

  switch typed := raw.(type) {
  case nil:
    return nil, false
  case string:
    if stringer.IsEmptyStr(typed) {
      return nil, false
    }
    blob = []byte(typed)
  case map[string]any:
    blob, _ = json.Marshal(typed)
  default:
    return nil, false
  }

  session := new(pdpSession)

  if err := json.Unmarshal(blob, session); err != nil {
    log.
      WithField("ref.url", url).
      Debugf("pdp session blob malformed: fallback to basic info: %v", err)

    return nil, false
  }

  return session, true
}

func sessionPrice(price any) string {
  switch typed := price.(type) {
  case nil:
    return ""
  case string:
    // Пример: "Rp 15.000" или "15000".
    if value := stringer.ParseIntStr(typed); value > 0 {
      return money.String(value)
    }
    return stringer.Strip(typed)
  }
  value, err := cast.ToInt64E(price)
  if err != nil || value <= 0 {
    return ""
  }
  return money.String(value)
}

func makeExtra(info map[string]any) map[string]string {
  extra := make(map[string]string)

  for key, value := range info {
    if _, ok := basicInfoKeys[key]; ok {
      continue
    }
    switch value.(type) {
    case string, float64, bool:
      extra[key] = cast.ToString(value)
    }
  }
  if len(extra) == 0 {
    return nil
  }
  return extra
}

func lookup(data map[string]any, keys ...string) any {
  var current any = data

  for _, key := range keys {
    node, ok := current.(map[string]any)
    if !ok {
      return nil
    }
    if current, ok = node[key]; !ok {
      return nil
    }
  }
  return current
}

func toString(value any) string {
  if value == nil {
    return ""
  }
  return stringer.Strip(cast.ToString(value))
}

func toInt64(value any) int64 {
  if value == nil {
    return 0
  }
  out, err := cast.ToInt64E(value)
  if err != nil {
    return 0
  }
  return out
}

func toFloat64(value any) float64 {
  if value == nil {
    return 0
  }
  out, err := cast.ToFloat64E(value)
  if err != nil {
    return 0
  }
  return out
}
