package tokopedia

import (
  "context"
  "fmt"

  "github.com/samber/lo"
  log "github.com/sirupsen/logrus"
  "github.com/spf13/cast"
  "github.com/ushakovn/shopscraper/internal/models"
  "github.com/ushakovn/shopscraper/pkg/stringer"
  "github.com/ushakovn/shopscraper/pkg/throttle"
)

const shopProductsQuery = `query ShopProducts($sid: String!, $source: String, $page: Int, $perPage: Int, $keyword: String, $etalaseId: String, $sort: Int, $user_districtId: String, $user_cityId: String, $user_lat: String, $user_long: String) {
  GetShopProduct(shopID: $sid, source: $source, filter: {
    page: $page, perPage: $perPage, fkeyword: $keyword,
    fmenu: $etalaseId, sort: $sort,
    user_districtId: $user_districtId,
    user_cityId: $user_cityId,
    user_lat: $user_lat, user_long: $user_long
  }) {
    links { next }
    data { product_id name product_url price { text_idr } }
  }
}`

type shopProductsVariables struct {
  Source         string `json:"source"`
  SID            string `json:"sid"`
  Page           int    `json:"page"`
  PerPage        int    `json:"perPage"`
  EtalaseID      string `json:"etalaseId"`
  Sort           int    `json:"sort"`
  UserDistrictID string `json:"user_districtId"`
  UserCityID     string `json:"user_cityId"`
  UserLat        string `json:"user_lat"`
  UserLong       string `json:"user_long"`
}

type shopProductsResponse []struct {
  Data *struct {
    GetShopProduct *shopProductsPage `json:"GetShopProduct"`
  } `json:"data"`
}

type shopProductsPage struct {
  Links *struct {
    Next any `json:"next"`
  } `json:"links"`
  Data []shopProduct `json:"data"`
}

type shopProduct struct {
  ProductID  any    `json:"product_id"`
  Name       string `json:"name"`
  ProductURL string `json:"product_url"`
  Price      *struct {
    TextIDR string `json:"text_idr"`
  } `json:"price"`
}

func (p *shopProductsPage) hasNext() bool {
  if p.Links == nil {
    return false
  }
  switch next := p.Links.Next.(type) {
  case nil:
    return false
  case string:
    return !stringer.IsEmptyStr(next)
  case bool:
    return next
  case float64:
    return next != 0
  case []any:
    return len(next) > 0
  case map[string]any:
    return len(next) > 0
  default:
    return true
  }
}

func makeShopProductsRequest(sid string, page, perPage int) gqlRequest {
  return gqlRequest{
    OperationName: "ShopProducts",
    Variables: shopProductsVariables{
      Source:         "shop",
      SID:            sid,
      Page:           page,
      PerPage:        perPage,
      EtalaseID:      "etalase",
      Sort:           1,
      UserDistrictID: "2274",
      UserCityID:     "176",
      UserLat:        "0",
      UserLong:       "0",
    },
    Query: shopProductsQuery,
  }
}

// FetchListing walks the shop listing page by page until the next cursor is empty.
// On failure it returns the references gathered so far with ErrListingInterrupted.
func (c *Client) FetchListing(ctx context.Context, sid string) ([]models.ListingReference, error) {
  var refs []models.ListingReference

  for page := 1; ; page++ {
    if page > 1 {
      if err := throttle.Sleep(ctx, c.config.PageDelay); err != nil {
        return refs, fmt.Errorf("%w: page %d: %w", ErrListingInterrupted, page, err)
      }
    }

    log.
      WithFields(log.Fields{
        "sid":  sid,
        "page": page,
      }).
      Debug("shop products page fetching")

    parsed, err := c.fetchListingPage(ctx, sid, page)
    if err != nil {
      return refs, fmt.Errorf("%w: page %d: %w", ErrListingInterrupted, page, err)
    }

    pageRefs := makeListingReferences(parsed.Data)
    refs = append(refs, pageRefs...)

    log.
      WithFields(log.Fields{
        "sid":         sid,
        "page":        page,
        "page.items":  len(parsed.Data),
        "page.kept":   len(pageRefs),
        "total.items": len(refs),
      }).
      Debug("shop products page fetched")

    if !parsed.hasNext() {
      return refs, nil
    }
  }
}

func (c *Client) fetchListingPage(ctx context.Context, sid string, page int) (*shopProductsPage, error) {
  var resp shopProductsResponse

  request := makeShopProductsRequest(sid, page, c.config.PageSize)

  if err := c.post(ctx, c.config.ListingURL, nil, request, &resp); err != nil {
    return nil, fmt.Errorf("c.post: %w", err)
  }

  if len(resp) == 0 || resp[0].Data == nil || resp[0].Data.GetShopProduct == nil {
    return nil, fmt.Errorf("%w: shop products response has no GetShopProduct", ErrMalformedResponse)
  }

  return resp[0].Data.GetShopProduct, nil
}

func makeListingReferences(products []shopProduct) []models.ListingReference {
  refs := lo.Map(products, func(product shopProduct, _ int) models.ListingReference {
    ref := models.ListingReference{
      ProductID: cast.ToString(product.ProductID),
      URL:       stringer.Strip(product.ProductURL),
      Name:      stringer.SanitizeString(product.Name),
    }
    if product.Price != nil {
      ref.PriceText = stringer.Strip(product.Price.TextIDR)
    }
    return ref
  })

  return lo.Filter(refs, func(ref models.ListingReference, _ int) bool {
    return ref.Validate() == nil
  })
}
