package tokopedia

import (
  "context"
  "encoding/json"
  "fmt"
  "net/http"
  "time"

  "github.com/go-playground/validator/v10"
  "github.com/go-resty/resty/v2"
  urlvalidator "github.com/ushakovn/shopscraper/pkg/validator"
)

const (
  DefaultListingURL = "https://gql.tokopedia.com/graphql/ShopProducts"
  DefaultDetailURL  = "https://gql.tokopedia.com/graphql/PDPGetLayoutQuery"
  DefaultUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
  DefaultPageSize   = 80
  DefaultPageDelay  = time.Second
  DefaultTimeout    = 30 * time.Second
)

type Client struct {
  config Config
  deps   Dependencies
}

type Config struct {
  ListingURL string `validate:"required,url"`
  DetailURL  string `validate:"required,url"`
  PageSize   int    `validate:"gt=0"`
  PageDelay  time.Duration
}

func (c *Config) Validate() error {
  if err := validator.New().Struct(c); err != nil {
    return err
  }
  if err := urlvalidator.AbsoluteURL(c.ListingURL); err != nil {
    return fmt.Errorf("listing url: %w", err)
  }
  if err := urlvalidator.AbsoluteURL(c.DetailURL); err != nil {
    return fmt.Errorf("detail url: %w", err)
  }
  return nil
}

type Dependencies struct {
  Client *resty.Client `validate:"required"`
}

func (d *Dependencies) Validate() error {
  return validator.New().Struct(d)
}

func NewClient(config Config, deps Dependencies) (*Client, error) {
  if err := deps.Validate(); err != nil {
    return nil, fmt.Errorf("invalid dependencies: %w", err)
  }
  if err := config.Validate(); err != nil {
    return nil, fmt.Errorf("invalid config: %w", err)
  }
  return &Client{
    config: config,
    deps:   deps,
  }, nil
}

type HTTPConfig struct {
  Timeout   time.Duration
  UserAgent string
}

// NewHTTPClient returns a resty client which sends the browser-like
// header set with every request.
func NewHTTPClient(config HTTPConfig) *resty.Client {
  timeout := config.Timeout
  if timeout <= 0 {
    timeout = DefaultTimeout
  }
  userAgent := config.UserAgent
  if userAgent == "" {
    userAgent = DefaultUserAgent
  }

  client := resty.NewWithClient(&http.Client{})
  client.SetTimeout(timeout)
  client.SetHeaders(map[string]string{
    "User-Agent":   userAgent,
    "Accept":       "*/*",
    "Content-Type": "application/json",
    "Origin":       "https://www.tokopedia.com",
    "Referer":      "https://www.tokopedia.com/",
    "X-Source":     "tokopedia-lite",
    "X-Device":     "desktop",
  })

  return client
}

type gqlRequest struct {
  OperationName string `json:"operationName"`
  Variables     any    `json:"variables"`
  Query         string `json:"query"`
}

func (c *Client) post(ctx context.Context, endpoint string, headers map[string]string, request gqlRequest, out any) error {
  resp, err := c.deps.Client.R().
    SetContext(ctx).
    SetHeaders(headers).
    SetBody([]gqlRequest{request}).
    Post(endpoint)

  if err != nil {
    return fmt.Errorf("%w: resty.Client.Post: %w", ErrRequestFailed, err)
  }
  if !resp.IsSuccess() {
    return fmt.Errorf("%w: %s: status %d", ErrStatusNotOK, request.OperationName, resp.StatusCode())
  }

  if err = json.Unmarshal(resp.Body(), out); err != nil {
    return fmt.Errorf("%w: %s: json.Unmarshal: %w", ErrMalformedResponse, request.OperationName, err)
  }

  return nil
}
