package mongodb

import (
  "context"
  "fmt"
  "net"
  "net/http"
  "net/url"
  "time"

  "github.com/go-playground/validator/v10"
  "go.mongodb.org/mongo-driver/mongo"
  "go.mongodb.org/mongo-driver/mongo/options"
)

const defaultConnectTimeout = 10 * time.Second

type Client struct {
  client *mongo.Client
}

type Config struct {
  Host           string `validate:"required"`
  Port           string `validate:"required"`
  Authentication *Authentication
}

type Authentication struct {
  User     string `validate:"required"`
  Password string `validate:"required"`
}

func (c *Config) Validate() error {
  return validator.New().Struct(c)
}

type Dependencies struct {
  Client *http.Client `validate:"required"`
}

func (c *Dependencies) Validate() error {
  return validator.New().Struct(c)
}

// ConnectionString builds the mongodb uri with escaped credentials.
func (c *Config) ConnectionString() string {
  uri := url.URL{
    Scheme: "mongodb",
    Host:   net.JoinHostPort(c.Host, c.Port),
  }
  if c.Authentication != nil {
    uri.User = url.UserPassword(c.Authentication.User, c.Authentication.Password)
  }
  return uri.String()
}

func NewClient(ctx context.Context, config Config, deps Dependencies) (*Client, error) {
  if err := deps.Validate(); err != nil {
    return nil, fmt.Errorf("invalid dependencies: %w", err)
  }
  if err := config.Validate(); err != nil {
    return nil, fmt.Errorf("invalid config: %w", err)
  }

  opts := options.
    Client().
    SetHTTPClient(deps.Client).
    SetConnectTimeout(defaultConnectTimeout).
    ApplyURI(config.ConnectionString())

  client, err := mongo.Connect(ctx, opts)
  if err != nil {
    return nil, fmt.Errorf("mongo.Connect: %w", err)
  }

  if err = client.Ping(ctx, nil); err != nil {
    return nil, fmt.Errorf("client.Ping: %w", err)
  }

  return &Client{
    client: client,
  }, nil
}

func (c *Client) Close(ctx context.Context) error {
  if err := c.client.Disconnect(ctx); err != nil {
    return fmt.Errorf("c.client.Disconnect: %w", err)
  }
  return nil
}
