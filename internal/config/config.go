package config

import (
  "errors"
  "fmt"
  "io/fs"
  "time"

  "github.com/caarlos0/env/v6"
  "github.com/go-playground/validator/v10"
  "github.com/joho/godotenv"
  log "github.com/sirupsen/logrus"
)

// Config holds scraper configuration read from environment variables.
type Config struct {
  HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s" validate:"gt=0"`
  PageDelay   time.Duration `env:"PAGE_DELAY" envDefault:"1s" validate:"gte=0"`
  ItemDelay   time.Duration `env:"ITEM_DELAY" envDefault:"100ms" validate:"gte=0"`
  PageSize    int           `env:"PAGE_SIZE" envDefault:"80" validate:"gt=0"`
  ListingURL  string        `env:"LISTING_URL" envDefault:"https://gql.tokopedia.com/graphql/ShopProducts" validate:"required,url"`
  DetailURL   string        `env:"DETAIL_URL" envDefault:"https://gql.tokopedia.com/graphql/PDPGetLayoutQuery" validate:"required,url"`
  UserAgent   string        `env:"USER_AGENT"`

  Mongodb  Mongodb
  Telegram Telegram
}

// Mongodb holds optional record storage configuration.
type Mongodb struct {
  Host     string `env:"MONGODB_HOST"`
  Port     string `env:"MONGODB_PORT" envDefault:"27017"`
  User     string `env:"MONGODB_USER"`
  Password string `env:"MONGODB_PASSWORD"`
  Database string `env:"MONGODB_DATABASE" envDefault:"scraper" validate:"required"`
}

func (m *Mongodb) Enabled() bool {
  return m.Host != ""
}

// Telegram holds optional export delivery configuration.
type Telegram struct {
  Token  string `env:"TELEGRAM_TOKEN"`
  ChatID int64  `env:"TELEGRAM_CHAT_ID" validate:"required_with=Token"`
}

func (t *Telegram) Enabled() bool {
  return t.Token != ""
}

func (c *Config) Validate() error {
  return validator.New().Struct(c)
}

// Load reads the given .env files, or an optional .env when none given, and parses the environment.
func Load(filenames ...string) (*Config, error) {
  if err := godotenv.Load(filenames...); err != nil {
    // Only the default .env is optional.
    if len(filenames) > 0 || !errors.Is(err, fs.ErrNotExist) {
      return nil, fmt.Errorf("godotenv.Load: %w", err)
    }
    log.Debug("no .env file found: using process environment")
  }

  cfg := new(Config)

  if err := env.Parse(cfg); err != nil {
    return nil, fmt.Errorf("env.Parse: %w", err)
  }
  if err := cfg.Validate(); err != nil {
    return nil, fmt.Errorf("invalid config: %w", err)
  }

  return cfg, nil
}
