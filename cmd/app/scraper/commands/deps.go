package commands

import (
  "context"
  "fmt"
  "net/http"

  log "github.com/sirupsen/logrus"
  "github.com/ushakovn/shopscraper/internal/app/scraper"
  "github.com/ushakovn/shopscraper/internal/config"
  "github.com/ushakovn/shopscraper/internal/deps/parsers/tokopedia"
  "github.com/ushakovn/shopscraper/internal/deps/storage/mongodb"
  "github.com/ushakovn/shopscraper/internal/deps/telegram"
)

type closer func()

func newMongoClient(ctx context.Context, cfg *config.Config) (*mongodb.Client, closer, error) {
  mongoConfig := mongodb.Config{
    Host: cfg.Mongodb.Host,
    Port: cfg.Mongodb.Port,
  }
  if cfg.Mongodb.User != "" {
    mongoConfig.Authentication = &mongodb.Authentication{
      User:     cfg.Mongodb.User,
      Password: cfg.Mongodb.Password,
    }
  }

  client, err := mongodb.NewClient(ctx, mongoConfig, mongodb.Dependencies{
    Client: http.DefaultClient,
  })
  if err != nil {
    return nil, nil, fmt.Errorf("mongodb.NewClient: %w", err)
  }

  log.
    WithField("mongodb.host", cfg.Mongodb.Host).
    Info("mongodb record storage enabled")

  return client, func() {
    if err := client.Close(context.Background()); err != nil {
      log.Errorf("mongodb: client.Close: %v", err)
    }
  }, nil
}

func newScraper(ctx context.Context, cfg *config.Config) (*scraper.Scraper, closer, error) {
  httpClient := tokopedia.NewHTTPClient(tokopedia.HTTPConfig{
    Timeout:   cfg.HTTPTimeout,
    UserAgent: cfg.UserAgent,
  })

  client, err := tokopedia.NewClient(
    tokopedia.Config{
      ListingURL: cfg.ListingURL,
      DetailURL:  cfg.DetailURL,
      PageSize:   cfg.PageSize,
      PageDelay:  cfg.PageDelay,
    },
    tokopedia.Dependencies{
      Client: httpClient,
    })
  if err != nil {
    return nil, nil, fmt.Errorf("tokopedia.NewClient: %w", err)
  }

  deps := scraper.Dependencies{
    Listing: client,
    Detail:  client,
  }
  closeFn := func() {}

  if cfg.Mongodb.Enabled() {
    mongoClient, closeMongo, err := newMongoClient(ctx, cfg)
    if err != nil {
      return nil, nil, err
    }
    deps.Storage = mongoClient
    closeFn = closeMongo
  }

  s, err := scraper.NewScraper(
    scraper.Config{
      ItemDelay: cfg.ItemDelay,
      Database:  cfg.Mongodb.Database,
    },
    deps,
  )
  if err != nil {
    closeFn()
    return nil, nil, fmt.Errorf("scraper.NewScraper: %w", err)
  }

  return s, closeFn, nil
}

func newTelegramSender(cfg *config.Config) (*telegram.Sender, error) {
  if !cfg.Telegram.Enabled() {
    return nil, nil
  }

  sender, err := telegram.NewSender(telegram.Config{
    Token:  cfg.Telegram.Token,
    ChatID: cfg.Telegram.ChatID,
  })
  if err != nil {
    return nil, fmt.Errorf("telegram.NewSender: %w", err)
  }

  return sender, nil
}
