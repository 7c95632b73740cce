package telegram

import (
  "bytes"
  "context"
  "fmt"

  "github.com/go-playground/validator/v10"
  tgbot "github.com/go-telegram/bot"
  tgmodels "github.com/go-telegram/bot/models"
  log "github.com/sirupsen/logrus"
)

type Config struct {
  Token  string `validate:"required"`
  ChatID int64  `validate:"required"`
}

func (c *Config) Validate() error {
  return validator.New().Struct(c)
}

type Sender struct {
  config Config
  bot    *tgbot.Bot
}

func NewBotClient(config Config, opts ...tgbot.Option) (*tgbot.Bot, error) {
  bot, err := tgbot.New(config.Token, opts...)
  if err != nil {
    return nil, fmt.Errorf("tgbot.New: %w", err)
  }
  log.Info("telegram bot client connection successfully")

  return bot, nil
}

func NewSender(config Config, opts ...tgbot.Option) (*Sender, error) {
  if err := config.Validate(); err != nil {
    return nil, fmt.Errorf("invalid config: %w", err)
  }

  bot, err := NewBotClient(config, opts...)
  if err != nil {
    return nil, fmt.Errorf("NewBotClient: %w", err)
  }

  return &Sender{
    config: config,
    bot:    bot,
  }, nil
}

type Document struct {
  Filename string
  Data     []byte
  Caption  string
}

// SendDocument uploads the document to the configured chat.
func (s *Sender) SendDocument(ctx context.Context, doc Document) error {
  sent, err := s.bot.SendDocument(ctx, &tgbot.SendDocumentParams{
    ChatID: s.config.ChatID,
    Document: &tgmodels.InputFileUpload{
      Filename: doc.Filename,
      Data:     bytes.NewReader(doc.Data),
    },
    Caption: doc.Caption,
  })
  if err != nil {
    return fmt.Errorf("s.bot.SendDocument: %w", err)
  }

  log.
    WithFields(log.Fields{
      "document.filename": doc.Filename,
      "message.chat_id":   s.config.ChatID,
      "message.sent_id":   sent.ID,
    }).
    Info("document sent to telegram chat")

  return nil
}
