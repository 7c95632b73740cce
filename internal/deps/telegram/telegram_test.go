package telegram_test

import (
  "context"
  "io"
  "net/http"
  "net/http/httptest"
  "strings"
  "testing"

  tgbot "github.com/go-telegram/bot"
  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
  "github.com/ushakovn/shopscraper/internal/deps/telegram"
)

func TestUnitNewSenderValidation(t *testing.T) {
  _, err := telegram.NewSender(telegram.Config{Token: "token"})
  assert.Error(t, err, "should require chat id")
}

func TestUnitSendDocument(t *testing.T) {
  var (
    path string
    body string
  )

  srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
    path = req.URL.Path

    raw, err := io.ReadAll(req.Body)
    assert.NoError(t, err)
    body = string(raw)

    wrt.Header().Set("Content-Type", "application/json")
    _, _ = wrt.Write([]byte(`{"ok":true,"result":{"message_id":5,"date":0,"chat":{"id":42,"type":"private"}}}`))
  }))
  t.Cleanup(srv.Close)

  sender, err := telegram.NewSender(
    telegram.Config{Token: "token", ChatID: 42},
    tgbot.WithServerURL(srv.URL),
    tgbot.WithSkipGetMe(),
  )
  require.NoError(t, err)

  err = sender.SendDocument(context.Background(), telegram.Document{
    Filename: "produk.xlsx",
    Data:     []byte("workbook"),
    Caption:  "12 products",
  })
  require.NoError(t, err)

  assert.True(t, strings.HasSuffix(path, "/sendDocument"), "should call sendDocument method")
  assert.Contains(t, body, "produk.xlsx", "should upload document with file name")
  assert.Contains(t, body, "workbook", "should upload document content")
  assert.Contains(t, body, "12 products", "should send caption")
}
