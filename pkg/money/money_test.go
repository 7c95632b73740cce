package money_test

import (
  "testing"

  "github.com/stretchr/testify/assert"
  "github.com/ushakovn/shopscraper/pkg/money"
)

func TestUnitString(t *testing.T) {
  assert.Equal(t, "Rp10.000", money.String(10000))
  assert.Equal(t, "Rp0", money.String(0))
}

func TestUnitCount(t *testing.T) {
  assert.Equal(t, "1.234.567", money.Count(1234567))
  assert.Equal(t, "12", money.Count(12))
}
