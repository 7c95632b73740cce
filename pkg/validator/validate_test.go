package validator_test

import (
  "testing"

  "github.com/stretchr/testify/assert"
  "github.com/ushakovn/shopscraper/pkg/validator"
)

func TestUnitAbsoluteURL(t *testing.T) {
  assert.NoError(t, validator.AbsoluteURL("https://gql.tokopedia.com/graphql/ShopProducts"))
  assert.Error(t, validator.AbsoluteURL("/graphql/ShopProducts"))
  assert.Error(t, validator.AbsoluteURL("not a url"))
}
