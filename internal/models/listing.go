package models

import (
  "fmt"

  "github.com/go-playground/validator/v10"
  "github.com/ushakovn/shopscraper/pkg/stringer"
)

type ListingReference struct {
  ProductID string `bson:"product_id" json:"product_id"`
  URL       string `bson:"url" json:"url" validate:"required"`
  Name      string `bson:"name" json:"name"`
  PriceText string `bson:"price_text" json:"price_text"`
}

func (r *ListingReference) Validate() error {
  if err := validator.New().Struct(r); err != nil {
    return err
  }
  if stringer.IsEmptyStr(r.URL) {
    return fmt.Errorf("listing reference url is blank")
  }
  return nil
}
