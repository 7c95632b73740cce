package models

type DetailRecord struct {
  URL         string            `bson:"url" json:"url"`
  ProductID   string            `bson:"product_id" json:"product_id"`
  ShopID      string            `bson:"shop_id" json:"shop_id"`
  SKU         string            `bson:"sku" json:"sku"`
  ShopName    string            `bson:"shop_name" json:"shop_name"`
  ProductName string            `bson:"product_name" json:"product_name"`
  PriceText   string            `bson:"price_text" json:"price_text"`
  CountSold   int64             `bson:"count_sold" json:"count_sold"`
  CountReview int64             `bson:"count_review" json:"count_review"`
  Rating      float64           `bson:"rating" json:"rating"`
  CreatedAt   string            `bson:"created_at" json:"created_at"`
  Extra       map[string]string `bson:"extra,omitempty" json:"extra,omitempty"`
}
