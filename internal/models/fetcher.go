package models

import "context"

type ListingFetcher interface {
  FetchListing(ctx context.Context, sid string) ([]ListingReference, error)
}

type DetailFetcher interface {
  FetchDetail(ctx context.Context, ref ListingReference) (*DetailRecord, error)
}
