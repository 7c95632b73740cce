package mongodb

import (
  "context"
  "fmt"
  "reflect"

  log "github.com/sirupsen/logrus"
  "go.mongodb.org/mongo-driver/bson"
  "go.mongodb.org/mongo-driver/mongo"
  "go.mongodb.org/mongo-driver/mongo/options"
)

type CommonParams struct {
  Database   string
  Collection string
  StructType any
}

func (c *Client) collection(params CommonParams) *mongo.Collection {
  return c.client.
    Database(params.Database).
    Collection(params.Collection)
}

func (p *CommonParams) newDocument() any {
  if p.StructType == nil {
    return new(map[string]any)
  }
  typ := reflect.TypeOf(p.StructType)

  if typ.Kind() == reflect.Ptr {
    typ = typ.Elem()
  }
  return reflect.New(typ).Interface()
}

type ScanParams struct {
  CommonParams

  Filters  map[string]any
  SortBy   string
  Callback func(ctx context.Context, value any) error
}

func (p *ScanParams) toOptions() *options.FindOptions {
  opts := options.Find()

  if p.SortBy != "" {
    opts.SetSort(bson.D{{Key: p.SortBy, Value: 1}})
  }
  return opts
}

// Scan decodes documents one by one and passes them to the callback.
// The callback error stops the scan.
func (c *Client) Scan(ctx context.Context, params ScanParams) error {
  cursor, err := c.collection(params.CommonParams).Find(ctx, makeBsonDFilters(params.Filters), params.toOptions())
  if err != nil {
    return fmt.Errorf("c.collection.Find: %w", err)
  }

  defer func() {
    if err := cursor.Close(ctx); err != nil {
      log.Errorf("mongodb: cursor.Close: %v", err)
    }
  }()

  for cursor.Next(ctx) {
    doc := params.newDocument()

    if err = cursor.Decode(doc); err != nil {
      return fmt.Errorf("cursor.Decode: %T: %w", doc, err)
    }

    if err = params.Callback(ctx, doc); err != nil {
      return fmt.Errorf("params.Callback: %T: %w", doc, err)
    }
  }

  if err = cursor.Err(); err != nil {
    return fmt.Errorf("cursor.Err: %w", err)
  }

  return nil
}

type UpsertParams struct {
  CommonParams

  Filters  map[string]any
  Document any
}

// Upsert overwrites the tagged document fields on the matched document or inserts a new one.
func (c *Client) Upsert(ctx context.Context, params UpsertParams) (id any, err error) {
  opts := options.Update().SetUpsert(true)

  res, err := c.collection(params.CommonParams).UpdateOne(ctx,
    makeBsonDFilters(params.Filters),
    makeBsonDUpdates(params.Document),
    opts,
  )
  if err != nil {
    return nil, fmt.Errorf("c.collection.UpdateOne: %w", err)
  }

  return res.UpsertedID, nil
}

type IndexParams struct {
  CommonParams

  Keys   []string
  Unique bool
}

// EnsureIndex creates the ascending compound index when it does not exist yet.
func (c *Client) EnsureIndex(ctx context.Context, params IndexParams) (string, error) {
  keys := bson.D{}

  for _, key := range params.Keys {
    keys = append(keys, bson.E{Key: key, Value: 1})
  }

  name, err := c.collection(params.CommonParams).Indexes().CreateOne(ctx, mongo.IndexModel{
    Keys:    keys,
    Options: options.Index().SetUnique(params.Unique),
  })
  if err != nil {
    return "", fmt.Errorf("c.collection.Indexes.CreateOne: %w", err)
  }

  return name, nil
}
