package mongodb

import (
  "reflect"
  "strings"

  "github.com/ushakovn/shopscraper/pkg/reflection"
  "go.mongodb.org/mongo-driver/bson"
)

// makeBsonDUpdates sets every tagged field, so re-scraped zero values
// overwrite stored ones. Empty omitempty fields are unset instead.
func makeBsonDUpdates(document any) bson.D {
  var (
    sets   = bson.D{}
    unsets = bson.D{}
  )

  typ := reflect.TypeOf(document)
  value := reflect.ValueOf(document)

  if typ.Kind() == reflect.Ptr {
    typ = typ.Elem()
    value = value.Elem()
  }

  for i := 0; i < typ.NumField(); i++ {
    field := typ.Field(i)

    tag, opts, _ := strings.Cut(field.Tag.Get("bson"), ",")

    if tag == "" || tag == "-" || !field.IsExported() {
      continue
    }
    val := value.Field(i)

    if strings.Contains(opts, "omitempty") && reflection.IsZeroValue(val) {
      unsets = append(unsets, bson.E{Key: tag, Value: ""})
      continue
    }
    sets = append(sets, bson.E{Key: tag, Value: val.Interface()})
  }

  updates := bson.D{{Key: "$set", Value: sets}}

  if len(unsets) > 0 {
    updates = append(updates, bson.E{Key: "$unset", Value: unsets})
  }
  return updates
}

func makeBsonDFilters(kv map[string]any) bson.D {
  out := bson.D{}

  for key, value := range kv {
    out = append(out, bson.E{
      Key:   key,
      Value: value,
    })
  }

  return out
}
