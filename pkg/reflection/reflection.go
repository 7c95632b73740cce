package reflection

import "reflect"

// IsZeroValue reports whether the value carries nothing worth storing:
// zero scalars and structs, nil pointers and empty collections.
func IsZeroValue(value reflect.Value) bool {
  if !value.IsValid() {
    return true
  }

  switch value.Kind() {
  case reflect.Slice, reflect.Array, reflect.Chan, reflect.Map:
    return value.Len() == 0
  case reflect.Ptr, reflect.Interface:
    return value.IsNil()
  default:
    return value.IsZero()
  }
}
