package validator

import (
  "fmt"
  "net/url"
)

func AbsoluteURL(value string) error {
  parsed, err := url.ParseRequestURI(value)
  if err != nil {
    return err
  }
  if parsed.Scheme == "" || parsed.Host == "" {
    return fmt.Errorf("url %s is not absolute", value)
  }
  return nil
}
