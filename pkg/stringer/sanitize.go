package stringer

import (
  "html"
  "regexp"
  "strconv"
  "strings"

  "github.com/microcosm-cc/bluemonday"
  "golang.org/x/text/unicode/norm"
)

var (
  policy         = bluemonday.StrictPolicy()
  RegexNonDigit  = regexp.MustCompile(`[^0-9]`)
  RegexDigits    = regexp.MustCompile(`^[0-9]+$`)
  RegexRepeatSep = regexp.MustCompile(`\s{2,}`)
)

func StripTags(s string) string {
  return strings.TrimSpace(policy.Sanitize(s))
}

func Strip(s string) string {
  return strings.TrimSpace(s)
}

func IsEmptyStr(s string) bool {
  return Strip(s) == ""
}

func IsDigits(s string) bool {
  return RegexDigits.MatchString(s)
}

// SanitizeString убирает теги, html-сущности и повторные пробелы.
func SanitizeString(s string) string {
  s = StripTags(s)
  s = html.UnescapeString(s)
  s = RegexRepeatSep.ReplaceAllLiteralString(s, " ")
  s = norm.NFC.String(s)
  return strings.TrimSpace(s)
}

func NormalizeIntStr(s string) string {
  return RegexNonDigit.ReplaceAllLiteralString(s, "")
}

func ParseIntStr(s string) int64 {
  s = NormalizeIntStr(s)
  v, _ := strconv.ParseInt(s, 10, 64)
  return v
}

// FirstNonEmpty returns the first value that is not blank.
func FirstNonEmpty(values ...string) string {
  for _, value := range values {
    if !IsEmptyStr(value) {
      return Strip(value)
    }
  }
  return ""
}
