package money

import "github.com/leekchan/accounting"

var acc = accounting.Accounting{
  Symbol:    "Rp",
  Precision: 0,
  Thousand:  ".",
  Decimal:   ",",
}

// String форматирует цену в рупиях: 10000 -> Rp10.000.
func String(value int64) string {
  return acc.FormatMoney(value)
}

func Count(value int64) string {
  return accounting.FormatNumber(value, 0, ".", ",")
}
