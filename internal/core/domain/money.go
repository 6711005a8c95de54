package domain

import "github.com/shopspring/decimal"

// MoneyScale is the number of fractional digits kept for every monetary value.
const MoneyScale = 2

// MaxQuantity bounds a single cart line. With MaxPrice it keeps every line
// total and running revenue far inside Decimal128's 34 significant digits.
const MaxQuantity = 10000

// MaxPrice is the highest unit price a product may carry.
var MaxPrice = decimal.New(1, 9)

// ValidPrice reports whether p is within [0, MaxPrice] with at most MoneyScale decimals.
func ValidPrice(p decimal.Decimal) bool {
	if p.IsNegative() || p.GreaterThan(MaxPrice) {
		return false
	}
	return p.Equal(p.Round(MoneyScale))
}

// ValidQuantity reports whether q is an acceptable cart line quantity.
func ValidQuantity(q int) bool {
	return q >= 1 && q <= MaxQuantity
}

// LineTotal returns price * quantity rounded to MoneyScale.
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity))).Round(MoneyScale)
}

// FormatMoney renders an amount with exactly MoneyScale decimals.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(MoneyScale)
}
