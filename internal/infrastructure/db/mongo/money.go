package mongo

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
)

// Money is stored as Decimal128 so the server can $inc it without rounding.

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.StringFixed(domain.MoneyScale))
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("%w: encode %s: %v", domain.ErrInvalidAmount, d, err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("decode amount %s: %w", v, err)
	}
	return d, nil
}
