package contract

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// gramsPerTonne is the scaling factor between the human-facing CO2 unit
// (metric tonnes) and the integer grams the contracts store on-chain.
var gramsPerTonne = decimal.New(1, 6)

// TonnesToGrams converts a CO2 amount in metric tonnes to its on-chain
// representation in grams.
//
// Supported input types for iamount: string, float64, int64, decimal.Decimal,
// *decimal.Decimal. Any other type results in an error, as does a negative
// amount or one with sub-gram precision.
//
// The returned value is a *big.Int representing amount * 10^6.
func TonnesToGrams(iamount any) (grams *big.Int, err error) {
	amount := decimal.NewFromFloat(0)
	switch v := iamount.(type) {
	case string:
		amount, err = decimal.NewFromString(v)
		if err != nil {
			zap.L().Error("Failed to convert string to decimal", zap.Error(err))
			return nil, err
		}
	case float64:
		amount = decimal.NewFromFloat(v)
	case int64:
		amount = decimal.NewFromInt(v)
	case decimal.Decimal:
		amount = v
	case *decimal.Decimal:
		if v == nil {
			return nil, fmt.Errorf("nil decimal amount")
		}
		amount = *v
	default:
		return nil, fmt.Errorf("unsupported amount type %T", iamount)
	}

	if amount.IsNegative() {
		return nil, fmt.Errorf("emission amount must not be negative: %s", amount)
	}

	scaled := amount.Mul(gramsPerTonne)
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, fmt.Errorf("emission amount %s has sub-gram precision", amount)
	}

	return scaled.BigInt(), nil
}

// GramsToTonnes converts an on-chain grams value back to metric tonnes.
func GramsToTonnes(grams *big.Int) (decimal.Decimal, error) {
	if grams == nil {
		return decimal.Decimal{}, fmt.Errorf("nil grams value")
	}
	return decimal.NewFromBigInt(grams, 0).Div(gramsPerTonne), nil
}
