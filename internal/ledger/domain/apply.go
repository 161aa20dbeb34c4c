package domain

import "github.com/shopspring/decimal"

// FractionalDigits is the precision stock quantities are stored with.
const FractionalDigits = 3

// NormalizeQuantity truncates a quantity to the stored precision.
func NormalizeQuantity(quantity decimal.Decimal) decimal.Decimal {
	return quantity.Truncate(FractionalDigits)
}

// ApplyTxType computes the stock level after applying a transaction.
//
// ENTRY adds the quantity, USAGE subtracts it, ADJUSTMENT sets the stock
// to the quantity as an absolute level. The result is never negative: a
// USAGE exceeding the current stock fails with InsufficientStockError.
func ApplyTxType(txType TxType, quantity, currentStock decimal.Decimal) (decimal.Decimal, error) {
	switch txType {
	case TxTypeEntry:
		if !quantity.IsPositive() {
			return decimal.Zero, ErrInvalidQuantity
		}
		return currentStock.Add(quantity), nil
	case TxTypeUsage:
		if !quantity.IsPositive() {
			return decimal.Zero, ErrInvalidQuantity
		}
		next := currentStock.Sub(quantity)
		if next.IsNegative() {
			return decimal.Zero, &InsufficientStockError{
				Current:   currentStock,
				Requested: quantity,
			}
		}
		return next, nil
	case TxTypeAdjustment:
		if quantity.IsNegative() {
			return decimal.Zero, ErrNegativeStock
		}
		return quantity, nil
	default:
		return decimal.Zero, ErrInvalidTransactionType
	}
}
