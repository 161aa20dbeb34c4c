package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity        = errors.New("invalid_quantity")
	ErrInvalidTransactionType = errors.New("invalid_transaction_type")
	ErrInvalidInput           = errors.New("invalid_input")
	ErrMaterialNotFound       = errors.New("material_not_found")
	ErrAccessDenied           = errors.New("access_denied")
	ErrInsufficientStock      = errors.New("insufficient_stock")
	ErrNegativeStock          = errors.New("negative_stock")
	ErrConcurrentModification = errors.New("concurrent_modification")
	ErrStorageUnavailable     = errors.New("storage_unavailable")
)

// InsufficientStockError carries the stock level that made a USAGE
// impossible so clients can show how much was actually available.
type InsufficientStockError struct {
	Current   decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient_stock: current %s, requested %s", e.Current.String(), e.Requested.String())
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
