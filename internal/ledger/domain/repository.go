package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TxFilter scopes transaction history queries. From and To bound tx_date
// inclusively when set.
type TxFilter struct {
	MaterialID int64
	ProjectID  int64
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

type Repository interface {
	// FindMaterialStock reads the material row without locking it.
	FindMaterialStock(ctx context.Context, db *gorm.DB, projectID, materialID int64) (*MaterialStock, error)
	// LockMaterialStock reads the material row holding a row lock for the
	// duration of the surrounding transaction on dialects that support it.
	LockMaterialStock(ctx context.Context, db *gorm.DB, projectID, materialID int64) (*MaterialStock, error)
	InsertTransaction(ctx context.Context, db *gorm.DB, tx *Transaction) error
	UpdateMaterialStock(ctx context.Context, db *gorm.DB, materialID int64, stock decimal.Decimal, updatedAt time.Time) error
	FindTransactions(ctx context.Context, db *gorm.DB, filter TxFilter) ([]Transaction, error)
	CountTransactions(ctx context.Context, db *gorm.DB, filter TxFilter) (int64, error)
}
