package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TxType is the stock transaction kind. Values are case-sensitive.
type TxType string

const (
	TxTypeEntry      TxType = "ENTRY"
	TxTypeUsage      TxType = "USAGE"
	TxTypeAdjustment TxType = "ADJUSTMENT"
)

// ParseTxType accepts only the exact canonical spellings.
func ParseTxType(raw string) (TxType, bool) {
	switch TxType(strings.TrimSpace(raw)) {
	case TxTypeEntry:
		return TxTypeEntry, true
	case TxTypeUsage:
		return TxTypeUsage, true
	case TxTypeAdjustment:
		return TxTypeAdjustment, true
	default:
		return "", false
	}
}

// Transaction is an append-only stock movement record. Rows are never
// updated or deleted; corrections happen through compensating entries.
type Transaction struct {
	ID         int64           `json:"id" gorm:"primaryKey"`
	MaterialID int64           `json:"material_id" gorm:"column:material_id;not null;index:ix_inventory_transactions_material_tx_date,priority:1"`
	ProjectID  int64           `json:"project_id" gorm:"column:project_id;not null"`
	TxType     TxType          `json:"tx_type" gorm:"column:tx_type;type:varchar(16);not null"`
	Quantity   decimal.Decimal `json:"quantity" gorm:"type:decimal(18,3);not null"`
	SupplierID *int64          `json:"supplier_id,omitempty" gorm:"column:supplier_id"`
	Notes      string          `json:"notes,omitempty" gorm:"type:varchar(400)"`
	TxDate     time.Time       `json:"tx_date" gorm:"column:tx_date;not null;index:ix_inventory_transactions_material_tx_date,priority:2,sort:desc"`
	CreatedAt  time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Transaction) TableName() string { return "inventory_transactions" }

// MaterialStock is the slice of the material row the ledger reads and locks.
type MaterialStock struct {
	ID        int64           `gorm:"column:id"`
	ProjectID int64           `gorm:"column:project_id"`
	Stock     decimal.Decimal `gorm:"column:stock"`
	Status    string          `gorm:"column:status"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

const materialStatusActive = "ACTIVE"

// Transactable reports whether the material accepts stock movements.
func (m *MaterialStock) Transactable() bool {
	return m != nil && m.Status == materialStatusActive
}
