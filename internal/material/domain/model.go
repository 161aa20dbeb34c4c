package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the material lifecycle state. Only ACTIVE materials accept
// stock transactions.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusArchived Status = "ARCHIVED"
)

type Material struct {
	ID        int64           `json:"id" gorm:"primaryKey"`
	ProjectID int64           `json:"project_id" gorm:"column:project_id;not null;index:ix_materials_project_id;uniqueIndex:ux_materials_project_name,priority:1"`
	Name      string          `json:"name" gorm:"type:varchar(160);not null;uniqueIndex:ux_materials_project_name,priority:2"`
	Unit      string          `json:"unit" gorm:"type:varchar(32);not null"`
	Stock     decimal.Decimal `json:"stock" gorm:"type:decimal(18,3);not null;default:0"`
	MinLevel  decimal.Decimal `json:"min_level" gorm:"column:min_level;type:decimal(18,3);not null;default:0"`
	Status    Status          `json:"status" gorm:"type:text;not null;default:'ACTIVE'"`
	CreatedAt time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Material) TableName() string { return "materials" }
