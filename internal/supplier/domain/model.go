package domain

import "time"

type Supplier struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(160);not null"`
	ContactInfo *string   `json:"contact_info,omitempty" gorm:"type:text"`
	Address     *string   `json:"address,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Supplier) TableName() string { return "suppliers" }
