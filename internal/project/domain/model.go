package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Project struct {
	ID          int64             `json:"id" gorm:"primaryKey"`
	Name        string            `json:"name" gorm:"type:text;not null"`
	OwnerUserID int64             `json:"owner_user_id" gorm:"column:owner_user_id;not null;index:ix_projects_owner_user_id"`
	Metadata    datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt   time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Project) TableName() string { return "projects" }
