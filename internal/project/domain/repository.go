package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, project *Project) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Project, error)
	FindByOwner(ctx context.Context, db *gorm.DB, ownerUserID int64) ([]Project, error)
}
