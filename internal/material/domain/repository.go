package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, material *Material) error
	FindByID(ctx context.Context, db *gorm.DB, projectID, id int64) (*Material, error)
	FindByProject(ctx context.Context, db *gorm.DB, projectID int64, lowStockOnly bool) ([]Material, error)
	Update(ctx context.Context, db *gorm.DB, material *Material) error
}
