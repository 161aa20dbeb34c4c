package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, supplier *Supplier) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Supplier, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Supplier, error)
	Update(ctx context.Context, db *gorm.DB, supplier *Supplier) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}
