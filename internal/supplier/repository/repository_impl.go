package repository

import (
	"context"

	"github.com/sitetrack/sitetrack/internal/supplier/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, supplier *domain.Supplier) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO suppliers (id, name, contact_info, address, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		supplier.ID,
		supplier.Name,
		supplier.ContactInfo,
		supplier.Address,
		supplier.CreatedAt,
		supplier.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Supplier, error) {
	var s domain.Supplier
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, contact_info, address, created_at, updated_at
		 FROM suppliers WHERE id = ?`,
		id,
	).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == 0 {
		return nil, nil
	}
	return &s, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Supplier, error) {
	var items []domain.Supplier
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, contact_info, address, created_at, updated_at
		 FROM suppliers ORDER BY name ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, supplier *domain.Supplier) error {
	if supplier == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE suppliers
		 SET name = ?, contact_info = ?, address = ?, updated_at = ?
		 WHERE id = ?`,
		supplier.Name,
		supplier.ContactInfo,
		supplier.Address,
		supplier.UpdatedAt,
		supplier.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM suppliers WHERE id = ?`,
		id,
	).Error
}
