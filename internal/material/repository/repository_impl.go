package repository

import (
	"context"

	"github.com/sitetrack/sitetrack/internal/material/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, material *domain.Material) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO materials (id, project_id, name, unit, stock, min_level, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		material.ID,
		material.ProjectID,
		material.Name,
		material.Unit,
		material.Stock,
		material.MinLevel,
		material.Status,
		material.CreatedAt,
		material.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, projectID, id int64) (*domain.Material, error) {
	var m domain.Material
	err := db.WithContext(ctx).Raw(
		`SELECT id, project_id, name, unit, stock, min_level, status, created_at, updated_at
		 FROM materials WHERE project_id = ? AND id = ?`,
		projectID,
		id,
	).Scan(&m).Error
	if err != nil {
		return nil, err
	}
	if m.ID == 0 {
		return nil, nil
	}
	return &m, nil
}

func (r *repo) FindByProject(ctx context.Context, db *gorm.DB, projectID int64, lowStockOnly bool) ([]domain.Material, error) {
	query := `SELECT id, project_id, name, unit, stock, min_level, status, created_at, updated_at
		 FROM materials WHERE project_id = ?`
	if lowStockOnly {
		query += ` AND status = 'ACTIVE' AND stock <= min_level`
	}
	query += ` ORDER BY name ASC`

	var items []domain.Material
	err := db.WithContext(ctx).Raw(query, projectID).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, material *domain.Material) error {
	if material == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE materials
		 SET name = ?, unit = ?, min_level = ?, status = ?, updated_at = ?
		 WHERE project_id = ? AND id = ?`,
		material.Name,
		material.Unit,
		material.MinLevel,
		material.Status,
		material.UpdatedAt,
		material.ProjectID,
		material.ID,
	).Error
}
