package repository

import (
	"context"

	"github.com/sitetrack/sitetrack/internal/project/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, project *domain.Project) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO projects (id, name, owner_user_id, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		project.ID,
		project.Name,
		project.OwnerUserID,
		project.Metadata,
		project.CreatedAt,
		project.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Project, error) {
	var p domain.Project
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, owner_user_id, metadata, created_at, updated_at
		 FROM projects WHERE id = ?`,
		id,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) FindByOwner(ctx context.Context, db *gorm.DB, ownerUserID int64) ([]domain.Project, error) {
	var items []domain.Project
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, owner_user_id, metadata, created_at, updated_at
		 FROM projects WHERE owner_user_id = ? ORDER BY created_at ASC`,
		ownerUserID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
