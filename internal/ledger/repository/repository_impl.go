package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitetrack/sitetrack/internal/ledger/domain"
	"github.com/sitetrack/sitetrack/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const materialStockColumns = `id, project_id, stock, status, updated_at`

func (r *repo) FindMaterialStock(ctx context.Context, conn *gorm.DB, projectID, materialID int64) (*domain.MaterialStock, error) {
	return r.scanMaterialStock(ctx, conn, projectID, materialID, false)
}

func (r *repo) LockMaterialStock(ctx context.Context, conn *gorm.DB, projectID, materialID int64) (*domain.MaterialStock, error) {
	return r.scanMaterialStock(ctx, conn, projectID, materialID, db.SupportsRowLocking(conn))
}

func (r *repo) scanMaterialStock(ctx context.Context, conn *gorm.DB, projectID, materialID int64, forUpdate bool) (*domain.MaterialStock, error) {
	query := `SELECT ` + materialStockColumns + `
		 FROM materials WHERE project_id = ? AND id = ?`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var m domain.MaterialStock
	err := conn.WithContext(ctx).Raw(query, projectID, materialID).Scan(&m).Error
	if err != nil {
		return nil, err
	}
	if m.ID == 0 {
		return nil, nil
	}
	return &m, nil
}

func (r *repo) InsertTransaction(ctx context.Context, conn *gorm.DB, tx *domain.Transaction) error {
	return conn.WithContext(ctx).Exec(
		`INSERT INTO inventory_transactions (id, material_id, project_id, tx_type, quantity, supplier_id, notes, tx_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID,
		tx.MaterialID,
		tx.ProjectID,
		tx.TxType,
		tx.Quantity,
		tx.SupplierID,
		tx.Notes,
		tx.TxDate,
		tx.CreatedAt,
	).Error
}

func (r *repo) UpdateMaterialStock(ctx context.Context, conn *gorm.DB, materialID int64, stock decimal.Decimal, updatedAt time.Time) error {
	return conn.WithContext(ctx).Exec(
		`UPDATE materials SET stock = ?, updated_at = ? WHERE id = ?`,
		stock,
		updatedAt,
		materialID,
	).Error
}

func (r *repo) FindTransactions(ctx context.Context, conn *gorm.DB, filter domain.TxFilter) ([]domain.Transaction, error) {
	query, args := transactionsWhere(filter)
	query = `SELECT id, material_id, project_id, tx_type, quantity, supplier_id, notes, tx_date, created_at
		 FROM inventory_transactions` + query + ` ORDER BY tx_date DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset)

	var items []domain.Transaction
	err := conn.WithContext(ctx).Raw(query, args...).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) CountTransactions(ctx context.Context, conn *gorm.DB, filter domain.TxFilter) (int64, error) {
	query, args := transactionsWhere(filter)
	query = `SELECT COUNT(*) FROM inventory_transactions` + query

	var count int64
	err := conn.WithContext(ctx).Raw(query, args...).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func transactionsWhere(filter domain.TxFilter) (string, []interface{}) {
	query := ` WHERE material_id = ? AND project_id = ?`
	args := []interface{}{filter.MaterialID, filter.ProjectID}
	if filter.From != nil {
		query += ` AND tx_date >= ?`
		args = append(args, filter.From.UTC())
	}
	if filter.To != nil {
		query += ` AND tx_date <= ?`
		args = append(args, filter.To.UTC())
	}
	return query, args
}
