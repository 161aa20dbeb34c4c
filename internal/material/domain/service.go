package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, req GetRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Archive(ctx context.Context, req GetRequest) (*Response, error)
}

type CreateRequest struct {
	ProjectID string           `json:"-"`
	Name      string           `json:"name"`
	Unit      string           `json:"unit"`
	MinLevel  *decimal.Decimal `json:"min_level"`
}

type GetRequest struct {
	ProjectID string
	ID        string
}

type ListRequest struct {
	ProjectID string
	LowStock  bool
}

type UpdateRequest struct {
	ProjectID string           `json:"-"`
	ID        string           `json:"-"`
	Name      *string          `json:"name"`
	Unit      *string          `json:"unit"`
	MinLevel  *decimal.Decimal `json:"min_level"`
}

type Response struct {
	ID        string          `json:"id"`
	ProjectID string          `json:"project_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Stock     decimal.Decimal `json:"stock"`
	MinLevel  decimal.Decimal `json:"min_level"`
	Status    Status          `json:"status"`
	LowStock  bool            `json:"low_stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

const (
	maxNameLength = 160
	maxUnitLength = 32
)

var (
	ErrInvalidProject  = errors.New("invalid_project")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidUnit     = errors.New("invalid_unit")
	ErrInvalidMinLevel = errors.New("invalid_min_level")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNameTaken       = errors.New("name_taken")
	ErrNotFound        = errors.New("not_found")
)

func ValidName(name string) bool {
	return name != "" && len(name) <= maxNameLength
}

func ValidUnit(unit string) bool {
	return unit != "" && len(unit) <= maxUnitLength
}
