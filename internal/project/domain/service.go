package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	ListOwned(ctx context.Context) ([]Response, error)
}

type CreateRequest struct {
	Name     string            `json:"name"`
	Metadata datatypes.JSONMap `json:"metadata"`
}

type Response struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	OwnerUserID string            `json:"owner_user_id"`
	Metadata    datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

var (
	ErrInvalidUser = errors.New("invalid_user")
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
)
