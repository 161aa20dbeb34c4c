package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	Name        string  `json:"name"`
	ContactInfo *string `json:"contact_info"`
	Address     *string `json:"address"`
}

type UpdateRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name"`
	ContactInfo *string `json:"contact_info"`
	Address     *string `json:"address"`
}

type Response struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactInfo *string   `json:"contact_info,omitempty"`
	Address     *string   `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const maxNameLength = 160

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
)

// ValidName reports whether a supplier name fits the column limit.
func ValidName(name string) bool {
	return name != "" && len(name) <= maxNameLength
}
