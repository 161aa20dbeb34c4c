package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitetrack/sitetrack/pkg/db/pagination"
)

type Service interface {
	RegisterTransaction(ctx context.Context, req RegisterTransactionRequest) (*RegisterTransactionResponse, error)
	GetStock(ctx context.Context, req GetStockRequest) (*StockResponse, error)
	ListTransactions(ctx context.Context, req ListTransactionsRequest) (*ListTransactionsResponse, error)
}

type RegisterTransactionRequest struct {
	ProjectID  string          `json:"-"`
	MaterialID string          `json:"-"`
	TxType     string          `json:"tx_type"`
	Quantity   decimal.Decimal `json:"quantity"`
	SupplierID string          `json:"supplier_id"`
	Notes      string          `json:"notes"`
}

type RegisterTransactionResponse struct {
	Result              string          `json:"result"`
	TransactionID       string          `json:"transaction_id"`
	TransactionType     TxType          `json:"transaction_type"`
	TransactionQuantity decimal.Decimal `json:"transaction_quantity"`
	PreviousStock       decimal.Decimal `json:"previous_stock"`
	NewStock            decimal.Decimal `json:"new_stock"`
}

type GetStockRequest struct {
	ProjectID  string
	MaterialID string
}

type StockResponse struct {
	MaterialID string          `json:"material_id"`
	ProjectID  string          `json:"project_id"`
	Stock      decimal.Decimal `json:"stock"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type ListTransactionsRequest struct {
	ProjectID  string
	MaterialID string
	From       *time.Time
	To         *time.Time
	Page       pagination.Pagination
}

type TransactionResponse struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"material_id"`
	ProjectID  string          `json:"project_id"`
	TxType     TxType          `json:"tx_type"`
	Quantity   decimal.Decimal `json:"quantity"`
	SupplierID *string         `json:"supplier_id,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	TxDate     time.Time       `json:"tx_date"`
	CreatedAt  time.Time       `json:"created_at"`
}

type ListTransactionsResponse struct {
	Items    []TransactionResponse `json:"items"`
	PageInfo pagination.PageInfo   `json:"page_info"`
}

// ResultSuccess is the terminal state of a registered transaction.
const ResultSuccess = "SUCCESS"

// MaxNotesLength bounds the optional free-text notes field.
const MaxNotesLength = 400
