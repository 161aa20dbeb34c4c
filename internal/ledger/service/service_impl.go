package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/sitetrack/sitetrack/internal/authorization"
	"github.com/sitetrack/sitetrack/internal/clock"
	"github.com/sitetrack/sitetrack/internal/config"
	ledgerdomain "github.com/sitetrack/sitetrack/internal/ledger/domain"
	"github.com/sitetrack/sitetrack/internal/observability/logger"
	obsmetrics "github.com/sitetrack/sitetrack/internal/observability/metrics"
	supplierdomain "github.com/sitetrack/sitetrack/internal/supplier/domain"
	"github.com/sitetrack/sitetrack/internal/usercontext"
	"github.com/sitetrack/sitetrack/pkg/db"
	"github.com/sitetrack/sitetrack/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Cfg        config.Config
	Clock      clock.Clock
	Repo       ledgerdomain.Repository
	Authz      authorization.Service
	Suppliers  supplierdomain.Service
	ObsMetrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	cfg        config.Config
	clock      clock.Clock
	repo       ledgerdomain.Repository
	authz      authorization.Service
	suppliers  supplierdomain.Service
	obsMetrics *obsmetrics.Metrics
}

func NewService(p Params) ledgerdomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("ledger.service"),
		genID:      p.GenID,
		cfg:        p.Cfg,
		clock:      p.Clock,
		repo:       p.Repo,
		authz:      p.Authz,
		suppliers:  p.Suppliers,
		obsMetrics: p.ObsMetrics,
	}
}

func (s *Service) RegisterTransaction(ctx context.Context, req ledgerdomain.RegisterTransactionRequest) (*ledgerdomain.RegisterTransactionResponse, error) {
	quantity := ledgerdomain.NormalizeQuantity(req.Quantity)
	if !quantity.IsPositive() {
		return nil, ledgerdomain.ErrInvalidQuantity
	}

	txType, ok := ledgerdomain.ParseTxType(req.TxType)
	if !ok {
		s.recordRejection(ctx, req.TxType, "invalid_transaction_type")
		return nil, ledgerdomain.ErrInvalidTransactionType
	}

	notes := strings.TrimSpace(req.Notes)
	if len(notes) > ledgerdomain.MaxNotesLength {
		return nil, ledgerdomain.ErrInvalidInput
	}

	projectID, materialID, err := parseScope(req.ProjectID, req.MaterialID)
	if err != nil {
		return nil, err
	}

	// Supplier references are meaningful on ENTRY only; other types drop them.
	var supplierID *int64
	if txType == ledgerdomain.TxTypeEntry {
		supplierID, err = s.resolveSupplier(ctx, req.SupplierID)
		if err != nil {
			return nil, err
		}
	}

	current, err := s.repo.FindMaterialStock(ctx, s.db, projectID.Int64(), materialID.Int64())
	if err != nil {
		return nil, s.storageError(ctx, "find material", err)
	}
	if current == nil || !current.Transactable() {
		return nil, ledgerdomain.ErrMaterialNotFound
	}

	if err := s.authorize(ctx, projectID, authorization.ActionMaterialTransact); err != nil {
		return nil, err
	}

	// Fast-fail sufficiency check against the unlocked read. The decision
	// is re-made on the locked row before anything is written.
	if _, err := ledgerdomain.ApplyTxType(txType, quantity, current.Stock); err != nil {
		s.recordRejection(ctx, string(txType), "insufficient_stock")
		return nil, err
	}

	// The ledger stamps its own time; callers cannot backdate entries.
	now := s.clock.Now()
	record := &ledgerdomain.Transaction{
		ID:         s.genID.Generate().Int64(),
		MaterialID: materialID.Int64(),
		ProjectID:  projectID.Int64(),
		TxType:     txType,
		Quantity:   quantity,
		SupplierID: supplierID,
		Notes:      notes,
		TxDate:     now,
		CreatedAt:  now,
	}

	resp := &ledgerdomain.RegisterTransactionResponse{
		Result:              ledgerdomain.ResultSuccess,
		TransactionID:       snowflake.ID(record.ID).String(),
		TransactionType:     txType,
		TransactionQuantity: quantity,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if db.SupportsRowLocking(tx) {
			if err := tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.cfg.LockTimeoutMillis)).Error; err != nil {
				return err
			}
		}

		locked, err := s.repo.LockMaterialStock(ctx, tx, projectID.Int64(), materialID.Int64())
		if err != nil {
			return err
		}
		if locked == nil || !locked.Transactable() {
			return ledgerdomain.ErrMaterialNotFound
		}

		newStock, err := ledgerdomain.ApplyTxType(txType, quantity, locked.Stock)
		if err != nil {
			return err
		}

		if err := s.repo.InsertTransaction(ctx, tx, record); err != nil {
			return err
		}
		if err := s.repo.UpdateMaterialStock(ctx, tx, materialID.Int64(), newStock, s.clock.Now()); err != nil {
			return err
		}

		resp.PreviousStock = locked.Stock
		resp.NewStock = newStock
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			if errors.Is(err, ledgerdomain.ErrInsufficientStock) {
				s.recordRejection(ctx, string(txType), "insufficient_stock")
			}
			return nil, err
		}
		return nil, s.storageError(ctx, "register transaction", err)
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordTransaction(ctx, string(txType))
	}
	logger.WithProject(s.log, projectID.String()).Info("stock transaction registered",
		zap.String("transaction_id", resp.TransactionID),
		zap.String("material_id", materialID.String()),
		zap.String("tx_type", string(txType)),
	)

	return resp, nil
}

func (s *Service) GetStock(ctx context.Context, req ledgerdomain.GetStockRequest) (*ledgerdomain.StockResponse, error) {
	projectID, materialID, err := parseScope(req.ProjectID, req.MaterialID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, projectID, authorization.ActionMaterialView); err != nil {
		return nil, err
	}

	current, err := s.repo.FindMaterialStock(ctx, s.db, projectID.Int64(), materialID.Int64())
	if err != nil {
		return nil, s.storageError(ctx, "find material", err)
	}
	if current == nil {
		return nil, ledgerdomain.ErrMaterialNotFound
	}

	return &ledgerdomain.StockResponse{
		MaterialID: materialID.String(),
		ProjectID:  projectID.String(),
		Stock:      current.Stock,
		UpdatedAt:  current.UpdatedAt,
	}, nil
}

func (s *Service) ListTransactions(ctx context.Context, req ledgerdomain.ListTransactionsRequest) (*ledgerdomain.ListTransactionsResponse, error) {
	projectID, materialID, err := parseScope(req.ProjectID, req.MaterialID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, projectID, authorization.ActionLedgerView); err != nil {
		return nil, err
	}

	current, err := s.repo.FindMaterialStock(ctx, s.db, projectID.Int64(), materialID.Int64())
	if err != nil {
		return nil, s.storageError(ctx, "find material", err)
	}
	if current == nil {
		return nil, ledgerdomain.ErrMaterialNotFound
	}

	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, ledgerdomain.ErrInvalidInput
	}

	page := req.Page.Normalize()
	filter := ledgerdomain.TxFilter{
		MaterialID: materialID.Int64(),
		ProjectID:  projectID.Int64(),
		From:       req.From,
		To:         req.To,
		Limit:      page.Limit(),
		Offset:     page.Offset(),
	}

	total, err := s.repo.CountTransactions(ctx, s.db, filter)
	if err != nil {
		return nil, s.storageError(ctx, "count transactions", err)
	}

	items, err := s.repo.FindTransactions(ctx, s.db, filter)
	if err != nil {
		return nil, s.storageError(ctx, "find transactions", err)
	}

	resp := &ledgerdomain.ListTransactionsResponse{
		Items:    make([]ledgerdomain.TransactionResponse, 0, len(items)),
		PageInfo: pagination.BuildPageInfo(page, total),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, toTransactionResponse(&item))
	}
	return resp, nil
}

func (s *Service) authorize(ctx context.Context, projectID snowflake.ID, action string) error {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return ledgerdomain.ErrAccessDenied
	}
	err := s.authz.Authorize(ctx, authorization.UserActor(userID), projectID.String(), authorization.ObjectMaterial, action)
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, authorization.ErrForbidden),
		errors.Is(err, authorization.ErrInvalidActor),
		errors.Is(err, authorization.ErrInvalidProject):
		return ledgerdomain.ErrAccessDenied
	default:
		return s.storageError(ctx, "authorize", err)
	}
}

func (s *Service) resolveSupplier(ctx context.Context, raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	supplierID, err := snowflake.ParseString(raw)
	if err != nil || supplierID == 0 {
		return nil, ledgerdomain.ErrInvalidInput
	}
	if _, err := s.suppliers.Get(ctx, supplierID.String()); err != nil {
		if errors.Is(err, supplierdomain.ErrNotFound) || errors.Is(err, supplierdomain.ErrInvalidID) {
			return nil, ledgerdomain.ErrInvalidInput
		}
		return nil, s.storageError(ctx, "resolve supplier", err)
	}
	id := supplierID.Int64()
	return &id, nil
}

func (s *Service) storageError(ctx context.Context, op string, err error) error {
	if db.IsSerializationErr(err) {
		s.log.Warn("transaction conflict", zap.String("op", op), zap.Error(err))
		return ledgerdomain.ErrConcurrentModification
	}
	if db.IsLockTimeoutErr(err) {
		s.log.Warn("lock wait expired", zap.String("op", op), zap.Error(err))
		return ledgerdomain.ErrStorageUnavailable
	}
	// Internal storage detail stays in the log, never in the response.
	s.log.Error("storage failure", zap.String("op", op), zap.Error(err))
	return ledgerdomain.ErrStorageUnavailable
}

func (s *Service) recordRejection(ctx context.Context, txType, reason string) {
	if s.obsMetrics == nil {
		return
	}
	s.obsMetrics.RecordStockRejection(ctx, txType, reason)
}

func isDomainError(err error) bool {
	switch {
	case errors.Is(err, ledgerdomain.ErrInvalidQuantity),
		errors.Is(err, ledgerdomain.ErrInvalidTransactionType),
		errors.Is(err, ledgerdomain.ErrInvalidInput),
		errors.Is(err, ledgerdomain.ErrMaterialNotFound),
		errors.Is(err, ledgerdomain.ErrAccessDenied),
		errors.Is(err, ledgerdomain.ErrInsufficientStock),
		errors.Is(err, ledgerdomain.ErrNegativeStock),
		errors.Is(err, ledgerdomain.ErrConcurrentModification),
		errors.Is(err, ledgerdomain.ErrStorageUnavailable):
		return true
	default:
		return false
	}
}

func parseScope(projectRaw, materialRaw string) (snowflake.ID, snowflake.ID, error) {
	projectID, err := snowflake.ParseString(strings.TrimSpace(projectRaw))
	if err != nil || projectID == 0 {
		return 0, 0, ledgerdomain.ErrInvalidInput
	}
	materialID, err := snowflake.ParseString(strings.TrimSpace(materialRaw))
	if err != nil || materialID == 0 {
		return 0, 0, ledgerdomain.ErrInvalidInput
	}
	return projectID, materialID, nil
}

func toTransactionResponse(tx *ledgerdomain.Transaction) ledgerdomain.TransactionResponse {
	resp := ledgerdomain.TransactionResponse{
		ID:         snowflake.ID(tx.ID).String(),
		MaterialID: snowflake.ID(tx.MaterialID).String(),
		ProjectID:  snowflake.ID(tx.ProjectID).String(),
		TxType:     tx.TxType,
		Quantity:   tx.Quantity,
		Notes:      tx.Notes,
		TxDate:     tx.TxDate,
		CreatedAt:  tx.CreatedAt,
	}
	if tx.SupplierID != nil {
		supplierID := snowflake.ID(*tx.SupplierID).String()
		resp.SupplierID = &supplierID
	}
	return resp
}
