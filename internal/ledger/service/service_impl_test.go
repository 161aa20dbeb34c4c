package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/sitetrack/sitetrack/internal/authorization"
	"github.com/sitetrack/sitetrack/internal/clock"
	"github.com/sitetrack/sitetrack/internal/config"
	ledgerdomain "github.com/sitetrack/sitetrack/internal/ledger/domain"
	"github.com/sitetrack/sitetrack/internal/ledger/repository"
	supplierdomain "github.com/sitetrack/sitetrack/internal/supplier/domain"
	"github.com/sitetrack/sitetrack/internal/usercontext"
	"github.com/sitetrack/sitetrack/pkg/db/pagination"
	"go.uber.org/zap"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type authzStub struct {
	mu     sync.Mutex
	calls  int
	denied map[string]error
}

func (a *authzStub) Authorize(ctx context.Context, actor, projectID, object, action string) error {
	a.mu.Lock()
	a.calls++
	a.mu.Unlock()
	if a.denied == nil {
		return nil
	}
	if err, ok := a.denied[actor]; ok {
		return err
	}
	return nil
}

type supplierStub struct {
	known map[string]bool
}

func (s *supplierStub) Create(ctx context.Context, req supplierdomain.CreateRequest) (*supplierdomain.Response, error) {
	return nil, errors.New("not implemented")
}

func (s *supplierStub) Get(ctx context.Context, id string) (*supplierdomain.Response, error) {
	if s.known[id] {
		return &supplierdomain.Response{ID: id, Name: "supplier"}, nil
	}
	return nil, supplierdomain.ErrNotFound
}

func (s *supplierStub) List(ctx context.Context) ([]supplierdomain.Response, error) {
	return nil, nil
}

func (s *supplierStub) Update(ctx context.Context, req supplierdomain.UpdateRequest) (*supplierdomain.Response, error) {
	return nil, errors.New("not implemented")
}

func (s *supplierStub) Delete(ctx context.Context, id string) error {
	return nil
}

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return node
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type ledgerFixture struct {
	service ledgerdomain.Service
	db      *gorm.DB
	node    *snowflake.Node
	clock   *clock.FakeClock
	authz   *authzStub

	projectID  snowflake.ID
	materialID snowflake.ID
	supplierID snowflake.ID
	userID     snowflake.ID
}

func setupLedgerService(t *testing.T) *ledgerFixture {
	t.Helper()

	node := mustNode(t)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	_ = db.Exec("PRAGMA busy_timeout = 5000").Error
	_ = db.Exec("PRAGMA journal_mode = WAL").Error
	prepareLedgerSchema(t, db)

	fixture := &ledgerFixture{
		db:         db,
		node:       node,
		clock:      clock.NewFakeClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)),
		authz:      &authzStub{},
		projectID:  node.Generate(),
		materialID: node.Generate(),
		supplierID: node.Generate(),
		userID:     node.Generate(),
	}

	seedMaterial(t, db, fixture.projectID, fixture.materialID, "30", "ACTIVE")

	fixture.service = NewService(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Cfg:       config.Config{LockTimeoutMillis: 5000},
		Clock:     fixture.clock,
		Repo:      repository.Provide(),
		Authz:     fixture.authz,
		Suppliers: &supplierStub{known: map[string]bool{fixture.supplierID.String(): true}},
	})

	return fixture
}

func prepareLedgerSchema(t *testing.T, db *gorm.DB) {
	t.Helper()

	if err := db.Exec(`CREATE TABLE materials (
		id BIGINT PRIMARY KEY,
		project_id BIGINT NOT NULL,
		name TEXT NOT NULL,
		unit TEXT NOT NULL,
		stock DECIMAL(18,3) NOT NULL DEFAULT 0,
		min_level DECIMAL(18,3) NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'ACTIVE',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`).Error; err != nil {
		t.Fatalf("create materials: %v", err)
	}
	if err := db.Exec(`CREATE TABLE inventory_transactions (
		id BIGINT PRIMARY KEY,
		material_id BIGINT NOT NULL,
		project_id BIGINT NOT NULL,
		tx_type TEXT NOT NULL,
		quantity DECIMAL(18,3) NOT NULL,
		supplier_id BIGINT,
		notes TEXT,
		tx_date DATETIME NOT NULL,
		created_at DATETIME NOT NULL
	)`).Error; err != nil {
		t.Fatalf("create inventory_transactions: %v", err)
	}
}

func seedMaterial(t *testing.T, db *gorm.DB, projectID, materialID snowflake.ID, stock, status string) {
	t.Helper()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if err := db.Exec(
		`INSERT INTO materials (id, project_id, name, unit, stock, min_level, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		materialID.Int64(), projectID.Int64(), "cement", "kg", stock, "5", status, now, now,
	).Error; err != nil {
		t.Fatalf("seed material: %v", err)
	}
}

func (f *ledgerFixture) ctx() context.Context {
	return usercontext.WithUserID(context.Background(), f.userID.Int64())
}

func (f *ledgerFixture) register(t *testing.T, req ledgerdomain.RegisterTransactionRequest) *ledgerdomain.RegisterTransactionResponse {
	t.Helper()
	req.ProjectID = f.projectID.String()
	req.MaterialID = f.materialID.String()
	resp, err := f.service.RegisterTransaction(f.ctx(), req)
	if err != nil {
		t.Fatalf("register transaction: %v", err)
	}
	return resp
}

func (f *ledgerFixture) currentStock(t *testing.T) decimal.Decimal {
	t.Helper()
	var raw string
	if err := f.db.Raw(`SELECT stock FROM materials WHERE id = ?`, f.materialID.Int64()).Scan(&raw).Error; err != nil {
		t.Fatalf("read stock: %v", err)
	}
	return decimal.RequireFromString(raw)
}

func (f *ledgerFixture) countTransactions(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := f.db.Raw(`SELECT COUNT(*) FROM inventory_transactions`).Scan(&count).Error; err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	return count
}

func TestRegisterTransactionEntry(t *testing.T) {
	f := setupLedgerService(t)

	resp := f.register(t, ledgerdomain.RegisterTransactionRequest{
		TxType:     "ENTRY",
		Quantity:   dec("50"),
		SupplierID: f.supplierID.String(),
	})

	if resp.Result != ledgerdomain.ResultSuccess {
		t.Fatalf("expected SUCCESS, got %s", resp.Result)
	}
	if !resp.PreviousStock.Equal(dec("30")) {
		t.Fatalf("expected previous stock 30, got %s", resp.PreviousStock)
	}
	if !resp.NewStock.Equal(dec("80")) {
		t.Fatalf("expected new stock 80, got %s", resp.NewStock)
	}
	if !f.currentStock(t).Equal(dec("80")) {
		t.Fatalf("expected persisted stock 80, got %s", f.currentStock(t))
	}

	// The returned id must be the persisted row, not a placeholder.
	parsed, err := snowflake.ParseString(resp.TransactionID)
	if err != nil {
		t.Fatalf("parse transaction id: %v", err)
	}
	var persisted int64
	if err := f.db.Raw(`SELECT id FROM inventory_transactions LIMIT 1`).Scan(&persisted).Error; err != nil {
		t.Fatalf("read transaction id: %v", err)
	}
	if persisted != parsed.Int64() {
		t.Fatalf("expected returned id %d to match persisted %d", parsed.Int64(), persisted)
	}

	var supplier sql.NullInt64
	if err := f.db.Raw(`SELECT supplier_id FROM inventory_transactions WHERE id = ?`, persisted).Scan(&supplier).Error; err != nil {
		t.Fatalf("read supplier: %v", err)
	}
	if !supplier.Valid || supplier.Int64 != f.supplierID.Int64() {
		t.Fatalf("expected supplier %d persisted, got %+v", f.supplierID.Int64(), supplier)
	}
}

func TestRegisterTransactionUsage(t *testing.T) {
	f := setupLedgerService(t)

	resp := f.register(t, ledgerdomain.RegisterTransactionRequest{
		TxType:   "USAGE",
		Quantity: dec("20"),
	})

	if !resp.NewStock.Equal(dec("10")) {
		t.Fatalf("expected new stock 10, got %s", resp.NewStock)
	}
	if !f.currentStock(t).Equal(dec("10")) {
		t.Fatalf("expected persisted stock 10, got %s", f.currentStock(t))
	}
}

func TestRegisterTransactionUsageInsufficientStock(t *testing.T) {
	f := setupLedgerService(t)

	_, err := f.service.RegisterTransaction(f.ctx(), ledgerdomain.RegisterTransactionRequest{
		ProjectID:  f.projectID.String(),
		MaterialID: f.materialID.String(),
		TxType:     "USAGE",
		Quantity:   dec("999"),
	})
	if !errors.Is(err, ledgerdomain.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}

	var insufficient *ledgerdomain.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %T", err)
	}
	if !insufficient.Current.Equal(dec("30")) || !insufficient.Requested.Equal(dec("999")) {
		t.Fatalf("unexpected detail: current %s requested %s", insufficient.Current, insufficient.Requested)
	}

	if count := f.countTransactions(t); count != 0 {
		t.Fatalf("expected no transactions after rejection, got %d", count)
	}
	if !f.currentStock(t).Equal(dec("30")) {
		t.Fatalf("expected stock unchanged at 30, got %s", f.currentStock(t))
	}
}

func TestRegisterTransactionAdjustment(t *testing.T) {
	f := setupLedgerService(t)

	resp := f.register(t, ledgerdomain.RegisterTransactionRequest{
		TxType:   "ADJUSTMENT",
		Quantity: dec("12"),
	})

	if !resp.PreviousStock.Equal(dec("30")) {
		t.Fatalf("expected previous stock 30, got %s", resp.PreviousStock)
	}
	if !resp.NewStock.Equal(dec("12")) {
		t.Fatalf("expected absolute stock 12, got %s", resp.NewStock)
	}
	if !f.currentStock(t).Equal(dec("12")) {
		t.Fatalf("expected persisted stock 12, got %s", f.currentStock(t))
	}
}

func TestRegisterTransactionAdjustmentRepeated(t *testing.T) {
	f := setupLedgerService(t)

	// Setting the same absolute level twice keeps the stock there but
	// still appends one row per call.
	first := f.register(t, ledgerdomain.RegisterTransactionRequest{
		TxType:   "ADJUSTMENT",
		Quantity: dec("5"),
	})
	second := f.register(t, ledgerdomain.RegisterTransactionRequest{
		TxType:   "ADJUSTMENT",
		Quantity: dec("5"),
	})

	if !first.NewStock.Equal(dec("5")) || !second.NewStock.Equal(dec("5")) {
		t.Fatalf("expected stock 5 after each adjustment, got %s then %s", first.NewStock, second.NewStock)
	}
	if !second.PreviousStock.Equal(dec("5")) {
		t.Fatalf("expected previous stock 5 on second adjustment, got %s", second.PreviousStock)
	}
	if !f.currentStock(t).Equal(dec("5")) {
		t.Fatalf("expected persisted stock 5, got %s", f.currentStock(t))
	}
	if count := f.countTransactions(t); count != 2 {
		t.Fatalf("expected 2 transaction rows, got %d", count)
	}
}

func TestRegisterTransactionStampsServerTime(t *testing.T) {
	f := setupLedgerService(t)

	// A tx_date in the request body is not bound to anything; the ledger
	// stamps its own clock so entries cannot be backdated.
	var req ledgerdomain.RegisterTransactionRequest
	body := `{"tx_type":"ENTRY","quantity":"50","tx_date":"2020-01-01T00:00:00Z"}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal request: %v", err)
	}

	resp := f.register(t, req)

	parsed, err := snowflake.ParseString(resp.TransactionID)
	if err != nil {
		t.Fatalf("parse transaction id: %v", err)
	}
	var txDate time.Time
	if err := f.db.Raw(`SELECT tx_date FROM inventory_transactions WHERE id = ?`, parsed.Int64()).Scan(&txDate).Error; err != nil {
		t.Fatalf("read tx_date: %v", err)
	}
	if !txDate.UTC().Equal(f.clock.Now()) {
		t.Fatalf("expected tx_date %s, got %s", f.clock.Now(), txDate.UTC())
	}
}

func TestRegisterTransactionValidation(t *testing.T) {
	f := setupLedgerService(t)

	tests := []struct {
		name    string
		req     ledgerdomain.RegisterTransactionRequest
		wantErr error
	}{
		{
			name:    "zero quantity",
			req:     ledgerdomain.RegisterTransactionRequest{TxType: "ENTRY", Quantity: dec("0")},
			wantErr: ledgerdomain.ErrInvalidQuantity,
		},
		{
			name:    "negative quantity",
			req:     ledgerdomain.RegisterTransactionRequest{TxType: "USAGE", Quantity: dec("-4")},
			wantErr: ledgerdomain.ErrInvalidQuantity,
		},
		{
			name:    "sub-milli quantity truncates to zero",
			req:     ledgerdomain.RegisterTransactionRequest{TxType: "ENTRY", Quantity: dec("0.0004")},
			wantErr: ledgerdomain.ErrInvalidQuantity,
		},
		{
			name:    "unknown type",
			req:     ledgerdomain.RegisterTransactionRequest{TxType: "TRANSFER", Quantity: dec("5")},
			wantErr: ledgerdomain.ErrInvalidTransactionType,
		},
		{
			name:    "lowercase type",
			req:     ledgerdomain.RegisterTransactionRequest{TxType: "entry", Quantity: dec("5")},
			wantErr: ledgerdomain.ErrInvalidTransactionType,
		},
		{
			name: "notes too long",
			req: ledgerdomain.RegisterTransactionRequest{
				TxType:   "ENTRY",
				Quantity: dec("5"),
				Notes:    string(make([]byte, 401)),
			},
			wantErr: ledgerdomain.ErrInvalidInput,
		},
		{
			name: "unknown supplier on entry",
			req: ledgerdomain.RegisterTransactionRequest{
				TxType:     "ENTRY",
				Quantity:   dec("5"),
				SupplierID: "12345",
			},
			wantErr: ledgerdomain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.ProjectID = f.projectID.String()
			req.MaterialID = f.materialID.String()
			_, err := f.service.RegisterTransaction(f.ctx(), req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if count := f.countTransactions(t); count != 0 {
		t.Fatalf("expected no transactions after rejections, got %d", count)
	}
}

func TestRegisterTransactionSupplierIgnoredOnUsage(t *testing.T) {
	f := setupLedgerService(t)

	// A supplier reference on a non-ENTRY type is dropped rather than
	// validated, so an unknown id does not fail the request.
	resp := f.register(t, ledgerdomain.RegisterTransactionRequest{
		TxType:     "USAGE",
		Quantity:   dec("5"),
		SupplierID: "12345",
	})

	var supplier sql.NullInt64
	parsed, _ := snowflake.ParseString(resp.TransactionID)
	if err := f.db.Raw(`SELECT supplier_id FROM inventory_transactions WHERE id = ?`, parsed.Int64()).Scan(&supplier).Error; err != nil {
		t.Fatalf("read supplier: %v", err)
	}
	if supplier.Valid {
		t.Fatalf("expected null supplier on USAGE, got %d", supplier.Int64)
	}
}

func TestRegisterTransactionAccessDenied(t *testing.T) {
	f := setupLedgerService(t)
	f.authz.denied = map[string]error{
		authorization.UserActor(f.userID): authorization.ErrForbidden,
	}

	_, err := f.service.RegisterTransaction(f.ctx(), ledgerdomain.RegisterTransactionRequest{
		ProjectID:  f.projectID.String(),
		MaterialID: f.materialID.String(),
		TxType:     "ENTRY",
		Quantity:   dec("5"),
	})
	if !errors.Is(err, ledgerdomain.ErrAccessDenied) {
		t.Fatalf("expected access denied, got %v", err)
	}
	if count := f.countTransactions(t); count != 0 {
		t.Fatalf("expected no transactions, got %d", count)
	}
}

func TestRegisterTransactionMissingUser(t *testing.T) {
	f := setupLedgerService(t)

	_, err := f.service.RegisterTransaction(context.Background(), ledgerdomain.RegisterTransactionRequest{
		ProjectID:  f.projectID.String(),
		MaterialID: f.materialID.String(),
		TxType:     "ENTRY",
		Quantity:   dec("5"),
	})
	if !errors.Is(err, ledgerdomain.ErrAccessDenied) {
		t.Fatalf("expected access denied, got %v", err)
	}
}

func TestRegisterTransactionWrongProject(t *testing.T) {
	f := setupLedgerService(t)
	otherProject := f.node.Generate()

	_, err := f.service.RegisterTransaction(f.ctx(), ledgerdomain.RegisterTransactionRequest{
		ProjectID:  otherProject.String(),
		MaterialID: f.materialID.String(),
		TxType:     "ENTRY",
		Quantity:   dec("5"),
	})
	if !errors.Is(err, ledgerdomain.ErrMaterialNotFound) {
		t.Fatalf("expected material not found, got %v", err)
	}
}

func TestRegisterTransactionArchivedMaterial(t *testing.T) {
	f := setupLedgerService(t)
	archived := f.node.Generate()
	seedMaterial(t, f.db, f.projectID, archived, "10", "ARCHIVED")

	_, err := f.service.RegisterTransaction(f.ctx(), ledgerdomain.RegisterTransactionRequest{
		ProjectID:  f.projectID.String(),
		MaterialID: archived.String(),
		TxType:     "ENTRY",
		Quantity:   dec("5"),
	})
	if !errors.Is(err, ledgerdomain.ErrMaterialNotFound) {
		t.Fatalf("expected material not found for archived material, got %v", err)
	}
}

func TestRegisterTransactionMalformedIDs(t *testing.T) {
	f := setupLedgerService(t)

	_, err := f.service.RegisterTransaction(f.ctx(), ledgerdomain.RegisterTransactionRequest{
		ProjectID:  "not-a-number",
		MaterialID: f.materialID.String(),
		TxType:     "ENTRY",
		Quantity:   dec("5"),
	})
	if !errors.Is(err, ledgerdomain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestRegisterTransactionConcurrentEntries(t *testing.T) {
	f := setupLedgerService(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.RegisterTransaction(f.ctx(), ledgerdomain.RegisterTransactionRequest{
				ProjectID:  f.projectID.String(),
				MaterialID: f.materialID.String(),
				TxType:     "ENTRY",
				Quantity:   dec("10"),
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("concurrent register %d: %v", i, err)
		}
	}

	if !f.currentStock(t).Equal(dec("50")) {
		t.Fatalf("expected stock 50 after two entries of 10, got %s", f.currentStock(t))
	}
	if count := f.countTransactions(t); count != 2 {
		t.Fatalf("expected 2 transactions, got %d", count)
	}
}

func TestGetStock(t *testing.T) {
	f := setupLedgerService(t)

	resp, err := f.service.GetStock(f.ctx(), ledgerdomain.GetStockRequest{
		ProjectID:  f.projectID.String(),
		MaterialID: f.materialID.String(),
	})
	if err != nil {
		t.Fatalf("get stock: %v", err)
	}
	if !resp.Stock.Equal(dec("30")) {
		t.Fatalf("expected stock 30, got %s", resp.Stock)
	}
}

func TestGetStockArchivedMaterial(t *testing.T) {
	f := setupLedgerService(t)
	archived := f.node.Generate()
	seedMaterial(t, f.db, f.projectID, archived, "7", "ARCHIVED")

	// Archived materials stay readable, they just reject movements.
	resp, err := f.service.GetStock(f.ctx(), ledgerdomain.GetStockRequest{
		ProjectID:  f.projectID.String(),
		MaterialID: archived.String(),
	})
	if err != nil {
		t.Fatalf("get stock: %v", err)
	}
	if !resp.Stock.Equal(dec("7")) {
		t.Fatalf("expected stock 7, got %s", resp.Stock)
	}
}

func TestGetStockUnknownMaterial(t *testing.T) {
	f := setupLedgerService(t)

	_, err := f.service.GetStock(f.ctx(), ledgerdomain.GetStockRequest{
		ProjectID:  f.projectID.String(),
		MaterialID: f.node.Generate().String(),
	})
	if !errors.Is(err, ledgerdomain.ErrMaterialNotFound) {
		t.Fatalf("expected material not found, got %v", err)
	}
}

func TestListTransactionsOrderingAndWindow(t *testing.T) {
	f := setupLedgerService(t)

	base := f.clock.Now()
	for i := 0; i < 5; i++ {
		f.register(t, ledgerdomain.RegisterTransactionRequest{
			TxType:   "ENTRY",
			Quantity: dec("1"),
		})
		f.clock.Advance(24 * time.Hour)
	}

	resp, err := f.service.ListTransactions(f.ctx(), ledgerdomain.ListTransactionsRequest{
		ProjectID:  f.projectID.String(),
		MaterialID: f.materialID.String(),
	})
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(resp.Items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(resp.Items))
	}
	if resp.PageInfo.TotalCount != 5 {
		t.Fatalf("expected total 5, got %d", resp.PageInfo.TotalCount)
	}
	for i := 1; i < len(resp.Items); i++ {
		if resp.Items[i].TxDate.After(resp.Items[i-1].TxDate) {
			t.Fatalf("expected descending tx_date order at index %d", i)
		}
	}

	// Inclusive window keeps the boundary days.
	from := base.AddDate(0, 0, 1)
	to := base.AddDate(0, 0, 3)
	windowed, err := f.service.ListTransactions(f.ctx(), ledgerdomain.ListTransactionsRequest{
		ProjectID:  f.projectID.String(),
		MaterialID: f.materialID.String(),
		From:       &from,
		To:         &to,
	})
	if err != nil {
		t.Fatalf("list windowed: %v", err)
	}
	if len(windowed.Items) != 3 {
		t.Fatalf("expected 3 items in window, got %d", len(windowed.Items))
	}
}

func TestListTransactionsPagination(t *testing.T) {
	f := setupLedgerService(t)

	for i := 0; i < 5; i++ {
		f.register(t, ledgerdomain.RegisterTransactionRequest{
			TxType:   "ENTRY",
			Quantity: dec("1"),
		})
		f.clock.Advance(time.Minute)
	}

	page1, err := f.service.ListTransactions(f.ctx(), ledgerdomain.ListTransactionsRequest{
		ProjectID:  f.projectID.String(),
		MaterialID: f.materialID.String(),
		Page:       pagination.Pagination{Page: 1, PageSize: 2},
	})
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if len(page1.Items) != 2 || page1.PageInfo.TotalCount != 5 {
		t.Fatalf("expected 2 items of 5, got %d of %d", len(page1.Items), page1.PageInfo.TotalCount)
	}

	page3, err := f.service.ListTransactions(f.ctx(), ledgerdomain.ListTransactionsRequest{
		ProjectID:  f.projectID.String(),
		MaterialID: f.materialID.String(),
		Page:       pagination.Pagination{Page: 3, PageSize: 2},
	})
	if err != nil {
		t.Fatalf("list page 3: %v", err)
	}
	if len(page3.Items) != 1 {
		t.Fatalf("expected 1 item on last page, got %d", len(page3.Items))
	}
}

func TestListTransactionsInvalidWindow(t *testing.T) {
	f := setupLedgerService(t)

	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)
	_, err := f.service.ListTransactions(f.ctx(), ledgerdomain.ListTransactionsRequest{
		ProjectID:  f.projectID.String(),
		MaterialID: f.materialID.String(),
		From:       &from,
		To:         &to,
	})
	if !errors.Is(err, ledgerdomain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for inverted window, got %v", err)
	}
}
