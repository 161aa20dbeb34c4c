package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/sitetrack/sitetrack/internal/authorization"
	"github.com/sitetrack/sitetrack/internal/material/domain"
	"github.com/sitetrack/sitetrack/internal/usercontext"
	"github.com/sitetrack/sitetrack/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Authz authorization.Service
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
	authz authorization.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("material.service"),
		repo:  p.Repo,
		genID: p.GenID,
		authz: p.Authz,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	projectID, err := parseProjectID(req.ProjectID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if !domain.ValidName(name) {
		return nil, domain.ErrInvalidName
	}
	unit := strings.TrimSpace(req.Unit)
	if !domain.ValidUnit(unit) {
		return nil, domain.ErrInvalidUnit
	}
	minLevel := decimal.Zero
	if req.MinLevel != nil {
		minLevel = req.MinLevel.Truncate(3)
		if minLevel.IsNegative() {
			return nil, domain.ErrInvalidMinLevel
		}
	}

	if err := s.authorize(ctx, projectID, authorization.ActionMaterialCreate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m := &domain.Material{
		ID:        s.genID.Generate().Int64(),
		ProjectID: projectID.Int64(),
		Name:      name,
		Unit:      unit,
		Stock:     decimal.Zero,
		MinLevel:  minLevel,
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, s.db, m); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrNameTaken
		}
		return nil, err
	}
	resp := toResponse(m)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, req domain.GetRequest) (*domain.Response, error) {
	projectID, err := parseProjectID(req.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, projectID, authorization.ActionMaterialView); err != nil {
		return nil, err
	}

	item, err := s.find(ctx, projectID, req.ID)
	if err != nil {
		return nil, err
	}
	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	projectID, err := parseProjectID(req.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, projectID, authorization.ActionMaterialView); err != nil {
		return nil, err
	}

	items, err := s.repo.FindByProject(ctx, s.db, projectID.Int64(), req.LowStock)
	if err != nil {
		return nil, err
	}
	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(&item))
	}
	return resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	projectID, err := parseProjectID(req.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, projectID, authorization.ActionMaterialUpdate); err != nil {
		return nil, err
	}

	item, err := s.find(ctx, projectID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if !domain.ValidName(name) {
			return nil, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Unit != nil {
		unit := strings.TrimSpace(*req.Unit)
		if !domain.ValidUnit(unit) {
			return nil, domain.ErrInvalidUnit
		}
		item.Unit = unit
	}
	if req.MinLevel != nil {
		minLevel := req.MinLevel.Truncate(3)
		if minLevel.IsNegative() {
			return nil, domain.ErrInvalidMinLevel
		}
		item.MinLevel = minLevel
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrNameTaken
		}
		return nil, err
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Archive(ctx context.Context, req domain.GetRequest) (*domain.Response, error) {
	projectID, err := parseProjectID(req.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, projectID, authorization.ActionMaterialArchive); err != nil {
		return nil, err
	}

	item, err := s.find(ctx, projectID, req.ID)
	if err != nil {
		return nil, err
	}

	item.Status = domain.StatusArchived
	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) authorize(ctx context.Context, projectID snowflake.ID, action string) error {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return authorization.ErrInvalidActor
	}
	return s.authz.Authorize(ctx, authorization.UserActor(userID), projectID.String(), authorization.ObjectMaterial, action)
}

func (s *Service) find(ctx context.Context, projectID snowflake.ID, id string) (*domain.Material, error) {
	materialID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, projectID.Int64(), materialID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func parseProjectID(raw string) (snowflake.ID, error) {
	projectID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || projectID == 0 {
		return 0, domain.ErrInvalidProject
	}
	return projectID, nil
}

func toResponse(m *domain.Material) domain.Response {
	return domain.Response{
		ID:        snowflake.ID(m.ID).String(),
		ProjectID: snowflake.ID(m.ProjectID).String(),
		Name:      m.Name,
		Unit:      m.Unit,
		Stock:     m.Stock,
		MinLevel:  m.MinLevel,
		Status:    m.Status,
		LowStock:  m.Status == domain.StatusActive && m.Stock.LessThanOrEqual(m.MinLevel),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
