package authorization

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"github.com/sitetrack/sitetrack/internal/cache"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Enforcer   *casbin.SyncedEnforcer
	OwnerCache cache.ProjectOwnerCache
}

type ServiceImpl struct {
	db         *gorm.DB
	log        *zap.Logger
	enforcer   *casbin.SyncedEnforcer
	ownerCache cache.ProjectOwnerCache
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		db:         p.DB,
		log:        p.Log.Named("authorization.service"),
		enforcer:   p.Enforcer,
		ownerCache: p.OwnerCache,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, actor string, projectID string, object string, action string) error {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return ErrInvalidActor
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return ErrInvalidProject
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	subject, roleName, err := s.resolveActor(ctx, actor, projectID)
	if err != nil {
		return err
	}

	domain := fmt.Sprintf("project:%s", projectID)
	if err := s.ensureGrouping(subject, roleName, domain); err != nil {
		return err
	}

	allowed, err := s.enforcer.Enforce(subject, domain, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Debug("authorization denied",
			zap.String("subject", subject),
			zap.String("project_id", projectID),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrForbidden
	}
	return nil
}

func (s *ServiceImpl) resolveActor(ctx context.Context, actor string, projectID string) (string, string, error) {
	if actor == "system" {
		return actor, "role:system", nil
	}
	if strings.HasPrefix(actor, "user:") {
		userIDRaw := strings.TrimPrefix(actor, "user:")
		userID, err := snowflake.ParseString(userIDRaw)
		if err != nil || userID == 0 {
			return "", "", ErrInvalidActor
		}
		parsedProjectID, err := snowflake.ParseString(projectID)
		if err != nil || parsedProjectID == 0 {
			return "", "", ErrInvalidProject
		}
		ownerID, err := s.ownerForProject(ctx, parsedProjectID)
		if err != nil {
			return "", "", err
		}
		if ownerID != userID {
			return "", "", ErrForbidden
		}
		return actor, "role:owner", nil
	}
	return "", "", ErrInvalidActor
}

func (s *ServiceImpl) ownerForProject(ctx context.Context, projectID snowflake.ID) (snowflake.ID, error) {
	if ownerID, ok := s.ownerCache.GetOwner(projectID); ok {
		return ownerID, nil
	}

	var row struct {
		OwnerUserID int64 `gorm:"column:owner_user_id"`
	}
	if err := s.db.WithContext(ctx).Raw(
		`SELECT owner_user_id
		 FROM projects
		 WHERE id = ?
		 LIMIT 1`,
		projectID,
	).Scan(&row).Error; err != nil {
		return 0, err
	}

	if row.OwnerUserID == 0 {
		return 0, ErrForbidden
	}

	ownerID := snowflake.ID(row.OwnerUserID)
	s.ownerCache.SetOwner(projectID, ownerID)
	return ownerID, nil
}

func (s *ServiceImpl) ensureGrouping(subject string, roleName string, domain string) error {
	existing, err := s.enforcer.GetFilteredGroupingPolicy(0, subject, "", domain)
	if err != nil {
		return err
	}
	for _, rule := range existing {
		if len(rule) < 2 {
			continue
		}
		if rule[1] != roleName {
			params := make([]interface{}, 0, len(rule))
			for _, value := range rule {
				params = append(params, value)
			}
			_, _ = s.enforcer.RemoveGroupingPolicy(params...)
		}
	}

	has, err := s.enforcer.HasGroupingPolicy(subject, roleName, domain)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	_, err = s.enforcer.AddGroupingPolicy(subject, roleName, domain)
	return err
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		// Owner permissions
		{"role:owner", ObjectProject, ActionProjectView},
		{"role:owner", ObjectProject, ActionProjectUpdate},
		{"role:owner", ObjectMaterial, ActionMaterialView},
		{"role:owner", ObjectMaterial, ActionMaterialCreate},
		{"role:owner", ObjectMaterial, ActionMaterialUpdate},
		{"role:owner", ObjectMaterial, ActionMaterialArchive},
		{"role:owner", ObjectMaterial, ActionMaterialTransact},
		{"role:owner", ObjectLedger, ActionLedgerView},

		// System permissions (for automated processes)
		{"role:system", ObjectProject, ActionProjectView},
		{"role:system", ObjectMaterial, ActionMaterialView},
		{"role:system", ObjectMaterial, ActionMaterialTransact},
		{"role:system", ObjectLedger, ActionLedgerView},
	}

	for _, policy := range policies {
		if len(policy) < 3 {
			continue
		}
		if _, err := enforcer.AddPolicy(policy); err != nil {
			return err
		}
	}
	return nil
}
