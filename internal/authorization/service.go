package authorization

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
)

const (
	ObjectProject  = "project"
	ObjectMaterial = "material"
	ObjectLedger   = "ledger"
)

const (
	ActionProjectView   = "project.view"
	ActionProjectUpdate = "project.update"

	ActionMaterialView     = "material.view"
	ActionMaterialCreate   = "material.create"
	ActionMaterialUpdate   = "material.update"
	ActionMaterialArchive  = "material.archive"
	ActionMaterialTransact = "material.transact"

	ActionLedgerView = "ledger.view"
)

var (
	ErrInvalidActor   = errors.New("invalid_actor")
	ErrInvalidProject = errors.New("invalid_project")
	ErrInvalidObject  = errors.New("invalid_object")
	ErrInvalidAction  = errors.New("invalid_action")
	ErrForbidden      = errors.New("forbidden")
)

// Service answers whether an actor may perform an action inside a project.
type Service interface {
	Authorize(ctx context.Context, actor string, projectID string, object string, action string) error
}

// UserActor formats a user principal for Authorize.
func UserActor(userID snowflake.ID) string {
	return fmt.Sprintf("user:%s", userID.String())
}
