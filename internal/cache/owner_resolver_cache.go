package cache

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const defaultOwnerTTL = 5 * time.Minute

// ProjectOwnerCache stores hot-path project owner lookups for authorization.
type ProjectOwnerCache interface {
	GetOwner(projectID snowflake.ID) (snowflake.ID, bool)
	SetOwner(projectID, ownerID snowflake.ID)
	Invalidate(projectID snowflake.ID)
}

type projectOwnerCache struct {
	owners Cache[snowflake.ID, snowflake.ID]
	ttl    time.Duration
}

// NewProjectOwnerCache returns an in-memory cache tuned for ownership checks.
func NewProjectOwnerCache() ProjectOwnerCache {
	return &projectOwnerCache{
		owners: NewTTLCache[snowflake.ID, snowflake.ID](),
		ttl:    defaultOwnerTTL,
	}
}

func (c *projectOwnerCache) GetOwner(projectID snowflake.ID) (snowflake.ID, bool) {
	return c.owners.Get(projectID)
}

func (c *projectOwnerCache) SetOwner(projectID, ownerID snowflake.ID) {
	if ownerID == 0 {
		return
	}
	c.owners.Set(projectID, ownerID, c.ttl)
}

func (c *projectOwnerCache) Invalidate(projectID snowflake.ID) {
	c.owners.Delete(projectID)
}
