package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestFilterAttributesDropsUnknownKeys(t *testing.T) {
	filtered := FilterAttributes(
		attribute.String("project_id", "42"),
		attribute.String("endpoint", "/api/projects/:projectId/materials/:id/transactions"),
		attribute.String("user_email", "someone@example.com"),
		attribute.String("notes", "free text"),
		attribute.String("tx_type", "ENTRY"),
	)

	keys := make([]string, 0, len(filtered))
	for _, attr := range filtered {
		keys = append(keys, string(attr.Key))
	}
	assert.ElementsMatch(t, []string{"project_id", "endpoint", "tx_type"}, keys)
}

func TestFilterAttributesEmpty(t *testing.T) {
	assert.Empty(t, FilterAttributes())
}
