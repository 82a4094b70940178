package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/orderdesk/orderdesk/internal/domain/identity"
	"github.com/orderdesk/orderdesk/internal/infrastructure/workflowapi/mocks"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	ctrl := gomock.NewController(t)
	return NewCatalog(mocks.NewMockClient(ctrl))
}

func TestCatalogLookup(t *testing.T) {
	c := newTestCatalog(t)

	def, ok := c.Lookup(ActionCompleteStage)
	require.True(t, ok)
	assert.Equal(t, ActionCompleteStage, def.Name)

	_, ok = c.Lookup("delete_everything")
	assert.False(t, ok)
}

func TestCatalogListsAllTenActions(t *testing.T) {
	c := newTestCatalog(t)
	assert.Len(t, c.List(), 10)
}

func TestCatalogListFor(t *testing.T) {
	c := newTestCatalog(t)

	t.Run("viewer sees only reads", func(t *testing.T) {
		defs := c.ListFor([]identity.Role{identity.RoleViewer})
		names := make([]string, len(defs))
		for i, d := range defs {
			names[i] = d.Name
		}
		assert.ElementsMatch(t, names, []string{ActionListOrders, ActionGetOrder, ActionListExceptions})
	})

	t.Run("operator sees reads and mutations", func(t *testing.T) {
		defs := c.ListFor([]identity.Role{identity.RoleOperator})
		assert.Len(t, defs, 8)
		for _, d := range defs {
			assert.NotEqual(t, ActionUpdatePriority, d.Name)
			assert.NotEqual(t, ActionApproveSkip, d.Name)
		}
	})

	t.Run("supervisor sees everything", func(t *testing.T) {
		assert.Len(t, c.ListFor([]identity.Role{identity.RoleSupervisor}), 10)
	})

	t.Run("no roles sees nothing", func(t *testing.T) {
		assert.Empty(t, c.ListFor(nil))
	})
}

func TestDefinitionAllowed(t *testing.T) {
	c := newTestCatalog(t)
	def, ok := c.Lookup(ActionUpdatePriority)
	require.True(t, ok)

	assert.True(t, def.Allowed([]identity.Role{identity.RoleViewer, identity.RoleSupervisor}))
	assert.False(t, def.Allowed([]identity.Role{identity.RoleViewer, identity.RoleOperator}))
	assert.False(t, def.Allowed(nil))
}
