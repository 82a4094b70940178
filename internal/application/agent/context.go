package agent

import (
	"github.com/google/uuid"

	"github.com/orderdesk/orderdesk/internal/domain/identity"
)

// ExecutionContext carries the verified caller through every handler
// invocation of one request. Built once per request, never mutated.
type ExecutionContext struct {
	RequestID  uuid.UUID
	Credential string
	Username   string
	Roles      []identity.Role
}

func (ec *ExecutionContext) HasRole(role identity.Role) bool {
	return identity.HasRole(ec.Roles, role)
}
