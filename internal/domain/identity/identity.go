package identity

import (
	"errors"
	"strings"
)

// Role represents a caller role recognized by the action catalogue.
type Role string

const (
	RoleOperator   Role = "OPERATOR"
	RoleSupervisor Role = "SUPERVISOR"
	RoleViewer     Role = "VIEWER"
)

func ValidateRole(role Role) error {
	switch role {
	case RoleOperator, RoleSupervisor, RoleViewer:
		return nil
	default:
		return errors.New("invalid role")
	}
}

// Principal is a verified caller: a username plus its effective role set.
type Principal struct {
	Username string `json:"username"`
	Roles    []Role `json:"roles"`
}

func (p Principal) HasRole(role Role) bool {
	return HasRole(p.Roles, role)
}

func HasRole(roles []Role, role Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// NormalizeRoles converts raw role tags from the identity service into the
// known enumerated set. Environment-specific prefixes (anything up to the
// last ':' or '/') and a leading "ROLE_" are stripped, tags are upper-cased,
// and unrecognized tags are silently dropped. Duplicates collapse to one
// entry; input order is preserved otherwise.
func NormalizeRoles(raw []string) []Role {
	var roles []Role
	seen := make(map[Role]bool, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if i := strings.LastIndexAny(tag, ":/"); i >= 0 {
			tag = tag[i+1:]
		}
		tag = strings.ToUpper(tag)
		tag = strings.TrimPrefix(tag, "ROLE_")
		role := Role(tag)
		if ValidateRole(role) != nil || seen[role] {
			continue
		}
		seen[role] = true
		roles = append(roles, role)
	}
	return roles
}
