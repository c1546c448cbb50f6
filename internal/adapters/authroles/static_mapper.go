package authroles

import (
	"strings"

	domainauth "github.com/net4grad/alumni-web/internal/domain/auth"
)

// StaticRoleMapper maps upstream role claims by case-insensitive membership.
// Admin values are checked first so a value listed in both sets maps to admin.
type StaticRoleMapper struct {
	AdminRoles   []string
	StudentRoles []string
}

// DefaultRoleMapper reflects the role names the upstream issues.
func DefaultRoleMapper() StaticRoleMapper {
	return StaticRoleMapper{
		AdminRoles:   []string{"Admin", "college"},
		StudentRoles: []string{"Student", "Alumni"},
	}
}

// Map returns the portal role for claimRole, or false when it is unknown.
func (m StaticRoleMapper) Map(claimRole string) (domainauth.Role, bool) {
	claimRole = strings.TrimSpace(claimRole)
	if claimRole == "" {
		return "", false
	}
	for _, r := range m.AdminRoles {
		if strings.EqualFold(r, claimRole) {
			return domainauth.RoleAdmin, true
		}
	}
	for _, r := range m.StudentRoles {
		if strings.EqualFold(r, claimRole) {
			return domainauth.RoleStudent, true
		}
	}
	return "", false
}
