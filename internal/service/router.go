package service

import domainauth "github.com/net4grad/alumni-web/internal/domain/auth"

// Dashboard entry points per role.
const (
	StudentDashboardPath = "/dashboard"
	AdminDashboardPath   = "/admindashboard"
	LoginPath            = "/login"
)

// RoleRouter maps an authenticated role to its dashboard.
type RoleRouter struct {
	StudentPath string
	AdminPath   string
}

// DefaultRoleRouter routes students to /dashboard and admins to /admindashboard.
func DefaultRoleRouter() RoleRouter {
	return RoleRouter{StudentPath: StudentDashboardPath, AdminPath: AdminDashboardPath}
}

// Destination returns the path for role. Unknown roles go back to the login form.
func (r RoleRouter) Destination(role domainauth.Role) string {
	switch role {
	case domainauth.RoleStudent:
		return r.StudentPath
	case domainauth.RoleAdmin:
		return r.AdminPath
	default:
		return LoginPath
	}
}

func (r RoleRouter) isZero() bool { return r.StudentPath == "" && r.AdminPath == "" }
