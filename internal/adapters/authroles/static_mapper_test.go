package authroles

import (
	"testing"

	domainauth "github.com/net4grad/alumni-web/internal/domain/auth"
)

func TestStaticRoleMapper_Map(t *testing.T) {
	m := DefaultRoleMapper()

	tests := []struct {
		claim  string
		want   domainauth.Role
		wantOK bool
	}{
		{"Student", domainauth.RoleStudent, true},
		{"alumni", domainauth.RoleStudent, true},
		{"Admin", domainauth.RoleAdmin, true},
		{"college", domainauth.RoleAdmin, true},
		{" COLLEGE ", domainauth.RoleAdmin, true},
		{"superuser", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := m.Map(tt.claim)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Map(%q) = %q, %v; want %q, %v", tt.claim, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestStaticRoleMapper_AdminWinsOverlap(t *testing.T) {
	m := StaticRoleMapper{AdminRoles: []string{"staff"}, StudentRoles: []string{"staff"}}
	if got, _ := m.Map("staff"); got != domainauth.RoleAdmin {
		t.Fatalf("expected admin for overlapping role, got %q", got)
	}
}
