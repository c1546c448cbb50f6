// Package mocks provides mock implementations of the portal ports for tests.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the upstream-facing interfaces. To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	portal := mocks.NewMockPortalClient(ctrl)
//	portal.EXPECT().ListStudents(gomock.Any(), gomock.Any()).Return(students, nil)
package mocks

// Generate mock for PortalClient interface from internal/ports package.
// This creates MockPortalClient with methods for all PortalClient interface methods:
// ListStudents, ListAlumni, ListEvents, ListAchievements, GetProfile, UpdateProfile, AddExperience, AddSkill
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=portal_client_mock.go github.com/net4grad/alumni-web/internal/ports PortalClient

// Generate mock for CollegeRegistrar interface from internal/ports package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=college_registrar_mock.go github.com/net4grad/alumni-web/internal/ports CollegeRegistrar
