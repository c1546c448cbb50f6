package ports

import (
	"context"

	domainauth "github.com/net4grad/alumni-web/internal/domain/auth"
	"github.com/net4grad/alumni-web/internal/domain/model"
)

// UpstreamAuth is the session state a caller passes explicitly on every
// upstream request. Nothing is read from ambient storage.
type UpstreamAuth struct {
	Token   string
	Cookies []domainauth.UpstreamCookie
}

// UpstreamAuthFromSession builds the request credentials for a session.
func UpstreamAuthFromSession(sess domainauth.Session) UpstreamAuth {
	return UpstreamAuth{Token: sess.Token, Cookies: sess.Cookies}
}

// PortalClient loads and mutates role-scoped resources on the upstream API.
type PortalClient interface {
	ListStudents(ctx context.Context, auth UpstreamAuth) ([]model.Student, error)
	ListAlumni(ctx context.Context, auth UpstreamAuth) ([]model.Alumnus, error)
	ListEvents(ctx context.Context, auth UpstreamAuth) ([]model.Event, error)
	ListAchievements(ctx context.Context, auth UpstreamAuth) ([]model.Achievement, error)

	GetProfile(ctx context.Context, auth UpstreamAuth) (model.Profile, error)
	UpdateProfile(ctx context.Context, auth UpstreamAuth, in model.ProfileUpdate) (model.Profile, error)
	AddExperience(ctx context.Context, auth UpstreamAuth, in model.Experience) (model.Experience, error)
	AddSkill(ctx context.Context, auth UpstreamAuth, skill string) error
}

// RelayResponse is an upstream response passed back to the browser untouched.
type RelayResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// CollegeRegistrar forwards college registrations to the upstream.
type CollegeRegistrar interface {
	RegisterCollege(ctx context.Context, body []byte) (RelayResponse, error)
}
