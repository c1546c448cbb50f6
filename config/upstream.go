package config

import (
	"strings"
	"time"
)

// UpstreamConfig configures the client for the portal's backing API.
type UpstreamConfig struct {
	// BaseURL is the root of the upstream API.
	BaseURL string `env:"BASE_URL" envDefault:"http://127.0.0.1:8000"`

	// Timeout bounds every upstream request, including login.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`

	// StudentIDField and AdminIDField name the identifier key in the login body.
	StudentIDField string `env:"STUDENT_ID_FIELD" envDefault:"collegeId"`
	AdminIDField   string `env:"ADMIN_ID_FIELD"   envDefault:"collegeId"`

	// SendBearer additionally sends the session token as an Authorization bearer.
	SendBearer bool `env:"SEND_BEARER" envDefault:"false"`

	// Resource paths, relative to BaseURL.
	StudentLoginPath string `env:"STUDENT_LOGIN_PATH" envDefault:"/login"`
	AdminLoginPath   string `env:"ADMIN_LOGIN_PATH"   envDefault:"/college-login"`
	StudentsPath     string `env:"STUDENTS_PATH"      envDefault:"/students/"`
	AlumniPath       string `env:"ALUMNI_PATH"        envDefault:"/alumni/"`
	EventsPath       string `env:"EVENTS_PATH"        envDefault:"/events/"`
	AchievementsPath string `env:"ACHIEVEMENTS_PATH"  envDefault:"/achievements/"`
	ProfilePath      string `env:"PROFILE_PATH"       envDefault:"/users/me"`
	CollegesPath     string `env:"COLLEGES_PATH"      envDefault:"/colleges/"`
}

// Sanitize applies guardrails to upstream configuration values.
func (u *UpstreamConfig) Sanitize() {
	u.BaseURL = strings.TrimRight(strings.TrimSpace(u.BaseURL), "/")
	if u.BaseURL == "" {
		u.BaseURL = "http://127.0.0.1:8000"
	}
	if u.Timeout <= 0 {
		u.Timeout = 15 * time.Second
	}
	if strings.TrimSpace(u.StudentIDField) == "" {
		u.StudentIDField = "collegeId"
	}
	if strings.TrimSpace(u.AdminIDField) == "" {
		u.AdminIDField = "collegeId"
	}
}
