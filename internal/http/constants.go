package httpx

// CurrentPage identifiers used by templates and navigation.
const (
	PageLanding = "landing"
	PageLogin   = "login"

	// Student dashboard.
	PageStudentProfile = "student-profile"
	PageStudentEvents  = "student-events"

	// Admin dashboard.
	PageAdminOverview     = "admin-overview"
	PageAdminStudents     = "admin-students"
	PageAdminAlumni       = "admin-alumni"
	PageAdminEvents       = "admin-events"
	PageAdminAchievements = "admin-achievements"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"
	TemplatePathFromTest = "../../frontend/templates"
)

// Upload limits for the admin spreadsheet import controls.
const (
	DefaultMaxUploadBytes int64 = 10 << 20
	uploadFormField             = "file"
)

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageLanding:           "landing-content",
	PageLogin:             "login-content",
	PageStudentProfile:    "student-profile-content",
	PageStudentEvents:     "student-events-content",
	PageAdminOverview:     "admin-overview-content",
	PageAdminStudents:     "admin-view-content",
	PageAdminAlumni:       "admin-view-content",
	PageAdminEvents:       "admin-view-content",
	PageAdminAchievements: "admin-view-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Unknown pages fall back to the landing content.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "landing-content"
}

// adminPageFor maps an admin view name to its CurrentPage identifier.
func adminPageFor(view string) string {
	return "admin-" + view
}
