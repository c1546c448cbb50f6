// Package viewmodel holds the typed data shared by the layout templates.
package viewmodel

// User represents the authenticated user context exposed to templates.
type User struct {
	Name       string
	Identifier string
	Role       string
	RoleLabel  string
}

// NavItem is one entry in the dashboard sidebar.
type NavItem struct {
	Label  string
	Href   string
	Page   string
	Active bool
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	IsAuthenticated bool
	IsAdmin         bool
	IsStudent       bool
	User            *User
	Nav             []NavItem
}

// WithActive marks the nav entry for page as active.
func WithActive(items []NavItem, page string) []NavItem {
	out := make([]NavItem, len(items))
	for i, item := range items {
		item.Active = item.Page == page
		out[i] = item
	}
	return out
}
