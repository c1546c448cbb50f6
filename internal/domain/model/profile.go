//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
)

// Experience is one professional experience entry on a profile.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// Validate checks the fields the profile form requires.
func (e Experience) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(e.Company) == "" {
		return errors.New("company is required")
	}
	return nil
}

// Profile is the signed-in user's own profile as served by /users/me.
type Profile struct {
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Department     string       `json:"department"`
	GraduationYear FlexString   `json:"gradYear"`
	Role           string       `json:"role"`
	Skills         []string     `json:"skills"`
	Experiences    []Experience `json:"professionalExperience"`
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name           string `json:"name"`
	Department     string `json:"department"`
	GraduationYear string `json:"gradYear,omitempty"`
}

// Normalize trims every field.
func (u ProfileUpdate) Normalize() ProfileUpdate {
	u.Name = strings.TrimSpace(u.Name)
	u.Department = strings.TrimSpace(u.Department)
	u.GraduationYear = strings.TrimSpace(u.GraduationYear)
	return u
}

// Validate reports the first missing required field.
func (u ProfileUpdate) Validate() error {
	if u.Name == "" {
		return errors.New("name is required")
	}
	return nil
}
