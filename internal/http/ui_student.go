package httpx

import (
	"net/http"
	"strings"

	"github.com/net4grad/alumni-web/internal/domain/model"
	apperrors "github.com/net4grad/alumni-web/internal/errors"
	"github.com/net4grad/alumni-web/internal/http/validation"
	"github.com/net4grad/alumni-web/internal/service"
)

// listData is the view model behind every "<entity>-list" partial.
type listData struct {
	View      string
	State     any
	IsAdmin   bool
	ListURL   string
	CSRFToken string
}

// profileSection is the view model behind the profile partials.
type profileSection struct {
	Profile model.Profile
	Errors  map[string]string
	Message string
	Form    map[string]string
}

// StudentProfile renders the signed-in student's profile.
// GET /dashboard and GET /dashboard/profile.
func (h *UIHandlers) StudentProfile(w http.ResponseWriter, r *http.Request) {
	data := basePageData(r, PageMeta{
		Title: "Alumni Portal - Profile", PageTitle: "My Profile", CurrentPage: PageStudentProfile,
	})
	section := profileSection{Errors: map[string]string{}}
	profile, err := h.Profile.Profile(r.Context(), upstreamAuth(r.Context()))
	if err != nil {
		section.Message = apperrors.UserMessage(err)
	} else {
		section.Profile = profile
	}
	data["Section"] = section
	h.page(w, r, data)
}

// StudentEvents renders the events view; the list loads itself on mount.
// GET /dashboard/events.
func (h *UIHandlers) StudentEvents(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{
		Title: "Alumni Portal - Events", PageTitle: "Events", CurrentPage: PageStudentEvents,
	}).
		With("Search", strings.TrimSpace(r.URL.Query().Get("q"))).
		With("ListURL", "/dashboard/events/list").
		Build()
	h.page(w, r, data)
}

// StudentEventsList renders the events list fragment filtered by ?q=.
// GET /dashboard/events/list.
func (h *UIHandlers) StudentEventsList(w http.ResponseWriter, r *http.Request) {
	st := h.Dashboard.Events(r.Context(), upstreamAuth(r.Context()), r.URL.Query().Get("q"))
	h.fragment(w, r, RenderOpts{Template: "events-list", Data: listData{
		View:    service.ViewEvents,
		State:   st,
		ListURL: "/dashboard/events/list",
	}})
}

// UpdateProfile saves the editable profile fields.
// POST /dashboard/profile.
func (h *UIHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	in := model.ProfileUpdate{
		Name:           r.PostFormValue("name"),
		Department:     r.PostFormValue("department"),
		GraduationYear: r.PostFormValue("gradYear"),
	}
	form := map[string]string{"name": in.Name, "department": in.Department, "gradYear": in.GraduationYear}

	fv := validation.New().
		Validate("name", in.Name, validation.Required("Name", 100)).
		Validate("department", in.Department, validation.Optional("Department", 100)).
		Validate("gradYear", in.GraduationYear, validation.OptionalIntRange("Graduation year", 1950, 2100))
	if fv.HasErrors() {
		h.renderProfileCard(w, r, http.StatusUnprocessableEntity, profileSection{Errors: fv.Errors(), Form: form})
		return
	}

	profile, err := h.Profile.Update(r.Context(), upstreamAuth(r.Context()), in)
	if err != nil {
		h.logger().WarnContext(r.Context(), "profile update failed", "error", err)
		section := profileSection{Errors: map[string]string{}, Form: form, Message: apperrors.UserMessage(err)}
		if field := apperrors.GetField(err); field != "" {
			section.Errors[field] = apperrors.UserMessage(err)
		}
		triggerToast(w, apperrors.UserMessage(err), ToastError)
		h.renderProfileCard(w, r, StatusForError(err), section)
		return
	}

	triggerToast(w, "Profile updated", ToastSuccess)
	h.renderProfileCard(w, r, http.StatusOK, profileSection{Profile: profile, Errors: map[string]string{}})
}

func (h *UIHandlers) renderProfileCard(w http.ResponseWriter, r *http.Request, status int, section profileSection) {
	h.fragment(w, r, RenderOpts{Template: "profile-card", Status: status, Data: withCSRF(r, section)})
}

// AddExperience appends a professional experience entry.
// POST /dashboard/profile/experience.
func (h *UIHandlers) AddExperience(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	in := model.Experience{
		Title:       r.PostFormValue("title"),
		Company:     r.PostFormValue("company"),
		Period:      r.PostFormValue("period"),
		Description: r.PostFormValue("description"),
	}
	form := map[string]string{"title": in.Title, "company": in.Company, "period": in.Period, "description": in.Description}

	fv := validation.New().
		Validate("title", in.Title, validation.Required("Title", 100)).
		Validate("company", in.Company, validation.Required("Company", 100)).
		Validate("period", in.Period, validation.Optional("Period", 50)).
		Validate("description", in.Description, validation.Optional("Description", 1000))
	if fv.HasErrors() {
		h.renderExperience(w, r, http.StatusUnprocessableEntity, h.currentProfileSection(r, fv.Errors(), form))
		return
	}

	ctx := r.Context()
	if _, err := h.Profile.AddExperience(ctx, upstreamAuth(ctx), in); err != nil {
		h.logger().WarnContext(ctx, "add experience failed", "error", err)
		triggerToast(w, apperrors.UserMessage(err), ToastError)
		h.renderExperience(w, r, StatusForError(err), h.currentProfileSection(r, map[string]string{}, form))
		return
	}

	triggerToast(w, "Experience added", ToastSuccess)
	h.renderExperience(w, r, http.StatusOK, h.currentProfileSection(r, map[string]string{}, nil))
}

func (h *UIHandlers) renderExperience(w http.ResponseWriter, r *http.Request, status int, section profileSection) {
	h.fragment(w, r, RenderOpts{Template: "experience-section", Status: status, Data: withCSRF(r, section)})
}

// AddSkill appends a skill to the profile.
// POST /dashboard/profile/skills.
func (h *UIHandlers) AddSkill(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	skill := r.PostFormValue("skill")

	fv := validation.New().Validate("skill", skill, validation.Required("Skill", 50))
	if fv.HasErrors() {
		h.renderSkills(w, r, http.StatusUnprocessableEntity,
			h.currentProfileSection(r, fv.Errors(), map[string]string{"skill": skill}))
		return
	}

	ctx := r.Context()
	profile, err := h.Profile.AddSkill(ctx, upstreamAuth(ctx), skill)
	if err != nil {
		h.logger().WarnContext(ctx, "add skill failed", "error", err)
		triggerToast(w, apperrors.UserMessage(err), ToastError)
		h.renderSkills(w, r, StatusForError(err),
			h.currentProfileSection(r, map[string]string{}, map[string]string{"skill": skill}))
		return
	}

	triggerToast(w, "Skill added", ToastSuccess)
	h.renderSkills(w, r, http.StatusOK, profileSection{Profile: profile, Errors: map[string]string{}})
}

func (h *UIHandlers) renderSkills(w http.ResponseWriter, r *http.Request, status int, section profileSection) {
	h.fragment(w, r, RenderOpts{Template: "skills-section", Status: status, Data: withCSRF(r, section)})
}

// currentProfileSection re-fetches the profile so a section can be redrawn
// in full after a write.
func (h *UIHandlers) currentProfileSection(r *http.Request, errs, form map[string]string) profileSection {
	section := profileSection{Errors: errs, Form: form}
	profile, err := h.Profile.Profile(r.Context(), upstreamAuth(r.Context()))
	if err != nil {
		section.Message = apperrors.UserMessage(err)
		return section
	}
	section.Profile = profile
	return section
}

// withCSRF pairs a fragment's data with the request's CSRF token for
// non-htmx form fallbacks.
func withCSRF(r *http.Request, v any) map[string]any {
	return map[string]any{"Data": v, "CSRFToken": GetCSRFToken(r)}
}
