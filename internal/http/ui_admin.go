package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/net4grad/alumni-web/internal/domain/model"
	apperrors "github.com/net4grad/alumni-web/internal/errors"
	"github.com/net4grad/alumni-web/internal/http/templates/core"
	"github.com/net4grad/alumni-web/internal/http/validation"
	"github.com/net4grad/alumni-web/internal/service"
)

// overviewCard summarizes one admin view on the overview page.
type overviewCard struct {
	View    string
	Label   string
	Href    string
	Count   int
	Errored bool
	Message string
}

func newOverviewCard(view string, count int, errored bool, message string) overviewCard {
	return overviewCard{
		View:    view,
		Label:   core.TitleCase(view),
		Href:    "/admindashboard/" + view,
		Count:   count,
		Errored: errored,
		Message: message,
	}
}

// AdminOverview loads every admin view concurrently and renders their counts.
// GET /admindashboard.
func (h *UIHandlers) AdminOverview(w http.ResponseWriter, r *http.Request) {
	ov := h.Dashboard.Overview(r.Context(), upstreamAuth(r.Context()))

	data := basePageData(r, PageMeta{
		Title: "Alumni Portal - Admin", PageTitle: "Overview", CurrentPage: PageAdminOverview,
	})
	data["Cards"] = []overviewCard{
		newOverviewCard(service.ViewStudents, len(ov.Students.All), ov.Students.IsErrored(), ov.Students.Message),
		newOverviewCard(service.ViewAlumni, len(ov.Alumni.All), ov.Alumni.IsErrored(), ov.Alumni.Message),
		newOverviewCard(service.ViewEvents, len(ov.Events.All), ov.Events.IsErrored(), ov.Events.Message),
		newOverviewCard(service.ViewAchievements, len(ov.Achievements.All), ov.Achievements.IsErrored(), ov.Achievements.Message),
	}
	h.page(w, r, data)
}

// AdminView renders one admin list view; the list loads itself on mount.
// GET /admindashboard/{view}.
func (h *UIHandlers) AdminView(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("view")
	if !service.IsAdminView(name) {
		h.NotFound(w, r)
		return
	}
	label := core.TitleCase(name)
	data := NewTemplateData(r, PageMeta{
		Title: "Alumni Portal - " + label, PageTitle: label, CurrentPage: adminPageFor(name),
	}).
		With("View", name).
		With("ViewLabel", label).
		With("CanUpload", canUpload(name)).
		With("Search", strings.TrimSpace(r.URL.Query().Get("q"))).
		With("ListURL", "/admindashboard/"+name+"/list").
		Build()
	h.page(w, r, data)
}

// AdminList returns the list fragment handler for one admin view.
// GET /admindashboard/{view}/list?q=.
func (h *UIHandlers) AdminList(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		auth := upstreamAuth(ctx)
		q := r.URL.Query().Get("q")

		var st any
		switch name {
		case service.ViewStudents:
			st = h.Dashboard.Students(ctx, auth, q)
		case service.ViewAlumni:
			st = h.Dashboard.Alumni(ctx, auth, q)
		case service.ViewEvents:
			st = h.Dashboard.Events(ctx, auth, q)
		case service.ViewAchievements:
			st = h.Dashboard.Achievements(ctx, auth, q)
		default:
			h.NotFound(w, r)
			return
		}

		h.fragment(w, r, RenderOpts{Template: name + "-list", Data: listData{
			View:      name,
			State:     st,
			IsAdmin:   true,
			ListURL:   "/admindashboard/" + name + "/list",
			CSRFToken: GetCSRFToken(r),
		}})
	}
}

// studentModal is the view model behind the "student-modal" partial.
type studentModal struct {
	Student model.Student
	Message string
}

// StudentDetail renders the profile modal for one student.
// GET /admindashboard/students/{id}.
func (h *UIHandlers) StudentDetail(w http.ResponseWriter, r *http.Request) {
	st, err := h.Dashboard.Student(r.Context(), upstreamAuth(r.Context()), r.PathValue("id"))
	if err != nil {
		h.fragment(w, r, RenderOpts{
			Template: "student-modal",
			Status:   StatusForError(err),
			Data:     studentModal{Message: apperrors.UserMessage(err)},
		})
		return
	}
	h.fragment(w, r, RenderOpts{Template: "student-modal", Data: studentModal{Student: st}})
}

// adminAction names a stubbed admin mutation.
type adminAction string

const (
	actionAdd    adminAction = "add"
	actionEdit   adminAction = "edit"
	actionDelete adminAction = "delete"
)

// AdminAction returns the handler for a stubbed add/edit/delete action. The
// action is logged and answered with 501 and an error toast.
// POST /admindashboard/{view}[/{id}[/delete]].
func (h *UIHandlers) AdminAction(action adminAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("view")
		if !service.IsAdminView(name) {
			h.NotFound(w, r)
			return
		}
		id := r.PathValue("id")

		h.logger().InfoContext(r.Context(), "admin action requested",
			"action", string(action),
			"view", name,
			"id", id,
		)

		err := apperrors.NotImplemented(fmt.Sprintf("%s %s is not available yet", core.TitleCase(string(action)), name))
		triggerToast(w, apperrors.UserMessage(err), ToastError)
		w.WriteHeader(StatusForError(err))
	}
}

// spreadsheetExtensions are the upload types the import controls accept.
//
//nolint:gochecknoglobals // static read-only list
var spreadsheetExtensions = []string{".xlsx", ".xls"}

func canUpload(view string) bool {
	return view == service.ViewStudents || view == service.ViewAlumni
}

// Upload accepts a spreadsheet for the students or alumni view. The file
// name is logged and the content discarded.
// POST /admindashboard/{view}/upload.
func (h *UIHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("view")
	if !canUpload(name) {
		h.NotFound(w, r)
		return
	}

	limit := h.MaxUploadBytes
	if limit <= 0 {
		limit = DefaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			triggerToast(w, "File is too large", ToastError)
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		triggerToast(w, "Choose a spreadsheet to upload", ToastError)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		triggerToast(w, "Choose a spreadsheet to upload", ToastError)
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}
	defer func() { _ = file.Close() }()

	fv := validation.New().Validate(uploadFormField, header.Filename,
		validation.FileExtension("File", spreadsheetExtensions...))
	if fv.HasErrors() {
		triggerToast(w, fv.Errors()[uploadFormField], ToastError)
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	h.logger().InfoContext(r.Context(), "spreadsheet upload received",
		"view", name,
		"filename", header.Filename,
		"size", header.Size,
	)
	triggerToast(w, "Received "+header.Filename, ToastSuccess)
	w.WriteHeader(http.StatusOK)
}
