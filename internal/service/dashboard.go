package service

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/net4grad/alumni-web/internal/domain/model"
	"github.com/net4grad/alumni-web/internal/domain/search"
	"github.com/net4grad/alumni-web/internal/domain/view"
	apperrors "github.com/net4grad/alumni-web/internal/errors"
	"github.com/net4grad/alumni-web/internal/observability/metrics"
	"github.com/net4grad/alumni-web/internal/ports"
)

// View names used in routes, templates and metrics.
const (
	ViewStudents     = "students"
	ViewAlumni       = "alumni"
	ViewEvents       = "events"
	ViewAchievements = "achievements"
)

// AdminViews lists the admin dashboard views in navigation order.
var AdminViews = []string{ViewStudents, ViewAlumni, ViewEvents, ViewAchievements}

// IsAdminView reports whether name is one of AdminViews.
func IsAdminView(name string) bool {
	for _, v := range AdminViews {
		if v == name {
			return true
		}
	}
	return false
}

// Search fields per entity.
var (
	studentFields = []search.Field[model.Student]{
		func(s model.Student) string { return s.Name },
		func(s model.Student) string { return s.Email },
	}
	alumnusFields = []search.Field[model.Alumnus]{
		func(a model.Alumnus) string { return a.Name },
		func(a model.Alumnus) string { return a.Email },
	}
	eventFields = []search.Field[model.Event]{
		func(e model.Event) string { return e.Title },
		func(e model.Event) string { return e.Location },
	}
	achievementFields = []search.Field[model.Achievement]{
		func(a model.Achievement) string { return a.Title },
		func(a model.Achievement) string { return a.StudentName },
	}
)

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Portal  ports.PortalClient
	Metrics *metrics.Recorder
	Logger  *slog.Logger
}

// DashboardService loads the list views shown on both dashboards. Every call
// is independent; a failure in one view never touches another.
type DashboardService struct {
	portal  ports.PortalClient
	metrics *metrics.Recorder
	logger  *slog.Logger
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		portal:  opts.Portal,
		metrics: opts.Metrics,
		logger:  logger.With("component", "dashboard"),
	}
}

// Students loads the student list and applies term.
func (s *DashboardService) Students(ctx context.Context, auth ports.UpstreamAuth, term string) view.State[model.Student] {
	items, err := s.portal.ListStudents(ctx, auth)
	return finish(ctx, s, view.New[model.Student](ViewStudents), items, err, term, studentFields)
}

// Alumni loads the alumni list and applies term.
func (s *DashboardService) Alumni(ctx context.Context, auth ports.UpstreamAuth, term string) view.State[model.Alumnus] {
	items, err := s.portal.ListAlumni(ctx, auth)
	return finish(ctx, s, view.New[model.Alumnus](ViewAlumni), items, err, term, alumnusFields)
}

// Events loads the event list and applies term.
func (s *DashboardService) Events(ctx context.Context, auth ports.UpstreamAuth, term string) view.State[model.Event] {
	items, err := s.portal.ListEvents(ctx, auth)
	return finish(ctx, s, view.New[model.Event](ViewEvents), items, err, term, eventFields)
}

// Achievements loads the achievement list and applies term.
func (s *DashboardService) Achievements(ctx context.Context, auth ports.UpstreamAuth, term string) view.State[model.Achievement] {
	items, err := s.portal.ListAchievements(ctx, auth)
	return finish(ctx, s, view.New[model.Achievement](ViewAchievements), items, err, term, achievementFields)
}

func finish[T any](
	ctx context.Context,
	s *DashboardService,
	st view.State[T],
	items []T,
	err error,
	term string,
	fields []search.Field[T],
) view.State[T] {
	st = st.Begin().Resolve(items, err)
	if err != nil {
		s.logger.WarnContext(ctx, "view load failed", "view", st.Entity, "error", err)
	}
	s.metrics.ViewLoad(st.Entity, string(st.Status))
	return st.Search(strings.TrimSpace(term), fields...)
}

// Overview holds every admin view loaded together.
type Overview struct {
	Students     view.State[model.Student]
	Alumni       view.State[model.Alumnus]
	Events       view.State[model.Event]
	Achievements view.State[model.Achievement]
}

// Overview loads all admin views concurrently. Loaders never return errors to
// the group, so one failing view cannot cancel the others.
func (s *DashboardService) Overview(ctx context.Context, auth ports.UpstreamAuth) Overview {
	var (
		out Overview
		g   errgroup.Group
	)
	g.SetLimit(len(AdminViews))
	g.Go(func() error { out.Students = s.Students(ctx, auth, ""); return nil })
	g.Go(func() error { out.Alumni = s.Alumni(ctx, auth, ""); return nil })
	g.Go(func() error { out.Events = s.Events(ctx, auth, ""); return nil })
	g.Go(func() error { out.Achievements = s.Achievements(ctx, auth, ""); return nil })
	_ = g.Wait()
	return out
}

// Student returns one student from the upstream list by ID.
func (s *DashboardService) Student(ctx context.Context, auth ports.UpstreamAuth, id string) (model.Student, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Student{}, apperrors.ValidationField("id", "Student ID is required")
	}
	items, err := s.portal.ListStudents(ctx, auth)
	if err != nil {
		s.logger.WarnContext(ctx, "student lookup failed", "id", id, "error", err)
		return model.Student{}, apperrors.Fetch("student details", err)
	}
	for _, st := range items {
		if st.ID.String() == id {
			return st, nil
		}
	}
	return model.Student{}, apperrors.NotFoundf("student %s not found", id)
}
