package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/net4grad/alumni-web/internal/domain/model"
	apperrors "github.com/net4grad/alumni-web/internal/errors"
	"github.com/net4grad/alumni-web/internal/ports"
)

// ProfileServiceOptions groups dependencies for ProfileService.
type ProfileServiceOptions struct {
	Portal ports.PortalClient
	Logger *slog.Logger
}

// ProfileService manages the signed-in student's own profile.
type ProfileService struct {
	portal ports.PortalClient
	logger *slog.Logger
}

// NewProfileService constructs a new ProfileService.
func NewProfileService(opts ProfileServiceOptions) *ProfileService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileService{portal: opts.Portal, logger: logger.With("component", "profile")}
}

// Profile fetches the current profile.
func (s *ProfileService) Profile(ctx context.Context, auth ports.UpstreamAuth) (model.Profile, error) {
	p, err := s.portal.GetProfile(ctx, auth)
	if err != nil {
		s.logger.WarnContext(ctx, "profile fetch failed", "error", err)
		return model.Profile{}, apperrors.Fetch("profile data", err)
	}
	return p, nil
}

// Update saves the editable profile fields and returns the stored profile.
func (s *ProfileService) Update(ctx context.Context, auth ports.UpstreamAuth, in model.ProfileUpdate) (model.Profile, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return model.Profile{}, apperrors.ValidationField("name", "Name is required")
	}
	p, err := s.portal.UpdateProfile(ctx, auth, in)
	if err != nil {
		s.logger.WarnContext(ctx, "profile update failed", "error", err)
		return model.Profile{}, apperrors.Upstream("Failed to update profile", err)
	}
	return p, nil
}

// AddExperience appends a professional experience entry.
func (s *ProfileService) AddExperience(ctx context.Context, auth ports.UpstreamAuth, in model.Experience) (model.Experience, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Company = strings.TrimSpace(in.Company)
	in.Period = strings.TrimSpace(in.Period)
	in.Description = strings.TrimSpace(in.Description)
	if err := in.Validate(); err != nil {
		return model.Experience{}, apperrors.Validation(capitalize(err.Error()))
	}
	out, err := s.portal.AddExperience(ctx, auth, in)
	if err != nil {
		s.logger.WarnContext(ctx, "add experience failed", "error", err)
		return model.Experience{}, apperrors.Upstream("Failed to add experience", err)
	}
	return out, nil
}

// AddSkill adds one skill and returns the refreshed profile.
func (s *ProfileService) AddSkill(ctx context.Context, auth ports.UpstreamAuth, skill string) (model.Profile, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return model.Profile{}, apperrors.ValidationField("skill", "Skill is required")
	}
	if err := s.portal.AddSkill(ctx, auth, skill); err != nil {
		s.logger.WarnContext(ctx, "add skill failed", "error", err)
		return model.Profile{}, apperrors.Upstream("Failed to add skill", err)
	}
	return s.Profile(ctx, auth)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
