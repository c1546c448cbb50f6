package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/net4grad/alumni-web/internal/domain/model"
	apperrors "github.com/net4grad/alumni-web/internal/errors"
	"github.com/net4grad/alumni-web/internal/mocks"
)

func TestProfileService_Profile(t *testing.T) {
	ctrl := gomock.NewController(t)
	portal := mocks.NewMockPortalClient(ctrl)
	svc := NewProfileService(ProfileServiceOptions{Portal: portal})

	portal.EXPECT().GetProfile(gomock.Any(), testAuth).Return(model.Profile{Name: "Jane"}, nil)

	p, err := svc.Profile(context.Background(), testAuth)
	require.NoError(t, err)
	assert.Equal(t, "Jane", p.Name)
}

func TestProfileService_Profile_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	portal := mocks.NewMockPortalClient(ctrl)
	svc := NewProfileService(ProfileServiceOptions{Portal: portal})

	portal.EXPECT().GetProfile(gomock.Any(), gomock.Any()).Return(model.Profile{}, errors.New("503"))

	_, err := svc.Profile(context.Background(), testAuth)
	assert.True(t, apperrors.IsFetch(err))
	assert.Equal(t, "Failed to load profile data", apperrors.UserMessage(err))
}

func TestProfileService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	portal := mocks.NewMockPortalClient(ctrl)
	svc := NewProfileService(ProfileServiceOptions{Portal: portal})
	ctx := context.Background()

	_, err := svc.Update(ctx, testAuth, model.ProfileUpdate{Name: "  "})
	assert.True(t, apperrors.IsValidation(err))

	portal.EXPECT().
		UpdateProfile(gomock.Any(), testAuth, model.ProfileUpdate{Name: "Jane", Department: "CSE"}).
		Return(model.Profile{Name: "Jane", Department: "CSE"}, nil)

	p, err := svc.Update(ctx, testAuth, model.ProfileUpdate{Name: " Jane ", Department: "CSE "})
	require.NoError(t, err)
	assert.Equal(t, "CSE", p.Department)

	portal.EXPECT().UpdateProfile(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Profile{}, errors.New("down"))
	_, err = svc.Update(ctx, testAuth, model.ProfileUpdate{Name: "Jane"})
	assert.True(t, apperrors.IsUpstream(err))
	assert.Equal(t, "Failed to update profile", apperrors.UserMessage(err))
}

func TestProfileService_AddExperience(t *testing.T) {
	ctrl := gomock.NewController(t)
	portal := mocks.NewMockPortalClient(ctrl)
	svc := NewProfileService(ProfileServiceOptions{Portal: portal})
	ctx := context.Background()

	_, err := svc.AddExperience(ctx, testAuth, model.Experience{Company: "Acme"})
	require.Error(t, err)
	assert.Equal(t, "Title is required", apperrors.UserMessage(err))

	in := model.Experience{Title: "Intern", Company: "Acme", Period: "2024"}
	portal.EXPECT().AddExperience(gomock.Any(), testAuth, in).Return(in, nil)

	out, err := svc.AddExperience(ctx, testAuth, model.Experience{Title: " Intern", Company: "Acme ", Period: "2024"})
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestProfileService_AddSkill(t *testing.T) {
	ctrl := gomock.NewController(t)
	portal := mocks.NewMockPortalClient(ctrl)
	svc := NewProfileService(ProfileServiceOptions{Portal: portal})
	ctx := context.Background()

	_, err := svc.AddSkill(ctx, testAuth, "   ")
	assert.True(t, apperrors.IsValidation(err))

	gomock.InOrder(
		portal.EXPECT().AddSkill(gomock.Any(), testAuth, "Go").Return(nil),
		portal.EXPECT().GetProfile(gomock.Any(), testAuth).Return(model.Profile{Skills: []string{"Go"}}, nil),
	)

	p, err := svc.AddSkill(ctx, testAuth, " Go ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, p.Skills)
}

func TestProfileService_AddSkill_UpstreamError(t *testing.T) {
	ctrl := gomock.NewController(t)
	portal := mocks.NewMockPortalClient(ctrl)
	svc := NewProfileService(ProfileServiceOptions{Portal: portal})

	portal.EXPECT().AddSkill(gomock.Any(), gomock.Any(), "Rust").Return(errors.New("409"))

	_, err := svc.AddSkill(context.Background(), testAuth, "Rust")
	assert.True(t, apperrors.IsUpstream(err))
}
