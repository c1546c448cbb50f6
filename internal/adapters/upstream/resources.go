package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/net4grad/alumni-web/internal/domain/model"
	"github.com/net4grad/alumni-web/internal/ports"
)

// ListStudents fetches the student roster.
func (c *Client) ListStudents(ctx context.Context, auth ports.UpstreamAuth) ([]model.Student, error) {
	return getList[model.Student](ctx, c, auth, "list_students", c.paths.Students)
}

// ListAlumni fetches the alumni roster.
func (c *Client) ListAlumni(ctx context.Context, auth ports.UpstreamAuth) ([]model.Alumnus, error) {
	return getList[model.Alumnus](ctx, c, auth, "list_alumni", c.paths.Alumni)
}

// ListEvents fetches upcoming and past events.
func (c *Client) ListEvents(ctx context.Context, auth ports.UpstreamAuth) ([]model.Event, error) {
	return getList[model.Event](ctx, c, auth, "list_events", c.paths.Events)
}

// ListAchievements fetches recorded achievements.
func (c *Client) ListAchievements(ctx context.Context, auth ports.UpstreamAuth) ([]model.Achievement, error) {
	return getList[model.Achievement](ctx, c, auth, "list_achievements", c.paths.Achievements)
}

// GetProfile fetches the signed-in user's profile.
func (c *Client) GetProfile(ctx context.Context, auth ports.UpstreamAuth) (model.Profile, error) {
	var p model.Profile
	err := c.call(ctx, requestSpec{
		Operation: "get_profile",
		Method:    http.MethodGet,
		Path:      c.paths.Profile,
		Auth:      &auth,
	}, &p)
	return p, err
}

// UpdateProfile replaces the editable profile fields and returns the stored profile.
func (c *Client) UpdateProfile(ctx context.Context, auth ports.UpstreamAuth, in model.ProfileUpdate) (model.Profile, error) {
	var p model.Profile
	err := c.call(ctx, requestSpec{
		Operation: "update_profile",
		Method:    http.MethodPut,
		Path:      c.paths.Profile,
		Auth:      &auth,
		Body:      in,
	}, &p)
	return p, err
}

// AddExperience appends a professional experience entry.
func (c *Client) AddExperience(ctx context.Context, auth ports.UpstreamAuth, in model.Experience) (model.Experience, error) {
	var out model.Experience
	err := c.call(ctx, requestSpec{
		Operation: "add_experience",
		Method:    http.MethodPost,
		Path:      strings.TrimRight(c.paths.Profile, "/") + "/experience",
		Auth:      &auth,
		Body:      in,
	}, &out)
	if err != nil {
		return model.Experience{}, err
	}
	if out == (model.Experience{}) {
		out = in
	}
	return out, nil
}

// AddSkill appends one skill to the profile.
func (c *Client) AddSkill(ctx context.Context, auth ports.UpstreamAuth, skill string) error {
	return c.call(ctx, requestSpec{
		Operation: "add_skill",
		Method:    http.MethodPost,
		Path:      strings.TrimRight(c.paths.Profile, "/") + "/skills",
		Auth:      &auth,
		Body:      map[string]string{"skill": skill},
	}, nil)
}

// call performs rs and decodes a JSON body into dst when dst is non-nil.
func (c *Client) call(ctx context.Context, rs requestSpec, dst any) error {
	req, err := c.newRequest(ctx, rs)
	if err != nil {
		return err
	}
	body, err := c.do(c.client, req, rs.Operation)
	if err != nil {
		return err
	}
	if dst == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode upstream %s response: %w", rs.Operation, err)
	}
	return nil
}

// listEnvelope matches list endpoints that wrap their rows.
type listEnvelope[T any] struct {
	Items []T `json:"items"`
	Data  []T `json:"data"`
}

func getList[T any](ctx context.Context, c *Client, auth ports.UpstreamAuth, operation, path string) ([]T, error) {
	req, err := c.newRequest(ctx, requestSpec{
		Operation: operation,
		Method:    http.MethodGet,
		Path:      path,
		Auth:      &auth,
	})
	if err != nil {
		return nil, err
	}
	body, err := c.do(c.client, req, operation)
	if err != nil {
		return nil, err
	}
	return decodeList[T](body, operation)
}

// decodeList accepts a bare JSON array or an {"items": [...]} / {"data": [...]} envelope.
func decodeList[T any](body []byte, operation string) ([]T, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return []T{}, nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var rows []T
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode upstream %s response: %w", operation, err)
		}
		return rows, nil
	}
	var env listEnvelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode upstream %s response: %w", operation, err)
	}
	switch {
	case env.Items != nil:
		return env.Items, nil
	case env.Data != nil:
		return env.Data, nil
	default:
		return nil, errors.New("upstream " + operation + " response has no list")
	}
}
