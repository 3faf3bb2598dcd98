package client

import (
	"context"
	"strconv"
)

// ProjectService provides project management operations
type ProjectService struct {
	client *Client
}

// CreateProjectRequest represents a project creation request
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TemplateID  *int64 `json:"templateId,omitempty"`
	HTML        string `json:"html,omitempty"`
	CSS         string `json:"css,omitempty"`
}

// UpdateProjectRequest represents a partial project update
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	HTML        *string `json:"html,omitempty"`
	CSS         *string `json:"css,omitempty"`
	Subdomain   *string `json:"subdomain,omitempty"`
}

// List retrieves the caller's projects
func (s *ProjectService) List(ctx context.Context, opts ListOptions) (*Page[Project], error) {
	var page Page[Project]
	if err := s.client.doRequest(ctx, "GET", "/api/projects"+opts.query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get retrieves one project
func (s *ProjectService) Get(ctx context.Context, id int64) (*Project, error) {
	var p Project
	if err := s.client.doRequest(ctx, "GET", "/api/projects/"+strconv.FormatInt(id, 10), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a new project
func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	var p Project
	if err := s.client.doRequest(ctx, "POST", "/api/projects", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update applies a partial update
func (s *ProjectService) Update(ctx context.Context, id int64, req UpdateProjectRequest) (*Project, error) {
	var p Project
	if err := s.client.doRequest(ctx, "PUT", "/api/projects/"+strconv.FormatInt(id, 10), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a project
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, "DELETE", "/api/projects/"+strconv.FormatInt(id, 10), nil, nil)
}

// SetPublished publishes or unpublishes a project
func (s *ProjectService) SetPublished(ctx context.Context, id int64, published bool) (*Project, error) {
	var p Project
	body := map[string]bool{"published": published}
	if err := s.client.doRequest(ctx, "POST", "/api/projects/"+strconv.FormatInt(id, 10)+"/publish", body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
