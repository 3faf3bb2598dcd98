package client

import (
	"context"
	"net/url"
	"strconv"
)

// TemplateService provides template catalog operations
type TemplateService struct {
	client *Client
}

// List retrieves templates, optionally filtered by category
func (s *TemplateService) List(ctx context.Context, category string, opts ListOptions) (*Page[Template], error) {
	path := "/api/templates" + opts.query()
	if category != "" {
		sep := "?"
		if opts.query() != "" {
			sep = "&"
		}
		path += sep + "category=" + url.QueryEscape(category)
	}

	var page Page[Template]
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get retrieves one template
func (s *TemplateService) Get(ctx context.Context, id int64) (*Template, error) {
	var t Template
	if err := s.client.doRequest(ctx, "GET", "/api/templates/"+strconv.FormatInt(id, 10), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
