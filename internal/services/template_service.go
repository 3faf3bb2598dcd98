package services

import (
	"context"

	"github.com/pagecraft/pagecraft/internal/domain/template"
)

// TemplateService reads the template catalog
type TemplateService struct {
	repo template.Repository
}

// NewTemplateService creates a new template service
func NewTemplateService(repo template.Repository) *TemplateService {
	return &TemplateService{repo: repo}
}

// List retrieves templates, optionally filtered by category
func (s *TemplateService) List(ctx context.Context, category string, limit, offset int) ([]*template.Template, int64, error) {
	return s.repo.List(ctx, category, limit, offset)
}

// Get retrieves a single template
func (s *TemplateService) Get(ctx context.Context, id int64) (*template.Template, error) {
	return s.repo.GetByID(ctx, id)
}
