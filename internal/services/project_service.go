package services

import (
	"context"
	"time"

	"github.com/pagecraft/pagecraft/internal/domain/project"
	"github.com/pagecraft/pagecraft/internal/domain/template"
	"github.com/pagecraft/pagecraft/internal/domain/user"
	"github.com/pagecraft/pagecraft/internal/pkg/errors"
	"github.com/pagecraft/pagecraft/internal/pkg/logger"
	"github.com/pagecraft/pagecraft/internal/subscription"
)

// ProjectService implements project.Service
type ProjectService struct {
	repo         project.Repository
	templateRepo template.Repository
	userRepo     user.Repository
	logger       *logger.Logger
}

// NewProjectService creates a new project service
func NewProjectService(repo project.Repository, templateRepo template.Repository, userRepo user.Repository, log *logger.Logger) project.Service {
	return &ProjectService{
		repo:         repo,
		templateRepo: templateRepo,
		userRepo:     userRepo,
		logger:       log,
	}
}

// Create creates a project, optionally seeded from a template. Premium
// templates are reserved for paid plans.
func (s *ProjectService) Create(ctx context.Context, userID int64, in project.CreateInput) (*project.Project, error) {
	p := &project.Project{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		TemplateID:  in.TemplateID,
		HTML:        in.HTML,
		CSS:         in.CSS,
	}

	if in.TemplateID != nil {
		t, err := s.templateRepo.GetByID(ctx, *in.TemplateID)
		if err != nil {
			return nil, err
		}
		if t.IsPremium {
			u, err := s.userRepo.GetByID(ctx, userID)
			if err != nil {
				return nil, err
			}
			if !subscription.HasPaidPlan(u.PlanType) {
				return nil, errors.Forbidden("This template requires a paid plan")
			}
		}
		if p.HTML == "" {
			p.HTML = t.HTML
		}
		if p.CSS == "" {
			p.CSS = t.CSS
		}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create project")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"project_id": p.ID,
		"user_id":    userID,
	}).Info("Project created")

	return p, nil
}

// Get retrieves a project the actor may access
func (s *ProjectService) Get(ctx context.Context, actorID int64, actorRole string, id int64) (*project.Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.CanAccess(actorRole, actorID, p.UserID) {
		return nil, errors.Forbidden("You do not have access to this project")
	}
	return p, nil
}

// Update applies partial changes to an accessible project
func (s *ProjectService) Update(ctx context.Context, actorID int64, actorRole string, id int64, in project.UpdateInput) (*project.Project, error) {
	p, err := s.Get(ctx, actorID, actorRole, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.HTML != nil {
		p.HTML = *in.HTML
	}
	if in.CSS != nil {
		p.CSS = *in.CSS
	}
	if in.Subdomain != nil {
		p.Subdomain = in.Subdomain
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update project")
		return nil, err
	}

	return p, nil
}

// Delete removes an accessible project
func (s *ProjectService) Delete(ctx context.Context, actorID int64, actorRole string, id int64) error {
	if _, err := s.Get(ctx, actorID, actorRole, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"project_id": id,
		"actor_id":   actorID,
	}).Info("Project deleted")

	return nil
}

// ListByUser retrieves a user's projects
func (s *ProjectService) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*project.Project, int64, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// SetPublished toggles a project's published flag
func (s *ProjectService) SetPublished(ctx context.Context, actorID int64, actorRole string, id int64, published bool) (*project.Project, error) {
	p, err := s.Get(ctx, actorID, actorRole, id)
	if err != nil {
		return nil, err
	}

	p.Published = published
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
