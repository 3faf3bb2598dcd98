package testutil

import (
	"context"
	"io"
	"sort"

	"github.com/pagecraft/pagecraft/internal/ai"
	"github.com/pagecraft/pagecraft/internal/domain/generation"
	"github.com/pagecraft/pagecraft/internal/domain/media"
	"github.com/pagecraft/pagecraft/internal/domain/project"
	"github.com/pagecraft/pagecraft/internal/domain/template"
	"github.com/pagecraft/pagecraft/internal/domain/user"
	"github.com/pagecraft/pagecraft/internal/pkg/errors"
)

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	Users       map[int64]*user.User
	EmailIndex  map[string]*user.User
	NextID      int64
	CreateError error
	GetError    error
	UpdateError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:      make(map[int64]*user.User),
		EmailIndex: make(map[string]*user.User),
		NextID:     1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	u.ID = m.NextID
	m.NextID++
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.EmailIndex[email]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Users[u.ID]; !ok {
		return errors.NotFound("User")
	}
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	u, ok := m.Users[id]
	if !ok {
		return errors.NotFound("User")
	}
	delete(m.EmailIndex, u.Email)
	delete(m.Users, id)
	return nil
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	var result []*user.User
	for _, u := range m.Users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, int64(len(result)), nil
}

func (m *MockUserRepository) ConsumeGeneration(ctx context.Context, id int64) (bool, error) {
	u, ok := m.Users[id]
	if !ok {
		return false, errors.NotFound("User")
	}
	if u.AIGenerationsUsed >= u.AIGenerationsLimit {
		return false, nil
	}
	u.AIGenerationsUsed++
	return true, nil
}

func (m *MockUserRepository) CountByPlan(ctx context.Context) ([]user.PlanCount, error) {
	counts := make(map[string]int64)
	for _, u := range m.Users {
		counts[u.PlanType]++
	}
	var result []user.PlanCount
	for plan, n := range counts {
		result = append(result, user.PlanCount{PlanType: plan, Count: n})
	}
	return result, nil
}

// MockProjectRepository is a mock implementation of project.Repository
type MockProjectRepository struct {
	Projects map[int64]*project.Project
	NextID   int64
}

func NewMockProjectRepository() *MockProjectRepository {
	return &MockProjectRepository{
		Projects: make(map[int64]*project.Project),
		NextID:   1,
	}
}

func (m *MockProjectRepository) Create(ctx context.Context, p *project.Project) error {
	p.ID = m.NextID
	m.NextID++
	m.Projects[p.ID] = p
	return nil
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id int64) (*project.Project, error) {
	p, ok := m.Projects[id]
	if !ok {
		return nil, errors.NotFound("Project")
	}
	return p, nil
}

func (m *MockProjectRepository) Update(ctx context.Context, p *project.Project) error {
	if _, ok := m.Projects[p.ID]; !ok {
		return errors.NotFound("Project")
	}
	m.Projects[p.ID] = p
	return nil
}

func (m *MockProjectRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.Projects[id]; !ok {
		return errors.NotFound("Project")
	}
	delete(m.Projects, id)
	return nil
}

func (m *MockProjectRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*project.Project, int64, error) {
	var result []*project.Project
	for _, p := range m.Projects {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, int64(len(result)), nil
}

// MockTemplateRepository is a mock implementation of template.Repository
type MockTemplateRepository struct {
	Templates map[int64]*template.Template
	NextID    int64
}

func NewMockTemplateRepository() *MockTemplateRepository {
	return &MockTemplateRepository{
		Templates: make(map[int64]*template.Template),
		NextID:    1,
	}
}

func (m *MockTemplateRepository) Create(ctx context.Context, t *template.Template) error {
	t.ID = m.NextID
	m.NextID++
	m.Templates[t.ID] = t
	return nil
}

func (m *MockTemplateRepository) GetByID(ctx context.Context, id int64) (*template.Template, error) {
	t, ok := m.Templates[id]
	if !ok {
		return nil, errors.NotFound("Template")
	}
	return t, nil
}

func (m *MockTemplateRepository) List(ctx context.Context, category string, limit, offset int) ([]*template.Template, int64, error) {
	var result []*template.Template
	for _, t := range m.Templates {
		if category == "" || t.Category == category {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, int64(len(result)), nil
}

// MockMediaRepository is a mock implementation of media.Repository
type MockMediaRepository struct {
	Items  map[int64]*media.Media
	NextID int64
}

func NewMockMediaRepository() *MockMediaRepository {
	return &MockMediaRepository{
		Items:  make(map[int64]*media.Media),
		NextID: 1,
	}
}

func (m *MockMediaRepository) Create(ctx context.Context, item *media.Media) error {
	item.ID = m.NextID
	m.NextID++
	m.Items[item.ID] = item
	return nil
}

func (m *MockMediaRepository) GetByID(ctx context.Context, id int64) (*media.Media, error) {
	item, ok := m.Items[id]
	if !ok {
		return nil, errors.NotFound("Media")
	}
	return item, nil
}

func (m *MockMediaRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.Items[id]; !ok {
		return errors.NotFound("Media")
	}
	delete(m.Items, id)
	return nil
}

func (m *MockMediaRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*media.Media, int64, error) {
	var result []*media.Media
	for _, item := range m.Items {
		if item.UserID == userID {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, int64(len(result)), nil
}

// MockGenerationRepository is a mock implementation of generation.Repository
type MockGenerationRepository struct {
	Records     []*generation.Record
	NextID      int64
	AppendError error
}

func NewMockGenerationRepository() *MockGenerationRepository {
	return &MockGenerationRepository{NextID: 1}
}

func (m *MockGenerationRepository) Append(ctx context.Context, rec *generation.Record) error {
	if m.AppendError != nil {
		return m.AppendError
	}
	rec.ID = m.NextID
	m.NextID++
	m.Records = append(m.Records, rec)
	return nil
}

func (m *MockGenerationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*generation.Record, int64, error) {
	var result []*generation.Record
	for i := len(m.Records) - 1; i >= 0; i-- {
		if m.Records[i].UserID == userID {
			result = append(result, m.Records[i])
		}
	}
	return result, int64(len(result)), nil
}

func (m *MockGenerationRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.Records)), nil
}

// MockProvider is a scripted ai.Provider for tests
type MockProvider struct {
	Response string
	Err      error
	Calls    int
	LastReq  ai.CompletionRequest
}

func (m *MockProvider) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	m.Calls++
	m.LastReq = req
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// MockStorage is an in-memory storage.Storage for tests
type MockStorage struct {
	Objects map[string][]byte
	PutErr  error
}

func NewMockStorage() *MockStorage {
	return &MockStorage{Objects: make(map[string][]byte)}
}

func (m *MockStorage) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if m.PutErr != nil {
		return "", m.PutErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.Objects[key] = data
	return "http://storage.test/" + key, nil
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	delete(m.Objects, key)
	return nil
}
