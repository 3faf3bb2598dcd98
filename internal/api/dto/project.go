package dto

// CreateProjectRequest is the payload for creating a project
type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
	TemplateID  *int64 `json:"templateId"`
	HTML        string `json:"html"`
	CSS         string `json:"css"`
}

// UpdateProjectRequest is the payload for partial project updates.
// Omitted fields are left unchanged.
type UpdateProjectRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	HTML        *string `json:"html"`
	CSS         *string `json:"css"`
	Subdomain   *string `json:"subdomain" validate:"omitempty,min=3,max=63,lowercase,alphanum"`
}

// PublishProjectRequest toggles the published flag
type PublishProjectRequest struct {
	Published bool `json:"published"`
}
