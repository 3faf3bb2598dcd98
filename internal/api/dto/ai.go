package dto

// GenerateSiteRequest is the payload for a full-site AI generation
type GenerateSiteRequest struct {
	BusinessName string   `json:"businessName" validate:"required,min=1,max=100"`
	BusinessType string   `json:"businessType" validate:"max=100"`
	Description  string   `json:"description" validate:"max=2000"`
	PrimaryColor string   `json:"primaryColor" validate:"omitempty,hexcolor"`
	Sections     []string `json:"sections" validate:"max=20,dive,max=50"`
}

// RegenerateSectionRequest is the payload for regenerating one section
type RegenerateSectionRequest struct {
	Section      string `json:"section" validate:"required,max=50"`
	Instructions string `json:"instructions" validate:"max=2000"`
	CurrentHTML  string `json:"currentHtml" validate:"required"`
	CurrentCSS   string `json:"currentCss"`
}
