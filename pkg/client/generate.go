package client

import "context"

// AIService provides AI content-generation operations
type AIService struct {
	client *Client
}

// GenerateSiteRequest describes the site to generate
type GenerateSiteRequest struct {
	BusinessName string   `json:"businessName"`
	BusinessType string   `json:"businessType,omitempty"`
	Description  string   `json:"description,omitempty"`
	PrimaryColor string   `json:"primaryColor,omitempty"`
	Sections     []string `json:"sections,omitempty"`
}

// RegenerateSectionRequest describes a section edit
type RegenerateSectionRequest struct {
	Section      string `json:"section"`
	Instructions string `json:"instructions,omitempty"`
	CurrentHTML  string `json:"currentHtml"`
	CurrentCSS   string `json:"currentCss,omitempty"`
}

// SiteContent is the generated document pair
type SiteContent struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
}

// GenerationResult is returned by the generation endpoints
type GenerationResult struct {
	Result     SiteContent  `json:"result"`
	TokensUsed int          `json:"tokensUsed"`
	Usage      Subscription `json:"usage"`
}

// UsageResponse reports the subscription snapshot and entitlement
type UsageResponse struct {
	Subscription Subscription `json:"subscription"`
	IsBlocked    bool         `json:"isBlocked"`
	CanUseAI     bool         `json:"canUseAi"`
}

// GenerateSite generates a complete website. Billing failures surface
// as *APIError with IsPaymentRequired or IsQuotaExceeded set.
func (s *AIService) GenerateSite(ctx context.Context, req GenerateSiteRequest) (*GenerationResult, error) {
	var result GenerationResult
	if err := s.client.doRequest(ctx, "POST", "/api/ai/generate", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RegenerateSection rewrites one section of an existing site
func (s *AIService) RegenerateSection(ctx context.Context, req RegenerateSectionRequest) (*GenerationResult, error) {
	var result GenerationResult
	if err := s.client.doRequest(ctx, "POST", "/api/ai/regenerate-section", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Usage retrieves the caller's current quota snapshot
func (s *AIService) Usage(ctx context.Context) (*UsageResponse, error) {
	var usage UsageResponse
	if err := s.client.doRequest(ctx, "GET", "/api/ai/usage", nil, &usage); err != nil {
		return nil, err
	}
	return &usage, nil
}
