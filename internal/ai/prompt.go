package ai

import (
	"fmt"
	"strings"
)

// SiteRequest carries the structured fields a full-site generation is
// composed from.
type SiteRequest struct {
	BusinessName string
	BusinessType string
	Description  string
	PrimaryColor string
	Sections     []string
}

// SectionRequest carries the fields for regenerating one section of an
// existing site.
type SectionRequest struct {
	Section      string
	Instructions string
	CurrentHTML  string
	CurrentCSS   string
}

const siteSystemPrompt = `You are an expert web designer. You produce complete, ` +
	`self-contained single-page websites. Respond with a JSON object of the form ` +
	`{"html": "<full HTML document>", "css": "<stylesheet>"} and nothing else. ` +
	`The HTML must be a complete document starting with <!DOCTYPE html>.`

const sectionSystemPrompt = `You are an expert web designer editing one section of an ` +
	`existing website. Respond with a JSON object of the form ` +
	`{"html": "<full updated HTML document>", "css": "<stylesheet>"} and nothing else.`

// SiteSystemPrompt returns the system instructions for full-site calls
func SiteSystemPrompt() string { return siteSystemPrompt }

// SectionSystemPrompt returns the system instructions for section edits
func SectionSystemPrompt() string { return sectionSystemPrompt }

// BuildSitePrompt composes the user prompt for a full-site generation
func BuildSitePrompt(req SiteRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a website for %q", req.BusinessName)
	if req.BusinessType != "" {
		fmt.Fprintf(&b, ", a %s business", req.BusinessType)
	}
	b.WriteString(".\n")

	if req.Description != "" {
		fmt.Fprintf(&b, "About the business: %s\n", req.Description)
	}
	if req.PrimaryColor != "" {
		fmt.Fprintf(&b, "Primary brand color: %s\n", req.PrimaryColor)
	}
	if len(req.Sections) > 0 {
		fmt.Fprintf(&b, "Include these sections: %s\n", strings.Join(req.Sections, ", "))
	}

	return b.String()
}

// BuildSectionPrompt composes the user prompt for a section edit
func BuildSectionPrompt(req SectionRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Regenerate the %q section of the site below.\n", req.Section)
	if req.Instructions != "" {
		fmt.Fprintf(&b, "Instructions: %s\n", req.Instructions)
	}
	fmt.Fprintf(&b, "Current HTML:\n%s\n", req.CurrentHTML)
	if req.CurrentCSS != "" {
		fmt.Fprintf(&b, "Current CSS:\n%s\n", req.CurrentCSS)
	}

	return b.String()
}

// EstimateTokens approximates token cost as ceil(len(prompt) * 1.5).
func EstimateTokens(prompt string) int {
	return (len(prompt)*3 + 1) / 2
}
