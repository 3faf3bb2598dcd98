package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

// SiteContent is the structured output recovered from a provider reply
type SiteContent struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
}

var (
	htmlDocPattern = regexp.MustCompile(`(?is)<!DOCTYPE html>.*</html>`)
	styleTagPattern = regexp.MustCompile(`(?is)<style[^>]*>(.*?)</style>`)
)

// StripFences removes Markdown code-fence delimiters from raw provider
// text. Providers routinely wrap JSON in fenced blocks despite being
// told not to.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseSiteContent recovers {html, css} from raw provider text. Stage
// one is a strict JSON parse after fence stripping; stage two falls
// back to pattern extraction of an HTML document and the first inline
// style block. The boolean reports whether anything was recovered.
func ParseSiteContent(raw string) (SiteContent, bool) {
	cleaned := StripFences(raw)

	var content SiteContent
	if err := json.Unmarshal([]byte(cleaned), &content); err == nil && content.HTML != "" {
		return content, true
	}

	return extractSiteContent(cleaned)
}

// ParseSectionContent is the section-edit variant: when strict parsing
// fails, the caller's previous HTML/CSS fills whatever pattern
// extraction could not recover. Only a reply with no recoverable HTML
// at all is a failure.
func ParseSectionContent(raw, prevHTML, prevCSS string) (SiteContent, bool) {
	cleaned := StripFences(raw)

	var content SiteContent
	if err := json.Unmarshal([]byte(cleaned), &content); err == nil && content.HTML != "" {
		if content.CSS == "" {
			content.CSS = prevCSS
		}
		return content, true
	}

	extracted, ok := extractSiteContent(cleaned)
	if !ok {
		return SiteContent{}, false
	}
	if extracted.CSS == "" {
		extracted.CSS = prevCSS
	}
	return extracted, true
}

// extractSiteContent is the pattern-extraction fallback: a full HTML
// document substring, plus the first inline style block as CSS.
func extractSiteContent(s string) (SiteContent, bool) {
	htmlDoc := htmlDocPattern.FindString(s)
	if htmlDoc == "" {
		return SiteContent{}, false
	}

	var css string
	if m := styleTagPattern.FindStringSubmatch(s); len(m) == 2 {
		css = strings.TrimSpace(m[1])
	}

	return SiteContent{HTML: htmlDoc, CSS: css}, true
}
