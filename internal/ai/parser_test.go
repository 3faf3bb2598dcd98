package ai

import (
	"strings"
	"testing"
)

const sampleDoc = `<!DOCTYPE html><html><head><title>Acme</title></head><body><h1>Acme</h1></body></html>`

func TestParseSiteContent(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantOK   bool
		wantHTML string
		wantCSS  string
	}{
		{
			name:     "strict json",
			raw:      `{"html":"` + sampleDoc + `","css":"body{margin:0}"}`,
			wantOK:   true,
			wantHTML: sampleDoc,
			wantCSS:  "body{margin:0}",
		},
		{
			name:     "json wrapped in fences parses identically",
			raw:      "```json\n" + `{"html":"` + sampleDoc + `","css":"body{margin:0}"}` + "\n```",
			wantOK:   true,
			wantHTML: sampleDoc,
			wantCSS:  "body{margin:0}",
		},
		{
			name:     "bare fences",
			raw:      "```\n" + `{"html":"` + sampleDoc + `","css":""}` + "\n```",
			wantOK:   true,
			wantHTML: sampleDoc,
			wantCSS:  "",
		},
		{
			name:     "fallback extraction from prose",
			raw:      "Here is your site:\n" + sampleDoc + "\nEnjoy!",
			wantOK:   true,
			wantHTML: sampleDoc,
			wantCSS:  "",
		},
		{
			name:     "fallback picks up first style block",
			raw:      "Sure!\n" + sampleDoc + "\n<style>h1{color:red}</style><style>p{}</style>",
			wantOK:   true,
			wantHTML: sampleDoc,
			wantCSS:  "h1{color:red}",
		},
		{
			name:     "doctype match is case-insensitive",
			raw:      strings.ToLower(sampleDoc),
			wantOK:   true,
			wantHTML: strings.ToLower(sampleDoc),
			wantCSS:  "",
		},
		{
			name:   "no html at all",
			raw:    "I'm sorry, I can't help with that.",
			wantOK: false,
		},
		{
			name:   "json without html field",
			raw:    `{"css":"body{}"}`,
			wantOK: false,
		},
		{
			name:   "truncated document is not recovered",
			raw:    "<!DOCTYPE html><html><body><h1>half",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSiteContent(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("ParseSiteContent() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.HTML != tt.wantHTML {
				t.Errorf("ParseSiteContent() HTML = %q, want %q", got.HTML, tt.wantHTML)
			}
			if got.CSS != tt.wantCSS {
				t.Errorf("ParseSiteContent() CSS = %q, want %q", got.CSS, tt.wantCSS)
			}
		})
	}
}

func TestParseSectionContent(t *testing.T) {
	prevHTML := `<!DOCTYPE html><html><body>old</body></html>`
	prevCSS := "body{color:blue}"

	t.Run("strict json keeps provided css", func(t *testing.T) {
		got, ok := ParseSectionContent(`{"html":"`+sampleDoc+`","css":"h1{}"}`, prevHTML, prevCSS)
		if !ok {
			t.Fatal("ParseSectionContent() ok = false, want true")
		}
		if got.HTML != sampleDoc || got.CSS != "h1{}" {
			t.Errorf("ParseSectionContent() = %+v", got)
		}
	})

	t.Run("missing css falls back to previous", func(t *testing.T) {
		got, ok := ParseSectionContent(`{"html":"`+sampleDoc+`"}`, prevHTML, prevCSS)
		if !ok {
			t.Fatal("ParseSectionContent() ok = false, want true")
		}
		if got.CSS != prevCSS {
			t.Errorf("ParseSectionContent() CSS = %q, want previous %q", got.CSS, prevCSS)
		}
	})

	t.Run("pattern extraction keeps previous css when no style block", func(t *testing.T) {
		got, ok := ParseSectionContent("updated:\n"+sampleDoc, prevHTML, prevCSS)
		if !ok {
			t.Fatal("ParseSectionContent() ok = false, want true")
		}
		if got.HTML != sampleDoc {
			t.Errorf("ParseSectionContent() HTML = %q, want %q", got.HTML, sampleDoc)
		}
		if got.CSS != prevCSS {
			t.Errorf("ParseSectionContent() CSS = %q, want previous %q", got.CSS, prevCSS)
		}
	})

	t.Run("unrecoverable reply fails", func(t *testing.T) {
		_, ok := ParseSectionContent("no markup here", prevHTML, prevCSS)
		if ok {
			t.Error("ParseSectionContent() ok = true, want false")
		}
	})
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"leading whitespace", "  ```json\n{\"a\":1}\n``` ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.raw); got != tt.want {
				t.Errorf("StripFences() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		prompt string
		want   int
	}{
		{"", 0},
		{"ab", 3},   // even length: exactly 1.5x
		{"abc", 5},  // odd length: rounded up
		{"abcd", 6},
	}
	for _, tt := range tests {
		if got := EstimateTokens(tt.prompt); got != tt.want {
			t.Errorf("EstimateTokens(%q) = %d, want %d", tt.prompt, got, tt.want)
		}
	}
}

func TestBuildSitePrompt(t *testing.T) {
	p := BuildSitePrompt(SiteRequest{
		BusinessName: "Acme Coffee",
		BusinessType: "cafe",
		Description:  "Small-batch roastery",
		PrimaryColor: "#663300",
		Sections:     []string{"hero", "menu", "contact"},
	})

	for _, want := range []string{"Acme Coffee", "cafe", "Small-batch roastery", "#663300", "hero, menu, contact"} {
		if !strings.Contains(p, want) {
			t.Errorf("BuildSitePrompt() missing %q in %q", want, p)
		}
	}
}
