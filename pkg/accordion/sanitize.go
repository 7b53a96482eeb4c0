package accordion

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/goliatone/go-unilabel/pkg/form"
)

// Sanitizer cleans user supplied markup before it reaches a template.
// *bluemonday.Policy satisfies it.
type Sanitizer interface {
	Sanitize(s string) string
}

// NewSanitizer returns the default policy: bluemonday's user generated
// content policy, which keeps formatting, links and images.
func NewSanitizer() Sanitizer {
	return bluemonday.UGCPolicy()
}

var markdown = goldmark.New()

// formatText turns stored text into safe HTML according to its format.
func formatText(s Sanitizer, text string, format form.TextFormat) (string, error) {
	switch format {
	case form.FormatPlain:
		escaped := html.EscapeString(text)
		return strings.ReplaceAll(escaped, "\n", "<br />\n"), nil
	case form.FormatMarkdown:
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(text), &buf); err != nil {
			return "", fmt.Errorf("convert markdown: %w", err)
		}
		return s.Sanitize(buf.String()), nil
	default:
		return s.Sanitize(text), nil
	}
}
