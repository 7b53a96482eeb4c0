package render

import "github.com/goliatone/go-unilabel/pkg/form"

// RenderOptions describe per-request data renderers use to prefill and
// decorate the form without mutating it.
type RenderOptions struct {
	// Values pre-populates controls, typically the content type's form
	// defaults or the values of a re-displayed submission.
	Values form.Values
	// Hidden adds hidden inputs such as the label id or a CSRF token.
	Hidden map[string]string
	// Locale selects the language used for renderer chrome strings.
	Locale string
	// Translator resolves renderer chrome strings. Nil falls back to keys.
	Translator Translator
}
