package render

import (
	"context"

	"github.com/goliatone/go-unilabel/pkg/form"
)

// Renderer presents a settings form. HTML renderers return markup; the
// terminal renderer returns the collected submission.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, f *form.Form, options RenderOptions) ([]byte, error)
}
