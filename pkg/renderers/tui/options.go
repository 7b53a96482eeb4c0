package tui

import "io"

// OutputFormat selects how Render serializes the collected values.
type OutputFormat string

const (
	// OutputFormatJSON emits a flat JSON object of wire names.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits the body a browser would post.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits sorted "name: value" lines.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme holds the prefix printed before header elements.
type Theme struct {
	HeaderPrefix string
}

// Option configures the renderer.
type Option func(*Renderer)

// WithPromptDriver replaces the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput sets where the survey driver prints header lines. Defaults to
// stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) {
		r.out = w
	}
}

func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
