// Package contenttype defines the contract between the unilabel host module
// and its pluggable content types.
//
// A content type owns its storage, contributes a fragment to the label
// settings form, supplies defaults for that fragment, persists submissions
// and renders the label body. The host resolves labels and course modules and
// passes them in as plain values.
package contenttype

import (
	"context"

	"github.com/goliatone/go-unilabel/pkg/form"
	"github.com/goliatone/go-unilabel/pkg/render/template"
)

// Label is the host label instance a content type is attached to.
type Label struct {
	ID          int64
	Course      int64
	Name        string
	Intro       string
	IntroFormat form.TextFormat
}

// CourseModule places a label inside a course.
type CourseModule struct {
	ID       int64
	Instance int64
}

// FormContext is what the host knows while building the settings form.
type FormContext struct {
	Label        Label
	CourseModule CourseModule
}

// ContentType is implemented by every unilabel content type plugin.
type ContentType interface {
	// Namespace is the plugin component name, e.g. "unilabeltype_accordion".
	// It prefixes form field names, config keys and template paths.
	Namespace() string
	// Content renders the label body.
	Content(ctx context.Context, label Label, cm CourseModule, renderer template.TemplateRenderer) (string, error)
	// DeleteContent removes everything stored for the label.
	DeleteContent(ctx context.Context, labelID int64) error
	// AddFormFragment appends the content type's settings to f.
	AddFormFragment(ctx context.Context, f *form.Form, fc FormContext) error
	// FormDefaults returns data extended with the stored settings.
	FormDefaults(ctx context.Context, data form.Values, label Label) (form.Values, error)
	// SaveContent persists a submission and reports whether a record exists.
	SaveContent(ctx context.Context, data form.Values, label Label) (bool, error)
	// IsActive reports whether the plugin is enabled by configuration.
	IsActive() bool
}

// Resetter is implemented by content types that keep the last loaded label
// in memory. Long running hosts call Reset before serving a request so
// writes made by other processes are observed.
type Resetter interface {
	Reset()
}
