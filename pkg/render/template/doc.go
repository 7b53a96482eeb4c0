// Package template defines the template renderer seam content types render
// through. Content types receive a TemplateRenderer per call and never reach
// for a global engine.
package template
