package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl templates/components/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle. Paths are rooted at
// "templates/".
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
