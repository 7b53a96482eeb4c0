package accordion

import (
	"embed"
	"io/fs"
)

//go:embed templates locales
var assets embed.FS

// TemplatesFS exposes the view templates, rooted so that TemplateName
// resolves against it.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(assets, "templates")
	if err != nil {
		return assets
	}
	return sub
}

// LocalesFS exposes the message catalogs in the internal/i18n layout.
func LocalesFS() fs.FS {
	return assets
}
