// Package alumniweb embeds the portal's templates and static assets.
package alumniweb

import "embed"

// In dev mode templates and static files are read from disk so edits show up
// without a rebuild; otherwise these embedded copies are served.

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
