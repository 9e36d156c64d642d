package genieweb

import "embed"

// TemplateFS contains the embedded HTML templates used for rendering the web interface. These templates
// are organized in a directory structure that separates the page layout from the partial views that are
// re-rendered and pushed to the browser whenever the session state changes.
//
//go:embed templates/*
var TemplateFS embed.FS

// StaticFS contains the embedded static assets (the small client script and the stylesheet) served
// under /static/.
//
//go:embed static/*
var StaticFS embed.FS
