package scaffold

import "embed"

// templateFS holds the project skeleton. Directory and file names containing
// projectPlaceholder are renamed to the project name on output; files ending
// in .tmpl are rendered with text/template and lose the extension.
//
//go:embed all:templates
var templateFS embed.FS

const (
	templateRoot       = "templates/project"
	projectPlaceholder = "__project__"
)
