package web

import (
	"embed"
	"html/template"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").
	Funcs(template.FuncMap{"safeSVG": safeSVG, "noData": func() string { return noDataMessage }}).
	ParseFS(templateFS, "templates/index.html"))
