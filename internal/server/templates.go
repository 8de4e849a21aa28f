package server

import (
	"embed"
	"html/template"
	"strconv"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"num": func(v float64) string {
		return strconv.FormatFloat(v, 'f', 4, 64)
	},
}

var statsTemplate = template.Must(template.New("stats.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/stats.html"))
