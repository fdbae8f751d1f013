// Package web holds the dashboard page and its static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"upper": strings.ToUpper,
	}
	return template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
}

// Static serves the embedded assets. Mount it under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
