package api

import (
	"embed"
	"html/template"
)

//go:embed static/form.html
var templatesFS embed.FS

var formTemplate = template.Must(template.New("form.html").Funcs(template.FuncMap{
	"seq": func(lo, hi int) []int {
		out := make([]int, 0, hi-lo+1)
		for i := lo; i <= hi; i++ {
			out = append(out, i)
		}
		return out
	},
}).ParseFS(templatesFS, "static/form.html"))
