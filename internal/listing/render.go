package listing

import (
	"fmt"
	"html/template"
	"io"

	"github.com/mlab-site/labpubs/internal/publication"
)

const pageTemplate = `<div class="publications" lang="{{.Lang}}">
<p class="count">{{.View.Matched}} / {{.View.Total}}</p>
{{- if eq .View.State "no_data"}}
<p class="empty">{{.Labels.NoData}}</p>
{{- else if eq .View.State "no_results"}}
<p class="no-results">{{.Labels.NoResults}} "{{.View.Query}}"</p>
{{- else}}
{{- range .View.Years}}
<section class="year" id="year-{{.Year}}">
<h2>{{$.Labels.YearHeading .Year}}</h2>
{{- if .International.Len}}
<div class="international">
<h3>{{$.Labels.International}}</h3>
{{- with .International.Journals}}
<div class="journals">
<h4>{{$.Labels.Journals}}</h4>
{{template "items" .}}
</div>
{{- end}}
{{- with .International.Conferences}}
<div class="conferences">
<h4>{{$.Labels.Conferences}}</h4>
{{template "items" .}}
</div>
{{- end}}
{{- with .International.Other}}
<div class="other">
<h4>{{$.Labels.Other}}</h4>
{{template "items" .}}
</div>
{{- end}}
</div>
{{- end}}
{{- with .Domestic}}
<div class="domestic">
<h3>{{$.Labels.Domestic}}</h3>
{{template "items" .}}
</div>
{{- end}}
</section>
{{- end}}
{{- end}}
</div>
{{define "items"}}<ul>
{{- range .}}
<li class="publication" id="pub-{{.ID}}"><span class="authors">{{.Authors}}</span>: <span class="title">{{.Title}}</span>, <span class="journal">{{.Journal}}</span>
{{- with .Volume}}, {{.}}{{end}}{{.Issue}}{{with .Pages}}, {{.}}{{end}} <span class="date">{{.DateDisplay}}</span>.
{{- range links .}} <a class="link" href="{{.Href}}" target="_blank" rel="noopener noreferrer">{{.Label}}</a>{{end}}</li>
{{- end}}
</ul>{{end}}
`

var page = template.Must(template.New("publications").Funcs(template.FuncMap{
	"links": func(p publication.Publication) []Link { return Links(p) },
}).Parse(pageTemplate))

type pageData struct {
	Lang   Lang
	Labels LabelSet
	View   View
}

// RenderHTML writes the publication page fragment for v in lang. Only
// non-empty sections are emitted; empty snapshots and queries without matches
// render an explicit message instead of sections.
func RenderHTML(w io.Writer, v View, lang Lang) error {
	if err := page.Execute(w, pageData{Lang: lang, Labels: Labels(lang), View: v}); err != nil {
		return fmt.Errorf("rendering publications: %w", err)
	}
	return nil
}
