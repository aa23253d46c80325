// internal/service/report/renderer.go
package report

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"
)

// Document is the prepared dataset handed to a renderer: the report itself
// plus presentation metadata.
type Document struct {
	Title        string
	Subtitle     string
	GeneratedAt  time.Time
	GeneratedBy  string
	GenerationID string
	Report       Report
}

// Renderer turns a report document into a downloadable byte stream. The
// actual rendering engine (PDF, HTML) is a collaborator behind this
// interface.
type Renderer interface {
	Render(ctx context.Context, doc *Document) ([]byte, error)
	ContentType() string
}

// HTMLRenderer is the built-in renderer; it produces a printable HTML view
// of the report.
type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

func (r *HTMLRenderer) Render(_ context.Context, doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *HTMLRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<h2>{{.Subtitle}}</h2>
<p>Generado: {{.GeneratedAt.Format "2006-01-02 15:04"}} por {{.GeneratedBy}} ({{.GenerationID}})</p>
<table border="1" cellspacing="0" cellpadding="4">
<tr><th>Fecha</th><th>Conductor</th><th>Vehículo</th><th>Distancia (km)</th></tr>
{{range .Report.Trips}}
<tr>
<td>{{.Fecha.Format "2006-01-02"}}</td>
<td>{{.ConductorID}}</td>
<td>{{.VehiculoID}}</td>
<td>{{.DistanceOrZero}}</td>
</tr>
{{end}}
</table>
<p>Distancia total: {{.Report.TotalDistance}} km —
Combustible: {{printf "%.1f" .Report.TotalLiters}} L,
${{printf "%.0f" .Report.TotalCost}}</p>
</body>
</html>
`
