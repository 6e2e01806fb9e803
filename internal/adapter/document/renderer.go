package document

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"gatepass-backend/internal/domain/application"
	"gatepass-backend/internal/domain/temppass"
)

// FileRenderer renders the pass document from an aggregate snapshot and
// writes it under the storage dir, returning the path as the opaque artifact
// reference. Rendering is deterministic for the same snapshot; only the
// filename carries a timestamp.
type FileRenderer struct {
	dir  string
	tmpl *template.Template
}

func NewFileRenderer(dir string) (*FileRenderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("renderer: create storage dir: %w", err)
	}
	tmpl, err := template.New("passes").Parse(gatePassTemplate + tempPassTemplate)
	if err != nil {
		return nil, fmt.Errorf("renderer: parse templates: %w", err)
	}
	return &FileRenderer{dir: dir, tmpl: tmpl}, nil
}

func (r *FileRenderer) RenderGatePass(ctx context.Context, a *application.Application) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if a.GatePermitNumber == nil {
		return "", fmt.Errorf("renderer: application %d has no permit number", a.ID)
	}
	name := fmt.Sprintf("gatepass-%d-%d.html", a.ID, time.Now().UTC().UnixMilli())
	path := filepath.Join(r.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := r.tmpl.ExecuteTemplate(f, "gatepass", a); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func (r *FileRenderer) RenderTemporaryPass(ctx context.Context, p *temppass.TemporaryPass) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.PermitNumber == nil {
		return "", fmt.Errorf("renderer: temporary pass %d has no permit number", p.ID)
	}
	name := fmt.Sprintf("temppass-%d-%d.html", p.ID, time.Now().UTC().UnixMilli())
	path := filepath.Join(r.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := r.tmpl.ExecuteTemplate(f, "temppass", p); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

const gatePassTemplate = `{{define "gatepass"}}<!DOCTYPE html>
<html><head><title>Gate Pass {{.GatePermitNumber}}</title></head><body>
<h1>Contractor Gate Pass</h1>
<p>Permit number: <strong>{{.GatePermitNumber}}</strong></p>
<p>LOA: {{.LOANumber}} | Application: {{.ID}}</p>
<p>Valid: {{.GatePassFrom.Format "2006-01-02"}} to {{.GatePassTo.Format "2006-01-02"}}</p>
<p>Persons: {{.NumberOfPersons}} | Supervisors: {{.NumberOfSupervisors}}</p>
<table border="1">
<tr><th>Supervisor</th><th>Phone</th></tr>
{{range .Supervisors}}<tr><td>{{.Name}}</td><td>{{.Phone}}</td></tr>{{end}}
</table>
<table border="1">
<tr><th>Tool / Material</th><th>Category</th><th>Qty</th></tr>
{{range .ToolItems}}<tr><td>{{.Description}}</td><td>{{.Category}}</td><td>{{.Quantity}}</td></tr>{{end}}
</table>
</body></html>
{{end}}`

const tempPassTemplate = `{{define "temppass"}}<!DOCTYPE html>
<html><head><title>Temporary Pass {{.PermitNumber}}</title></head><body>
<h1>Temporary Gate Pass</h1>
<p>Permit number: <strong>{{.PermitNumber}}</strong></p>
<p>LOA: {{.LOANumber}} | Pass: {{.ID}}</p>
<p>Purpose: {{.Purpose}}</p>
<p>Valid: {{.PeriodFrom.Format "2006-01-02"}} to {{.PeriodTo.Format "2006-01-02"}}</p>
<p>Persons: {{.NumberOfPersons}}</p>
</body></html>
{{end}}`
