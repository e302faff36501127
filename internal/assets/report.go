// internal/assets/report.go
package assets

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/DadosMB/crm-infra/internal/models"
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders a value as Brazilian currency, e.g. "R$ 4.500,00".
func FormatBRL(v float64) string {
	return brl.Sprintf("R$ %.2f", v)
}

type reportRow struct {
	Tag      string
	Name     string
	Detail   string
	Category string
	Unit     string
	Status   string
	Value    string
}

type reportData struct {
	GeneratedAt string
	Count       int
	Total       string
	FilterNote  string
	Rows        []reportRow
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Relatório de Patrimônio</title>
<style>
  body { font-family: sans-serif; padding: 40px; color: #1e293b; max-width: 1000px; margin: 0 auto; }
  .header { border-bottom: 2px solid #e2e8f0; padding-bottom: 20px; margin-bottom: 30px; }
  h1 { margin: 0; color: #0f172a; font-size: 24px; }
  p { margin: 5px 0 0; color: #64748b; font-size: 14px; }
  .summary { display: flex; gap: 20px; margin-bottom: 30px; }
  .card { background: #f8fafc; padding: 15px; border-radius: 8px; border: 1px solid #e2e8f0; flex: 1; }
  .card-label { font-size: 11px; text-transform: uppercase; color: #64748b; font-weight: 700; display: block; margin-bottom: 5px; }
  .card-value { font-size: 18px; font-weight: 700; color: #0f172a; }
  table { width: 100%; border-collapse: collapse; font-size: 11px; }
  th { text-align: left; padding: 10px; background: #f1f5f9; color: #475569; font-weight: 700; text-transform: uppercase; border-bottom: 2px solid #cbd5e1; }
  td { padding: 10px; border-bottom: 1px solid #e2e8f0; }
  .tag { font-family: monospace; font-weight: 700; background: #e0e7ff; color: #3730a3; padding: 2px 6px; border-radius: 4px; }
  .val { font-weight: 700; text-align: right; }
  .footer { margin-top: 40px; border-top: 1px solid #e2e8f0; padding-top: 20px; font-size: 10px; color: #94a3b8; text-align: center; }
</style>
</head>
<body>
<div class="header">
  <h1>Relatório de Bens Patrimoniais</h1>
  <p>Listagem gerada em {{.GeneratedAt}}</p>
</div>
<div class="summary">
  <div class="card">
    <span class="card-label">Total de Itens</span>
    <span class="card-value">{{.Count}}</span>
  </div>
  <div class="card">
    <span class="card-label">Valor Total Estimado</span>
    <span class="card-value" style="color: #059669;">{{.Total}}</span>
  </div>
  <div class="card">
    <span class="card-label">Filtros</span>
    <span class="card-value" style="font-size: 12px; font-weight: 400;">{{.FilterNote}}</span>
  </div>
</div>
<table>
  <thead>
    <tr>
      <th width="15%">Patrimônio</th>
      <th width="30%">Descrição do Bem</th>
      <th width="15%">Categoria</th>
      <th width="15%">Unidade</th>
      <th width="10%">Status</th>
      <th width="15%" style="text-align: right;">Valor</th>
    </tr>
  </thead>
  <tbody>
  {{range .Rows}}
    <tr>
      <td><span class="tag">{{.Tag}}</span></td>
      <td><strong>{{.Name}}</strong><br/><span style="color:#64748b;">{{.Detail}}</span></td>
      <td>{{.Category}}</td>
      <td>{{.Unit}}</td>
      <td>{{.Status}}</td>
      <td class="val">{{.Value}}</td>
    </tr>
  {{end}}
  </tbody>
</table>
<div class="footer">CRM Infra • Documento Interno</div>
<script>window.print();</script>
</body>
</html>
`))

// ToPrintableReport emits a self-contained HTML document for the filtered
// asset set, ready to be handed to a browser print dialog. Producing the
// PDF is the browser's job; this function's obligation ends at correct
// markup and an accurate aggregate. An empty set renders a zero count and
// zero total rather than failing.
func ToPrintableReport(list []models.Asset, f ExportFilter, now time.Time) (string, error) {
	total := 0.0
	rows := make([]reportRow, 0, len(list))
	for _, a := range list {
		total += a.Value
		rows = append(rows, reportRow{
			Tag:      a.AssetTag,
			Name:     a.Name,
			Detail:   strings.TrimSpace(a.Brand + " " + a.Model),
			Category: a.Category,
			Unit:     string(a.Unit),
			Status:   string(a.Status),
			Value:    FormatBRL(a.Value),
		})
	}

	data := reportData{
		GeneratedAt: now.Format("02/01/2006 15:04"),
		Count:       len(list),
		Total:       FormatBRL(total),
		FilterNote:  filterNote(f),
		Rows:        rows,
	}

	var sb strings.Builder
	if err := reportTmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func filterNote(f ExportFilter) string {
	units := "Todas Unidades"
	if n := len(f.Units); n > 0 {
		units = fmt.Sprintf("%d Unidades", n)
	}
	cats := "Todas Categorias"
	if n := len(f.Categories); n > 0 {
		cats = fmt.Sprintf("%d Categorias", n)
	}
	return units + ", " + cats
}
