// internal/assets/csv.go
package assets

import (
	"fmt"
	"strings"
	"time"

	"github.com/DadosMB/crm-infra/internal/models"
)

// CSVHeader is the fixed export header. The column order is part of the
// file format consumed by downstream spreadsheets; do not reorder.
const CSVHeader = "Patrimonio,Bem,Categoria,Marca,Modelo,Unidade,Status,Valor,Data Aquisicao"

// ExportFilename returns the download name for a CSV export generated now.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("patrimonio_export_%s.csv", now.Format("2006-01-02"))
}

// ToCSV serializes assets in export column order. The name column is always
// quoted (it routinely carries commas); embedded double quotes are escaped
// by doubling. Values use two decimals with a dot separator, dates the
// localized DD/MM/YYYY display format. An empty list yields a header-only
// file, which is valid output.
func ToCSV(list []models.Asset) string {
	rows := make([]string, 0, len(list)+1)
	rows = append(rows, CSVHeader)
	for _, a := range list {
		rows = append(rows, strings.Join([]string{
			escapeQuotes(a.AssetTag),
			`"` + escapeQuotes(a.Name) + `"`,
			escapeQuotes(a.Category),
			escapeQuotes(a.Brand),
			escapeQuotes(a.Model),
			escapeQuotes(string(a.Unit)),
			escapeQuotes(string(a.Status)),
			fmt.Sprintf("%.2f", a.Value),
			a.RegistrationDate.Format("02/01/2006"),
		}, ","))
	}
	return strings.Join(rows, "\n")
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}
