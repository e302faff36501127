// internal/assets/import.go
package assets

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/DadosMB/crm-infra/internal/models"
)

// ErrNoValidRows is the single aggregate error an import can produce.
// Individual bad rows are skipped silently, never reported.
var ErrNoValidRows = errors.New("no valid rows in import file")

// ParseImport converts uploaded CSV text into provisional assets. Line 1 is
// a header and is ignored. The parser favors accepting imperfect data over
// failing the batch: short rows are skipped, unknown categories fall back to
// the registry fallback, unknown units to the default unit, bad values to 0
// and bad dates to the import timestamp.
func ParseImport(text string, categories []string, now time.Time) ([]models.Asset, error) {
	lines := strings.Split(text, "\n")
	out := []models.Asset{}

	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		cols := splitCSVLine(line)

		// A row needs at least an asset tag and a name.
		if len(cols) < 2 || cols[0] == "" || cols[1] == "" {
			continue
		}

		a := models.Asset{
			ID:               fmt.Sprintf("ast-imp-%d-%d", now.UnixMilli(), i),
			AssetTag:         col(cols, 0),
			Name:             col(cols, 1),
			Category:         reconcileCategory(col(cols, 2), categories),
			Unit:             reconcileUnit(col(cols, 3)),
			Brand:            col(cols, 4),
			Model:            col(cols, 5),
			Value:            parseValue(col(cols, 6)),
			RegistrationDate: parseBRDate(col(cols, 7), now),
			Status:           models.AssetAtivo,
			Warranty:         models.AssetWarranty{HasWarranty: false},
			InvoiceInfo:      models.InvoiceInfo{},
			LinkedOSIDs:      []string{},
		}
		out = append(out, a)
	}

	if len(out) == 0 {
		return nil, ErrNoValidRows
	}
	return out, nil
}

// splitCSVLine splits on commas that are not inside double quotes, then
// strips one pair of surrounding quotes per field, un-doubles internal
// quotes and trims whitespace.
func splitCSVLine(line string) []string {
	var fields []string
	var sb strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			sb.WriteRune(r)
		case r == ',' && !inQuotes:
			fields = append(fields, cleanField(sb.String()))
			sb.Reset()
		default:
			sb.WriteRune(r)
		}
	}
	fields = append(fields, cleanField(sb.String()))
	return fields
}

func cleanField(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	s = strings.ReplaceAll(s, `""`, `"`)
	return strings.TrimSpace(s)
}

func col(cols []string, i int) string {
	if i < len(cols) {
		return cols[i]
	}
	return ""
}

// reconcileCategory matches the raw string case-insensitively against the
// registry; no match falls back to the designated catch-all category.
func reconcileCategory(raw string, categories []string) string {
	for _, c := range categories {
		if strings.EqualFold(c, raw) {
			return c
		}
	}
	return models.FallbackAssetCategory
}

func reconcileUnit(raw string) models.Unit {
	for _, u := range models.Units() {
		if strings.EqualFold(string(u), raw) {
			return u
		}
	}
	return models.DefaultUnit
}

func parseValue(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseBRDate parses DD/MM/YYYY. Anything else yields the import timestamp.
func parseBRDate(raw string, now time.Time) time.Time {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 3 {
		return now
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return now
	}
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1000 {
		return now
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
