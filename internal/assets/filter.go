// internal/assets/filter.go
package assets

import (
	"time"

	"github.com/DadosMB/crm-infra/internal/models"
)

// ExportFilter narrows an asset list for export. Each dimension is a union
// (OR) within itself and an AND across dimensions; an empty selection means
// no restriction on that dimension.
type ExportFilter struct {
	StartDate  *time.Time `json:"startDate,omitempty"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	Units      []string   `json:"units,omitempty"`
	Statuses   []string   `json:"statuses,omitempty"`
	Categories []string   `json:"categories,omitempty"`
}

// Filter applies f to assets, preserving source order. The date range is
// inclusive on both ends; the end bound covers its whole day so a same-day
// registration is included.
func Filter(list []models.Asset, f ExportFilter) []models.Asset {
	out := make([]models.Asset, 0, len(list))
	for _, a := range list {
		if f.StartDate != nil && a.RegistrationDate.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && a.RegistrationDate.After(endOfDay(*f.EndDate)) {
			continue
		}
		if len(f.Units) > 0 && !contains(f.Units, string(a.Unit)) {
			continue
		}
		if len(f.Statuses) > 0 && !contains(f.Statuses, string(a.Status)) {
			continue
		}
		if len(f.Categories) > 0 && !contains(f.Categories, a.Category) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
