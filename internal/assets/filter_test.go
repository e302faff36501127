package assets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DadosMB/crm-infra/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tp(t time.Time) *time.Time { return &t }

func filterFixture() []models.Asset {
	return []models.Asset{
		{ID: "a1", Unit: models.UnitAldeota, Status: models.AssetAtivo, Category: "Mobiliário", RegistrationDate: day(2024, 1, 10)},
		{ID: "a2", Unit: models.UnitCambeba, Status: models.AssetBaixado, Category: "TI / Informática", RegistrationDate: day(2024, 3, 15)},
		{ID: "a3", Unit: models.UnitAldeota, Status: models.AssetEmManutencao, Category: "Mobiliário", RegistrationDate: time.Date(2024, 6, 30, 18, 45, 0, 0, time.UTC)},
		{ID: "a4", Unit: models.UnitFabrica, Status: models.AssetAtivo, Category: "Cozinha Industrial", RegistrationDate: day(2024, 12, 1)},
	}
}

func filteredIDs(list []models.Asset, f ExportFilter) []string {
	out := []string{}
	for _, a := range Filter(list, f) {
		out = append(out, a.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	list := filterFixture()

	tests := []struct {
		name string
		f    ExportFilter
		want []string
	}{
		{"empty filter keeps everything", ExportFilter{}, []string{"a1", "a2", "a3", "a4"}},
		{"start date inclusive", ExportFilter{StartDate: tp(day(2024, 3, 15))}, []string{"a2", "a3", "a4"}},
		{"end date covers whole day", ExportFilter{EndDate: tp(day(2024, 6, 30))}, []string{"a1", "a2", "a3"}},
		{"range", ExportFilter{StartDate: tp(day(2024, 2, 1)), EndDate: tp(day(2024, 7, 1))}, []string{"a2", "a3"}},
		{"units are a union", ExportFilter{Units: []string{"Aldeota", "Fábrica"}}, []string{"a1", "a3", "a4"}},
		{"statuses", ExportFilter{Statuses: []string{"Baixado"}}, []string{"a2"}},
		{"categories", ExportFilter{Categories: []string{"Mobiliário"}}, []string{"a1", "a3"}},
		{
			"dimensions combine with and",
			ExportFilter{Units: []string{"Aldeota"}, Statuses: []string{"Ativo"}},
			[]string{"a1"},
		},
		{
			"nothing matches",
			ExportFilter{Units: []string{"Estoque"}},
			[]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filteredIDs(list, tt.f))
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	list := filterFixture()
	got := Filter(list, ExportFilter{Units: []string{"Aldeota"}})
	require.Len(t, got, 2)
	assert.Equal(t, "a1", got[0].ID)
	assert.Equal(t, "a3", got[1].ID)
}

func TestFilterEndBoundLateRegistration(t *testing.T) {
	// a registration late in the evening of the end day still matches
	list := []models.Asset{{ID: "late", RegistrationDate: time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)}}
	got := Filter(list, ExportFilter{EndDate: tp(day(2024, 6, 30))})
	assert.Len(t, got, 1)
}
