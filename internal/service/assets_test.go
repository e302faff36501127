package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DadosMB/crm-infra/internal/models"
	"github.com/DadosMB/crm-infra/internal/store"
)

func createAsset(t *testing.T, s *Service, tag, name string) models.Asset {
	t.Helper()
	a, err := s.CreateAsset(admin, models.Asset{
		AssetTag: tag,
		Name:     name,
		Category: "Mobiliário",
		Unit:     models.UnitAldeota,
	})
	require.NoError(t, err)
	return a
}

func TestCreateAsset(t *testing.T) {
	s := newTestService(t)
	got := createAsset(t, s, "PAT-001", "Mesa de reunião")

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, models.AssetAtivo, got.Status)
	assert.Equal(t, testClock, got.RegistrationDate)
	assert.NotNil(t, got.LinkedOSIDs)

	_, err := s.CreateAsset(admin, models.Asset{Name: "Sem patrimônio"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestUpdateAssetKeepsStatus(t *testing.T) {
	s := newTestService(t)
	a := createAsset(t, s, "PAT-002", "Ar condicionado")

	_, err := s.SendToMaintenance(admin, MaintenanceInput{
		AssetID: a.ID, ProviderName: "Refrigeração Ceará", Description: "Não gela",
	})
	require.NoError(t, err)

	// an edit cannot sneak the status back to Ativo
	a.Name = "Ar condicionado split"
	a.Status = models.AssetAtivo
	got, err := s.UpdateAsset(admin, a)
	require.NoError(t, err)
	assert.Equal(t, models.AssetEmManutencao, got.Status)
	assert.Equal(t, "Ar condicionado split", got.Name)
}

func TestMaintenanceLifecycle(t *testing.T) {
	s := newTestService(t)
	a := createAsset(t, s, "PAT-003", "Forno industrial")

	rec, err := s.SendToMaintenance(admin, MaintenanceInput{
		AssetID:      a.ID,
		ProviderName: "Assistência Fogões",
		Description:  "Resistência queimada",
	})
	require.NoError(t, err)
	assert.True(t, rec.Active)
	assert.Equal(t, testClock, rec.DateOut)

	s.Store().View(func(d store.Data) {
		asset, ok := d.AssetByID(a.ID)
		require.True(t, ok)
		assert.Equal(t, models.AssetEmManutencao, asset.Status)
	})

	// an asset already out cannot be sent again
	_, err = s.SendToMaintenance(admin, MaintenanceInput{
		AssetID: a.ID, ProviderName: "Outro", Description: "x",
	})
	assert.ErrorIs(t, err, models.ErrAssetInMaintenance)

	closed, err := s.ReturnFromMaintenance(admin, rec.ID, nil)
	require.NoError(t, err)
	assert.False(t, closed.Active)
	require.NotNil(t, closed.DateReturned)
	assert.Equal(t, testClock, *closed.DateReturned)

	s.Store().View(func(d store.Data) {
		asset, ok := d.AssetByID(a.ID)
		require.True(t, ok)
		assert.Equal(t, models.AssetAtivo, asset.Status)
	})

	// closing twice is rejected
	_, err = s.ReturnFromMaintenance(admin, rec.ID, nil)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestSendToMaintenanceValidation(t *testing.T) {
	s := newTestService(t)
	a := createAsset(t, s, "PAT-004", "Bebedouro")

	_, err := s.SendToMaintenance(admin, MaintenanceInput{AssetID: a.ID})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = s.SendToMaintenance(admin, MaintenanceInput{
		AssetID: "ast-missing", ProviderName: "X", Description: "y",
	})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestWriteOffAsset(t *testing.T) {
	s := newTestService(t)
	a := createAsset(t, s, "PAT-005", "Monitor antigo")

	err := s.WriteOffAsset(joao, a.ID)
	assert.ErrorIs(t, err, models.ErrPermission)

	require.NoError(t, s.WriteOffAsset(admin, a.ID))
	s.Store().View(func(d store.Data) {
		asset, _ := d.AssetByID(a.ID)
		assert.Equal(t, models.AssetBaixado, asset.Status)
	})

	b := createAsset(t, s, "PAT-006", "Notebook")
	_, err = s.SendToMaintenance(admin, MaintenanceInput{
		AssetID: b.ID, ProviderName: "TI Local", Description: "Tela",
	})
	require.NoError(t, err)
	err = s.WriteOffAsset(admin, b.ID)
	assert.ErrorIs(t, err, models.ErrAssetInMaintenance)
}

func TestImportAssets(t *testing.T) {
	s := newTestService(t)

	text := "Patrimonio,Bem,Categoria,Unidade\n" +
		"PAT-100,Cadeira,Mobiliário,Aldeota\n" +
		"PAT-101,Mesa,mobiliário,cambeba\n"

	count, err := s.ImportAssets(admin, text)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	s.Store().View(func(d store.Data) {
		require.Len(t, d.Assets, 2)
		assert.Equal(t, "Mobiliário", d.Assets[1].Category)
		assert.Equal(t, models.UnitCambeba, d.Assets[1].Unit)
	})

	// a file with no usable rows commits nothing
	count, err = s.ImportAssets(admin, "Patrimonio,Bem\n")
	assert.Error(t, err)
	assert.Zero(t, count)
	s.Store().View(func(d store.Data) {
		assert.Len(t, d.Assets, 2)
	})
}

func TestCategoryRegistry(t *testing.T) {
	s := newTestService(t)

	err := s.AddCategory(joao, "Ferramentas")
	assert.ErrorIs(t, err, models.ErrPermission)

	require.NoError(t, s.AddCategory(admin, "Ferramentas"))
	err = s.AddCategory(admin, "Ferramentas")
	assert.ErrorIs(t, err, models.ErrValidation)

	// duplicates are caught regardless of case
	err = s.AddCategory(admin, "ferramentas")
	assert.ErrorIs(t, err, models.ErrValidation)

	require.NoError(t, s.RemoveCategory(admin, "Ferramentas"))
	err = s.RemoveCategory(admin, "Ferramentas")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteAsset(t *testing.T) {
	s := newTestService(t)
	a := createAsset(t, s, "PAT-007", "Impressora")

	err := s.DeleteAsset(joao, a.ID)
	assert.ErrorIs(t, err, models.ErrPermission)

	require.NoError(t, s.DeleteAsset(admin, a.ID))
	err = s.DeleteAsset(admin, a.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
