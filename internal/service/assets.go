// internal/service/assets.go
package service

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DadosMB/crm-infra/internal/assets"
	"github.com/DadosMB/crm-infra/internal/models"
	"github.com/DadosMB/crm-infra/internal/store"
)

// CreateAsset registers a single asset.
func (s *Service) CreateAsset(actor *models.User, a models.Asset) (models.Asset, error) {
	if err := canWrite(actor); err != nil {
		return models.Asset{}, err
	}
	if a.AssetTag == "" {
		return models.Asset{}, validationErr("asset tag is required")
	}
	if a.Name == "" {
		return models.Asset{}, validationErr("name is required")
	}

	a.ID = "ast-" + uuid.NewString()
	if a.Status == "" {
		a.Status = models.AssetAtivo
	}
	if a.RegistrationDate.IsZero() {
		a.RegistrationDate = s.now()
	}
	if a.LinkedOSIDs == nil {
		a.LinkedOSIDs = []string{}
	}

	s.st.Update(func(d *store.Data) {
		next := make([]models.Asset, 0, len(d.Assets)+1)
		next = append(next, d.Assets...)
		next = append(next, a)
		d.Assets = next
	})
	return a, nil
}

// UpdateAsset replaces an asset wholesale. Status is carried over from the
// stored record: it only moves through the maintenance operations below.
func (s *Service) UpdateAsset(actor *models.User, a models.Asset) (models.Asset, error) {
	if err := canWrite(actor); err != nil {
		return models.Asset{}, err
	}

	var opErr error
	s.st.Update(func(d *store.Data) {
		cur, ok := d.AssetByID(a.ID)
		if !ok {
			opErr = models.ErrNotFound
			return
		}
		a.Status = cur.Status
		d.Assets = replaceAsset(d.Assets, a)
	})
	if opErr != nil {
		return models.Asset{}, opErr
	}
	return a, nil
}

// WriteOffAsset marks an asset Baixado (decommissioned). Admin-only, and
// not possible while the asset is out for maintenance.
func (s *Service) WriteOffAsset(actor *models.User, id string) error {
	if err := canWrite(actor); err != nil {
		return err
	}
	if !actor.IsAdmin {
		return models.ErrPermission
	}

	var opErr error
	s.st.Update(func(d *store.Data) {
		cur, ok := d.AssetByID(id)
		if !ok {
			opErr = models.ErrNotFound
			return
		}
		if cur.Status == models.AssetEmManutencao {
			opErr = models.ErrAssetInMaintenance
			return
		}
		cur.Status = models.AssetBaixado
		d.Assets = replaceAsset(d.Assets, cur)
	})
	return opErr
}

// DeleteAsset removes an asset entirely. Admin-only.
func (s *Service) DeleteAsset(actor *models.User, id string) error {
	if err := canWrite(actor); err != nil {
		return err
	}
	if !actor.IsAdmin {
		return fmt.Errorf("%w: only admins can delete assets", models.ErrPermission)
	}

	var opErr error
	s.st.Update(func(d *store.Data) {
		next := make([]models.Asset, 0, len(d.Assets))
		found := false
		for _, a := range d.Assets {
			if a.ID == id {
				found = true
				continue
			}
			next = append(next, a)
		}
		if !found {
			opErr = models.ErrNotFound
			return
		}
		d.Assets = next
	})
	return opErr
}

// ImportAssets parses CSV text and appends every valid row in one batch.
// Per-row problems are tolerated silently; only a fully unusable file is an
// error, and then nothing is committed.
func (s *Service) ImportAssets(actor *models.User, text string) (int, error) {
	if err := canWrite(actor); err != nil {
		return 0, err
	}

	var categories []string
	s.st.View(func(d store.Data) {
		categories = d.Categories
	})

	parsed, err := assets.ParseImport(text, categories, s.now())
	if err != nil {
		return 0, err
	}

	s.st.Update(func(d *store.Data) {
		next := make([]models.Asset, 0, len(d.Assets)+len(parsed))
		next = append(next, d.Assets...)
		next = append(next, parsed...)
		d.Assets = next
	})
	slog.Info("assets imported", "count", len(parsed), "by", actor.ID)
	return len(parsed), nil
}

type MaintenanceInput struct {
	AssetID            string     `json:"assetId"`
	ProviderName       string     `json:"providerName"`
	ContactInfo        string     `json:"contactInfo,omitempty"`
	DateOut            *time.Time `json:"dateOut,omitempty"`
	DateReturnForecast *time.Time `json:"dateReturnForecast,omitempty"`
	Description        string     `json:"description"`
}

// SendToMaintenance opens a maintenance record for an asset and moves the
// asset to Em Manutenção. Only Ativo or Inativo assets can be sent out;
// the status transition happens exclusively through this operation.
func (s *Service) SendToMaintenance(actor *models.User, in MaintenanceInput) (models.MaintenanceRecord, error) {
	if err := canWrite(actor); err != nil {
		return models.MaintenanceRecord{}, err
	}
	if in.AssetID == "" || in.ProviderName == "" || in.Description == "" {
		return models.MaintenanceRecord{}, validationErr("asset, provider and description are required")
	}

	dateOut := s.now()
	if in.DateOut != nil {
		dateOut = *in.DateOut
	}

	var (
		rec   models.MaintenanceRecord
		opErr error
	)
	s.st.Update(func(d *store.Data) {
		asset, ok := d.AssetByID(in.AssetID)
		if !ok {
			opErr = models.ErrNotFound
			return
		}
		if asset.Status != models.AssetAtivo && asset.Status != models.AssetInativo {
			opErr = models.ErrAssetInMaintenance
			return
		}

		rec = models.MaintenanceRecord{
			ID:                 "mr-" + uuid.NewString(),
			AssetID:            asset.ID,
			ProviderName:       in.ProviderName,
			ContactInfo:        in.ContactInfo,
			DateOut:            dateOut,
			DateReturnForecast: in.DateReturnForecast,
			Description:        in.Description,
			Active:             true,
		}
		next := make([]models.MaintenanceRecord, 0, len(d.Maintenance)+1)
		next = append(next, rec)
		next = append(next, d.Maintenance...)
		d.Maintenance = next

		asset.Status = models.AssetEmManutencao
		d.Assets = replaceAsset(d.Assets, asset)
	})
	if opErr != nil {
		return models.MaintenanceRecord{}, opErr
	}
	return rec, nil
}

// ReturnFromMaintenance closes an active maintenance record and restores
// the asset to Ativo.
func (s *Service) ReturnFromMaintenance(actor *models.User, recordID string, dateReturned *time.Time) (models.MaintenanceRecord, error) {
	if err := canWrite(actor); err != nil {
		return models.MaintenanceRecord{}, err
	}

	returned := s.now()
	if dateReturned != nil {
		returned = *dateReturned
	}

	var (
		rec   models.MaintenanceRecord
		opErr error
	)
	s.st.Update(func(d *store.Data) {
		cur, ok := d.MaintenanceByID(recordID)
		if !ok {
			opErr = models.ErrNotFound
			return
		}
		if !cur.Active {
			opErr = validationErr("maintenance record is already closed")
			return
		}

		cur.Active = false
		cur.DateReturned = &returned
		next := make([]models.MaintenanceRecord, len(d.Maintenance))
		for i, m := range d.Maintenance {
			if m.ID == cur.ID {
				next[i] = cur
			} else {
				next[i] = m
			}
		}
		d.Maintenance = next
		rec = cur

		if asset, ok := d.AssetByID(cur.AssetID); ok {
			asset.Status = models.AssetAtivo
			d.Assets = replaceAsset(d.Assets, asset)
		}
	})
	if opErr != nil {
		return models.MaintenanceRecord{}, opErr
	}
	return rec, nil
}

// AddCategory extends the asset category registry. Admin-only; duplicates
// are rejected case-insensitively.
func (s *Service) AddCategory(actor *models.User, name string) error {
	if err := canWrite(actor); err != nil {
		return err
	}
	if !actor.IsAdmin {
		return models.ErrPermission
	}
	if name == "" {
		return validationErr("category name is required")
	}

	var opErr error
	s.st.Update(func(d *store.Data) {
		for _, c := range d.Categories {
			if strings.EqualFold(c, name) {
				opErr = validationErr("category already exists")
				return
			}
		}
		next := make([]string, 0, len(d.Categories)+1)
		next = append(next, d.Categories...)
		next = append(next, name)
		d.Categories = next
	})
	return opErr
}

// RemoveCategory drops a category from the registry. Assets keep whatever
// category string they already carry.
func (s *Service) RemoveCategory(actor *models.User, name string) error {
	if err := canWrite(actor); err != nil {
		return err
	}
	if !actor.IsAdmin {
		return models.ErrPermission
	}

	var opErr error
	s.st.Update(func(d *store.Data) {
		next := make([]string, 0, len(d.Categories))
		found := false
		for _, c := range d.Categories {
			if c == name {
				found = true
				continue
			}
			next = append(next, c)
		}
		if !found {
			opErr = models.ErrNotFound
			return
		}
		d.Categories = next
	})
	return opErr
}

func replaceAsset(list []models.Asset, a models.Asset) []models.Asset {
	next := make([]models.Asset, len(list))
	for i, cur := range list {
		if cur.ID == a.ID {
			next[i] = a
		} else {
			next[i] = cur
		}
	}
	return next
}
