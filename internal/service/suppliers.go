// internal/service/suppliers.go
package service

import (
	"github.com/google/uuid"

	"github.com/DadosMB/crm-infra/internal/models"
	"github.com/DadosMB/crm-infra/internal/store"
)

// AddSupplier registers a supplier. Admin-only.
func (s *Service) AddSupplier(actor *models.User, sup models.Supplier) (models.Supplier, error) {
	if err := canWrite(actor); err != nil {
		return models.Supplier{}, err
	}
	if !actor.IsAdmin {
		return models.Supplier{}, models.ErrPermission
	}
	if sup.Name == "" {
		return models.Supplier{}, validationErr("name is required")
	}
	sup.ID = "sup-" + uuid.NewString()

	s.st.Update(func(d *store.Data) {
		next := make([]models.Supplier, 0, len(d.Suppliers)+1)
		next = append(next, d.Suppliers...)
		next = append(next, sup)
		d.Suppliers = next
	})
	return sup, nil
}

// UpdateSupplier replaces a supplier record. Admin-only.
func (s *Service) UpdateSupplier(actor *models.User, sup models.Supplier) (models.Supplier, error) {
	if err := canWrite(actor); err != nil {
		return models.Supplier{}, err
	}
	if !actor.IsAdmin {
		return models.Supplier{}, models.ErrPermission
	}

	var opErr error
	s.st.Update(func(d *store.Data) {
		found := false
		next := make([]models.Supplier, len(d.Suppliers))
		for i, cur := range d.Suppliers {
			if cur.ID == sup.ID {
				next[i] = sup
				found = true
			} else {
				next[i] = cur
			}
		}
		if !found {
			opErr = models.ErrNotFound
			return
		}
		d.Suppliers = next
	})
	if opErr != nil {
		return models.Supplier{}, opErr
	}
	return sup, nil
}

// DeleteSupplier removes a supplier. Admin-only.
func (s *Service) DeleteSupplier(actor *models.User, id string) error {
	if err := canWrite(actor); err != nil {
		return err
	}
	if !actor.IsAdmin {
		return models.ErrPermission
	}

	var opErr error
	s.st.Update(func(d *store.Data) {
		next := make([]models.Supplier, 0, len(d.Suppliers))
		found := false
		for _, sup := range d.Suppliers {
			if sup.ID == id {
				found = true
				continue
			}
			next = append(next, sup)
		}
		if !found {
			opErr = models.ErrNotFound
			return
		}
		d.Suppliers = next
	})
	return opErr
}
