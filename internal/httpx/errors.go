// internal/httpx/errors.go
package httpx

import (
	"errors"
	"net/http"

	"github.com/DadosMB/crm-infra/internal/models"
)

// WriteServiceError maps domain errors onto HTTP statuses. Anything
// unrecognized is a 500 with the error's own message; nothing here is fatal
// to the process.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrPermission), errors.Is(err, models.ErrSelfDelete):
		Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrValidation):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrArchived), errors.Is(err, models.ErrAssetInMaintenance):
		Error(w, http.StatusConflict, err.Error())
	default:
		Error(w, http.StatusInternalServerError, err.Error())
	}
}
