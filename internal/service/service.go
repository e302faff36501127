// internal/service/service.go
package service

import (
	"fmt"
	"time"

	"github.com/DadosMB/crm-infra/internal/models"
	"github.com/DadosMB/crm-infra/internal/notify"
	"github.com/DadosMB/crm-infra/internal/store"
)

// Service owns every state transition. Handlers decode and delegate here;
// nothing else writes to the store. Guests are read-only across the board.
type Service struct {
	st      *store.Store
	emitter *notify.Emitter
	now     func() time.Time
}

func New(st *store.Store, emitter *notify.Emitter) *Service {
	return &Service{st: st, emitter: emitter, now: time.Now}
}

// NewWithClock is for tests that need deterministic timestamps.
func NewWithClock(st *store.Store, emitter *notify.Emitter, now func() time.Time) *Service {
	return &Service{st: st, emitter: emitter, now: now}
}

func (s *Service) Store() *store.Store { return s.st }

func (s *Service) Notifier() *notify.Emitter { return s.emitter }

// canWrite rejects unauthenticated and guest actors before any mutation.
func canWrite(actor *models.User) error {
	if actor == nil {
		return models.ErrPermission
	}
	if actor.IsGuest {
		return fmt.Errorf("%w: guest accounts are read-only", models.ErrPermission)
	}
	return nil
}

func validationErr(msg string) error {
	return fmt.Errorf("%w: %s", models.ErrValidation, msg)
}
