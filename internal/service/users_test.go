package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DadosMB/crm-infra/internal/auth"
	"github.com/DadosMB/crm-infra/internal/models"
)

func TestCreateUser(t *testing.T) {
	s := newTestService(t)

	got, err := s.CreateUser(admin, CreateUserInput{
		Name:     "Carlos Lima",
		Email:    "carlos.lima@empresa.com.br",
		Password: "segredo123",
		Role:     "Manutenção",
	})
	require.NoError(t, err)

	assert.Equal(t, "carlos.lima", got.Username)
	assert.Equal(t, "CA", got.Initials)
	assert.False(t, got.IsAdmin)
	assert.True(t, auth.CheckPassword(got.PasswordHash, "segredo123"))
}

func TestCreateUserRejections(t *testing.T) {
	s := newTestService(t)

	_, err := s.CreateUser(joao, CreateUserInput{Name: "X", Password: "p", Username: "x"})
	assert.ErrorIs(t, err, models.ErrPermission)

	_, err = s.CreateUser(admin, CreateUserInput{Name: "Sem senha", Username: "semsenha"})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = s.CreateUser(admin, CreateUserInput{Name: "Sem login", Password: "p"})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = s.CreateUser(admin, CreateUserInput{Name: "Primeiro", Username: "dup", Password: "p"})
	require.NoError(t, err)
	_, err = s.CreateUser(admin, CreateUserInput{Name: "Segundo", Username: "dup", Password: "p"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestUpdateUser(t *testing.T) {
	s := newTestService(t)

	name := "João S. Silva"
	got, err := s.UpdateUser(joao, UpdateUserInput{ID: joao.ID, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, "JO", got.Initials)

	// editing someone else requires admin
	_, err = s.UpdateUser(joao, UpdateUserInput{ID: maria.ID, Name: &name})
	assert.ErrorIs(t, err, models.ErrPermission)

	// role changes are admin-only
	role := "Gerente"
	_, err = s.UpdateUser(joao, UpdateUserInput{ID: joao.ID, Role: &role})
	assert.ErrorIs(t, err, models.ErrPermission)

	got, err = s.UpdateUser(admin, UpdateUserInput{ID: joao.ID, Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "Gerente", got.Role)
}

func TestAdminCannotDemoteSelf(t *testing.T) {
	s := newTestService(t)

	off := false
	_, err := s.UpdateUser(admin, UpdateUserInput{ID: admin.ID, IsAdmin: &off})
	assert.ErrorIs(t, err, models.ErrSelfDelete)

	// demoting another admin is fine
	on := true
	_, err = s.UpdateUser(admin, UpdateUserInput{ID: maria.ID, IsAdmin: &on})
	require.NoError(t, err)
	_, err = s.UpdateUser(admin, UpdateUserInput{ID: maria.ID, IsAdmin: &off})
	assert.NoError(t, err)
}

func TestDeleteUser(t *testing.T) {
	s := newTestService(t)

	err := s.DeleteUser(joao, maria.ID)
	assert.ErrorIs(t, err, models.ErrPermission)

	err = s.DeleteUser(admin, admin.ID)
	assert.ErrorIs(t, err, models.ErrSelfDelete)

	require.NoError(t, s.DeleteUser(admin, maria.ID))
	err = s.DeleteUser(admin, maria.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "JO", initials("João Silva"))
	assert.Equal(t, "A", initials("a"))
	assert.Equal(t, "", initials("  "))
}
