// internal/service/users.go
package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/DadosMB/crm-infra/internal/auth"
	"github.com/DadosMB/crm-infra/internal/models"
	"github.com/DadosMB/crm-infra/internal/store"
)

type CreateUserInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	IsAdmin   bool   `json:"isAdmin"`
	IsGuest   bool   `json:"isGuest"`
}

// CreateUser registers a new account. Admin-only.
func (s *Service) CreateUser(actor *models.User, in CreateUserInput) (models.User, error) {
	if err := canWrite(actor); err != nil {
		return models.User{}, err
	}
	if !actor.IsAdmin {
		return models.User{}, models.ErrPermission
	}
	if in.Name == "" || in.Password == "" {
		return models.User{}, validationErr("name and password are required")
	}

	username := in.Username
	if username == "" && in.Email != "" {
		username = strings.SplitN(in.Email, "@", 2)[0]
	}
	if username == "" {
		return models.User{}, validationErr("username or email is required")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}

	u := models.User{
		ID:           "usr-" + uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		Username:     username,
		Role:         in.Role,
		Initials:     initials(in.Name),
		AvatarURL:    in.AvatarURL,
		IsAdmin:      in.IsAdmin,
		IsGuest:      in.IsGuest,
		PasswordHash: hash,
	}

	var opErr error
	s.st.Update(func(d *store.Data) {
		if _, exists := d.UserByUsername(username); exists {
			opErr = validationErr("username already taken")
			return
		}
		next := make([]models.User, 0, len(d.Users)+1)
		next = append(next, d.Users...)
		next = append(next, u)
		d.Users = next
	})
	if opErr != nil {
		return models.User{}, opErr
	}
	return u, nil
}

type UpdateUserInput struct {
	ID        string  `json:"id"`
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Role      *string `json:"role,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	IsAdmin   *bool   `json:"isAdmin,omitempty"`
	Password  *string `json:"password,omitempty"`
}

// UpdateUser edits a profile. Users may edit themselves; role changes are
// admin-only, and an admin cannot clear their own admin flag (lockout
// guard, same rule as self-deletion).
func (s *Service) UpdateUser(actor *models.User, in UpdateUserInput) (models.User, error) {
	if err := canWrite(actor); err != nil {
		return models.User{}, err
	}
	if !actor.IsAdmin && actor.ID != in.ID {
		return models.User{}, models.ErrPermission
	}
	if (in.Role != nil || in.IsAdmin != nil) && !actor.IsAdmin {
		return models.User{}, fmt.Errorf("%w: role changes are admin-only", models.ErrPermission)
	}
	if in.IsAdmin != nil && !*in.IsAdmin && actor.ID == in.ID && actor.IsAdmin {
		return models.User{}, models.ErrSelfDelete
	}

	var hash string
	if in.Password != nil && *in.Password != "" {
		var err error
		hash, err = auth.HashPassword(*in.Password)
		if err != nil {
			return models.User{}, err
		}
	}

	var (
		out   models.User
		opErr error
	)
	s.st.Update(func(d *store.Data) {
		cur, ok := d.UserByID(in.ID)
		if !ok {
			opErr = models.ErrNotFound
			return
		}
		if in.Name != nil {
			cur.Name = *in.Name
			cur.Initials = initials(*in.Name)
		}
		if in.Email != nil {
			cur.Email = *in.Email
		}
		if in.Role != nil {
			cur.Role = *in.Role
		}
		if in.AvatarURL != nil {
			cur.AvatarURL = *in.AvatarURL
		}
		if in.IsAdmin != nil {
			cur.IsAdmin = *in.IsAdmin
		}
		if hash != "" {
			cur.PasswordHash = hash
		}
		next := make([]models.User, len(d.Users))
		for i, u := range d.Users {
			if u.ID == cur.ID {
				next[i] = cur
			} else {
				next[i] = u
			}
		}
		d.Users = next
		out = cur
	})
	if opErr != nil {
		return models.User{}, opErr
	}
	return out, nil
}

// DeleteUser removes an account. Admin-only, and never the acting admin
// themself.
func (s *Service) DeleteUser(actor *models.User, id string) error {
	if err := canWrite(actor); err != nil {
		return err
	}
	if !actor.IsAdmin {
		return models.ErrPermission
	}
	if actor.ID == id {
		return models.ErrSelfDelete
	}

	var opErr error
	s.st.Update(func(d *store.Data) {
		next := make([]models.User, 0, len(d.Users))
		found := false
		for _, u := range d.Users {
			if u.ID == id {
				found = true
				continue
			}
			next = append(next, u)
		}
		if !found {
			opErr = models.ErrNotFound
			return
		}
		d.Users = next
	})
	return opErr
}

// initials takes the first two letters of the name, uppercased, matching
// how the client renders user badges.
func initials(name string) string {
	r := []rune(strings.TrimSpace(name))
	if len(r) >= 2 {
		return strings.ToUpper(string(r[:2]))
	}
	return strings.ToUpper(string(r))
}
