// internal/service/tasks.go
package service

import (
	"github.com/google/uuid"

	"github.com/DadosMB/crm-infra/internal/models"
	"github.com/DadosMB/crm-infra/internal/store"
)

// AddTask creates a personal task. Non-admins always own their own tasks;
// admins may create tasks for someone else.
func (s *Service) AddTask(actor *models.User, t models.PersonalTask) (models.PersonalTask, error) {
	if err := canWrite(actor); err != nil {
		return models.PersonalTask{}, err
	}
	if t.Title == "" {
		return models.PersonalTask{}, validationErr("title is required")
	}
	if !actor.IsAdmin || t.UserID == "" {
		t.UserID = actor.ID
	}
	if t.Priority == "" {
		t.Priority = models.TaskMedium
	}
	t.ID = "task-" + uuid.NewString()

	s.st.Update(func(d *store.Data) {
		next := make([]models.PersonalTask, 0, len(d.Tasks)+1)
		next = append(next, t)
		next = append(next, d.Tasks...)
		d.Tasks = next
	})
	return t, nil
}

// UpdateTask replaces a task. Only the owner (or an admin) may touch it.
func (s *Service) UpdateTask(actor *models.User, t models.PersonalTask) (models.PersonalTask, error) {
	if err := canWrite(actor); err != nil {
		return models.PersonalTask{}, err
	}

	var opErr error
	s.st.Update(func(d *store.Data) {
		cur, ok := d.TaskByID(t.ID)
		if !ok {
			opErr = models.ErrNotFound
			return
		}
		if !actor.IsAdmin && cur.UserID != actor.ID {
			opErr = models.ErrPermission
			return
		}
		t.UserID = cur.UserID
		d.Tasks = replaceTask(d.Tasks, t)
	})
	if opErr != nil {
		return models.PersonalTask{}, opErr
	}
	return t, nil
}

// ToggleTask flips a task's completed flag.
func (s *Service) ToggleTask(actor *models.User, id string) (models.PersonalTask, error) {
	if err := canWrite(actor); err != nil {
		return models.PersonalTask{}, err
	}

	var (
		out   models.PersonalTask
		opErr error
	)
	s.st.Update(func(d *store.Data) {
		cur, ok := d.TaskByID(id)
		if !ok {
			opErr = models.ErrNotFound
			return
		}
		if !actor.IsAdmin && cur.UserID != actor.ID {
			opErr = models.ErrPermission
			return
		}
		cur.Completed = !cur.Completed
		d.Tasks = replaceTask(d.Tasks, cur)
		out = cur
	})
	if opErr != nil {
		return models.PersonalTask{}, opErr
	}
	return out, nil
}

// DeleteTask removes a task owned by the actor (admins may remove any).
func (s *Service) DeleteTask(actor *models.User, id string) error {
	if err := canWrite(actor); err != nil {
		return err
	}

	var opErr error
	s.st.Update(func(d *store.Data) {
		cur, ok := d.TaskByID(id)
		if !ok {
			opErr = models.ErrNotFound
			return
		}
		if !actor.IsAdmin && cur.UserID != actor.ID {
			opErr = models.ErrPermission
			return
		}
		next := make([]models.PersonalTask, 0, len(d.Tasks))
		for _, t := range d.Tasks {
			if t.ID == id {
				continue
			}
			next = append(next, t)
		}
		d.Tasks = next
	})
	return opErr
}

func replaceTask(list []models.PersonalTask, t models.PersonalTask) []models.PersonalTask {
	next := make([]models.PersonalTask, len(list))
	for i, cur := range list {
		if cur.ID == t.ID {
			next[i] = t
		} else {
			next[i] = cur
		}
	}
	return next
}
