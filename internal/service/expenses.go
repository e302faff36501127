// internal/service/expenses.go
package service

import (
	"fmt"

	"github.com/DadosMB/crm-infra/internal/access"
	"github.com/DadosMB/crm-infra/internal/models"
	"github.com/DadosMB/crm-infra/internal/store"
)

// AddExpense records a financial line item and emits a finance
// notification. New expenses go to the head of the list.
func (s *Service) AddExpense(actor *models.User, e models.Expense) (models.Expense, error) {
	if err := canWrite(actor); err != nil {
		return models.Expense{}, err
	}
	if e.Item == "" {
		return models.Expense{}, validationErr("item is required")
	}
	if e.Category == "" {
		e.Category = models.CategoryOutros
	}
	if e.Date.IsZero() {
		e.Date = s.now()
	}

	s.st.Update(func(d *store.Data) {
		e.ID = d.NextExpenseID()
		next := make([]models.Expense, 0, len(d.Expenses)+1)
		next = append(next, e)
		next = append(next, d.Expenses...)
		d.Expenses = next
	})

	s.emitter.Emit(models.NotifFinance, "Novo Gasto Registrado",
		fmt.Sprintf("R$ %.2f em %s por %s.", e.Value, e.Category, actor.Name),
		e.ID, actor.Initials)
	return e, nil
}

// UpdateExpense replaces an existing expense. Non-admins may only touch
// expenses already visible to them (linked to an order they own).
func (s *Service) UpdateExpense(actor *models.User, e models.Expense) (models.Expense, error) {
	if err := canWrite(actor); err != nil {
		return models.Expense{}, err
	}

	var opErr error
	s.st.Update(func(d *store.Data) {
		cur, ok := d.ExpenseByID(e.ID)
		if !ok {
			opErr = models.ErrNotFound
			return
		}
		if !s.expenseVisible(d, cur, actor) {
			opErr = models.ErrPermission
			return
		}
		d.Expenses = replaceExpense(d.Expenses, e)
	})
	if opErr != nil {
		return models.Expense{}, opErr
	}
	return e, nil
}

// BatchUpdateExpenses applies several updates in one store transition
// (payment schedule edits arrive as a batch). Unknown ids are skipped.
func (s *Service) BatchUpdateExpenses(actor *models.User, updates []models.Expense) error {
	if err := canWrite(actor); err != nil {
		return err
	}

	var opErr error
	s.st.Update(func(d *store.Data) {
		next := make([]models.Expense, len(d.Expenses))
		copy(next, d.Expenses)
		for _, upd := range updates {
			for i, cur := range next {
				if cur.ID != upd.ID {
					continue
				}
				if !s.expenseVisible(d, cur, actor) {
					opErr = models.ErrPermission
					return
				}
				next[i] = upd
				break
			}
		}
		d.Expenses = next
	})
	return opErr
}

// DeleteExpense removes an expense. Admin-only; no state changes on
// rejection.
func (s *Service) DeleteExpense(actor *models.User, id string) error {
	if err := canWrite(actor); err != nil {
		return err
	}
	if !actor.IsAdmin {
		return fmt.Errorf("%w: only admins can delete expenses", models.ErrPermission)
	}

	var opErr error
	s.st.Update(func(d *store.Data) {
		next := make([]models.Expense, 0, len(d.Expenses))
		found := false
		for _, e := range d.Expenses {
			if e.ID == id {
				found = true
				continue
			}
			next = append(next, e)
		}
		if !found {
			opErr = models.ErrNotFound
			return
		}
		d.Expenses = next
	})
	return opErr
}

func (s *Service) expenseVisible(d *store.Data, e models.Expense, actor *models.User) bool {
	if actor.IsAdmin {
		return true
	}
	vis := access.VisibleExpenses([]models.Expense{e}, access.VisibleOrders(d.Orders, actor), actor)
	return len(vis) == 1
}

func replaceExpense(expenses []models.Expense, e models.Expense) []models.Expense {
	next := make([]models.Expense, len(expenses))
	for i, cur := range expenses {
		if cur.ID == e.ID {
			next[i] = e
		} else {
			next[i] = cur
		}
	}
	return next
}
