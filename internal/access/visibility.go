// internal/access/visibility.go
package access

import "github.com/DadosMB/crm-infra/internal/models"

// Visibility rules: admins see every record, everyone else sees only what
// they own. Filters subset without reordering; any sort belongs to the
// caller, after filtering. A nil actor (not authenticated) sees nothing.

// VisibleOrders returns the orders the actor may read.
func VisibleOrders(orders []models.ServiceOrder, actor *models.User) []models.ServiceOrder {
	if actor == nil {
		return []models.ServiceOrder{}
	}
	if actor.IsAdmin {
		return orders
	}
	out := make([]models.ServiceOrder, 0, len(orders))
	for _, o := range orders {
		if o.OwnerID == actor.ID {
			out = append(out, o)
		}
	}
	return out
}

// VisibleExpenses returns the expenses the actor may read. Non-admin
// visibility is transitive: an expense is visible only when its LinkedOSID
// resolves to an order already in visibleOrders. An expense with no link
// never matches, so unlinked expenses stay hidden from regular users; that
// is intentional, not an accident of the set lookup.
func VisibleExpenses(expenses []models.Expense, visibleOrders []models.ServiceOrder, actor *models.User) []models.Expense {
	if actor == nil {
		return []models.Expense{}
	}
	if actor.IsAdmin {
		return expenses
	}
	ids := make(map[string]struct{}, len(visibleOrders))
	for _, o := range visibleOrders {
		ids[o.ID] = struct{}{}
	}
	out := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.LinkedOSID == "" {
			continue
		}
		if _, ok := ids[e.LinkedOSID]; ok {
			out = append(out, e)
		}
	}
	return out
}

// VisibleTasks returns the personal tasks the actor may read.
func VisibleTasks(tasks []models.PersonalTask, actor *models.User) []models.PersonalTask {
	if actor == nil {
		return []models.PersonalTask{}
	}
	if actor.IsAdmin {
		return tasks
	}
	out := make([]models.PersonalTask, 0, len(tasks))
	for _, t := range tasks {
		if t.UserID == actor.ID {
			out = append(out, t)
		}
	}
	return out
}

// VisibleNotifications hides finance notifications from non-admins.
func VisibleNotifications(list []models.Notification, actor *models.User) []models.Notification {
	if actor == nil {
		return []models.Notification{}
	}
	if actor.IsAdmin {
		return list
	}
	out := make([]models.Notification, 0, len(list))
	for _, n := range list {
		if n.Type == models.NotifFinance {
			continue
		}
		out = append(out, n)
	}
	return out
}
