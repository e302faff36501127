// internal/store/store.go
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/DadosMB/crm-infra/internal/models"
)

// Data holds every collection the application works over. Mutation happens
// only inside Store.Update, and always by replacing a collection with a new
// slice. Readers therefore always observe a consistent snapshot: a slice
// handed out by View is never written to again.
type Data struct {
	Orders        []models.ServiceOrder      `json:"orders"`
	Expenses      []models.Expense           `json:"expenses"`
	Tasks         []models.PersonalTask      `json:"tasks"`
	Users         []models.User              `json:"users"`
	Suppliers     []models.Supplier          `json:"suppliers"`
	Assets        []models.Asset             `json:"assets"`
	Maintenance   []models.MaintenanceRecord `json:"maintenance"`
	Notifications []models.Notification      `json:"notifications"`
	Categories    []string                   `json:"categories"`

	OrderSeq   int `json:"orderSeq"`
	ExpenseSeq int `json:"expenseSeq"`
}

// Store is the single-writer owner of the application state.
type Store struct {
	mu       sync.RWMutex
	data     Data
	rev      uint64
	onChange func(rev uint64, d Data)
}

func New() *Store {
	return &Store{data: Data{Categories: models.DefaultAssetCategories()}}
}

// OnChange registers a hook invoked (synchronously, outside the lock) with
// the new state after every Update. rev increases with every committed
// update, so a consumer can detect a hook arriving out of order. Used by
// the snapshot persister.
func (s *Store) OnChange(fn func(rev uint64, d Data)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// View runs fn with a read snapshot of the state. fn must not retain and
// mutate slice elements; collections are shared until the next replacement.
func (s *Store) View(fn func(Data)) {
	s.mu.RLock()
	d := s.data
	s.mu.RUnlock()
	fn(d)
}

// Update runs fn with exclusive access. fn replaces collections wholesale
// ("set new slice") rather than splicing shared ones in place.
func (s *Store) Update(fn func(*Data)) {
	s.mu.Lock()
	fn(&s.data)
	s.rev++
	rev := s.rev
	d := s.data
	hook := s.onChange
	s.mu.Unlock()
	if hook != nil {
		hook(rev, d)
	}
}

// Load replaces the entire state, typically from a snapshot or seed file.
// The change hook is not invoked; loading is not a user mutation.
func (s *Store) Load(d Data) {
	if len(d.Categories) == 0 {
		d.Categories = models.DefaultAssetCategories()
	}
	s.mu.Lock()
	s.data = d
	s.mu.Unlock()
}

// NextOrderID allocates the next human-readable order id, e.g. OS-25014.
// The two leading digits are the year, the rest a per-store sequence.
func (d *Data) NextOrderID(now time.Time) string {
	d.OrderSeq++
	return fmt.Sprintf("OS-%02d%03d", now.Year()%100, d.OrderSeq)
}

// NextExpenseID allocates the next expense id, e.g. FIN-017.
func (d *Data) NextExpenseID() string {
	d.ExpenseSeq++
	return fmt.Sprintf("FIN-%03d", d.ExpenseSeq)
}

func (d Data) OrderByID(id string) (models.ServiceOrder, bool) {
	for _, o := range d.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return models.ServiceOrder{}, false
}

func (d Data) ExpenseByID(id string) (models.Expense, bool) {
	for _, e := range d.Expenses {
		if e.ID == id {
			return e, true
		}
	}
	return models.Expense{}, false
}

func (d Data) UserByID(id string) (models.User, bool) {
	for _, u := range d.Users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (d Data) UserByUsername(username string) (models.User, bool) {
	for _, u := range d.Users {
		if u.Username == username {
			return u, true
		}
	}
	return models.User{}, false
}

func (d Data) AssetByID(id string) (models.Asset, bool) {
	for _, a := range d.Assets {
		if a.ID == id {
			return a, true
		}
	}
	return models.Asset{}, false
}

func (d Data) MaintenanceByID(id string) (models.MaintenanceRecord, bool) {
	for _, m := range d.Maintenance {
		if m.ID == id {
			return m, true
		}
	}
	return models.MaintenanceRecord{}, false
}

func (d Data) TaskByID(id string) (models.PersonalTask, bool) {
	for _, t := range d.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.PersonalTask{}, false
}
