package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DadosMB/crm-infra/internal/models"
)

func TestNextOrderID(t *testing.T) {
	s := New()
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	var first, second string
	s.Update(func(d *Data) { first = d.NextOrderID(now) })
	s.Update(func(d *Data) { second = d.NextOrderID(now) })

	assert.Equal(t, "OS-25001", first)
	assert.Equal(t, "OS-25002", second)
}

func TestNextExpenseID(t *testing.T) {
	s := New()
	var first, second string
	s.Update(func(d *Data) { first = d.NextExpenseID() })
	s.Update(func(d *Data) { second = d.NextExpenseID() })

	assert.Equal(t, "FIN-001", first)
	assert.Equal(t, "FIN-002", second)
}

func TestNewSeedsDefaultCategories(t *testing.T) {
	s := New()
	s.View(func(d Data) {
		assert.Equal(t, models.DefaultAssetCategories(), d.Categories)
	})
}

func TestLoadDefaultsCategories(t *testing.T) {
	s := New()
	s.Load(Data{Orders: []models.ServiceOrder{{ID: "OS-25001"}}})
	s.View(func(d Data) {
		require.Len(t, d.Orders, 1)
		assert.NotEmpty(t, d.Categories)
	})
}

func TestOnChangeFiresAfterUpdate(t *testing.T) {
	s := New()
	var got []Data
	var revs []uint64
	s.OnChange(func(rev uint64, d Data) {
		revs = append(revs, rev)
		got = append(got, d)
	})

	s.Update(func(d *Data) {
		d.Orders = []models.ServiceOrder{{ID: "OS-25001"}}
	})
	s.Update(func(d *Data) {
		d.Orders = append([]models.ServiceOrder{{ID: "OS-25002"}}, d.Orders...)
	})

	require.Len(t, got, 2)
	assert.Len(t, got[0].Orders, 1)
	assert.Len(t, got[1].Orders, 2)
	// revisions increase with every committed update
	assert.Equal(t, []uint64{1, 2}, revs)
}

func TestOnChangeNotFiredByLoad(t *testing.T) {
	s := New()
	fired := false
	s.OnChange(func(uint64, Data) { fired = true })

	s.Load(Data{})
	assert.False(t, fired)
}

func TestLookupHelpers(t *testing.T) {
	s := New()
	s.Load(Data{
		Orders: []models.ServiceOrder{{ID: "OS-25001", Title: "Troca de lâmpada"}},
		Users:  []models.User{{ID: "usr-1", Username: "joao"}},
		Assets: []models.Asset{{ID: "ast-1", AssetTag: "PAT-001"}},
	})

	s.View(func(d Data) {
		o, ok := d.OrderByID("OS-25001")
		require.True(t, ok)
		assert.Equal(t, "Troca de lâmpada", o.Title)

		_, ok = d.OrderByID("OS-99999")
		assert.False(t, ok)

		u, ok := d.UserByUsername("joao")
		require.True(t, ok)
		assert.Equal(t, "usr-1", u.ID)

		a, ok := d.AssetByID("ast-1")
		require.True(t, ok)
		assert.Equal(t, "PAT-001", a.AssetTag)
	})
}

func TestConcurrentUpdates(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update(func(d *Data) { d.OrderSeq++ })
		}()
	}
	wg.Wait()

	s.View(func(d Data) { assert.Equal(t, 50, d.OrderSeq) })
}
