// internal/storage/postgres.go
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/DadosMB/crm-infra/internal/store"
)

// Querier covers the pgxpool methods the snapshot store needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const snapshotName = "admincrm"

// Snapshots persists the whole in-memory dataset as a single JSONB row.
// Every store change rewrites the row; on startup the last snapshot is
// loaded back, so restarts keep state without a relational schema.
type Snapshots struct {
	db Querier

	mu       sync.Mutex
	savedRev uint64
}

func NewSnapshots(db Querier) *Snapshots {
	return &Snapshots{db: db}
}

func (s *Snapshots) Init(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS snapshots (
			name text PRIMARY KEY,
			data jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`)
	return err
}

func (s *Snapshots) Save(ctx context.Context, d store.Data) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO snapshots (name, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		snapshotName, raw)
	return err
}

// Load returns the stored dataset, or (zero, false) when no snapshot exists.
func (s *Snapshots) Load(ctx context.Context) (store.Data, bool, error) {
	var raw []byte
	err := s.db.QueryRow(ctx,
		`SELECT data FROM snapshots WHERE name = $1`, snapshotName).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return store.Data{}, false, nil
	}
	if err != nil {
		return store.Data{}, false, err
	}
	var d store.Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return store.Data{}, false, err
	}
	return d, true, nil
}

// Attach wires the snapshot store to the in-memory store. Saves run in a
// goroutine with their own timeout so request handlers never wait on the
// database; SaveRev serializes them and drops stale revisions so a slow
// earlier save can never overwrite a newer one.
func (s *Snapshots) Attach(st *store.Store, log *slog.Logger) {
	st.OnChange(func(rev uint64, d store.Data) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.SaveRev(ctx, rev, d); err != nil {
				log.Error("snapshot save failed", "rev", rev, "error", err)
			}
		}()
	})
}

// SaveRev persists d unless a snapshot with an equal or newer revision has
// already been written. Saves are serialized; the mutex is held across the
// write so the revision check and the row upsert are atomic.
func (s *Snapshots) SaveRev(ctx context.Context, rev uint64, d store.Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rev <= s.savedRev {
		return nil
	}
	if err := s.Save(ctx, d); err != nil {
		return err
	}
	s.savedRev = rev
	return nil
}
