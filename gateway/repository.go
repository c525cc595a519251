package gateway

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alovak/nts-userdata/gateway/models"
	"github.com/jackc/pgconn"
	"github.com/lib/pq"
)

var ErrNotFound = fmt.Errorf("not found")

var ErrConflict = fmt.Errorf("conflict")

const schema = `
	CREATE SCHEMA IF NOT EXISTS nts;
	CREATE TABLE IF NOT EXISTS nts.user_data_references (
		reference_id          uuid PRIMARY KEY,
		original_message_code text NOT NULL,
		user_data_tags        jsonb NOT NULL DEFAULT '{}'::jsonb,
		created_at            timestamptz NOT NULL DEFAULT now()
	);
`

// Repository keeps the references of prior host responses. It is backed by
// memory unless it was built with NewPGRepository.
type Repository struct {
	References []*models.Reference

	mu    sync.RWMutex
	index map[string]*models.Reference
	db    *sql.DB
}

func NewRepository() *Repository {
	return &Repository{
		References: make([]*models.Reference, 0),
		index:      make(map[string]*models.Reference),
	}
}

// NewPGRepository constructs a db-backed repository.
func NewPGRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the reference table when it does not exist yet.
func (r *Repository) Migrate(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

func (r *Repository) CreateReference(ctx context.Context, ref *models.Reference) error {
	if r.db == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		if _, ok := r.index[ref.ID]; ok {
			return fmt.Errorf("reference %s exists: %w", ref.ID, ErrConflict)
		}
		r.References = append(r.References, ref)
		r.index[ref.ID] = ref
		return nil
	}

	tags, err := json.Marshal(ref.UserDataTags)
	if err != nil {
		return fmt.Errorf("encoding user data tags: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO nts.user_data_references(reference_id, original_message_code, user_data_tags, created_at)
		VALUES ($1,$2,$3,$4)
	`, ref.ID, ref.OriginalMessageCode, tags, ref.CreatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (r *Repository) GetReference(ctx context.Context, id string) (*models.Reference, error) {
	if r.db == nil {
		r.mu.RLock()
		defer r.mu.RUnlock()
		ref, ok := r.index[id]
		if !ok {
			return nil, ErrNotFound
		}
		return ref, nil
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT reference_id, original_message_code, user_data_tags, created_at
		  FROM nts.user_data_references WHERE reference_id=$1
	`, id)
	var (
		ref  models.Reference
		tags []byte
		at   time.Time
	)
	if err := row.Scan(&ref.ID, &ref.OriginalMessageCode, &tags, &at); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		var pe *pq.Error
		// 22P02: the id is not a valid uuid, so no row can match it
		if errors.As(err, &pe) && pe.Code == "22P02" {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(tags, &ref.UserDataTags); err != nil {
		return nil, fmt.Errorf("decoding user data tags: %w", err)
	}
	ref.CreatedAt = at.UTC()
	return &ref, nil
}

// Ping returns DB readiness
func (r *Repository) Ping(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	return r.db.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	var pe *pq.Error
	if errors.As(err, &pe) && pe.Code == "23505" {
		return true
	}
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) && pgerr.Code == "23505" {
		return true
	}
	return false
}
