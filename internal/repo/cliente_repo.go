package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dom "Clientes/internal/domain"
)

//go:generate mockgen -source=cliente_repo.go -destination=mocks/cliente_repo_mock.go -package=mocks

// ErrDuplicateKey is returned when the store rejects a write on the dni unique index.
var ErrDuplicateKey = errors.New("duplicate dni")

// StoreError wraps a failure reaching or querying the backing store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store %s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// UpdateResult reports how many records matched and changed.
type UpdateResult struct {
	Matched  int64
	Modified int64
}

// ClienteRepo is the gateway to the single clientes collection.
// Every method is a single-document (or single-query) round trip.
type ClienteRepo interface {
	FindMany(ctx context.Context, f Filter, skip, limit int64) ([]dom.Cliente, error)
	// FindOne returns false when nothing matches.
	FindOne(ctx context.Context, f Filter) (dom.Cliente, bool, error)
	Insert(ctx context.Context, c dom.Cliente) (dom.Cliente, error)
	// UpdateFields merges fields into the record with the given dni and returns the matched count.
	UpdateFields(ctx context.Context, dni string, fields dom.Patch) (int64, error)
	SetDeletedAt(ctx context.Context, dni string, at *time.Time) (UpdateResult, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// normalizeLimit maps a caller limit onto "0 = no limit, negative = absolute value".
func normalizeLimit(limit int64) int64 {
	if limit < 0 {
		return -limit
	}
	return limit
}
