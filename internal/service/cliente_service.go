package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	dom "Clientes/internal/domain"
	"Clientes/internal/metrics"
	"Clientes/internal/query"
	"Clientes/internal/repo"
)

var (
	ErrNotFound           = errors.New("cliente not found")
	ErrDuplicateKey       = errors.New("dni already registered")
	ErrAlreadyActive      = errors.New("cliente is already active")
	ErrReactivationFailed = errors.New("cliente could not be reactivated")
	ErrValidation         = errors.New("invalid input")
)

// ClienteService enforces the dni uniqueness and soft-delete rules on top of a ClienteRepo.
// Store failures (*repo.StoreError) are returned unchanged.
type ClienteService struct {
	repo    repo.ClienteRepo
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures a ClienteService.
type Option func(*ClienteService)

// WithClock replaces time.Now for createdAt/deletedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *ClienteService) { s.now = now }
}

// NewClienteService creates a ClienteService. If m is nil, metrics are disabled.
func NewClienteService(r repo.ClienteRepo, m *metrics.Metrics, opts ...Option) *ClienteService {
	s := &ClienteService{repo: r, metrics: m, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates fields, rejects a dni already used by any record (deleted
// ones included) and inserts a new active record.
func (s *ClienteService) Create(ctx context.Context, fields map[string]any) (dom.Cliente, error) {
	c, err := dom.NewCliente(fields)
	if err != nil {
		s.metrics.Reject("create", "validation")
		return dom.Cliente{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if _, found, err := s.findOne(ctx, query.ByDNI(c.DNI)); err != nil {
		return dom.Cliente{}, err
	} else if found {
		s.metrics.Reject("create", "duplicate_key")
		return dom.Cliente{}, ErrDuplicateKey
	}

	c.CreatedAt = s.stamp()
	c.DeletedAt = nil

	start := time.Now()
	out, err := s.repo.Insert(ctx, c)
	s.metrics.ObserveStore("insert", start)
	if err != nil {
		// Unique index caught a concurrent create that passed the lookup.
		if errors.Is(err, repo.ErrDuplicateKey) {
			s.metrics.Reject("create", "duplicate_key")
			return dom.Cliente{}, ErrDuplicateKey
		}
		return dom.Cliente{}, err
	}
	s.metrics.IncCreated()
	return out, nil
}

// Update merges fields into the record keyed by dni. Changing the dni to one
// held by another record is rejected.
func (s *ClienteService) Update(ctx context.Context, dni string, fields map[string]any) error {
	patch, err := dom.NewPatch(fields)
	if err != nil {
		s.metrics.Reject("update", "validation")
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if newDNI, ok := patch.DNI(); ok && newDNI != dni {
		if _, found, err := s.findOne(ctx, query.ByDNI(newDNI)); err != nil {
			return err
		} else if found {
			s.metrics.Reject("update", "duplicate_key")
			return ErrDuplicateKey
		}
	}

	start := time.Now()
	matched, err := s.repo.UpdateFields(ctx, dni, patch)
	s.metrics.ObserveStore("update", start)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) {
			s.metrics.Reject("update", "duplicate_key")
			return ErrDuplicateKey
		}
		return err
	}
	if matched == 0 {
		s.metrics.Reject("update", "not_found")
		return ErrNotFound
	}
	s.metrics.IncUpdated()
	return nil
}

// Delete stamps deletedAt. Deleting an already deleted record moves the stamp forward.
func (s *ClienteService) Delete(ctx context.Context, dni string) error {
	at := s.stamp()
	res, err := s.setDeletedAt(ctx, dni, &at)
	if err != nil {
		return err
	}
	if res.Matched == 0 {
		s.metrics.Reject("delete", "not_found")
		return ErrNotFound
	}
	s.metrics.IncDeleted()
	return nil
}

// Reactivate clears deletedAt on a soft-deleted record.
func (s *ClienteService) Reactivate(ctx context.Context, dni string) error {
	c, found, err := s.findOne(ctx, query.ByDNI(dni))
	if err != nil {
		return err
	}
	if !found {
		s.metrics.Reject("reactivate", "not_found")
		return ErrNotFound
	}
	if c.Active() {
		s.metrics.Reject("reactivate", "already_active")
		return ErrAlreadyActive
	}

	res, err := s.setDeletedAt(ctx, dni, nil)
	if err != nil {
		return err
	}
	if res.Modified == 0 {
		s.metrics.Reject("reactivate", "inconsistent")
		return ErrReactivationFailed
	}
	s.metrics.IncReactivated()
	return nil
}

// Get returns the active record with the exact dni.
func (s *ClienteService) Get(ctx context.Context, dni string) (dom.Cliente, error) {
	c, found, err := s.findOne(ctx, query.ActiveByDNI(dni))
	if err != nil {
		return dom.Cliente{}, err
	}
	if !found {
		return dom.Cliente{}, ErrNotFound
	}
	return c, nil
}

// List returns active records, optionally narrowed by a free-text search.
func (s *ClienteService) List(ctx context.Context, p query.ListParams) ([]dom.Cliente, error) {
	f, skip, limit := p.Build()
	return s.findMany(ctx, f, skip, limit)
}

// SearchByDNI returns active records whose dni contains the given fragment.
// An empty result is reported as ErrNotFound.
func (s *ClienteService) SearchByDNI(ctx context.Context, dni string) ([]dom.Cliente, error) {
	dni = strings.TrimSpace(dni)
	if dni == "" {
		return nil, fmt.Errorf("%w: dni is required", ErrValidation)
	}
	list, err := s.findMany(ctx, query.DNIContains(dni), 0, 0)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return list, nil
}

// stamp truncates to milliseconds, the coarsest precision among the stores.
func (s *ClienteService) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *ClienteService) findOne(ctx context.Context, f repo.Filter) (dom.Cliente, bool, error) {
	start := time.Now()
	defer s.metrics.ObserveStore("find_one", start)
	return s.repo.FindOne(ctx, f)
}

func (s *ClienteService) findMany(ctx context.Context, f repo.Filter, skip, limit int64) ([]dom.Cliente, error) {
	start := time.Now()
	defer s.metrics.ObserveStore("find", start)
	return s.repo.FindMany(ctx, f, skip, limit)
}

func (s *ClienteService) setDeletedAt(ctx context.Context, dni string, at *time.Time) (repo.UpdateResult, error) {
	start := time.Now()
	defer s.metrics.ObserveStore("set_deleted_at", start)
	return s.repo.SetDeletedAt(ctx, dni, at)
}
