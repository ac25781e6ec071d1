package repo

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	dom "Clientes/internal/domain"

	"github.com/google/uuid"
)

var errNegativeSkip = errors.New("skip must be non-negative")

// MemoryClienteRepo keeps records in process memory, in insertion order.
// Used for local runs (STORE_DRIVER=memory) and tests.
type MemoryClienteRepo struct {
	mu    sync.RWMutex
	items []dom.Cliente
	byDNI map[string]int
}

func NewMemoryClienteRepo() *MemoryClienteRepo {
	return &MemoryClienteRepo{byDNI: make(map[string]int)}
}

func (r *MemoryClienteRepo) FindMany(ctx context.Context, f Filter, skip, limit int64) ([]dom.Cliente, error) {
	if skip < 0 {
		return nil, storeErr("find", errNegativeSkip)
	}
	limit = normalizeLimit(limit)

	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]dom.Cliente, 0)
	var seen int64
	for _, c := range r.items {
		if !MatchFilter(c, f) {
			continue
		}
		seen++
		if seen <= skip {
			continue
		}
		list = append(list, c)
		if limit > 0 && int64(len(list)) >= limit {
			break
		}
	}
	return list, nil
}

func (r *MemoryClienteRepo) FindOne(ctx context.Context, f Filter) (dom.Cliente, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.items {
		if MatchFilter(c, f) {
			return c, true, nil
		}
	}
	return dom.Cliente{}, false, nil
}

func (r *MemoryClienteRepo) Insert(ctx context.Context, c dom.Cliente) (dom.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byDNI[c.DNI]; ok {
		return dom.Cliente{}, ErrDuplicateKey
	}
	c.ID = uuid.NewString()
	c.DeletedAt = nil
	r.byDNI[c.DNI] = len(r.items)
	r.items = append(r.items, c)
	return c, nil
}

func (r *MemoryClienteRepo) UpdateFields(ctx context.Context, dni string, fields dom.Patch) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byDNI[dni]
	if !ok {
		return 0, nil
	}
	if newDNI, ok := fields.DNI(); ok && newDNI != dni {
		if _, taken := r.byDNI[newDNI]; taken {
			return 0, ErrDuplicateKey
		}
		delete(r.byDNI, dni)
		r.byDNI[newDNI] = i
	}
	r.items[i] = fields.Apply(r.items[i])
	return 1, nil
}

func (r *MemoryClienteRepo) SetDeletedAt(ctx context.Context, dni string, at *time.Time) (UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byDNI[dni]
	if !ok {
		return UpdateResult{}, nil
	}
	cur := r.items[i].DeletedAt
	if sameTime(cur, at) {
		return UpdateResult{Matched: 1}, nil
	}
	if at != nil {
		t := *at
		at = &t
	}
	r.items[i].DeletedAt = at
	return UpdateResult{Matched: 1, Modified: 1}, nil
}

func (r *MemoryClienteRepo) Ping(ctx context.Context) error { return nil }

func (r *MemoryClienteRepo) Close(ctx context.Context) error { return nil }

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// MatchFilter evaluates f against a record.
func MatchFilter(c dom.Cliente, f Filter) bool {
	for _, cond := range f.All {
		if !matchCond(c, cond) {
			return false
		}
	}
	if len(f.Any) == 0 {
		return true
	}
	for _, cond := range f.Any {
		if matchCond(c, cond) {
			return true
		}
	}
	return false
}

func matchCond(c dom.Cliente, cond Cond) bool {
	v, present := fieldValue(c, cond.Field)
	switch cond.Op {
	case OpIsNull:
		return !present || v == nil
	case OpContainsFold:
		s, ok := v.(string)
		return ok && strings.Contains(strings.ToLower(s), strings.ToLower(cond.Value))
	default:
		s, ok := v.(string)
		return ok && s == cond.Value
	}
}

func fieldValue(c dom.Cliente, field string) (any, bool) {
	switch field {
	case dom.FieldID:
		return c.ID, true
	case dom.FieldDNI:
		return c.DNI, true
	case dom.FieldName:
		return c.Name, c.Has(field)
	case dom.FieldLastname:
		return c.Lastname, c.Has(field)
	case dom.FieldCUIT:
		return c.CUIT, c.Has(field)
	case dom.FieldCreatedAt:
		return c.CreatedAt, true
	case dom.FieldDeletedAt:
		if c.DeletedAt == nil {
			return nil, false
		}
		return *c.DeletedAt, true
	}
	v, ok := c.Extra[field]
	return v, ok
}
