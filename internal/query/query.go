// Package query turns list/search request parameters into repo filters.
package query

import (
	"math"

	dom "Clientes/internal/domain"
	"Clientes/internal/repo"
	"Clientes/internal/utils"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListParams are the list endpoint parameters after integer coercion.
type ListParams struct {
	Search string
	Page   int
	Limit  int
}

// ParseListParams coerces raw query values. Non-numeric page/limit fall back
// to the defaults; zero and negative numbers are kept.
func ParseListParams(search, page, limit string) ListParams {
	return ListParams{
		Search: search,
		Page:   utils.ParseIntOr(page, DefaultPage),
		Limit:  utils.ParseIntOr(limit, DefaultLimit),
	}
}

// Skip is (page-1)*limit. A product that doesn't fit in int64 yields -1,
// which the store rejects like any other negative skip.
func (p ListParams) Skip() int64 {
	page, limit := int64(p.Page), int64(p.Limit)
	if page == math.MinInt64 {
		return -1
	}
	page--
	if page == 0 || limit == 0 {
		return 0
	}
	if (page == -1 && limit == math.MinInt64) || (limit == -1 && page == math.MinInt64) {
		return -1
	}
	n := page * limit
	if n/limit != page {
		return -1
	}
	return n
}

// Filter is the active-records filter, narrowed by Search when set.
func (p ListParams) Filter() repo.Filter {
	f := Active()
	if p.Search == "" {
		return f
	}
	return f.Or(
		repo.ContainsFold(dom.FieldName, p.Search),
		repo.ContainsFold(dom.FieldLastname, p.Search),
		repo.Eq(dom.FieldDNI, p.Search),
		repo.Eq(dom.FieldCUIT, p.Search),
	)
}

// Build returns filter, skip and limit for repo.FindMany.
func (p ListParams) Build() (repo.Filter, int64, int64) {
	return p.Filter(), p.Skip(), int64(p.Limit)
}

// Active matches records that are not soft-deleted.
func Active() repo.Filter {
	return repo.Filter{All: []repo.Cond{repo.IsNull(dom.FieldDeletedAt)}}
}

// DNIContains matches active records whose dni contains dni, ignoring case.
func DNIContains(dni string) repo.Filter {
	return repo.Filter{All: []repo.Cond{
		repo.ContainsFold(dom.FieldDNI, dni),
		repo.IsNull(dom.FieldDeletedAt),
	}}
}

// ByDNI matches the record with the exact dni, deleted or not.
func ByDNI(dni string) repo.Filter {
	return repo.Filter{All: []repo.Cond{repo.Eq(dom.FieldDNI, dni)}}
}

// ActiveByDNI matches the record with the exact dni only while it is active.
func ActiveByDNI(dni string) repo.Filter {
	return ByDNI(dni).And(repo.IsNull(dom.FieldDeletedAt))
}
