package repo

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	dom "Clientes/internal/domain"
	"Clientes/internal/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgSelectCols = `id::text, dni, doc, created_at, deleted_at`

// PGClienteRepo implements ClienteRepo with Postgres, keeping each record as a
// JSONB document next to the dni and lifecycle columns.
type PGClienteRepo struct {
	db *pgxpool.Pool
}

func NewPGClienteRepo(db *pgxpool.Pool) *PGClienteRepo {
	return &PGClienteRepo{db: db}
}

func (r *PGClienteRepo) FindMany(ctx context.Context, f Filter, skip, limit int64) ([]dom.Cliente, error) {
	where, args := PGWhere(f)
	var sb strings.Builder
	sb.WriteString(`SELECT ` + pgSelectCols + ` FROM clientes`)
	if where != "" {
		sb.WriteString(" WHERE " + where)
	}
	// seq keeps insertion order, matching the other stores.
	sb.WriteString(" ORDER BY seq")
	args = append(args, skip)
	sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))
	if l := normalizeLimit(limit); l > 0 {
		args = append(args, l)
		sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, storeErr("find", err)
	}
	defer rows.Close()
	list := make([]dom.Cliente, 0)
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, storeErr("find", err)
		}
		list = append(list, c)
	}
	return list, storeErr("find", rows.Err())
}

func (r *PGClienteRepo) FindOne(ctx context.Context, f Filter) (dom.Cliente, bool, error) {
	where, args := PGWhere(f)
	query := `SELECT ` + pgSelectCols + ` FROM clientes`
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY seq LIMIT 1"
	c, err := scanCliente(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.Cliente{}, false, nil
	}
	if err != nil {
		return dom.Cliente{}, false, storeErr("find one", err)
	}
	return c, true, nil
}

func (r *PGClienteRepo) Insert(ctx context.Context, c dom.Cliente) (dom.Cliente, error) {
	c.ID = uuid.NewString()
	c.DeletedAt = nil
	_, err := r.db.Exec(ctx,
		`INSERT INTO clientes (id, dni, doc, created_at, deleted_at) VALUES ($1, $2, $3, $4, NULL)`,
		c.ID, c.DNI, pgDoc(c.Document()), c.CreatedAt,
	)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.Cliente{}, ErrDuplicateKey
		}
		return dom.Cliente{}, storeErr("insert", err)
	}
	return c, nil
}

func (r *PGClienteRepo) UpdateFields(ctx context.Context, dni string, fields dom.Patch) (int64, error) {
	var newDNI *string
	if v, ok := fields.DNI(); ok {
		newDNI = &v
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE clientes SET doc = doc || $2::jsonb, dni = COALESCE($3, dni) WHERE dni = $1`,
		dni, pgDoc(fields), newDNI,
	)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return 0, ErrDuplicateKey
		}
		return 0, storeErr("update", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PGClienteRepo) SetDeletedAt(ctx context.Context, dni string, at *time.Time) (UpdateResult, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE clientes SET deleted_at = $2 WHERE dni = $1 AND deleted_at IS DISTINCT FROM $2`,
		dni, at,
	)
	if err != nil {
		return UpdateResult{}, storeErr("set deletedAt", err)
	}
	if n := tag.RowsAffected(); n > 0 {
		return UpdateResult{Matched: n, Modified: n}, nil
	}
	// Nothing changed: either no such dni or the value was already set.
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM clientes WHERE dni = $1)`, dni).Scan(&exists); err != nil {
		return UpdateResult{}, storeErr("set deletedAt", err)
	}
	if exists {
		return UpdateResult{Matched: 1}, nil
	}
	return UpdateResult{}, nil
}

func (r *PGClienteRepo) Ping(ctx context.Context) error {
	return storeErr("ping", r.db.Ping(ctx))
}

func (r *PGClienteRepo) Close(ctx context.Context) error {
	r.db.Close()
	return nil
}

// pgDoc strips the fields that live in dedicated columns.
func pgDoc(fields map[string]any) map[string]any {
	doc := make(map[string]any, len(fields))
	for k, v := range fields {
		switch k {
		case dom.FieldID, dom.FieldDNI, dom.FieldCreatedAt, dom.FieldDeletedAt:
			continue
		}
		doc[k] = v
	}
	return doc
}

func scanCliente(row pgx.Row) (dom.Cliente, error) {
	var (
		id, dni   string
		doc       map[string]any
		createdAt time.Time
		deletedAt *time.Time
	)
	if err := row.Scan(&id, &dni, &doc, &createdAt, &deletedAt); err != nil {
		return dom.Cliente{}, err
	}
	c := dom.FromDocument(id, doc)
	c.DNI = dni
	c.CreatedAt = createdAt.UTC()
	if deletedAt != nil {
		t := deletedAt.UTC()
		c.DeletedAt = &t
	}
	return c, nil
}

// PGWhere translates a Filter into a parameterized WHERE clause (without the keyword).
func PGWhere(f Filter) (string, []any) {
	w := &pgWhere{}
	var parts []string
	for _, c := range f.All {
		parts = append(parts, w.cond(c))
	}
	if len(f.Any) > 0 {
		ors := make([]string, 0, len(f.Any))
		for _, c := range f.Any {
			ors = append(ors, w.cond(c))
		}
		parts = append(parts, "("+strings.Join(ors, " OR ")+")")
	}
	return strings.Join(parts, " AND "), w.args
}

type pgWhere struct {
	args []any
}

func (w *pgWhere) arg(v any) string {
	w.args = append(w.args, v)
	return "$" + strconv.Itoa(len(w.args))
}

func (w *pgWhere) column(field string) string {
	switch field {
	case dom.FieldID:
		return "id::text"
	case dom.FieldDNI:
		return "dni"
	case dom.FieldCreatedAt:
		return "created_at"
	case dom.FieldDeletedAt:
		return "deleted_at"
	}
	return "doc->>" + w.arg(field) + "::text"
}

func (w *pgWhere) cond(c Cond) string {
	col := w.column(c.Field)
	switch c.Op {
	case OpIsNull:
		return col + " IS NULL"
	case OpContainsFold:
		return col + " ILIKE " + w.arg("%"+utils.EscapeLike(c.Value)+"%")
	default:
		return col + " = " + w.arg(c.Value)
	}
}
