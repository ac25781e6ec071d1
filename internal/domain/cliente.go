package domain

import (
	"fmt"
	"strings"
	"time"
)

// Document field names shared by every store backend and the JSON API.
const (
	FieldID        = "_id"
	FieldDNI       = "dni"
	FieldName      = "name"
	FieldLastname  = "lastname"
	FieldCUIT      = "cuit"
	FieldCreatedAt = "createdAt"
	FieldDeletedAt = "deletedAt"
)

// Domain entity: a customer record keyed by DNI.
// Does not depend on Gin, Mongo or Postgres.
type Cliente struct {
	ID       string
	DNI      string
	Name     string
	Lastname string
	CUIT     string

	CreatedAt time.Time
	DeletedAt *time.Time

	// Extra holds caller-supplied fields outside the typed set, stored as-is.
	Extra map[string]any

	// blank marks optional typed fields explicitly set to "". An optional
	// field that is empty and not marked was never supplied.
	blank map[string]bool
}

// Active reports whether the record has not been soft-deleted.
func (c Cliente) Active() bool { return c.DeletedAt == nil }

// IsReserved reports whether a field is owned by the store or the lifecycle
// and can't be set through a general update.
func IsReserved(field string) bool {
	switch field {
	case FieldID, FieldCreatedAt, FieldDeletedAt:
		return true
	}
	return false
}

func isTyped(field string) bool {
	switch field {
	case FieldDNI, FieldName, FieldLastname, FieldCUIT:
		return true
	}
	return false
}

// CheckFieldName rejects keys a document store would read as operators or paths.
func CheckFieldName(field string) error {
	if field == "" {
		return fmt.Errorf("empty field name")
	}
	if strings.HasPrefix(field, "$") || strings.Contains(field, ".") {
		return fmt.Errorf("invalid field name %q", field)
	}
	return nil
}

// NewCliente builds a record from caller fields. Reserved fields are dropped;
// the typed fields must be strings.
func NewCliente(fields map[string]any) (Cliente, error) {
	var c Cliente
	for k, v := range fields {
		if err := CheckFieldName(k); err != nil {
			return Cliente{}, err
		}
		if IsReserved(k) {
			continue
		}
		if !isTyped(k) {
			if c.Extra == nil {
				c.Extra = make(map[string]any)
			}
			c.Extra[k] = v
			continue
		}
		s, ok := v.(string)
		if !ok {
			return Cliente{}, fmt.Errorf("%s must be a string", k)
		}
		c.set(k, s)
	}
	if strings.TrimSpace(c.DNI) == "" {
		return Cliente{}, fmt.Errorf("dni is required")
	}
	return c, nil
}

func (c *Cliente) set(field, v string) {
	if field != FieldDNI {
		c.markBlank(field, v == "")
	}
	switch field {
	case FieldDNI:
		c.DNI = v
	case FieldName:
		c.Name = v
	case FieldLastname:
		c.Lastname = v
	case FieldCUIT:
		c.CUIT = v
	}
}

func (c *Cliente) markBlank(field string, blank bool) {
	if blank {
		if c.blank == nil {
			c.blank = make(map[string]bool)
		}
		c.blank[field] = true
		return
	}
	delete(c.blank, field)
	if len(c.blank) == 0 {
		c.blank = nil
	}
}

// Has reports whether a typed field carries a value, an explicit "" included.
// dni is always present.
func (c Cliente) Has(field string) bool {
	switch field {
	case FieldDNI:
		return true
	case FieldName:
		return c.Name != "" || c.blank[field]
	case FieldLastname:
		return c.Lastname != "" || c.blank[field]
	case FieldCUIT:
		return c.CUIT != "" || c.blank[field]
	}
	return false
}

// Patch is a partial field update keyed by document field name.
type Patch map[string]any

// NewPatch validates caller fields for a general update.
func NewPatch(fields map[string]any) (Patch, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	p := make(Patch, len(fields))
	for k, v := range fields {
		if err := CheckFieldName(k); err != nil {
			return nil, err
		}
		if IsReserved(k) {
			return nil, fmt.Errorf("field %q cannot be updated", k)
		}
		if isTyped(k) {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%s must be a string", k)
			}
			if k == FieldDNI && strings.TrimSpace(s) == "" {
				return nil, fmt.Errorf("dni cannot be empty")
			}
		}
		p[k] = v
	}
	return p, nil
}

// DNI returns the new natural key carried by the patch, if any.
func (p Patch) DNI() (string, bool) {
	v, ok := p[FieldDNI]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Apply merges the patch into c, as a store-side $set would.
func (p Patch) Apply(c Cliente) Cliente {
	out := c
	out.blank = nil
	for k := range c.blank {
		out.markBlank(k, true)
	}
	out.Extra = make(map[string]any, len(c.Extra)+len(p))
	for k, v := range c.Extra {
		out.Extra[k] = v
	}
	for k, v := range p {
		if isTyped(k) {
			s, _ := v.(string)
			out.set(k, s)
			continue
		}
		out.Extra[k] = v
	}
	if len(out.Extra) == 0 {
		out.Extra = nil
	}
	return out
}

// Document flattens the record into a field map without _id.
// Typed fields take precedence over Extra keys of the same name; optional
// ones are written only when present.
func (c Cliente) Document() map[string]any {
	doc := make(map[string]any, len(c.Extra)+6)
	for k, v := range c.Extra {
		doc[k] = v
	}
	doc[FieldDNI] = c.DNI
	c.putOptional(doc)
	doc[FieldCreatedAt] = c.CreatedAt
	if c.DeletedAt != nil {
		doc[FieldDeletedAt] = *c.DeletedAt
	} else {
		doc[FieldDeletedAt] = nil
	}
	return doc
}

// putOptional writes name, lastname and cuit when present.
func (c Cliente) putOptional(m map[string]any) {
	for _, f := range [...]string{FieldName, FieldLastname, FieldCUIT} {
		if !c.Has(f) {
			continue
		}
		switch f {
		case FieldName:
			m[f] = c.Name
		case FieldLastname:
			m[f] = c.Lastname
		case FieldCUIT:
			m[f] = c.CUIT
		}
	}
}

// Fields is Document plus _id.
func (c Cliente) Fields() map[string]any {
	out := c.Document()
	out[FieldID] = c.ID
	return out
}

// FromDocument is the inverse of Document for decoded store documents.
// Time fields must already be converted to time.Time by the caller.
func FromDocument(id string, doc map[string]any) Cliente {
	c := Cliente{ID: id}
	for k, v := range doc {
		switch k {
		case FieldID:
		case FieldCreatedAt:
			if t, ok := v.(time.Time); ok {
				c.CreatedAt = t
			}
		case FieldDeletedAt:
			if t, ok := v.(time.Time); ok {
				c.DeletedAt = &t
			}
		case FieldDNI, FieldName, FieldLastname, FieldCUIT:
			if s, ok := v.(string); ok {
				c.set(k, s)
			}
		default:
			if c.Extra == nil {
				c.Extra = make(map[string]any)
			}
			c.Extra[k] = v
		}
	}
	return c
}
