package repo

// Op is a predicate operator understood by every ClienteRepo backend.
type Op int

const (
	// OpEq matches an exact value.
	OpEq Op = iota
	// OpIsNull matches a null or missing field.
	OpIsNull
	// OpContainsFold matches a case-insensitive substring, taken literally.
	OpContainsFold
)

func (o Op) String() string {
	switch o {
	case OpEq:
		return "eq"
	case OpIsNull:
		return "isnull"
	case OpContainsFold:
		return "containsfold"
	}
	return "unknown"
}

// Cond is a single field predicate.
type Cond struct {
	Field string
	Op    Op
	Value string
}

// Eq matches field == v.
func Eq(field, v string) Cond { return Cond{Field: field, Op: OpEq, Value: v} }

// IsNull matches field == null.
func IsNull(field string) Cond { return Cond{Field: field, Op: OpIsNull} }

// ContainsFold matches field containing v, ignoring case.
func ContainsFold(field, v string) Cond { return Cond{Field: field, Op: OpContainsFold, Value: v} }

// Filter selects records: every All condition and, when Any is non-empty,
// at least one Any condition must hold. The zero Filter matches everything.
type Filter struct {
	All []Cond
	Any []Cond
}

// And returns a copy of f with extra required conditions.
func (f Filter) And(conds ...Cond) Filter {
	out := Filter{
		All: append(append([]Cond(nil), f.All...), conds...),
		Any: append([]Cond(nil), f.Any...),
	}
	return out
}

// Or returns a copy of f with extra alternative conditions.
func (f Filter) Or(conds ...Cond) Filter {
	out := Filter{
		All: append([]Cond(nil), f.All...),
		Any: append(append([]Cond(nil), f.Any...), conds...),
	}
	return out
}
