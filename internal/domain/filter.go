package domain

// Filter is one node of an Odoo domain expression. Building filters as an
// explicit tree keeps operator precedence intact when conditions are
// combined; the literal prefix grammar is only produced at the serialization
// boundary.
type Filter interface {
	// append writes the node in Odoo's prefix grammar onto dst.
	append(dst []any) []any
}

// Comparison is a single [field, operator, value] term.
type Comparison struct {
	Field string
	Op    string
	Value any
}

func (c Comparison) append(dst []any) []any {
	return append(dst, []any{c.Field, c.Op, c.Value})
}

// Eq builds an exact-match term.
func Eq(field string, value any) Comparison {
	return Comparison{Field: field, Op: "=", Value: value}
}

// ILike builds a case-insensitive partial-match term.
func ILike(field string, value any) Comparison {
	return Comparison{Field: field, Op: "ilike", Value: value}
}

// AndFilter concatenates its terms; conjunction is implicit in the grammar.
type AndFilter struct {
	Terms []Filter
}

func And(terms ...Filter) AndFilter {
	return AndFilter{Terms: terms}
}

func (a AndFilter) append(dst []any) []any {
	for _, term := range a.Terms {
		dst = term.append(dst)
	}
	return dst
}

// OrFilter emits one "|" prefix operator per extra term, so an n-way
// disjunction serializes as n-1 pipes followed by the terms.
type OrFilter struct {
	Terms []Filter
}

func Or(terms ...Filter) OrFilter {
	return OrFilter{Terms: terms}
}

func (o OrFilter) append(dst []any) []any {
	if len(o.Terms) == 0 {
		return dst
	}
	for i := 1; i < len(o.Terms); i++ {
		dst = append(dst, "|")
	}
	for _, term := range o.Terms {
		dst = term.append(dst)
	}
	return dst
}

// Serialize flattens a filter tree into the literal domain expression the
// remote client expects. A nil filter serializes to the empty domain, which
// matches all records.
func Serialize(f Filter) []any {
	dst := []any{}
	if f == nil {
		return dst
	}
	return f.append(dst)
}
