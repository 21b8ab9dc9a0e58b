package tuple

import "github.com/dsglabs/relquery/common"

// Tuple is an ordered sequence of values paired with a reference to its
// Schema (spec.md §3). Unlike the teacher's storage.Tuple, which
// distinguishes a disk-backed "physical view" from computed "virtual"
// columns to support zero-copy reads off a buffer-pool page, this engine
// never touches disk pages (Non-goal: persistent storage) — every Tuple is
// just a values slice, so that split collapses to a single representation.
type Tuple struct {
	schema *Schema
	values []common.Value
}

// New builds a Tuple, asserting the §3 arity invariant: |values| must equal
// |schema.columns|.
func New(schema *Schema, values []common.Value) Tuple {
	common.Assert(len(values) == schema.Arity(), "tuple arity %d disagrees with schema arity %d", len(values), schema.Arity())
	return Tuple{schema: schema, values: values}
}

// Schema returns the tuple's schema.
func (t Tuple) Schema() *Schema {
	return t.schema
}

// Values returns the tuple's values in schema order. Callers must not
// mutate the returned slice.
func (t Tuple) Values() []common.Value {
	return t.values
}

// At returns the value at a given position.
func (t Tuple) At(i int) common.Value {
	return t.values[i]
}

// Lookup returns the value of the named column, and whether the column was
// found in the tuple's schema. Callers that want the §4.4/§4.7 "unknown
// column resolves to null" behavior should use Get instead.
func (t Tuple) Lookup(name string) (common.Value, bool) {
	i, ok := t.schema.IndexOf(name)
	if !ok {
		return common.Value{}, false
	}
	return t.values[i], true
}

// Get returns the value of the named column, or a null Value of StringType
// if the column is not present in the tuple's schema. This is the
// degrade-to-null resolution behavior spec.md §4.4/§7 documents for
// ProjectOperator and predicate evaluation.
func (t Tuple) Get(name string) common.Value {
	if v, ok := t.Lookup(name); ok {
		return v
	}
	return common.NullValue(common.StringType)
}

// Project builds a new Tuple containing only the named columns, in order,
// looked up by name from the receiver (spec.md §4.4).
func (t Tuple) Project(names []string) Tuple {
	values := make([]common.Value, len(names))
	for i, name := range names {
		values[i] = t.Get(name)
	}
	return New(t.schema.Project(names), values)
}

// Concat returns a new Tuple whose schema and values are the receiver's
// followed by other's (spec.md §4.6: HashJoin output = left schema then
// right schema, with the same concatenation on values).
func (t Tuple) Concat(other Tuple) Tuple {
	schema := t.schema.Concat(other.schema)
	values := make([]common.Value, 0, len(t.values)+len(other.values))
	values = append(values, t.values...)
	values = append(values, other.values...)
	return New(schema, values)
}

// ProjectionKey returns a canonical string key for the tuple's values,
// suitable as the key of a "seen" set for distinct projection (§4.4) —
// grounded on the same HashKey canonicalization the hash join uses (§4.6),
// so that an integer 3 and a double 3.0 in equivalent projected columns are
// treated as the same already-emitted row, consistent with Value.Compare.
func (t Tuple) ProjectionKey() string {
	var buf []byte
	for _, v := range t.values {
		buf = append(buf, v.HashKey()...)
		buf = append(buf, '\x1f')
	}
	return string(buf)
}
