// Package csvio reads and writes the CSV table format spec.md §2 defines:
// a header row of "name:type" tokens followed by data rows, with malformed
// or empty cells surfacing as null rather than aborting the load. No
// example repo in the corpus wires a third-party CSV library for this kind
// of flat delimited format (iamhimansu-csvquery, the closest relative,
// parses CSV by hand over os.File rather than importing one either) — see
// DESIGN.md for why encoding/csv is used here instead of an ecosystem
// dependency.
package csvio

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/dsglabs/relquery/common"
	"github.com/dsglabs/relquery/tuple"
)

// ParseHeader parses a single CSV header row's fields, each of the form
// "name:type", into a Schema (spec.md §2). Duplicate names within one
// table's header are a SchemaError.
func ParseHeader(fields []string) (*tuple.Schema, error) {
	columns := make([]tuple.Column, len(fields))
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		name, typeWord, ok := strings.Cut(f, ":")
		if !ok {
			return nil, common.NewError(common.SchemaError, "header column %q is missing a :type suffix", f)
		}
		t, err := common.ParseType(typeWord)
		if err != nil {
			return nil, err
		}
		if seen[name] {
			return nil, common.NewError(common.SchemaError, "duplicate column name %q in header", name)
		}
		seen[name] = true
		columns[i] = tuple.Column{Name: name, Type: t}
	}
	return tuple.NewSchema(columns), nil
}

// Reader streams Tuples off a csv.Reader, validating row arity against a
// fixed Schema parsed from the first row.
type Reader struct {
	csv    *csv.Reader
	schema *tuple.Schema
}

// NewReader builds a Reader over r, reading and parsing the header row
// immediately so that Schema() is available before the first Read.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // arity is validated explicitly below
	header, err := cr.Read()
	if err != nil {
		return nil, common.NewError(common.IOError, "reading CSV header: %v", err)
	}
	schema, err := ParseHeader(header)
	if err != nil {
		return nil, err
	}
	return &Reader{csv: cr, schema: schema}, nil
}

// Schema returns the table's schema, parsed from the header row.
func (r *Reader) Schema() *tuple.Schema {
	return r.schema
}

// Read returns the next data row as a Tuple, or io.EOF when exhausted.
// A row with the wrong number of fields is an ArityError; an empty or
// unparsable cell becomes a null of the column's declared type rather than
// failing the row (spec.md §2).
func (r *Reader) Read() (tuple.Tuple, error) {
	record, err := r.csv.Read()
	if err != nil {
		if err == io.EOF {
			return tuple.Tuple{}, io.EOF
		}
		return tuple.Tuple{}, common.NewError(common.IOError, "reading CSV row: %v", err)
	}
	columns := r.schema.Columns()
	if len(record) != len(columns) {
		return tuple.Tuple{}, common.NewError(common.ArityError, "row has %d fields, schema declares %d", len(record), len(columns))
	}
	values := make([]common.Value, len(columns))
	for i, cell := range record {
		values[i] = parseCell(cell, columns[i].Type)
	}
	return tuple.New(r.schema, values), nil
}

// ReadAll drains every remaining row into a slice.
func (r *Reader) ReadAll() ([]tuple.Tuple, error) {
	var rows []tuple.Tuple
	for {
		t, err := r.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, t)
	}
}

func parseCell(cell string, t common.Type) common.Value {
	if cell == "" {
		return common.NullValue(t)
	}
	switch t {
	case common.IntType:
		n, err := strconv.ParseInt(cell, 10, 64)
		if err != nil {
			return common.NullValue(t)
		}
		return common.IntValue(n)
	case common.DoubleType:
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return common.NullValue(t)
		}
		return common.DoubleValue(f)
	default:
		return common.StringValue(cell)
	}
}

// Writer writes a header row (column names only) followed by data rows to a
// csv.Writer, encoding null cells as empty fields — the inverse of Reader's
// parseCell (spec.md §4.5 / §2).
type Writer struct {
	csv    *csv.Writer
	schema *tuple.Schema
}

// NewWriter builds a Writer and immediately writes the header row for
// schema. The header carries column names only, with no :type suffix
// (spec.md §6): Reader's header convention is an input-format detail, not
// the output format.
func NewWriter(w io.Writer, schema *tuple.Schema) (*Writer, error) {
	cw := csv.NewWriter(w)
	header := make([]string, schema.Arity())
	for i, c := range schema.Columns() {
		header[i] = c.Name
	}
	if err := cw.Write(header); err != nil {
		return nil, common.NewError(common.IOError, "writing CSV header: %v", err)
	}
	return &Writer{csv: cw, schema: schema}, nil
}

// Write encodes one Tuple as a CSV row.
func (w *Writer) Write(t tuple.Tuple) error {
	record := make([]string, t.Schema().Arity())
	for i, v := range t.Values() {
		if v.IsNull() {
			record[i] = ""
			continue
		}
		record[i] = v.CanonicalString()
	}
	if err := w.csv.Write(record); err != nil {
		return common.NewError(common.IOError, "writing CSV row: %v", err)
	}
	return nil
}

// Flush flushes any buffered output and returns the first write error
// encountered, if any.
func (w *Writer) Flush() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return common.NewError(common.IOError, "flushing CSV output: %v", err)
	}
	return nil
}
