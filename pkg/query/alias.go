package query

import "strings"

// Semantic field names for numerically-filtered columns.
const (
	FieldLongitude = "longitude"
	FieldLatitude  = "latitude"
	FieldPH        = "ph"
)

// AliasTable maps a semantic field name to the ordered list of accepted
// spellings for it. Uploaded datasets mix Korean and Latin headers, so
// every consumer resolves through this table instead of assuming a
// canonical column name. Static configuration, read-only at runtime.
type AliasTable map[string][]string

// DefaultAliasTable returns the alias spellings observed across the
// monitoring datasets the engine is fed.
func DefaultAliasTable() AliasTable {
	return AliasTable{
		FieldLongitude: {"경도", "longitude", "lon", "long", "x"},
		FieldLatitude:  {"위도", "latitude", "lat", "y"},
		FieldPH:        {"ph", "pH", "PH"},
	}
}

// NumericFields returns the semantic fields subject to numeric filtering,
// in classification priority order.
func (t AliasTable) NumericFields() []string {
	return []string{FieldLongitude, FieldLatitude, FieldPH}
}

// IsNumericAlias reports whether name is a spelling of one of the
// numerically-filtered fields. The parser uses this to keep such labels
// out of the text-filter path.
func (t AliasTable) IsNumericAlias(name string) bool {
	n := normalizeName(name)
	for _, field := range t.NumericFields() {
		for _, alias := range t[field] {
			if normalizeName(alias) == n {
				return true
			}
		}
	}
	return false
}

// ClassifyLabel maps a label captured from a question to its semantic
// field using bidirectional containment against the alias spellings.
// Returns "" when the label belongs to none of the numeric fields.
func (t AliasTable) ClassifyLabel(label string) string {
	l := normalizeName(label)
	for _, field := range t.NumericFields() {
		for _, alias := range t[field] {
			a := normalizeName(alias)
			if strings.Contains(l, a) || strings.Contains(a, l) {
				return field
			}
		}
	}
	return ""
}
