package models

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Record is a single ingested row: raw column name mapped to a scalar value
// (string or number, as uploaded). Column names are locale-mixed and never
// normalized; consumers resolve aliases against the actual keys instead of
// rewriting them.
type Record map[string]any

// Dataset is an ordered collection of records sharing (in practice, not by
// contract) a column set. Columns carries the ingestion-time column order;
// when it is unknown it is derived from the first record.
type Dataset struct {
	Columns []string `json:"columns"`
	Rows    []Record `json:"rows"`
}

// StringAt returns the stringified, trimmed value of a column.
// Missing columns and nil values yield the empty string.
func (r Record) StringAt(column string) string {
	v, ok := r[column]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	case json.Number:
		return s.String()
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return strings.Trim(string(b), `"`)
	}
}

// FloatAt returns the numeric value of a column and whether it parsed.
func (r Record) FloatAt(column string) (float64, bool) {
	v, ok := r[column]
	if !ok || v == nil {
		return 0, false
	}
	return ToFloat(v)
}

// MetricValue reads the first of the given columns that is present,
// treating missing or unparseable values as zero. Classification reads
// metrics this way so an absent column never aborts grading; the cost is
// that zero and truly-absent are indistinguishable.
func (r Record) MetricValue(columns ...string) float64 {
	for _, col := range columns {
		if f, ok := r.FloatAt(col); ok {
			return f
		}
	}
	return 0
}

// ToFloat converts an ingested scalar to a float64 if possible.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// CanonicalKey returns a stable serialization of the record used for
// structural dedup. encoding/json sorts map keys, so two records with the
// same field set produce the same key.
func (r Record) CanonicalKey() string {
	b, err := json.Marshal(r)
	if err != nil {
		return ""
	}
	return string(b)
}

// ColumnsOf derives a deterministic column list from a record. Map iteration
// order is random, so the keys are sorted; ingestion callers that know the
// real spreadsheet order should pass it explicitly instead.
func ColumnsOf(r Record) []string {
	cols := make([]string, 0, len(r))
	for k := range r {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}
