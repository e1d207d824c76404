package query

import "strings"

// normalizeName prepares a column or alias name for comparison. Matching is
// case- and whitespace-insensitive but the original spelling is always what
// gets returned to the caller.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ResolveColumn maps an alias group to the dataset column it names.
// Exact matches outrank containment matches: the full alias list is tried
// for equality first (alias order, then column order), and only then for
// bidirectional substring containment. Containment is the only approximate
// strategy; a false-positive containment hit is an accepted cost against
// missing a legitimately-aliased column in a foreign-language header.
func ResolveColumn(columns []string, aliases []string) (string, bool) {
	normalized := make([]string, len(columns))
	for i, col := range columns {
		normalized[i] = normalizeName(col)
	}

	for _, alias := range aliases {
		a := normalizeName(alias)
		for i, col := range normalized {
			if col == a {
				return columns[i], true
			}
		}
	}

	for _, alias := range aliases {
		a := normalizeName(alias)
		for i, col := range normalized {
			if strings.Contains(col, a) || strings.Contains(a, col) {
				return columns[i], true
			}
		}
	}

	return "", false
}

// ResolveName resolves a single name written by the user against the
// dataset columns: exact match first, then bidirectional containment.
func ResolveName(columns []string, name string) (string, bool) {
	return ResolveColumn(columns, []string{name})
}

// ResolveTarget resolves a canonical metric code against the dataset
// columns: exact match, then case-insensitive match, then containment.
func ResolveTarget(columns []string, target string) (string, bool) {
	for _, col := range columns {
		if col == target {
			return col, true
		}
	}

	t := normalizeName(target)
	for _, col := range columns {
		if normalizeName(col) == t {
			return col, true
		}
	}

	for _, col := range columns {
		c := normalizeName(col)
		if strings.Contains(c, t) || strings.Contains(t, c) {
			return col, true
		}
	}

	return "", false
}
