package query

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/aquasense/aquasense-engine/pkg/models"
)

// dateColumnCandidates is the priority order for locating the date column.
// Only the first candidate present in the dataset is consulted.
var dateColumnCandidates = []string{"Date", "date", "DATE", "날짜", "조사일자", "일자"}

// ExecuteResult is the outcome of running parsed conditions over a row set.
type ExecuteResult struct {
	Rows []models.Record
	// TargetColumns holds the requested metric codes resolved to actual
	// dataset column names. Codes that resolve to nothing are dropped.
	TargetColumns []string
}

// Engine filters an in-memory row set by parsed query conditions. Stages
// run in a fixed order and each stage only ever narrows (or leaves
// unchanged) the working set. Record keys are never rewritten; aliases are
// resolved to real keys instead.
type Engine struct {
	aliases AliasTable
	logger  *zap.Logger
}

// NewEngine creates a query engine over the given alias table.
func NewEngine(aliases AliasTable, logger *zap.Logger) *Engine {
	return &Engine{
		aliases: aliases,
		logger:  logger.Named("query-engine"),
	}
}

// Execute applies conditions to rows: structural dedup, text filters, date
// filter, numeric filters, then target-column resolution. An empty result
// is a valid outcome, not an error; re-running with the same inputs yields
// the same rows in the same order.
func (e *Engine) Execute(rows []models.Record, cond models.QueryConditions, columns []string) ExecuteResult {
	working := dedupRows(rows)
	e.logger.Debug("Deduplicated input rows",
		zap.Int("before", len(rows)),
		zap.Int("after", len(working)))

	for _, filter := range cond.TextFilters {
		working = e.applyTextFilter(working, filter, columns)
	}

	if cond.Date != "" {
		working = e.applyDateFilter(working, cond.Date, columns)
	}

	for _, filter := range cond.NumericFilters {
		working = e.applyNumericFilter(working, filter, columns)
	}

	return ExecuteResult{
		Rows:          working,
		TargetColumns: e.resolveTargets(cond.TargetColumns, columns),
	}
}

// dedupRows collapses structurally identical rows, keeping first-seen order.
func dedupRows(rows []models.Record) []models.Record {
	seen := make(map[string]struct{}, len(rows))
	out := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		key := row.CanonicalKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	return out
}

// applyTextFilter keeps rows whose resolved column contains the filter
// value. Containment is preferred over strict equality: locale variants
// ("상류 구간" vs "구간") make exact-match-first a false economy. A filter
// whose column resolves to nothing degrades to a no-op.
func (e *Engine) applyTextFilter(rows []models.Record, filter models.TextFilter, columns []string) []models.Record {
	column, ok := ResolveName(columns, filter.Column)
	if !ok {
		e.logger.Info("Text filter column not resolved, skipping",
			zap.String("column", filter.Column))
		return rows
	}

	want := strings.ToLower(filter.Value)
	out := rows[:0:0]
	for _, row := range rows {
		value := strings.ToLower(row.StringAt(column))
		if strings.Contains(value, want) {
			out = append(out, row)
		}
	}

	e.logger.Debug("Applied text filter",
		zap.String("column", column),
		zap.String("value", filter.Value),
		zap.Int("before", len(rows)),
		zap.Int("after", len(out)))
	return out
}

// applyDateFilter matches the date literal (and its '/'- and '.'-separated
// equivalents) as a substring of the first date-like column present in the
// dataset. Only that one column is consulted.
func (e *Engine) applyDateFilter(rows []models.Record, date string, columns []string) []models.Record {
	var dateColumn string
	for _, candidate := range dateColumnCandidates {
		for _, col := range columns {
			if col == candidate {
				dateColumn = col
				break
			}
		}
		if dateColumn != "" {
			break
		}
	}
	if dateColumn == "" {
		e.logger.Info("No date column in dataset, skipping date filter",
			zap.String("date", date))
		return rows
	}

	variants := []string{
		date,
		strings.ReplaceAll(date, "-", "/"),
		strings.ReplaceAll(date, "-", "."),
	}

	out := rows[:0:0]
	for _, row := range rows {
		value := row.StringAt(dateColumn)
		for _, v := range variants {
			if strings.Contains(value, v) {
				out = append(out, row)
				break
			}
		}
	}

	e.logger.Debug("Applied date filter",
		zap.String("column", dateColumn),
		zap.String("date", date),
		zap.Int("before", len(rows)),
		zap.Int("after", len(out)))
	return out
}

// applyNumericFilter keeps rows whose resolved column lies within the
// filter tolerance (inclusive). When the column cannot be resolved, or the
// resolved column yields zero rows, the filter falls back to scanning
// every field of every row for a value within tolerance. The fallback
// baseline is the working set as it stood before this filter, so a zero
// result from an earlier numeric filter is not compounded.
func (e *Engine) applyNumericFilter(rows []models.Record, filter models.NumericFilter, columns []string) []models.Record {
	column, resolved := ResolveColumn(columns, e.aliases[filter.Field])

	if resolved {
		out := rows[:0:0]
		for _, row := range rows {
			if v, ok := row.FloatAt(column); ok && math.Abs(v-filter.Value) <= filter.Tolerance {
				out = append(out, row)
			}
		}
		e.logger.Debug("Applied numeric filter",
			zap.String("field", filter.Field),
			zap.String("column", column),
			zap.Float64("value", filter.Value),
			zap.Int("before", len(rows)),
			zap.Int("after", len(out)))
		if len(out) > 0 {
			return out
		}
	}

	e.logger.Info("Numeric filter falling back to cross-column scan",
		zap.String("field", filter.Field),
		zap.Bool("column_resolved", resolved),
		zap.Float64("value", filter.Value))

	out := rows[:0:0]
	for _, row := range rows {
		for _, v := range row {
			if f, ok := models.ToFloat(v); ok && math.Abs(f-filter.Value) <= filter.Tolerance {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// resolveTargets maps requested metric codes to actual dataset columns,
// deduplicated, preserving request order.
func (e *Engine) resolveTargets(targets []string, columns []string) []string {
	var resolved []string
	for _, target := range targets {
		col, ok := ResolveTarget(columns, target)
		if !ok {
			e.logger.Info("Target column not resolved", zap.String("target", target))
			continue
		}
		dup := false
		for _, r := range resolved {
			if r == col {
				dup = true
				break
			}
		}
		if !dup {
			resolved = append(resolved, col)
		}
	}
	return resolved
}
