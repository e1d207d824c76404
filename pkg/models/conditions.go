package models

import (
	"fmt"
	"strconv"
)

// NumericFilter keeps rows whose resolved column value lies within
// Tolerance of Value. Field is a semantic field name ("longitude",
// "latitude", "ph"), not a dataset column.
type NumericFilter struct {
	Field     string  `json:"field"`
	Value     float64 `json:"value"`
	Tolerance float64 `json:"tolerance"`
}

// TextFilter keeps rows whose column (as written in the question) contains
// the filter value.
type TextFilter struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// QueryConditions is the structured intent extracted from one question.
// Built fresh per question and never mutated after parsing.
type QueryConditions struct {
	Date           string          `json:"date,omitempty"`
	NumericFilters []NumericFilter `json:"numeric_filters,omitempty"`
	TextFilters    []TextFilter    `json:"text_filters,omitempty"`
	TargetColumns  []string        `json:"target_columns,omitempty"`
}

// IsEmpty reports whether no filter or target was extracted.
func (c QueryConditions) IsEmpty() bool {
	return c.Date == "" &&
		len(c.NumericFilters) == 0 &&
		len(c.TextFilters) == 0 &&
		len(c.TargetColumns) == 0
}

// Describe renders each extracted condition as a human-readable line.
// Used by the no-result narrative so users can self-correct.
func (c QueryConditions) Describe() []string {
	var lines []string
	if c.Date != "" {
		lines = append(lines, "날짜: "+c.Date)
	}
	for _, f := range c.NumericFilters {
		lines = append(lines, fmt.Sprintf("%s = %s (허용 오차 %g)",
			f.Field, strconv.FormatFloat(f.Value, 'f', -1, 64), f.Tolerance))
	}
	for _, f := range c.TextFilters {
		lines = append(lines, fmt.Sprintf("%s = %q", f.Column, f.Value))
	}
	for _, t := range c.TargetColumns {
		lines = append(lines, "조회 지표: "+t)
	}
	return lines
}
