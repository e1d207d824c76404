package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/aquasense/aquasense-engine/pkg/models"
)

// Date literals accepted in questions, in priority order. The first
// pattern with a match anywhere in the question wins; at most one date is
// extracted.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`\d{4}/\d{2}/\d{2}`),
	regexp.MustCompile(`\d{4}\.\d{2}\.\d{2}`),
}

// numericFilterPattern captures <label><separator><number> occurrences.
// Labels cover the longitude/latitude/pH alias spellings, including the
// parenthesized Korean variants; separators are whitespace, colon
// (ASCII and full-width), equals, or the particles 는/은/에서/의.
var numericFilterPattern = regexp.MustCompile(
	`(?i)(경도\(도\)|위도\(도\)|longitude|latitude|경도|위도|lon|lat|ph)[\s:：=는은에서의]*([-+]?\d+\.?\d*)`)

// textFilterPattern captures <word><optional topic particle> <value> pairs.
var textFilterPattern = regexp.MustCompile(
	`([가-힣a-zA-Z_]+)[은는]?\s+([가-힣a-zA-Z0-9\-_.]+)`)

// valueParticlePattern strips trailing possessive/request particles from a
// captured filter value ("2001G027에서의 FAI" keeps only "2001G027").
var valueParticlePattern = regexp.MustCompile(
	`(에서의|에서|의|에|알려줘|알려|줘|값|값을|값이).*$`)

// targetColumnPatterns maps metric-code spellings to canonical codes.
// Matches contribute codes in table order, not occurrence order.
var targetColumnPatterns = []struct {
	pattern *regexp.Regexp
	code    string
}{
	{regexp.MustCompile(`(?i)fai값?`), "FAI"},
	{regexp.MustCompile(`(?i)bai값?`), "BAI"},
	{regexp.MustCompile(`(?i)dai값?`), "DAI"},
	{regexp.MustCompile(`(?i)iai값?`), "IAI"},
	{regexp.MustCompile(`(?i)ph값?`), "pH"},
	{regexp.MustCompile(`(?i)bod값?`), "BOD"},
	{regexp.MustCompile(`(?i)(t-n|tn)값?`), "T-N"},
	{regexp.MustCompile(`(?i)(t-p|tp)값?`), "T-P"},
}

// Parser extracts structured query conditions from free-text questions.
// Parsing is pure and deterministic given a fixed alias table and never
// fails; a question with no recognizable intent yields empty conditions.
type Parser struct {
	aliases   AliasTable
	tolerance float64
}

// NewParser creates a Parser. tolerance is the band applied to every
// numeric filter; pH and geographic coordinates share it.
func NewParser(aliases AliasTable, tolerance float64) *Parser {
	return &Parser{
		aliases:   aliases,
		tolerance: tolerance,
	}
}

// Parse extracts a date literal, numeric filters, text filters, and target
// metric codes from the question.
func (p *Parser) Parse(question string) models.QueryConditions {
	cond := models.QueryConditions{
		Date: p.parseDate(question),
	}
	cond.NumericFilters = p.parseNumericFilters(question)
	cond.TextFilters = p.parseTextFilters(question)
	cond.TargetColumns = p.parseTargetColumns(question)
	return cond
}

func (p *Parser) parseDate(question string) string {
	for _, pattern := range datePatterns {
		if m := pattern.FindString(question); m != "" {
			return m
		}
	}
	return ""
}

// parseNumericFilters yields one filter per label/number occurrence.
// A label recurring in the question produces duplicate filters; dedup is
// the query engine's business, not the parser's.
func (p *Parser) parseNumericFilters(question string) []models.NumericFilter {
	var filters []models.NumericFilter
	for _, m := range numericFilterPattern.FindAllStringSubmatch(question, -1) {
		value, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		field := p.aliases.ClassifyLabel(m[1])
		if field == "" {
			continue
		}
		filters = append(filters, models.NumericFilter{
			Field:     field,
			Value:     value,
			Tolerance: p.tolerance,
		})
	}
	return filters
}

func (p *Parser) parseTextFilters(question string) []models.TextFilter {
	var filters []models.TextFilter
	for _, m := range textFilterPattern.FindAllStringSubmatch(question, -1) {
		column := strings.TrimSpace(m[1])
		value := strings.TrimSpace(valueParticlePattern.ReplaceAllString(m[2], ""))

		// Longitude/latitude/pH labels are handled numerically.
		if p.aliases.IsNumericAlias(column) {
			continue
		}
		if value == "" {
			continue
		}

		duplicate := false
		for _, f := range filters {
			if f.Column == column && f.Value == value {
				duplicate = true
				break
			}
		}
		if !duplicate {
			filters = append(filters, models.TextFilter{Column: column, Value: value})
		}
	}
	return filters
}

func (p *Parser) parseTargetColumns(question string) []string {
	var targets []string
	for _, tp := range targetColumnPatterns {
		if !tp.pattern.MatchString(question) {
			continue
		}
		seen := false
		for _, t := range targets {
			if t == tp.code {
				seen = true
				break
			}
		}
		if !seen {
			targets = append(targets, tp.code)
		}
	}
	return targets
}
