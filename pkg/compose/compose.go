// Package compose turns filtered rows, classifications, and alerts into
// a user-facing Korean answer, optionally delegating phrasing to an LLM.
package compose

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aquasense/aquasense-engine/pkg/classify"
	"github.com/aquasense/aquasense-engine/pkg/llm"
	"github.com/aquasense/aquasense-engine/pkg/manual"
	"github.com/aquasense/aquasense-engine/pkg/models"
	"github.com/aquasense/aquasense-engine/pkg/query"
)

// Input carries everything the composer needs for one answer.
type Input struct {
	Question       string
	Rows           []models.Record
	TargetColumns  []string
	Conditions     models.QueryConditions
	DatasetColumns []string
	Alerts         []models.Alert
}

// Composer produces answers. With a nil LLM client only the rule-based
// path is used; with one configured, the LLM path is attempted first and
// any failure falls back to the rule-based templates.
type Composer struct {
	llmClient      llm.Client
	classifier     *classify.Classifier
	manuals        *manual.Searcher
	related        map[string][]string
	maxContextRows int
	maxDisplayRows int
	maxTokens      int
	temperature    float64
	logger         *zap.Logger
}

// Options tunes composer output limits and LLM sampling.
type Options struct {
	MaxContextRows int
	MaxDisplayRows int
	MaxTokens      int
	Temperature    float64
}

// NewComposer creates a composer. llmClient may be nil.
func NewComposer(
	llmClient llm.Client,
	classifier *classify.Classifier,
	manuals *manual.Searcher,
	related map[string][]string,
	opts Options,
	logger *zap.Logger,
) *Composer {
	if opts.MaxContextRows <= 0 {
		opts.MaxContextRows = 10
	}
	if opts.MaxDisplayRows <= 0 {
		opts.MaxDisplayRows = 10
	}
	return &Composer{
		llmClient:      llmClient,
		classifier:     classifier,
		manuals:        manuals,
		related:        related,
		maxContextRows: opts.MaxContextRows,
		maxDisplayRows: opts.MaxDisplayRows,
		maxTokens:      opts.MaxTokens,
		temperature:    opts.Temperature,
		logger:         logger.Named("composer"),
	}
}

// Compose builds the answer. It never fails: LLM and manual lookups are
// best-effort and degrade to the rule-based templates.
func (c *Composer) Compose(ctx context.Context, in Input) *models.Answer {
	if c.llmClient != nil {
		answer, err := c.composeWithLLM(ctx, in)
		if err == nil {
			answer.Suggestions = c.buildSuggestions(in)
			answer.Alerts = in.Alerts
			answer.RowsMatched = len(in.Rows)
			answer.LLMUsed = true
			return answer
		}
		c.logger.Warn("llm composition failed, using rule-based answer", zap.Error(err))
	}

	answer := c.composeRuleBased(in)
	if len(in.Alerts) > 0 {
		answer.Text += FormatAlerts(in.Alerts)
	}
	answer.Alerts = in.Alerts
	answer.RowsMatched = len(in.Rows)
	return answer
}

func (c *Composer) composeRuleBased(in Input) *models.Answer {
	if len(in.Rows) == 0 {
		return &models.Answer{Text: c.emptyResultText(in)}
	}
	if len(in.Rows) == 1 {
		return c.singleResultAnswer(in)
	}
	return c.multiResultAnswer(in)
}

func (c *Composer) emptyResultText(in Input) string {
	var b strings.Builder
	b.WriteString("죄송합니다. 조건에 맞는 데이터를 찾을 수 없습니다.\n")

	if lines := in.Conditions.Describe(); len(lines) > 0 {
		b.WriteString("\n검색한 조건:\n")
		for _, line := range lines {
			b.WriteString("- " + line + "\n")
		}
	}
	if len(in.DatasetColumns) > 0 {
		b.WriteString("\n사용 가능한 컬럼: " + strings.Join(in.DatasetColumns, ", ") + "\n")
	}
	b.WriteString("\n💡 다음을 확인해보세요:\n")
	b.WriteString("- 컬럼명이 정확한지 확인 (\"컬럼명 보여줘\"로 확인 가능)\n")
	b.WriteString("- 필터 조건을 다시 확인해주세요")
	return b.String()
}

func (c *Composer) singleResultAnswer(in Input) *models.Answer {
	row := in.Rows[0]
	var b strings.Builder
	answer := &models.Answer{}

	if len(in.TargetColumns) > 0 {
		b.WriteString("네, 찾았습니다! ")
		for idx, col := range in.TargetColumns {
			resolved, ok := query.ResolveTarget(c.columnsFor(row, in), col)
			if !ok {
				continue
			}
			if idx > 0 {
				b.WriteString(" 그리고 ")
			}
			fmt.Fprintf(&b, "**%s**는 **%s**입니다.", resolved, row.StringAt(resolved))
		}

		if section := row.StringAt("조사구간명"); section != "" {
			fmt.Fprintf(&b, "\n\n📍 이 데이터는 **%s** 구간의 정보입니다.", section)
		}
		if date := row.StringAt("Date"); date != "" {
			fmt.Fprintf(&b, " 조사일자는 **%s**입니다.", date)
		}

		if hasAnyTarget(in.TargetColumns, waterQualityMetrics) {
			grade := c.classifier.WaterQualityGrade(row)
			fmt.Fprintf(&b, "\n\n📊 **수질 등급**: %s (%s)", grade.Grade, grade.Description)
		}
		if hasAnyTarget(in.TargetColumns, algaeMetrics) {
			level := c.classifier.AlgaeAlertLevel(row)
			fmt.Fprintf(&b, "\n\n🌊 **조류 경보 단계**: %s (%s)", level.Level, level.Description)
		}

		b.WriteString("\n\n💬 추가로 궁금하신 점이 있으시면:\n")
		b.WriteString("- 다른 분류코드나 조사구간명으로 검색\n")
		b.WriteString("- 날짜나 위치 정보로 필터링\n")
		b.WriteString("- 여러 지표를 함께 비교")
	} else {
		b.WriteString("찾은 데이터입니다:\n\n")
		for _, key := range c.columnsFor(row, in) {
			if _, ok := row[key]; !ok {
				continue
			}
			fmt.Fprintf(&b, "**%s**: %s\n", key, row.StringAt(key))
		}
	}

	answer.Text = strings.TrimSpace(b.String())
	answer.Suggestions = c.buildSuggestions(in)
	return answer
}

func (c *Composer) multiResultAnswer(in Input) *models.Answer {
	var b strings.Builder
	fmt.Fprintf(&b, "%d개의 결과를 찾았습니다.\n\n", len(in.Rows))

	shown := in.Rows
	if len(shown) > c.maxDisplayRows {
		shown = shown[:c.maxDisplayRows]
	}

	if len(in.TargetColumns) > 0 {
		for idx, row := range shown {
			fmt.Fprintf(&b, "**[결과 %d]**", idx+1)
			if section := row.StringAt("조사구간명"); section != "" {
				b.WriteString(" - " + section)
			}
			if date := row.StringAt("Date"); date != "" {
				b.WriteString(" (" + date + ")")
			}
			b.WriteString("\n")
			for _, col := range in.TargetColumns {
				if resolved, ok := query.ResolveTarget(c.columnsFor(row, in), col); ok {
					fmt.Fprintf(&b, "  %s: %s\n", resolved, row.StringAt(resolved))
				}
			}
			b.WriteString("\n")
		}
		if len(in.Rows) > len(shown) {
			fmt.Fprintf(&b, "... 외 %d개 더 있습니다.\n\n", len(in.Rows)-len(shown))
		}
		b.WriteString("💡 더 구체적인 조건을 추가하면 원하는 결과를 찾을 수 있습니다.\n")
		b.WriteString("예: \"분류코드 2001G027에서의 FAI값\"")
	} else {
		for idx, row := range shown {
			fmt.Fprintf(&b, "**[결과 %d]**\n", idx+1)
			for _, key := range c.columnsFor(row, in) {
				if _, ok := row[key]; !ok {
					continue
				}
				fmt.Fprintf(&b, "%s: %s\n", key, row.StringAt(key))
			}
			b.WriteString("\n")
		}
		if len(in.Rows) > len(shown) {
			fmt.Fprintf(&b, "... 외 %d개 더 있습니다.\n", len(in.Rows)-len(shown))
		}
	}

	return &models.Answer{
		Text:        strings.TrimSpace(b.String()),
		Suggestions: c.buildSuggestions(in),
	}
}

// columnsFor returns the display order for a row's columns, preferring
// the dataset's declared order when known.
func (c *Composer) columnsFor(row models.Record, in Input) []string {
	if len(in.DatasetColumns) > 0 {
		return in.DatasetColumns
	}
	return models.ColumnsOf(row)
}

var (
	waterQualityMetrics = []string{"pH", "BOD", "T-N", "T-P"}
	algaeMetrics        = []string{"FAI", "BAI", "DAI", "IAI"}
)

func hasAnyTarget(targets, metrics []string) bool {
	for _, t := range targets {
		for _, m := range metrics {
			if strings.EqualFold(t, m) {
				return true
			}
		}
	}
	return false
}
