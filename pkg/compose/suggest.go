package compose

import (
	"fmt"
	"strings"

	"github.com/aquasense/aquasense-engine/pkg/models"
)

// buildSuggestions derives follow-up actions from the first matched row.
// The suggestions are inert data; the presentation layer decides what
// selecting one does.
func (c *Composer) buildSuggestions(in Input) []models.Suggestion {
	if len(in.Rows) == 0 {
		return nil
	}
	row := in.Rows[0]
	var out []models.Suggestion

	if hasAnyTarget(in.TargetColumns, waterQualityMetrics) {
		out = append(out, models.Suggestion{
			Kind:   models.SuggestionWaterQuality,
			Prompt: "이 지역의 전체 수질 등급을 자세히 보시겠어요?",
		})
	}

	if hasAnyTarget(in.TargetColumns, algaeMetrics) {
		level := c.classifier.AlgaeAlertLevel(row)
		if level.Level != "정상" {
			out = append(out, models.Suggestion{
				Kind:    models.SuggestionAlgaeManual,
				Prompt:  "조류 경보 대응 메뉴얼을 확인하시겠어요?",
				Payload: map[string]string{"level": level.Level},
			})
		}
	}

	locationCode := row.StringAt("분류코드")
	if locationCode == "" {
		locationCode = row.StringAt("조사구간명")
	}
	if locationCode != "" {
		out = append(out, models.Suggestion{
			Kind:    models.SuggestionPrediction,
			Prompt:  "다음주 이 지역의 수질 예측 결과를 확인하시겠어요?",
			Payload: map[string]string{"location": locationCode},
		})
		if len(in.TargetColumns) > 0 {
			out = append(out, models.Suggestion{
				Kind:    models.SuggestionTimeSeries,
				Prompt:  fmt.Sprintf("이 지역의 %s 변화 추이를 그래프로 보시겠어요?", in.TargetColumns[0]),
				Payload: map[string]string{"location": locationCode, "metric": in.TargetColumns[0]},
			})
		}
	}

	if len(in.TargetColumns) > 0 {
		related := c.relatedMetricsFor(row, in.TargetColumns[0])
		if len(related) > 0 {
			shown := related
			if len(shown) > 3 {
				shown = shown[:3]
			}
			out = append(out, models.Suggestion{
				Kind:    models.SuggestionRelatedMetrics,
				Prompt:  fmt.Sprintf("관련 지표(%s)도 함께 확인하시겠어요?", strings.Join(shown, ", ")),
				Payload: map[string]string{"metrics": strings.Join(related, ",")},
			})
		}
	}

	return out
}

// relatedMetricsFor returns the configured related metrics for the given
// one, filtered down to columns actually present in the row.
func (c *Composer) relatedMetricsFor(row models.Record, metric string) []string {
	var candidates []string
	for key, vals := range c.related {
		if strings.EqualFold(key, metric) {
			candidates = vals
			break
		}
	}
	var out []string
	for _, cand := range candidates {
		if _, ok := row[cand]; ok {
			out = append(out, cand)
		}
	}
	return out
}
