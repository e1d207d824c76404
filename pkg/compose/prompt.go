package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/aquasense/aquasense-engine/pkg/llm"
	"github.com/aquasense/aquasense-engine/pkg/models"
)

const systemPersona = `당신은 환경 데이터 분석 전문가 챗봇입니다. 수질, 녹조, 수문, 기상 데이터를 분석하고 사용자에게 친절하고 전문적인 답변을 제공합니다.

주요 역할:
1. 검색된 데이터를 바탕으로 정확하고 자연스러운 답변 생성
2. 수질 등급, 조류 경보 단계 등 전문 지식 활용
3. 경고가 있을 때는 대응 메뉴얼의 구체적인 조치 방법을 제시
4. 사용자가 추가로 궁금해할 만한 정보를 능동적으로 제안
5. 데이터가 없을 때는 친절하게 안내

중요: 경고가 있고 대응 메뉴얼이 제공되면, 단순히 "메뉴얼을 참고하세요"라고 말하지 말고, 메뉴얼 내용을 바탕으로 구체적인 조치 방법을 직접 설명해주세요.

답변 스타일:
- 한국어로 자연스럽고 친절하게 답변
- 전문 용어는 간단히 설명
- 숫자와 단위를 명확히 표시
- 이모지를 적절히 사용하여 가독성 향상
- 데이터 기반으로 객관적인 분석 제공

수질 등급 기준:
- I등급: 매우 좋음 (pH 6.5-8.5, BOD ≤1.0, T-N ≤0.2, T-P ≤0.02)
- II등급: 좋음 (pH 6.0-9.0, BOD ≤2.0, T-N ≤0.3, T-P ≤0.04)
- III등급: 보통 (pH 5.5-9.5, BOD ≤3.0, T-N ≤0.5, T-P ≤0.1)
- IV등급: 나쁨 (pH 5.0-10.0, BOD ≤5.0, T-N ≤1.0, T-P ≤0.2)
- V등급: 매우 나쁨

조류 경보 단계:
- 정상: FAI < 40
- 관심: 40 ≤ FAI < 60
- 주의: 60 ≤ FAI < 80
- 경보: FAI ≥ 80`

func (c *Composer) composeWithLLM(ctx context.Context, in Input) (*models.Answer, error) {
	prompt := c.buildUserPrompt(in)
	text, err := c.llmClient.GenerateResponse(ctx, prompt, systemPersona, llm.SamplingParams{
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate llm answer: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("llm returned an empty answer")
	}
	return &models.Answer{Text: strings.TrimSpace(text)}, nil
}

// buildUserPrompt serializes the question, the context rows, the search
// conditions, and the alert/manual text into one prompt.
func (c *Composer) buildUserPrompt(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "사용자 질문: %s\n\n", in.Question)

	if len(in.Rows) > 0 {
		fmt.Fprintf(&b, "=== 검색된 데이터 (%d개) ===\n\n", len(in.Rows))
		shown := in.Rows
		if len(shown) > c.maxContextRows {
			shown = shown[:c.maxContextRows]
		}
		for idx, row := range shown {
			fmt.Fprintf(&b, "[데이터 %d]\n", idx+1)
			for _, key := range c.columnsFor(row, in) {
				if _, ok := row[key]; !ok {
					continue
				}
				fmt.Fprintf(&b, "  %s: %s\n", key, row.StringAt(key))
			}
			b.WriteString("\n")
		}
		if len(in.Rows) > len(shown) {
			fmt.Fprintf(&b, "... 외 %d개 더 있습니다.\n\n", len(in.Rows)-len(shown))
		}
	} else {
		b.WriteString("⚠️ 검색된 데이터가 없습니다. 사용자에게 데이터를 찾을 수 없다고 안내하고, 검색 조건을 확인하도록 제안해주세요.\n\n")
	}

	if len(in.TargetColumns) > 0 {
		fmt.Fprintf(&b, "사용자가 관심 있는 지표: %s\n\n", strings.Join(in.TargetColumns, ", "))
	}

	if lines := in.Conditions.Describe(); len(lines) > 0 {
		b.WriteString("검색 조건:\n")
		for _, line := range lines {
			b.WriteString("  - " + line + "\n")
		}
		b.WriteString("\n")
	}

	if len(in.Alerts) > 0 {
		b.WriteString("=== 경고 알림 (중요!) ===\n\n")
		for idx, alert := range in.Alerts {
			fmt.Fprintf(&b, "%d. %s\n", idx+1, alert.Message)
			if alert.Manual != nil {
				fmt.Fprintf(&b, "   💡 대응 메뉴얼: %s\n", alert.Manual.Title)
			}
		}
		b.WriteString("\n")

		if docs := c.manualsForAlerts(in.Alerts); len(docs) > 0 {
			b.WriteString("=== 대응 메뉴얼 (구체적인 조치 방법) ===\n\n")
			for idx, doc := range docs {
				fmt.Fprintf(&b, "[메뉴얼 %d] %s\n%s\n\n", idx+1, doc.Title, doc.Content)
			}
			b.WriteString("⚠️ 위 메뉴얼 내용을 참고하여 구체적인 조치 방법을 제시해주세요. 단순히 \"메뉴얼을 참고하세요\"가 아니라, 실제로 어떤 조치를 해야 하는지 구체적으로 설명해주세요.\n\n")
		}

		b.WriteString("⚠️ 위 경고 정보를 답변에 자연스럽게 포함해주세요. 경고가 있으면 반드시 언급하고, 메뉴얼 내용을 바탕으로 구체적인 조치 방법을 제시해주세요.\n\n")
	}

	b.WriteString("위 데이터를 바탕으로 사용자 질문에 대해 자연스럽고 전문적인 답변을 생성해주세요.\n")
	b.WriteString("데이터가 있으면 구체적인 수치를 언급하고, 수질 등급이나 조류 경보 단계가 있다면 계산하여 포함해주세요.\n")
	b.WriteString("경고 정보가 있으면 자연스럽게 답변에 포함시켜 주의를 환기시켜주세요.\n")
	b.WriteString("추가로 확인하면 좋을 정보도 제안해주세요.")

	return b.String()
}

// manualsForAlerts resolves each alert's referenced manual to its full
// document, deduplicated by type.
func (c *Composer) manualsForAlerts(alerts []models.Alert) []models.ManualDocument {
	if c.manuals == nil {
		return nil
	}
	seen := map[string]bool{}
	var out []models.ManualDocument
	for _, alert := range alerts {
		if alert.Manual == nil || seen[alert.Manual.Type] {
			continue
		}
		seen[alert.Manual.Type] = true
		if doc, ok := c.manuals.ByType(alert.Manual.Type); ok {
			out = append(out, doc)
		}
	}
	return out
}
