package prediction

import (
	"fmt"
	"strings"

	"github.com/aquasense/aquasense-engine/pkg/models"
)

// FormatPrediction renders a prediction as a Korean markdown summary.
func FormatPrediction(p *models.Prediction) string {
	if p == nil {
		return "예측 데이터를 가져올 수 없습니다."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 **다음주 예측 결과** (%s)\n\n", p.Date)
	if p.LocationCode != "" {
		fmt.Fprintf(&b, "📍 위치: %s\n\n", p.LocationCode)
	}

	fmt.Fprintf(&b, "💧 **수질 등급**: %s\n", p.WaterQuality.Grade)
	fmt.Fprintf(&b, "   - pH: %s\n", formatFloat(p.WaterQuality.PH))
	fmt.Fprintf(&b, "   - BOD: %s\n", formatFloat(p.WaterQuality.BOD))
	fmt.Fprintf(&b, "   - T-N: %s\n", formatFloat(p.WaterQuality.TN))
	fmt.Fprintf(&b, "   - T-P: %s\n\n", formatFloat(p.WaterQuality.TP))

	fmt.Fprintf(&b, "🌊 **조류 경보 단계**: %s\n", p.Algae.Level)
	fmt.Fprintf(&b, "   - FAI: %s\n", formatFloat(p.Algae.FAI))
	fmt.Fprintf(&b, "   - BAI: %s\n", formatFloat(p.Algae.BAI))
	fmt.Fprintf(&b, "   - DAI: %s\n", formatFloat(p.Algae.DAI))
	fmt.Fprintf(&b, "   - IAI: %s\n", formatFloat(p.Algae.IAI))
	fmt.Fprintf(&b, "   - %s\n\n", p.Algae.Description)

	if len(p.Warnings) > 0 {
		b.WriteString("⚠️ **경고**:\n")
		for _, w := range p.Warnings {
			fmt.Fprintf(&b, "   - %s\n", w.Message)
			if w.Manual != nil {
				fmt.Fprintf(&b, "     💡 대응 메뉴얼: %s\n", w.Manual.Title)
			}
		}
	}

	b.WriteString("\n💡 참고: 현재는 모의 예측 데이터입니다. 실제 예측 모델 연동 시 더 정확한 결과를 제공합니다.")
	return b.String()
}
