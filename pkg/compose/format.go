package compose

import (
	"strings"

	"github.com/aquasense/aquasense-engine/pkg/models"
)

// FormatAlerts renders alerts as a markdown block appended to rule-based
// answers, most severe first.
func FormatAlerts(alerts []models.Alert) string {
	if len(alerts) == 0 {
		return ""
	}

	sorted := make([]models.Alert, len(alerts))
	copy(sorted, alerts)
	models.SortAlertsBySeverity(sorted)

	var b strings.Builder
	b.WriteString("\n\n⚠️ **경고 알림**\n")
	for _, alert := range sorted {
		icon := "💡"
		switch alert.Severity {
		case models.AlertSeverityCritical:
			icon = "🚨"
		case models.AlertSeverityWarning:
			icon = "⚠️"
		}
		b.WriteString(icon + " " + alert.Message + "\n")
		if alert.Manual != nil {
			b.WriteString("   📋 대응 메뉴얼: " + alert.Manual.Title + "\n")
		}
	}
	return b.String()
}
