package models

import "sort"

// Alert domains.
const (
	AlertDomainWaterQuality = "water_quality"
	AlertDomainAlgae        = "algae"
	AlertDomainFlood        = "flood"
)

// Alert severities, ordered critical > warning > info for display.
const (
	AlertSeverityCritical = "critical"
	AlertSeverityWarning  = "warning"
	AlertSeverityInfo     = "info"
)

// ManualRef points the manual-lookup collaborator at the response document
// for an alert.
type ManualRef struct {
	Title string `json:"title"`
	Type  string `json:"type"`
}

// Alert is one risk condition detected on a single row. Alerts are produced
// fresh per evaluation and never persisted; a row may carry several at once.
type Alert struct {
	Domain   string     `json:"domain"`
	Severity string     `json:"severity"`
	Message  string     `json:"message"`
	Manual   *ManualRef `json:"manual,omitempty"`
}

// ValidAlertSeverity reports whether s is a known severity.
func ValidAlertSeverity(s string) bool {
	switch s {
	case AlertSeverityCritical, AlertSeverityWarning, AlertSeverityInfo:
		return true
	}
	return false
}

// SeverityRank orders severities for sorting; higher is more severe.
func SeverityRank(severity string) int {
	switch severity {
	case AlertSeverityCritical:
		return 3
	case AlertSeverityWarning:
		return 2
	case AlertSeverityInfo:
		return 1
	default:
		return 0
	}
}

// SortAlertsBySeverity orders alerts critical first, preserving the
// original order within a severity. No cross-domain dedup is performed.
func SortAlertsBySeverity(alerts []Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return SeverityRank(alerts[i].Severity) > SeverityRank(alerts[j].Severity)
	})
}
