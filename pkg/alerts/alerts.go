// Package alerts evaluates per-row risk conditions across the
// water-quality, algae, and flood domains.
package alerts

import (
	"fmt"

	"github.com/aquasense/aquasense-engine/pkg/classify"
	"github.com/aquasense/aquasense-engine/pkg/models"
)

// Thresholds holds the raw alert bounds per domain. Injected at
// construction so deployments can tune them without code changes.
type Thresholds struct {
	PHCriticalLow  float64 `yaml:"ph_critical_low"`
	PHCriticalHigh float64 `yaml:"ph_critical_high"`
	PHWarningLow   float64 `yaml:"ph_warning_low"`
	PHWarningHigh  float64 `yaml:"ph_warning_high"`

	BODCritical float64 `yaml:"bod_critical"`
	BODWarning  float64 `yaml:"bod_warning"`
	TNWarning   float64 `yaml:"tn_warning"`
	TPWarning   float64 `yaml:"tp_warning"`

	FAICritical float64 `yaml:"fai_critical"`
	FAIWarning  float64 `yaml:"fai_warning"`
	FAIInfo     float64 `yaml:"fai_info"`
	// SecondaryAlgaeWarning applies independently to BAI/DAI/IAI.
	SecondaryAlgaeWarning float64 `yaml:"secondary_algae_warning"`

	DepthCritical float64 `yaml:"depth_critical"`
	DepthWarning  float64 `yaml:"depth_warning"`
	PrecCritical  float64 `yaml:"prec_critical"`
	PrecWarning   float64 `yaml:"prec_warning"`
}

// DefaultThresholds returns the operational alert bounds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PHCriticalLow:  5.0,
		PHCriticalHigh: 10.0,
		PHWarningLow:   5.5,
		PHWarningHigh:  9.5,

		BODCritical: 5.0,
		BODWarning:  3.0,
		TNWarning:   1.0,
		TPWarning:   0.2,

		FAICritical:           80,
		FAIWarning:            60,
		FAIInfo:               40,
		SecondaryAlgaeWarning: 80,

		DepthCritical: 50,
		DepthWarning:  30,
		PrecCritical:  100,
		PrecWarning:   50,
	}
}

// Checker evaluates a single row against every alert domain. Domains are
// independent: one row may raise several simultaneous alerts and no
// cross-domain dedup is performed.
type Checker struct {
	thresholds Thresholds
	classifier *classify.Classifier
}

// NewChecker creates a checker. The classifier supplies the grade-based
// water-quality alert.
func NewChecker(thresholds Thresholds, classifier *classify.Classifier) *Checker {
	return &Checker{
		thresholds: thresholds,
		classifier: classifier,
	}
}

// Check returns all alerts the row triggers, ordered by severity
// (critical > warning > info).
func (c *Checker) Check(row models.Record) []models.Alert {
	var out []models.Alert
	out = append(out, c.checkWaterQuality(row)...)
	out = append(out, c.checkAlgae(row)...)
	out = append(out, c.checkFlood(row)...)
	models.SortAlertsBySeverity(out)
	return out
}

func (c *Checker) checkWaterQuality(row models.Record) []models.Alert {
	t := c.thresholds
	var out []models.Alert

	ph := row.MetricValue("pH", "ph")
	bod := row.MetricValue("BOD")
	tn := row.MetricValue("T-N")
	tp := row.MetricValue("T-P")

	if ph < t.PHCriticalLow || ph > t.PHCriticalHigh {
		out = append(out, models.Alert{
			Domain:   models.AlertDomainWaterQuality,
			Severity: models.AlertSeverityCritical,
			Message:  fmt.Sprintf("pH가 %g로 매우 위험한 수준입니다. (정상 범위: 6.5~8.5)", ph),
			Manual:   &models.ManualRef{Title: "수질 사고 대응 메뉴얼", Type: "water_quality_critical"},
		})
	} else if ph < t.PHWarningLow || ph > t.PHWarningHigh {
		out = append(out, models.Alert{
			Domain:   models.AlertDomainWaterQuality,
			Severity: models.AlertSeverityWarning,
			Message:  fmt.Sprintf("pH가 %g로 주의가 필요합니다. (정상 범위: 6.5~8.5)", ph),
			Manual:   &models.ManualRef{Title: "수질 관리 가이드", Type: "water_quality_warning"},
		})
	}

	if bod > t.BODCritical {
		out = append(out, models.Alert{
			Domain:   models.AlertDomainWaterQuality,
			Severity: models.AlertSeverityCritical,
			Message:  fmt.Sprintf("BOD가 %g로 매우 높습니다. (정상: 1.0 이하)", bod),
			Manual:   &models.ManualRef{Title: "수질 오염 대응 메뉴얼", Type: "water_quality_critical"},
		})
	} else if bod > t.BODWarning {
		out = append(out, models.Alert{
			Domain:   models.AlertDomainWaterQuality,
			Severity: models.AlertSeverityWarning,
			Message:  fmt.Sprintf("BOD가 %g로 높습니다. (정상: 1.0 이하)", bod),
			Manual:   &models.ManualRef{Title: "수질 관리 가이드", Type: "water_quality_warning"},
		})
	}

	if tn > t.TNWarning {
		out = append(out, models.Alert{
			Domain:   models.AlertDomainWaterQuality,
			Severity: models.AlertSeverityWarning,
			Message:  fmt.Sprintf("총질소(T-N)가 %g로 높습니다. (정상: 0.2 이하)", tn),
			Manual:   &models.ManualRef{Title: "영양염류 관리 가이드", Type: "nutrient_warning"},
		})
	}
	if tp > t.TPWarning {
		out = append(out, models.Alert{
			Domain:   models.AlertDomainWaterQuality,
			Severity: models.AlertSeverityWarning,
			Message:  fmt.Sprintf("총인(T-P)이 %g로 높습니다. (정상: 0.02 이하)", tp),
			Manual:   &models.ManualRef{Title: "영양염류 관리 가이드", Type: "nutrient_warning"},
		})
	}

	// Grade-derived alert co-occurs with the threshold alerts above.
	grade := c.classifier.WaterQualityGrade(row)
	if grade.Grade == "IV등급" || grade.Grade == "V등급" {
		out = append(out, models.Alert{
			Domain:   models.AlertDomainWaterQuality,
			Severity: models.AlertSeverityCritical,
			Message:  fmt.Sprintf("수질 등급이 %s입니다. 즉시 조치가 필요합니다.", grade.Grade),
			Manual:   &models.ManualRef{Title: "수질 사고 긴급 대응 메뉴얼", Type: "water_quality_emergency"},
		})
	}

	return out
}

func (c *Checker) checkAlgae(row models.Record) []models.Alert {
	t := c.thresholds
	var out []models.Alert

	fai := row.MetricValue("FAI")
	bai := row.MetricValue("BAI")
	dai := row.MetricValue("DAI")
	iai := row.MetricValue("IAI")

	switch {
	case fai >= t.FAICritical:
		out = append(out, models.Alert{
			Domain:   models.AlertDomainAlgae,
			Severity: models.AlertSeverityCritical,
			Message:  fmt.Sprintf("조류 경보 단계입니다! FAI: %g (정상: 40 이하)", fai),
			Manual:   &models.ManualRef{Title: "조류 대량 발생 긴급 대응 메뉴얼", Type: "algae_emergency"},
		})
	case fai >= t.FAIWarning:
		out = append(out, models.Alert{
			Domain:   models.AlertDomainAlgae,
			Severity: models.AlertSeverityWarning,
			Message:  fmt.Sprintf("조류 주의 단계입니다. FAI: %g (정상: 40 이하)", fai),
			Manual:   &models.ManualRef{Title: "조류 발생 대응 가이드", Type: "algae_warning"},
		})
	case fai >= t.FAIInfo:
		out = append(out, models.Alert{
			Domain:   models.AlertDomainAlgae,
			Severity: models.AlertSeverityInfo,
			Message:  fmt.Sprintf("조류 관심 단계입니다. FAI: %g (정상: 40 이하)", fai),
			Manual:   &models.ManualRef{Title: "조류 예방 가이드", Type: "algae_info"},
		})
	}

	// Secondary indices alert independently of the FAI-derived one.
	if bai > t.SecondaryAlgaeWarning || dai > t.SecondaryAlgaeWarning || iai > t.SecondaryAlgaeWarning {
		out = append(out, models.Alert{
			Domain:   models.AlertDomainAlgae,
			Severity: models.AlertSeverityWarning,
			Message:  fmt.Sprintf("일부 조류 지표가 높습니다. (BAI: %g, DAI: %g, IAI: %g)", bai, dai, iai),
			Manual:   &models.ManualRef{Title: "조류 발생 대응 가이드", Type: "algae_warning"},
		})
	}

	return out
}

func (c *Checker) checkFlood(row models.Record) []models.Alert {
	t := c.thresholds
	var out []models.Alert

	depth := row.MetricValue("Wdepth", "수위")
	prec := row.MetricValue("Prec", "강수량")

	if depth > t.DepthCritical {
		out = append(out, models.Alert{
			Domain:   models.AlertDomainFlood,
			Severity: models.AlertSeverityCritical,
			Message:  fmt.Sprintf("수위가 %gm로 매우 높습니다. 홍수 위험!", depth),
			Manual:   &models.ManualRef{Title: "홍수 긴급 대응 메뉴얼", Type: "flood_emergency"},
		})
	} else if depth > t.DepthWarning {
		out = append(out, models.Alert{
			Domain:   models.AlertDomainFlood,
			Severity: models.AlertSeverityWarning,
			Message:  fmt.Sprintf("수위가 %gm로 높습니다. 주의 필요.", depth),
			Manual:   &models.ManualRef{Title: "홍수 대응 가이드", Type: "flood_warning"},
		})
	}

	if prec > t.PrecCritical {
		out = append(out, models.Alert{
			Domain:   models.AlertDomainFlood,
			Severity: models.AlertSeverityCritical,
			Message:  fmt.Sprintf("강수량이 %gmm로 매우 많습니다. 홍수 위험!", prec),
			Manual:   &models.ManualRef{Title: "홍수 긴급 대응 메뉴얼", Type: "flood_emergency"},
		})
	} else if prec > t.PrecWarning {
		out = append(out, models.Alert{
			Domain:   models.AlertDomainFlood,
			Severity: models.AlertSeverityWarning,
			Message:  fmt.Sprintf("강수량이 %gmm로 많습니다. 주의 필요.", prec),
			Manual:   &models.ManualRef{Title: "홍수 대응 가이드", Type: "flood_warning"},
		})
	}

	return out
}
