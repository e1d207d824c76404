// Package classify derives domain grades from monitoring rows: the
// water-quality grade (pH/BOD/T-N/T-P) and the algae alert level (FAI).
// Rule tables are injected, ordered, and evaluated first-match-wins.
package classify

import (
	"github.com/aquasense/aquasense-engine/pkg/models"
)

// Classifier evaluates ordered rule tables against single rows. Missing or
// unparseable metric values are read as zero so an incomplete row still
// classifies; zero and truly-absent are indistinguishable by design.
type Classifier struct {
	grades []models.GradeRule
	algae  []models.AlgaeLevelRule
}

// NewClassifier creates a classifier over the given rule tables. Tables
// are evaluated in slice order; callers must not mutate them afterwards.
func NewClassifier(grades []models.GradeRule, algae []models.AlgaeLevelRule) *Classifier {
	return &Classifier{
		grades: grades,
		algae:  algae,
	}
}

// NewDefaultClassifier creates a classifier with the standard grade and
// algae tables.
func NewDefaultClassifier() *Classifier {
	return NewClassifier(models.DefaultWaterQualityGrades(), models.DefaultAlgaeAlertLevels())
}

// WaterQualityGrade classifies a row into the first grade whose bounds it
// satisfies: pH within the inclusive range, BOD/T-N/T-P each at or below
// the max. An absent bound is always satisfied. Rows matching no grade get
// the worst one.
func (c *Classifier) WaterQualityGrade(row models.Record) models.GradeResult {
	ph := row.MetricValue("pH", "ph")
	bod := row.MetricValue("BOD")
	tn := row.MetricValue("T-N")
	tp := row.MetricValue("T-P")

	details := map[string]float64{
		"pH":  ph,
		"BOD": bod,
		"T-N": tn,
		"T-P": tp,
	}

	for _, rule := range c.grades {
		if !boundsOK(ph, rule.PHMin, rule.PHMax) {
			continue
		}
		if rule.BODMax != nil && bod > *rule.BODMax {
			continue
		}
		if rule.TNMax != nil && tn > *rule.TNMax {
			continue
		}
		if rule.TPMax != nil && tp > *rule.TPMax {
			continue
		}
		return models.GradeResult{
			Grade:       rule.Name,
			Description: rule.Description,
			Color:       rule.Color,
			Details:     details,
		}
	}

	worst := c.grades[len(c.grades)-1]
	return models.GradeResult{
		Grade:       worst.Name,
		Description: worst.Description,
		Color:       worst.Color,
		Details:     details,
	}
}

// AlgaeAlertLevel classifies a row by FAI alone using half-open ranges:
// a rule matches when FAIMin <= FAI < FAIMax, with nil bounds open.
func (c *Classifier) AlgaeAlertLevel(row models.Record) models.AlgaeResult {
	fai := row.MetricValue("FAI")

	values := map[string]float64{
		"FAI": fai,
		"BAI": row.MetricValue("BAI"),
		"DAI": row.MetricValue("DAI"),
		"IAI": row.MetricValue("IAI"),
	}

	for _, rule := range c.algae {
		if rule.FAIMin != nil && fai < *rule.FAIMin {
			continue
		}
		if rule.FAIMax != nil && fai >= *rule.FAIMax {
			continue
		}
		return models.AlgaeResult{
			Level:       rule.Name,
			Description: rule.Description,
			Color:       rule.Color,
			Values:      values,
		}
	}

	last := c.algae[len(c.algae)-1]
	return models.AlgaeResult{
		Level:       last.Name,
		Description: last.Description,
		Color:       last.Color,
		Values:      values,
	}
}

func boundsOK(v float64, min, max *float64) bool {
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}
