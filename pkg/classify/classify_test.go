package classify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aquasense/aquasense-engine/pkg/models"
)

func TestWaterQualityGrade(t *testing.T) {
	c := NewDefaultClassifier()

	tests := []struct {
		name string
		row  models.Record
		want string
	}{
		{
			"pristine water is grade I",
			models.Record{"pH": 7.0, "BOD": 0.5, "T-N": 0.1, "T-P": 0.01},
			"I등급",
		},
		{
			"slightly elevated BOD drops to grade II",
			models.Record{"pH": 7.0, "BOD": 1.5, "T-N": 0.1, "T-P": 0.01},
			"II등급",
		},
		{
			"moderate pollution is grade III",
			models.Record{"pH": 7.0, "BOD": 2.5, "T-N": 0.4, "T-P": 0.08},
			"III등급",
		},
		{
			"heavy pollution is grade IV",
			models.Record{"pH": 5.2, "BOD": 4.0, "T-N": 0.8, "T-P": 0.15},
			"IV등급",
		},
		{
			"extreme values hit the catch-all grade V",
			models.Record{"pH": 4.2, "BOD": 6.0, "T-N": 2.0, "T-P": 0.5},
			"V등급",
		},
		{
			"missing metrics read as zero",
			models.Record{"pH": 7.0},
			// BOD/T-N/T-P absent read as 0, but pH 7.0 alone satisfies
			// grade I bounds.
			"I등급",
		},
		{
			"all metrics missing fails the pH range",
			models.Record{"조사구간명": "한강"},
			// pH reads as 0, outside every bounded grade.
			"V등급",
		},
		{
			"lowercase ph alias",
			models.Record{"ph": 7.0, "BOD": 0.5, "T-N": 0.1, "T-P": 0.01},
			"I등급",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.WaterQualityGrade(tt.row).Grade)
		})
	}
}

func TestWaterQualityGradeMonotonicity(t *testing.T) {
	c := NewDefaultClassifier()

	// With BOD/T-N/T-P at their best-grade values, pushing pH outside
	// [6.5, 8.5] must strictly downgrade from grade I.
	base := models.Record{"BOD": 0.5, "T-N": 0.1, "T-P": 0.01}

	base["pH"] = 8.5
	assert.Equal(t, "I등급", c.WaterQualityGrade(base).Grade)

	base["pH"] = 8.7
	assert.Equal(t, "II등급", c.WaterQualityGrade(base).Grade)

	base["pH"] = 9.2
	assert.Equal(t, "III등급", c.WaterQualityGrade(base).Grade)

	base["pH"] = 9.8
	assert.Equal(t, "IV등급", c.WaterQualityGrade(base).Grade)

	base["pH"] = 10.5
	assert.Equal(t, "V등급", c.WaterQualityGrade(base).Grade)
}

func TestAlgaeAlertLevel(t *testing.T) {
	c := NewDefaultClassifier()

	tests := []struct {
		fai  float64
		want string
	}{
		{0, "정상"},
		{39.9, "정상"},
		{40, "관심"},
		{59.9, "관심"},
		{60, "주의"},
		{79.9, "주의"},
		{80, "경보"},
		{150, "경보"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("FAI %.1f", tt.fai), func(t *testing.T) {
			row := models.Record{"FAI": tt.fai}
			assert.Equal(t, tt.want, c.AlgaeAlertLevel(row).Level)
		})
	}
}

func TestClassifierResultDetails(t *testing.T) {
	c := NewDefaultClassifier()

	grade := c.WaterQualityGrade(models.Record{"pH": 7.0, "BOD": 0.5, "T-N": 0.1, "T-P": 0.01})
	assert.Equal(t, "매우 좋음", grade.Description)
	assert.InDelta(t, 7.0, grade.Details["pH"], 1e-9)

	algae := c.AlgaeAlertLevel(models.Record{"FAI": 85.0, "BAI": 20.0})
	assert.Equal(t, "경보", algae.Level)
	assert.InDelta(t, 85.0, algae.Values["FAI"], 1e-9)
}
