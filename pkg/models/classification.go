package models

// GradeRule is one row of the ordered water-quality grade table. Rules are
// evaluated top to bottom and the first match wins, so table order is part
// of the contract, not an implementation detail. A nil bound is treated as
// always satisfied.
type GradeRule struct {
	Name        string   `json:"name" yaml:"name"`
	PHMin       *float64 `json:"ph_min,omitempty" yaml:"ph_min,omitempty"`
	PHMax       *float64 `json:"ph_max,omitempty" yaml:"ph_max,omitempty"`
	BODMax      *float64 `json:"bod_max,omitempty" yaml:"bod_max,omitempty"`
	TNMax       *float64 `json:"tn_max,omitempty" yaml:"tn_max,omitempty"`
	TPMax       *float64 `json:"tp_max,omitempty" yaml:"tp_max,omitempty"`
	Description string   `json:"description" yaml:"description"`
	Color       string   `json:"color" yaml:"color"`
}

// AlgaeLevelRule is one row of the ordered algae alert table, keyed on FAI
// alone with half-open ranges: a row matches when FAIMin <= FAI < FAIMax.
// A nil bound leaves that side open.
type AlgaeLevelRule struct {
	Name        string   `json:"name" yaml:"name"`
	FAIMin      *float64 `json:"fai_min,omitempty" yaml:"fai_min,omitempty"`
	FAIMax      *float64 `json:"fai_max,omitempty" yaml:"fai_max,omitempty"`
	Description string   `json:"description" yaml:"description"`
	Color       string   `json:"color" yaml:"color"`
}

// GradeResult is the outcome of water-quality classification for one row.
type GradeResult struct {
	Grade       string             `json:"grade"`
	Description string             `json:"description"`
	Color       string             `json:"color"`
	Details     map[string]float64 `json:"details"`
}

// AlgaeResult is the outcome of algae alert classification for one row.
type AlgaeResult struct {
	Level       string             `json:"level"`
	Description string             `json:"description"`
	Color       string             `json:"color"`
	Values      map[string]float64 `json:"values"`
}

func f64(v float64) *float64 { return &v }

// DefaultWaterQualityGrades returns the standard five-grade table, best to
// worst. The final grade is an unbounded catch-all.
func DefaultWaterQualityGrades() []GradeRule {
	return []GradeRule{
		{
			Name:  "I등급",
			PHMin: f64(6.5), PHMax: f64(8.5),
			BODMax: f64(1.0), TNMax: f64(0.2), TPMax: f64(0.02),
			Description: "매우 좋음",
			Color:       "green",
		},
		{
			Name:  "II등급",
			PHMin: f64(6.0), PHMax: f64(9.0),
			BODMax: f64(2.0), TNMax: f64(0.3), TPMax: f64(0.04),
			Description: "좋음",
			Color:       "lightgreen",
		},
		{
			Name:  "III등급",
			PHMin: f64(5.5), PHMax: f64(9.5),
			BODMax: f64(3.0), TNMax: f64(0.5), TPMax: f64(0.1),
			Description: "보통",
			Color:       "yellow",
		},
		{
			Name:  "IV등급",
			PHMin: f64(5.0), PHMax: f64(10.0),
			BODMax: f64(5.0), TNMax: f64(1.0), TPMax: f64(0.2),
			Description: "나쁨",
			Color:       "orange",
		},
		{
			Name:        "V등급",
			Description: "매우 나쁨",
			Color:       "red",
		},
	}
}

// DefaultAlgaeAlertLevels returns the standard four-level table over FAI.
func DefaultAlgaeAlertLevels() []AlgaeLevelRule {
	return []AlgaeLevelRule{
		{Name: "정상", FAIMax: f64(40), Description: "조류 발생 없음", Color: "green"},
		{Name: "관심", FAIMin: f64(40), FAIMax: f64(60), Description: "조류 발생 관심", Color: "yellow"},
		{Name: "주의", FAIMin: f64(60), FAIMax: f64(80), Description: "조류 발생 주의", Color: "orange"},
		{Name: "경보", FAIMin: f64(80), Description: "조류 대량 발생 위험", Color: "red"},
	}
}

// DefaultRelatedMetrics maps each metric code to the metrics commonly
// requested alongside it. Used for follow-up suggestions.
func DefaultRelatedMetrics() map[string][]string {
	return map[string][]string{
		"pH":  {"BOD", "T-N", "T-P", "FAI"},
		"FAI": {"BAI", "DAI", "IAI", "pH", "BOD"},
		"BOD": {"T-N", "T-P", "pH", "FAI"},
		"T-N": {"T-P", "BOD", "pH"},
		"T-P": {"T-N", "BOD", "pH"},
		"BAI": {"FAI", "DAI", "IAI"},
		"DAI": {"FAI", "BAI", "IAI"},
		"IAI": {"FAI", "BAI", "DAI"},
	}
}
