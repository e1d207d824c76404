package models

// PredictedWaterQuality is the forecast water-quality portion of a
// prediction.
type PredictedWaterQuality struct {
	Grade string  `json:"grade"`
	PH    float64 `json:"ph"`
	BOD   float64 `json:"bod"`
	TN    float64 `json:"t_n"`
	TP    float64 `json:"t_p"`
}

// PredictedAlgae is the forecast algae portion of a prediction.
type PredictedAlgae struct {
	Level       string  `json:"level"`
	FAI         float64 `json:"fai"`
	BAI         float64 `json:"bai"`
	DAI         float64 `json:"dai"`
	IAI         float64 `json:"iai"`
	Description string  `json:"description"`
}

// PredictionWarning flags a forecast value that crosses a caution
// threshold.
type PredictionWarning struct {
	Domain  string     `json:"domain"`
	Message string     `json:"message"`
	Manual  *ManualRef `json:"manual,omitempty"`
}

// Prediction is a next-period forecast for one monitoring location,
// derived from location-scoped historical averages.
type Prediction struct {
	LocationCode string                `json:"location_code"`
	Date         string                `json:"date"`
	WaterQuality PredictedWaterQuality `json:"water_quality"`
	Algae        PredictedAlgae        `json:"algae_alert"`
	Warnings     []PredictionWarning   `json:"warnings"`
}
