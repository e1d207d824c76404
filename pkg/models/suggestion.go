package models

// Suggestion kinds. The engine only tags suggestions; the presentation
// layer decides what invoking one does.
const (
	SuggestionWaterQuality   = "water_quality"
	SuggestionAlgaeManual    = "algae_alert"
	SuggestionPrediction     = "prediction"
	SuggestionTimeSeries     = "timeseries"
	SuggestionRelatedMetrics = "related"
)

// Suggestion is a follow-up offer attached to an answer. Payload carries
// the parameters the deferred action needs (location code, metric, level).
type Suggestion struct {
	Kind    string            `json:"kind"`
	Prompt  string            `json:"prompt"`
	Payload map[string]string `json:"payload,omitempty"`
}

// Answer is the final product of one question: the composed text plus
// follow-up suggestions and the alerts raised on the matched data.
type Answer struct {
	Text        string       `json:"answer"`
	Suggestions []Suggestion `json:"suggestions"`
	Alerts      []Alert      `json:"alerts,omitempty"`
	RowsMatched int          `json:"rows_matched"`
	LLMUsed     bool         `json:"llm_used"`
}
