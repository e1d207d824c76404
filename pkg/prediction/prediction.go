// Package prediction produces a mock next-period forecast from
// location-scoped historical averages. The perturbation stands in for a
// real forecasting model behind the same interface.
package prediction

import (
	"context"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aquasense/aquasense-engine/pkg/classify"
	"github.com/aquasense/aquasense-engine/pkg/models"
	"github.com/aquasense/aquasense-engine/pkg/store"
)

var forecastMetrics = []string{"pH", "BOD", "T-N", "T-P", "FAI", "BAI", "DAI", "IAI"}

// Baseline values used when a location has no historical data for a
// metric.
var defaultBaseline = map[string]float64{
	"pH":  7.0,
	"BOD": 1.0,
	"T-N": 0.3,
	"T-P": 0.05,
	"FAI": 30,
	"BAI": 30,
	"DAI": 30,
	"IAI": 30,
}

// Forecaster builds predictions from the cached dataset.
type Forecaster struct {
	cache      *store.DatasetCache
	classifier *classify.Classifier
	rng        *rand.Rand
	now        func() time.Time
	logger     *zap.Logger
}

// NewForecaster creates a forecaster seeded from the current time.
func NewForecaster(cache *store.DatasetCache, classifier *classify.Classifier, logger *zap.Logger) *Forecaster {
	return &Forecaster{
		cache:      cache,
		classifier: classifier,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		now:        time.Now,
		logger:     logger.Named("forecaster"),
	}
}

// Forecast predicts next-week conditions for a monitoring location. The
// location matches rows whose 분류코드 or 조사구간명 contains the code.
func (f *Forecaster) Forecast(ctx context.Context, locationCode string) *models.Prediction {
	baseline := f.baselineFor(ctx, locationCode)

	wq := models.PredictedWaterQuality{
		PH:  round(baseline["pH"]+f.jitter(0.5), 2),
		BOD: round(baseline["BOD"]+f.jitter(0.2), 2),
		TN:  round(baseline["T-N"]+f.jitter(0.1), 3),
		TP:  round(baseline["T-P"]+f.jitter(0.01), 3),
	}
	wq.Grade = f.classifier.WaterQualityGrade(models.Record{
		"pH": wq.PH, "BOD": wq.BOD, "T-N": wq.TN, "T-P": wq.TP,
	}).Grade

	algae := models.PredictedAlgae{
		FAI: round(baseline["FAI"]+f.jitter(10), 1),
		BAI: round(baseline["BAI"]+f.jitter(10), 1),
		DAI: round(baseline["DAI"]+f.jitter(10), 1),
		IAI: round(baseline["IAI"]+f.jitter(10), 1),
	}
	result := f.classifier.AlgaeAlertLevel(models.Record{"FAI": algae.FAI})
	algae.Level = result.Level
	algae.Description = result.Description

	p := &models.Prediction{
		LocationCode: locationCode,
		Date:         f.now().AddDate(0, 0, 7).Format("2006-01-02"),
		WaterQuality: wq,
		Algae:        algae,
	}
	p.Warnings = f.warningsFor(p)
	return p
}

// baselineFor averages each metric over the location's historical rows,
// skipping absent or non-positive values.
func (f *Forecaster) baselineFor(ctx context.Context, locationCode string) map[string]float64 {
	baseline := make(map[string]float64, len(defaultBaseline))
	for k, v := range defaultBaseline {
		baseline[k] = v
	}

	ds, ok := f.cache.Get(ctx)
	if !ok {
		f.logger.Debug("no cached dataset, using default baseline",
			zap.String("location", locationCode))
		return baseline
	}

	var scoped []models.Record
	for _, row := range ds.Rows {
		if strings.Contains(row.StringAt("분류코드"), locationCode) ||
			strings.Contains(row.StringAt("조사구간명"), locationCode) {
			scoped = append(scoped, row)
		}
	}
	if len(scoped) == 0 {
		return baseline
	}

	for _, metric := range forecastMetrics {
		sum, count := 0.0, 0
		for _, row := range scoped {
			if v, ok := row.FloatAt(metric); ok && v > 0 {
				sum += v
				count++
			}
		}
		if count > 0 {
			baseline[metric] = sum / float64(count)
		}
	}
	return baseline
}

func (f *Forecaster) warningsFor(p *models.Prediction) []models.PredictionWarning {
	var out []models.PredictionWarning
	if p.WaterQuality.PH < 5.5 || p.WaterQuality.PH > 9.5 {
		out = append(out, models.PredictionWarning{
			Domain:  models.AlertDomainWaterQuality,
			Message: "pH가 " + formatFloat(p.WaterQuality.PH) + "로 예상되어 주의가 필요합니다.",
			Manual:  &models.ManualRef{Title: "수질 관리 가이드", Type: "water_quality_warning"},
		})
	}
	if p.Algae.FAI >= 60 {
		out = append(out, models.PredictionWarning{
			Domain:  models.AlertDomainAlgae,
			Message: "조류 지표(FAI: " + formatFloat(p.Algae.FAI) + ")가 높게 예상됩니다.",
			Manual:  &models.ManualRef{Title: "조류 발생 대응 가이드", Type: "algae_warning"},
		})
	}
	return out
}

// jitter returns a uniform perturbation in [-span/2, span/2).
func (f *Forecaster) jitter(span float64) float64 {
	return (f.rng.Float64() - 0.5) * span
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
