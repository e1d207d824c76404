package prediction

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aquasense/aquasense-engine/pkg/classify"
	"github.com/aquasense/aquasense-engine/pkg/models"
	"github.com/aquasense/aquasense-engine/pkg/store"
)

func newTestForecaster(cache *store.DatasetCache) *Forecaster {
	f := NewForecaster(cache, classify.NewDefaultClassifier(), zap.NewNop())
	f.rng = rand.New(rand.NewSource(1))
	f.now = func() time.Time {
		return time.Date(2023, 5, 17, 12, 0, 0, 0, time.UTC)
	}
	return f
}

func TestForecastDefaultBaseline(t *testing.T) {
	cache := store.NewDatasetCache(nil, zap.NewNop())
	f := newTestForecaster(cache)

	p := f.Forecast(context.Background(), "2001G027")

	assert.Equal(t, "2001G027", p.LocationCode)
	assert.Equal(t, "2023-05-24", p.Date)

	// Perturbations are bounded by half the configured span around the
	// default baselines.
	assert.InDelta(t, 7.0, p.WaterQuality.PH, 0.26)
	assert.InDelta(t, 1.0, p.WaterQuality.BOD, 0.11)
	assert.InDelta(t, 0.3, p.WaterQuality.TN, 0.051)
	assert.InDelta(t, 0.05, p.WaterQuality.TP, 0.0051)
	assert.InDelta(t, 30, p.Algae.FAI, 5.1)
	assert.InDelta(t, 30, p.Algae.BAI, 5.1)
	assert.InDelta(t, 30, p.Algae.DAI, 5.1)
	assert.InDelta(t, 30, p.Algae.IAI, 5.1)

	assert.NotEmpty(t, p.WaterQuality.Grade)
	assert.Equal(t, "정상", p.Algae.Level)
	assert.Empty(t, p.Warnings)
}

func TestForecastUsesLocationAverages(t *testing.T) {
	ctx := context.Background()
	cache := store.NewDatasetCache(nil, zap.NewNop())
	cache.Set(ctx, &models.Dataset{
		Columns: []string{"분류코드", "pH", "FAI"},
		Rows: []models.Record{
			{"분류코드": "2001G027", "pH": 8.0, "FAI": 70.0},
			{"분류코드": "2001G027", "pH": 9.0, "FAI": 90.0},
			// Different location, must not contribute.
			{"분류코드": "3001B001", "pH": 4.0, "FAI": 5.0},
			// Non-positive values are skipped.
			{"분류코드": "2001G027", "pH": 0.0, "FAI": -1.0},
		},
	})
	f := newTestForecaster(cache)

	p := f.Forecast(ctx, "2001G027")

	// Location average pH is 8.5 and FAI is 80; jitter spans 0.5 and 10.
	assert.InDelta(t, 8.5, p.WaterQuality.PH, 0.26)
	assert.InDelta(t, 80, p.Algae.FAI, 5.1)
	// Metrics absent from the dataset fall back to the defaults.
	assert.InDelta(t, 1.0, p.WaterQuality.BOD, 0.11)
}

func TestForecastWarnings(t *testing.T) {
	ctx := context.Background()
	cache := store.NewDatasetCache(nil, zap.NewNop())
	cache.Set(ctx, &models.Dataset{
		Rows: []models.Record{
			{"분류코드": "3001B001", "pH": 10.5, "FAI": 85.0},
		},
	})
	f := newTestForecaster(cache)

	p := f.Forecast(ctx, "3001B001")

	require.Len(t, p.Warnings, 2)
	domains := []string{p.Warnings[0].Domain, p.Warnings[1].Domain}
	assert.Contains(t, domains, models.AlertDomainWaterQuality)
	assert.Contains(t, domains, models.AlertDomainAlgae)
	for _, w := range p.Warnings {
		require.NotNil(t, w.Manual)
	}
	assert.NotEqual(t, "정상", p.Algae.Level)
}

func TestForecastRounding(t *testing.T) {
	cache := store.NewDatasetCache(nil, zap.NewNop())
	f := newTestForecaster(cache)

	p := f.Forecast(context.Background(), "anywhere")

	assert.Equal(t, round(p.WaterQuality.PH, 2), p.WaterQuality.PH)
	assert.Equal(t, round(p.WaterQuality.TN, 3), p.WaterQuality.TN)
	assert.Equal(t, round(p.Algae.FAI, 1), p.Algae.FAI)
}

func TestFormatPrediction(t *testing.T) {
	cache := store.NewDatasetCache(nil, zap.NewNop())
	f := newTestForecaster(cache)

	p := f.Forecast(context.Background(), "2001G027")
	text := FormatPrediction(p)

	assert.Contains(t, text, "2001G027")
	assert.Contains(t, text, "2023-05-24")
	assert.Contains(t, text, "pH")
	assert.Contains(t, text, "FAI")
	assert.Contains(t, text, "모의 예측 데이터")
}
